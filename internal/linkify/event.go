package linkify

import "time"

// DeadReferenceEvent describes a reference that looked like a project path but
// did not resolve to anything under the root. Consumers use these to spot
// stale paths in tool output (renamed files, deleted targets).
type DeadReferenceEvent struct {
	Ref       string    `json:"ref"`
	Root      string    `json:"root"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDeadReferenceEvent creates an event for the given reference.
func NewDeadReferenceEvent(ref, root string) *DeadReferenceEvent {
	return &DeadReferenceEvent{
		Ref:       ref,
		Root:      root,
		Timestamp: time.Now().UTC(),
	}
}
