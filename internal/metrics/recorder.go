package metrics

import "time"

// OutcomeLabel enumerates classification outcomes for counters.
type OutcomeLabel string

const (
	OutcomeLinkable    OutcomeLabel = "linkable"
	OutcomeNotLinkable OutcomeLabel = "not_linkable"
	OutcomeURL         OutcomeLabel = "url"
)

// Recorder defines observability hooks for the annotation engine. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for nil receivers
// when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	IncMatches(n int)
	IncCacheHit()
	IncCacheMiss()
	IncResolution(outcome OutcomeLabel)
	IncInvalidation()
	ObserveAnnotateDuration(d time.Duration)
	ObserveBrowseRequest(status int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncMatches(int)                        {}
func (NoopRecorder) IncCacheHit()                          {}
func (NoopRecorder) IncCacheMiss()                         {}
func (NoopRecorder) IncResolution(OutcomeLabel)            {}
func (NoopRecorder) IncInvalidation()                      {}
func (NoopRecorder) ObserveAnnotateDuration(time.Duration) {}
func (NoopRecorder) ObserveBrowseRequest(int)              {}
