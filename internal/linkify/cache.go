package linkify

import (
	"strings"
	"sync"

	"git.home.luguber.info/inful/reportlink/internal/foundation"
)

// Cache memoizes classification results keyed by the exact matched text.
// An absent key means "never computed"; None means "computed, not linkable";
// Some holds the link address. The cache is owned by the caller and threaded
// through annotate calls so its lifetime and scope stay under caller control.
//
// Implementations must tolerate concurrent Get/Put. Duplicate resolution of
// the same key under a race is acceptable (classification is idempotent and
// side-effect free); last writer wins.
type Cache interface {
	Get(text string) (foundation.Option[string], bool)
	Put(text string, result foundation.Option[string])
}

// Invalidator is implemented by caches that can drop classifications when the
// underlying files change.
type Invalidator interface {
	// Invalidate drops entries whose matched text begins with pathPrefix.
	// An empty prefix drops everything.
	Invalidate(pathPrefix string)
}

// MemoryCache is an in-process Cache guarded by a mutex.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]foundation.Option[string]
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]foundation.Option[string])}
}

func (c *MemoryCache) Get(text string) (foundation.Option[string], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.entries[text]
	return result, ok
}

func (c *MemoryCache) Put(text string, result foundation.Option[string]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[text] = result
}

// Invalidate drops entries whose matched text begins with pathPrefix.
func (c *MemoryCache) Invalidate(pathPrefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pathPrefix == "" {
		c.entries = make(map[string]foundation.Option[string])
		return
	}
	for text := range c.entries {
		if strings.HasPrefix(text, pathPrefix) {
			delete(c.entries, text)
		}
	}
}

// Len returns the number of cached classifications.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
