package tracker

import (
	"sync"
	"time"
)

// Clock is injectable so TTL behavior can be tested without real time
// passing.
type Clock func() time.Time

// ResultCache stores the last resolution per normalized query key.
// Expired entries miss on Get but stay in the map, the resolver
// consults them through Peek before deciding whether a fresh, possibly
// degraded resolution is allowed to replace them.
type ResultCache struct {
	mu      sync.RWMutex
	now     Clock
	entries map[string]Resolution
}

func NewResultCache(now Clock) *ResultCache {
	if now == nil {
		now = time.Now
	}
	return &ResultCache{
		now:     now,
		entries: map[string]Resolution{},
	}
}

// Get returns the entry for key if one exists and is still fresh.
func (c *ResultCache) Get(key string) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[key]
	if !ok {
		return Resolution{}, false
	}
	if !c.now().Before(res.ExpiresAt) {
		return Resolution{}, false
	}
	return res, true
}

// Peek returns the entry for key even when it has expired.
func (c *ResultCache) Peek(key string) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[key]
	return res, ok
}

// Put replaces any existing entry for key wholesale.
func (c *ResultCache) Put(key string, res Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = res
}
