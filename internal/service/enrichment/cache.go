package enrichment

import (
	"sync"
	"time"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// outcomeCache is a bounded, explicitly-expiring cache of negative
// enrichment outcomes (rejected / not-found), keyed by normalized query. It
// keeps repeat lookups of the same unknown word from burning model calls.
// Owned by the gateway; constructor-injected bounds, no module-level state.
type outcomeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	result    domain.ResolutionResult
	expiresAt time.Time
}

func newOutcomeCache(maxSize int, ttl time.Duration) *outcomeCache {
	return &outcomeCache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached outcome for key, dropping it if expired.
func (c *outcomeCache) Get(key string) (domain.ResolutionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.ResolutionResult{}, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return domain.ResolutionResult{}, false
	}
	return e.result, true
}

// Set stores an outcome, evicting the entry closest to expiry when full.
func (c *outcomeCache) Set(key string, result domain.ResolutionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.entries[key] = cacheEntry{result: result, expiresAt: c.now().Add(c.ttl)}
}

func (c *outcomeCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = e.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
