package takeoff

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached analysis result stays valid.
const DefaultCacheTTL = time.Hour

// ResultCache memoizes analysis results by request fingerprint. Entries older
// than the TTL are swept lazily on every Put. Construct per process and
// inject; there is no package-level instance.
//
// Concurrent callers racing on the same key may both reach upstream; the last
// writer wins, which is an accepted (not fatal) race.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result    AnalysisResult
	createdAt time.Time
}

// NewResultCache creates a cache with the given TTL (DefaultCacheTTL when zero).
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached result for key, or false on miss or expiry.
func (c *ResultCache) Get(key string) (AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.createdAt) > c.ttl {
		return AnalysisResult{}, false
	}
	return entry.result, true
}

// Put stores a result under key and sweeps expired entries.
func (c *ResultCache) Put(key string, result AnalysisResult) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range c.entries {
		if now.Sub(v.createdAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{result: result, createdAt: now}
}

// Len reports the number of live entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
