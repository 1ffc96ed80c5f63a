package takeoff

import (
	"testing"
	"time"
)

func TestResultCachePutGet(t *testing.T) {
	cache := NewResultCache(time.Minute)
	if _, ok := cache.Get("missing"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	result := AnalysisResult{ID: "abc", Trade: TradeElectrical, Status: StatusCompleted}
	cache.Put("key", result)

	got, ok := cache.Get("key")
	if !ok {
		t.Fatalf("expected hit after put")
	}
	if got.ID != "abc" || got.Status != StatusCompleted {
		t.Fatalf("unexpected cached result: %+v", got)
	}
}

func TestResultCacheTTLExpiry(t *testing.T) {
	cache := NewResultCache(time.Minute)
	cache.Put("key", AnalysisResult{ID: "abc"})

	cache.mu.Lock()
	entry := cache.entries["key"]
	entry.createdAt = time.Now().Add(-2 * time.Minute)
	cache.entries["key"] = entry
	cache.mu.Unlock()

	if _, ok := cache.Get("key"); ok {
		t.Fatalf("expected miss after TTL elapsed")
	}
}

func TestResultCacheSweepOnPut(t *testing.T) {
	cache := NewResultCache(time.Minute)
	cache.Put("stale", AnalysisResult{ID: "old"})

	cache.mu.Lock()
	entry := cache.entries["stale"]
	entry.createdAt = time.Now().Add(-2 * time.Minute)
	cache.entries["stale"] = entry
	cache.mu.Unlock()

	cache.Put("fresh", AnalysisResult{ID: "new"})
	if cache.Len() != 1 {
		t.Fatalf("expected stale entry swept on put, have %d entries", cache.Len())
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Fatalf("fresh entry missing after sweep")
	}
}

func TestNewResultCacheZeroTTL(t *testing.T) {
	cache := NewResultCache(0)
	if cache.ttl != DefaultCacheTTL {
		t.Fatalf("expected default TTL for zero input, got %s", cache.ttl)
	}
}
