package livegame

import (
	"testing"
	"time"
)

func newTestStore() (*MemoryStore, *time.Time) {
	now := time.Now()
	store := NewMemoryStore(0)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestMemoryStoreHitWithinTTL(t *testing.T) {
	store, now := newTestStore()

	store.Set("k", "payload", NormalTTL)
	*now = now.Add(30 * time.Second)

	entry, ok := store.Get("k")
	if !ok {
		t.Fatal("expected hit within TTL")
	}
	if entry.Payload != "payload" {
		t.Errorf("payload = %v", entry.Payload)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store, now := newTestStore()

	store.Set("k", "payload", NormalTTL)
	*now = now.Add(NormalTTL + time.Second)

	if _, ok := store.Get("k"); ok {
		t.Fatal("expected miss after TTL")
	}
	// Lazy eviction removed the entry.
	store.mu.RLock()
	_, still := store.entries["k"]
	store.mu.RUnlock()
	if still {
		t.Error("expired entry should be evicted on read")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store, _ := newTestStore()

	store.Set("k", "first", NormalTTL)
	store.Set("k", "second", NormalTTL)

	entry, ok := store.Get("k")
	if !ok || entry.Payload != "second" {
		t.Errorf("entry = %+v, want overwritten payload", entry)
	}
	store.mu.RLock()
	n := len(store.entries)
	store.mu.RUnlock()
	if n != 1 {
		t.Errorf("entries = %d, want 1 per key", n)
	}
}

func TestMemoryStorePerEntryTTL(t *testing.T) {
	store, now := newTestStore()

	store.Set("ok", "payload", NormalTTL)
	store.Set("limited", "degraded", RateLimitedTTL)

	// Past the normal TTL the degraded entry must still be served.
	*now = now.Add(NormalTTL + time.Second)
	if _, ok := store.Get("ok"); ok {
		t.Error("normal entry should have expired")
	}
	if _, ok := store.Get("limited"); !ok {
		t.Error("rate-limited entry should outlive the normal TTL")
	}

	*now = now.Add(RateLimitedTTL)
	if _, ok := store.Get("limited"); ok {
		t.Error("rate-limited entry should expire after its own TTL")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store, now := newTestStore()

	store.Set("old", 1, NormalTTL)
	*now = now.Add(NormalTTL + time.Second)
	store.Set("fresh", 2, NormalTTL)

	store.Sweep()

	store.mu.RLock()
	defer store.mu.RUnlock()
	if _, ok := store.entries["old"]; ok {
		t.Error("sweep should remove expired entries")
	}
	if _, ok := store.entries["fresh"]; !ok {
		t.Error("sweep should keep live entries")
	}
}

func TestMemoryStoreSweeperLifecycle(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	store.Set("k", 1, time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	store.mu.RLock()
	_, still := store.entries["k"]
	store.mu.RUnlock()
	if still {
		t.Error("background sweeper should have evicted the entry")
	}

	store.Close()
}

func TestCacheKey(t *testing.T) {
	if CacheKey("p1", "euw1") == CacheKey("p1", "eun1") {
		t.Error("keys must differ across regions")
	}
}
