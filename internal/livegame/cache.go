package livegame

import (
	"sync"
	"time"
)

const (
	// NormalTTL keeps successful lookups fresh enough for a polling UI.
	NormalTTL = time.Minute
	// RateLimitedTTL holds degraded results longer so pollers stop
	// hammering upstream during a rate-limit window.
	RateLimitedTTL = 5 * time.Minute
	// SweepInterval bounds memory growth from one-off lookups.
	SweepInterval = time.Minute
)

// Entry is a cached live-game result with its own TTL, chosen at write
// time from how the lookup went.
type Entry struct {
	Payload  any
	StoredAt time.Time
	TTL      time.Duration
}

// Store is the cache the optimized live-game route reads through. Backed
// by memory here; the interface keeps a distributed store swappable.
type Store interface {
	// Get returns the entry for key, or ok=false when absent or expired.
	Get(key string) (Entry, bool)
	// Set overwrites the entry for key. At most one entry per key exists.
	Set(key string, payload any, ttl time.Duration)
	// Sweep removes every expired entry.
	Sweep()
}

// CacheKey builds the composite (player, region) cache key.
func CacheKey(puuid, region string) string {
	return puuid + ":" + region
}

// MemoryStore is a process-local Store. Expiry is lazy at read time plus a
// periodic sweep owned by the store's lifecycle, so shutdown is clean and
// tests can drive time through Sweep directly.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
	done    chan struct{}
}

// NewMemoryStore creates a store. A positive sweepInterval starts the
// background sweeper; pass 0 to sweep manually.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}
	if s.now().Sub(entry.StoredAt) > entry.TTL {
		s.mu.Lock()
		if e, still := s.entries[key]; still && s.now().Sub(e.StoredAt) > e.TTL {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return Entry{}, false
	}
	return entry, true
}

func (s *MemoryStore) Set(key string, payload any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = Entry{Payload: payload, StoredAt: s.now(), TTL: ttl}
	s.mu.Unlock()
}

func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.Sub(entry.StoredAt) > entry.TTL {
			delete(s.entries, key)
		}
	}
}

// Close stops the background sweeper.
func (s *MemoryStore) Close() {
	close(s.done)
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.done:
			return
		}
	}
}
