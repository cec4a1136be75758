package riot

import (
	"sync"
	"time"
)

// FailedPUUIDCache is a short-TTL negative cache of player ids the match-v5
// endpoint recently rejected with a decryption fault. Riot keeps rejecting
// such ids for a while (expired ids, ids crossing region boundaries), so
// repeating the call is futile; the client consults this cache before every
// match-id lookup and fails fast on a hit.
type FailedPUUIDCache struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewFailedPUUIDCache creates a cache whose entries expire after ttl.
func NewFailedPUUIDCache(ttl time.Duration) *FailedPUUIDCache {
	return &FailedPUUIDCache{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Record marks puuid as currently rejected upstream.
func (c *FailedPUUIDCache) Record(puuid string) {
	c.mu.Lock()
	c.seen[puuid] = c.now()
	c.mu.Unlock()
}

// Recent reports whether puuid failed within the TTL window. Expired
// entries are pruned on the way out.
func (c *FailedPUUIDCache) Recent(puuid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	at, ok := c.seen[puuid]
	if !ok {
		return false
	}
	if c.now().Sub(at) > c.ttl {
		delete(c.seen, puuid)
		return false
	}
	return true
}

// Cleanup drops every expired entry.
func (c *FailedPUUIDCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for puuid, at := range c.seen {
		if now.Sub(at) > c.ttl {
			delete(c.seen, puuid)
		}
	}
}
