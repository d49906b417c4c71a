package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a stored value with its absolute expiry.
type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-process Cache backed by a mutex-guarded map.
// It is used in tests and as the fallback when no redis URL is
// configured. Expired entries are dropped lazily on access and swept
// opportunistically on writes.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time // Injectable for testing
}

// Ensure MemoryCache implements Cache interface
var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock creates an in-process cache with an explicit
// clock. Tests use this to step time past entry TTLs.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// GetOrCompute implements the Cache interface.
func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.data, nil
	}
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	// Compute outside the lock; racing misses for the same key may each
	// compute and the last write wins.
	data, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sweepLocked()
	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()

	return data, nil
}

// sweepLocked drops expired entries. Caller must hold the mutex.
func (c *MemoryCache) sweepLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
