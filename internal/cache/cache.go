package cache

import (
	"context"
	"time"
)

// ComputeFunc produces the serialized result for a cache key on a miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache memoizes serialized read-only query results for a short TTL.
//
// Consistency contract: entries are never invalidated on write. A
// mutation of the underlying data is not reflected in cached reads until
// the entry's TTL lapses; callers accept read-after-write staleness up to
// the TTL. Concurrent misses for the same key may race to recompute and
// overwrite each other; at-most-one-computation-per-key is not guaranteed.
type Cache interface {
	// GetOrCompute returns the cached value for key if present and
	// unexpired. Otherwise it invokes compute, stores the result with the
	// given TTL, and returns it. Compute errors are returned as-is and
	// never cached.
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
}
