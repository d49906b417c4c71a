package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// RedisCache is a Cache backed by a shared redis instance, so cached
// results survive restarts and are shared across replicas.
type RedisCache struct {
	client redis.Cmdable
}

// Ensure RedisCache implements Cache interface
var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to redis at the given URL and verifies the
// connection before returning.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient wraps an existing client. Tests use this with a
// stub Cmdable.
func NewRedisCacheWithClient(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

// GetOrCompute implements the Cache interface. Redis transport errors
// degrade to computing directly: the cache must never take reads down.
func (c *RedisCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	log := logger.FromContext(ctx)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Warn("cache read failed, computing directly", "error", err)
	}

	data, err = compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Warn("cache write failed", "error", err)
	}

	return data, nil
}
