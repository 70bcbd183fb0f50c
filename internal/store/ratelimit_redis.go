package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRedisStore is a fixed-window implementation of ratelimit.Store.
type RateLimitRedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRateLimitRedisStore creates a new Redis-backed rate limit store.
func NewRateLimitRedisStore(client redis.Cmdable) *RateLimitRedisStore {
	return &RateLimitRedisStore{
		client: client,
		prefix: "ratelimit:",
	}
}

// Increment runs INCR and EXPIRE NX in one transaction, so the window expiry
// is set exactly when the key starts a new window.
func (s *RateLimitRedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.prefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis increment failed: %w", err)
	}

	return incr.Val(), nil
}
