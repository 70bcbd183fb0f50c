package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// DefaultCounterKey holds the global slug counter.
const DefaultCounterKey = "url_counter"

// RedisCounter is a Redis implementation of shortener.Counter backed by INCR.
type RedisCounter struct {
	client redis.Cmdable
	key    string
}

// NewRedisCounter creates a counter stored under key.
func NewRedisCounter(client redis.Cmdable, key string) *RedisCounter {
	if key == "" {
		key = DefaultCounterKey
	}

	return &RedisCounter{client: client, key: key}
}

// Next atomically increments the counter and returns the new value.
func (r *RedisCounter) Next(ctx context.Context) (int64, error) {
	return r.client.Incr(ctx, r.key).Result()
}

// EvictionPolicy returns the server's maxmemory-policy and whether it suits
// the redirect cache.
func EvictionPolicy(ctx context.Context, client redis.Cmdable) (string, bool, error) {
	values, err := client.ConfigGet(ctx, "maxmemory-policy").Result()
	if err != nil {
		return "", false, err
	}

	policy := values["maxmemory-policy"]

	return policy, SuitableEvictionPolicy(policy), nil
}

// SuitableEvictionPolicy reports whether policy can evict cache entries.
// Cache keys carry no TTL, so volatile-* policies never evict them.
func SuitableEvictionPolicy(policy string) bool {
	return policy == "allkeys-lru" || policy == "allkeys-lfu"
}

// Compile-time check.
var _ shortener.Counter = (*RedisCounter)(nil)
