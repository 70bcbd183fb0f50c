package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisCache is a Redis implementation of shortener.Cache.
// Entries carry no TTL; Redis evicts them under its maxmemory-policy.
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache creates a new Redis-backed redirect cache.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "slug:",
	}
}

func (r *RedisCache) Get(ctx context.Context, slug shortener.Slug) (string, error) {
	original, err := r.client.Get(ctx, r.key(slug)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrCacheMiss
		}

		return "", err
	}

	return original, nil
}

func (r *RedisCache) Set(ctx context.Context, slug shortener.Slug, original string) error {
	return r.client.Set(ctx, r.key(slug), original, 0).Err()
}

func (r *RedisCache) Delete(ctx context.Context, slug shortener.Slug) error {
	return r.client.Del(ctx, r.key(slug)).Err()
}

func (r *RedisCache) key(slug shortener.Slug) string {
	return r.prefix + string(slug)
}

// Compile-time check.
var _ shortener.Cache = (*RedisCache)(nil)
