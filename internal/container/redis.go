package container

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// Redis owns the shared client so the injector closes it on shutdown.
type Redis struct {
	*redis.Client
}

func (r *Redis) Shutdown() error {
	if r == nil || r.Client == nil {
		return nil
	}

	return r.Close()
}

func (r *Redis) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	return r.Ping(ctx).Err()
}

// RedisPackage provides the connected *Redis client. Startup fails when the
// server does not answer; the eviction policy check only logs warnings.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Redis, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()

			return nil, fmt.Errorf("connect redis %s: %w", opts.RedisAddr, err)
		}

		warnOnEvictionPolicy(ctx, client, logger)

		return &Redis{Client: client}, nil
	})
}

func warnOnEvictionPolicy(ctx context.Context, client redis.Cmdable, logger *zap.Logger) {
	policy, suitable, err := store.EvictionPolicy(ctx, client)
	if err != nil {
		logger.Warn("could not read redis eviction policy", zap.Error(err))

		return
	}

	if !suitable {
		logger.Warn("redis eviction policy cannot evict cached slugs, which carry no TTL; use allkeys-lru or allkeys-lfu",
			zap.String("maxmemory-policy", policy),
		)

		return
	}

	logger.Info("redis may evict the slug counter under this policy; a reset counter makes allocations fail until it passes the used slugs",
		zap.String("maxmemory-policy", policy),
		zap.String("counter_key", store.DefaultCounterKey),
	)
}
