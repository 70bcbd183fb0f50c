package container

import (
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// RateLimitPackage provides the *ratelimit.PolicyLimiter used by the HTTP middleware.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		opts := do.MustInvoke[*Options](i)

		if !opts.UseRedis() {
			return store.NewRateLimitMemoryStore(), nil
		}

		client, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		return store.NewRateLimitRedisStore(client.Client), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		opts := do.MustInvoke[*Options](i)

		failure := ratelimit.FailClosed
		if opts.RateLimitFailOpen {
			failure = ratelimit.FailOpen
		}

		limiter := ratelimit.NewFixedWindowLimiter(
			do.MustInvoke[ratelimit.Store](i),
			failure,
			opts.StoreTimeout(),
			do.MustInvoke[*zap.Logger](i),
		)

		return ratelimit.NewPolicyLimiter(limiter, ratelimit.DefaultPolicy()), nil
	})
}
