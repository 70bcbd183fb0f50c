package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/ratelimit"
	"go.uber.org/zap"
)

// PolicyRateLimiter returns a Huma middleware that applies fixed-window rate
// limits keyed by client IP.
//
// Per-endpoint configuration is read from operation metadata under
// ratelimit.MetadataKey:
//   - Disabled: true skips rate limiting
//   - Scope plus Limit enforces exactly that limit in that scope
//   - Scope alone checks the policy limits for the global scope and Scope
//
// Operations without configuration fall back to the resolver's scopes.
func PolicyRateLimiter(
	api huma.API,
	limiter *ratelimit.PolicyLimiter,
	resolver ratelimit.ScopeResolver,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)
		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		identifier := identifierFor(ctx)

		var (
			allowed  bool
			exceeded *ratelimit.LimitExceeded
			err      error
		)

		if cfg != nil && cfg.Scope != "" && !cfg.Limit.IsZero() {
			allowed, exceeded, err = limiter.AllowLimit(ctx.Context(), identifier, cfg.Scope, cfg.Limit)
		} else {
			allowed, exceeded, err = limiter.Allow(ctx.Context(), identifier, resolver.Resolve(ctx))
		}

		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", operationPath(ctx)),
				zap.String("client_ip", identifier),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "rate limiter unavailable")

			return
		}

		if !allowed {
			writeRateLimited(api, ctx, exceeded, identifier, logger)

			return
		}

		next(ctx)
	}
}

// identifierFor prefers the client IP resolved by RequestMeta.
func identifierFor(ctx huma.Context) string {
	if ip := handlers.RequestMetaFromContext(ctx.Context()).ClientIP; ip != "" {
		return ip
	}

	return ClientIP(ctx)
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

func writeRateLimited(
	api huma.API,
	ctx huma.Context,
	exceeded *ratelimit.LimitExceeded,
	identifier string,
	logger *zap.Logger,
) {
	msg := ratelimit.ErrRateLimited.Error()

	if exceeded != nil {
		msg = fmt.Sprintf("%s: %s scope allows %d requests per %s", msg,
			exceeded.Scope, exceeded.Config.Max, exceeded.Config.Window)

		ctx.SetHeader("Retry-After", strconv.FormatInt(int64(exceeded.Config.Window.Seconds()), 10))

		logger.Warn("rate limit exceeded",
			zap.String("path", operationPath(ctx)),
			zap.String("method", ctx.Method()),
			zap.String("scope", string(exceeded.Scope)),
			zap.Int64("max", exceeded.Config.Max),
			zap.Duration("window", exceeded.Config.Window),
			zap.String("client_ip", identifier),
		)
	}

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)
}
