package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

const requestIDLength = 21

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		generateID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, err
		}

		api := humachi.New(router, huma.DefaultConfig("Shortlink", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api, generateID),
			middleware.PolicyRateLimiter(
				api,
				do.MustInvoke[*ratelimit.PolicyLimiter](i),
				ratelimit.NewOperationScopeResolver(),
				logger,
			),
		)

		health.RegisterRoutes(api, health.NewHandler(healthCheckers(i, opts)))

		urlHandler := handlers.NewURLHandler(
			do.MustInvoke[*shortener.Service](i),
			opts.PublicBaseURL(),
			do.MustInvoke[*analytics.Publishers](i),
			logger,
		)
		handlers.RegisterRoutes(api, urlHandler)

		return api, nil
	})
}

func healthCheckers(i *do.Injector, opts *Options) map[string]health.Checker {
	checkers := make(map[string]health.Checker, 2)

	if opts.UseRedis() {
		checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*Redis](i).Client)
	}

	if opts.UsePostgres() {
		checkers["postgres"] = health.NewPostgresChecker(do.MustInvoke[*Postgres](i).Pool)
	}

	return checkers
}
