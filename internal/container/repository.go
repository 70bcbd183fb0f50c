package container

import (
	"context"
	"fmt"

	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the record store, redirect cache, counter and
// the *shortener.Service built on them. Without a database or Redis address
// the corresponding parts stay in process memory.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if !opts.UsePostgres() {
			logger.Warn("no database configured, records are kept in memory")

			return store.NewMemoryStore(), nil
		}

		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		repo := store.NewPostgresStore(pg.Pool)

		if opts.EnsureSchema {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()

			if err = repo.EnsureSchema(ctx); err != nil {
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}

		return repo, nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Cache, error) {
		opts := do.MustInvoke[*Options](i)

		if !opts.UseRedis() {
			return store.NewMemoryCache(opts.CacheSize), nil
		}

		client, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		return store.NewRedisCache(client.Client), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Counter, error) {
		opts := do.MustInvoke[*Options](i)

		if !opts.UseRedis() {
			return store.NewMemoryCounter(0), nil
		}

		client, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		return store.NewRedisCounter(client.Client, store.DefaultCounterKey), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[shortener.Cache](i),
			do.MustInvoke[shortener.Counter](i),
			do.MustInvoke[*zap.Logger](i),
			shortener.Options{
				Timeout:             opts.StoreTimeout(),
				ResetVisitsOnRename: opts.ResetVisitsOnRename,
			},
		), nil
	})
}
