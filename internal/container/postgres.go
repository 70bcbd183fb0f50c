package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do"
)

// Postgres owns the pgx pool so the injector closes it on shutdown.
type Postgres struct {
	*pgxpool.Pool
}

func (p *Postgres) Shutdown() error {
	if p != nil && p.Pool != nil {
		p.Close()
	}

	return nil
}

func (p *Postgres) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	return p.Ping(ctx)
}

// PostgresPackage provides the connected *Postgres pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Postgres, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &Postgres{Pool: pool}, nil
	})
}
