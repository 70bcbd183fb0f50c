package shortener_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
)

var errMock = errors.New("mock error")

// flakyRepo wraps the memory store and fails selected operations.
type flakyRepo struct {
	*store.MemoryStore
	findErr      error
	updateErr    error
	incrementErr error
	finds        atomic.Int64
	// beforeUpdate runs inside UpdateSlug before the change is applied.
	beforeUpdate func()
}

func (r *flakyRepo) FindBySlug(ctx context.Context, slug shortener.Slug) (*shortener.Record, error) {
	r.finds.Add(1)

	if r.findErr != nil {
		return nil, r.findErr
	}

	return r.MemoryStore.FindBySlug(ctx, slug)
}

func (r *flakyRepo) UpdateSlug(ctx context.Context, id, owner string, slug shortener.Slug, reset bool) error {
	if r.updateErr != nil {
		return r.updateErr
	}

	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}

	return r.MemoryStore.UpdateSlug(ctx, id, owner, slug, reset)
}

func (r *flakyRepo) IncrementVisits(ctx context.Context, slug shortener.Slug) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}

	return r.MemoryStore.IncrementVisits(ctx, slug)
}

// flakyCache wraps the memory cache and fails selected operations.
type flakyCache struct {
	*store.MemoryCache
	getErr    error
	setErr    error
	deleteErr error
}

func (c *flakyCache) Get(ctx context.Context, slug shortener.Slug) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}

	return c.MemoryCache.Get(ctx, slug)
}

func (c *flakyCache) Set(ctx context.Context, slug shortener.Slug, original string) error {
	if c.setErr != nil {
		return c.setErr
	}

	return c.MemoryCache.Set(ctx, slug, original)
}

func (c *flakyCache) Delete(ctx context.Context, slug shortener.Slug) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}

	return c.MemoryCache.Delete(ctx, slug)
}

// countingCounter records how often it was called.
type countingCounter struct {
	*store.MemoryCounter
	calls atomic.Int64
	err   error
}

func (c *countingCounter) Next(ctx context.Context) (int64, error) {
	c.calls.Add(1)

	if c.err != nil {
		return 0, c.err
	}

	return c.MemoryCounter.Next(ctx)
}

// blockingCounter never answers before its context ends.
type blockingCounter struct{}

func (blockingCounter) Next(ctx context.Context) (int64, error) {
	<-ctx.Done()

	return 0, ctx.Err()
}
