package shortener

import "context"

// Repository is the durable record store and the source of truth for slugs.
// Lookups return ErrNotFound on a miss; any other error is an infrastructure failure.
type Repository interface {
	FindBySlug(ctx context.Context, slug Slug) (*Record, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*Record, error)
	// Create persists a new record. It returns ErrSlugTaken on a uniqueness violation.
	Create(ctx context.Context, record *Record) error
	// UpdateSlug changes the slug of the record owned by ownerID.
	// It returns ErrNotFound when nothing matched and ErrSlugTaken on a uniqueness violation.
	UpdateSlug(ctx context.Context, id, ownerID string, slug Slug, resetVisits bool) error
	IncrementVisits(ctx context.Context, slug Slug) error
	CountBySlug(ctx context.Context, slug Slug) (int64, error)
}

// Counter hands out strictly increasing values from a shared atomic counter.
type Counter interface {
	Next(ctx context.Context) (int64, error)
}

// Cache maps slugs to destinations. Get returns ErrCacheMiss when absent.
type Cache interface {
	Get(ctx context.Context, slug Slug) (string, error)
	Set(ctx context.Context, slug Slug, original string) error
	Delete(ctx context.Context, slug Slug) error
}
