package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/analytics"
)

const (
	statsPrefix = "stats:"
	dayLayout   = "2006-01-02"

	// DefaultRetention bounds how long daily resolve counters are kept.
	DefaultRetention = 90 * 24 * time.Hour
)

// Redis keeps per-slug counters:
//
//	stats:<slug>:<yyyy-mm-dd>  resolves on that UTC day, expiring after the retention
//	stats:<slug>:total         resolves since creation
//	stats:<slug>:meta          hash with creation and rename details
type Redis struct {
	client    redis.Cmdable
	retention time.Duration
}

// NewRedis creates a Redis-backed analytics store. A non-positive retention
// falls back to DefaultRetention.
func NewRedis(client redis.Cmdable, retention time.Duration) *Redis {
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &Redis{client: client, retention: retention}
}

func dailyKey(slug string, day time.Time) string {
	return statsPrefix + slug + ":" + day.UTC().Format(dayLayout)
}

func totalKey(slug string) string {
	return statsPrefix + slug + ":total"
}

func metaKey(slug string) string {
	return statsPrefix + slug + ":meta"
}

func (r *Redis) SaveSlugCreated(ctx context.Context, event *analytics.SlugCreatedEvent) error {
	return r.client.HSet(ctx, metaKey(event.Slug),
		"record_id", event.RecordID,
		"original", event.Original,
		"custom", event.Custom,
		"created_at", event.CreatedAt.UTC().Format(time.RFC3339),
	).Err()
}

func (r *Redis) SaveSlugResolved(ctx context.Context, event *analytics.SlugResolvedEvent) error {
	day := dailyKey(event.Slug, event.ResolvedAt)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, day)
		pipe.ExpireNX(ctx, day, r.retention)
		pipe.Incr(ctx, totalKey(event.Slug))

		return nil
	})

	return err
}

// SaveSlugRenamed links the old and new slug metadata in both directions.
// Counters stay under the slug they were recorded for.
func (r *Redis) SaveSlugRenamed(ctx context.Context, event *analytics.SlugRenamedEvent) error {
	renamedAt := event.RenamedAt.UTC().Format(time.RFC3339)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, metaKey(event.OldSlug), "renamed_to", event.NewSlug, "renamed_at", renamedAt)
		pipe.HSet(ctx, metaKey(event.NewSlug), "record_id", event.RecordID, "renamed_from", event.OldSlug, "renamed_at", renamedAt)

		return nil
	})

	return err
}

// DailyResolves returns the number of resolves recorded for slug on day.
func (r *Redis) DailyResolves(ctx context.Context, slug string, day time.Time) (int64, error) {
	return r.count(ctx, dailyKey(slug, day))
}

// TotalResolves returns the number of resolves recorded for slug.
func (r *Redis) TotalResolves(ctx context.Context, slug string) (int64, error) {
	return r.count(ctx, totalKey(slug))
}

func (r *Redis) count(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return n, err
}
