package store

import (
	"context"
	_ "embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed record store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the short_urls table when it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresStore) FindBySlug(ctx context.Context, slug shortener.Slug) (*shortener.Record, error) {
	query := `
		SELECT id, slug, original, owner_id, visits, created_at
		FROM short_urls
		WHERE slug = $1
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, string(slug)))
}

func (p *PostgresStore) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*shortener.Record, error) {
	query := `
		SELECT id, slug, original, owner_id, visits, created_at
		FROM short_urls
		WHERE id = $1 AND owner_id = $2
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, id, ownerID))
}

func (p *PostgresStore) Create(ctx context.Context, record *shortener.Record) error {
	query := `
		INSERT INTO short_urls (id, slug, original, owner_id, visits, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		record.ID,
		string(record.Slug),
		record.Original,
		record.OwnerID,
		record.Visits,
		record.CreatedAt,
	)

	return translate(err)
}

func (p *PostgresStore) UpdateSlug(
	ctx context.Context, id, ownerID string, slug shortener.Slug, resetVisits bool,
) error {
	query := `
		UPDATE short_urls
		SET slug = $3,
		    visits = CASE WHEN $4 THEN 0 ELSE visits END
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := p.pool.Exec(ctx, query, id, ownerID, string(slug), resetVisits)
	if err != nil {
		return translate(err)
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) IncrementVisits(ctx context.Context, slug shortener.Slug) error {
	query := `UPDATE short_urls SET visits = visits + 1 WHERE slug = $1`

	tag, err := p.pool.Exec(ctx, query, string(slug))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) CountBySlug(ctx context.Context, slug shortener.Slug) (int64, error) {
	var count int64

	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM short_urls WHERE slug = $1`, string(slug)).Scan(&count)

	return count, err
}

func (p *PostgresStore) scanOne(row pgx.Row) (*shortener.Record, error) {
	var (
		record shortener.Record
		slug   string
	)

	err := row.Scan(
		&record.ID,
		&slug,
		&record.Original,
		&record.OwnerID,
		&record.Visits,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	record.Slug = shortener.Slug(slug)

	return &record, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shortener.ErrSlugTaken
	}

	return err
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
