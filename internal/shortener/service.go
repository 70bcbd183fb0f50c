package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/slug"
	"go.uber.org/zap"
)

// maxCounterAttempts bounds how many counter values Allocate draws when
// generated slugs land on slugs that callers picked by hand.
const maxCounterAttempts = 5

// Options configures the Service.
type Options struct {
	// Timeout bounds every store, cache and counter call. Zero disables it.
	Timeout time.Duration
	// ResetVisitsOnRename zeroes the visit counter when a record is renamed.
	ResetVisitsOnRename bool
}

// AllocateRequest describes a new short URL.
type AllocateRequest struct {
	Original    string
	DesiredSlug *string
	OwnerID     *string
}

// Service allocates, resolves and renames slugs on top of the durable
// repository, the redirect cache and the shared counter.
type Service struct {
	repo     Repository
	cache    Cache
	counter  Counter
	logger   *zap.Logger
	opts     Options
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewService creates a new allocation and resolution service.
func NewService(repo Repository, cache Cache, counter Counter, logger *zap.Logger, opts Options) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		counter:  counter,
		logger:   logger,
		opts:     opts,
		validate: newValidator(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Allocate validates the request and persists a new record.
// With a desired slug the repository decides uniqueness; otherwise the slug
// is the base62 encoding of the next counter value.
// The cache is not populated here.
func (s *Service) Allocate(ctx context.Context, req AllocateRequest) (*Record, error) {
	if req.DesiredSlug != nil && *req.DesiredSlug == "" {
		req.DesiredSlug = nil
	}

	if err := s.validate.Struct(allocateInput{Original: req.Original, DesiredSlug: req.DesiredSlug}); err != nil {
		return nil, validationError(err)
	}

	record := &Record{
		ID:        s.newID(),
		Original:  req.Original,
		OwnerID:   req.OwnerID,
		CreatedAt: s.now().UTC(),
	}

	if req.DesiredSlug != nil {
		record.Slug = Slug(*req.DesiredSlug)

		if err := s.createCustom(ctx, record); err != nil {
			return nil, err
		}

		return record, nil
	}

	if err := s.createFromCounter(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *Service) createCustom(ctx context.Context, record *Record) error {
	opCtx, cancel := s.bounded(ctx)
	defer cancel()

	_, err := s.repo.FindBySlug(opCtx, record.Slug)
	if err == nil {
		return ErrSlugTaken
	}

	if !errors.Is(err, ErrNotFound) {
		return infraErr("find by slug", err)
	}

	if err = s.repo.Create(opCtx, record); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return ErrSlugTaken
		}

		return infraErr("create", err)
	}

	return nil
}

func (s *Service) createFromCounter(ctx context.Context, record *Record) error {
	for range maxCounterAttempts {
		n, err := s.next(ctx)
		if err != nil {
			return infraErr("counter", err)
		}

		encoded, err := slug.Encode(n)
		if err != nil {
			return infraErr("encode", err)
		}

		record.Slug = Slug(encoded)

		err = s.create(ctx, record)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrSlugTaken) {
			return infraErr("create", err)
		}

		s.logger.Warn("counter slug already held by a custom slug, drawing next value",
			zap.Int64("counter", n),
			zap.String("slug", encoded),
		)
	}

	return fmt.Errorf("%w: no free counter slug after %d attempts", ErrInfrastructure, maxCounterAttempts)
}

func (s *Service) next(ctx context.Context) (int64, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.counter.Next(ctx)
}

func (s *Service) create(ctx context.Context, record *Record) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.repo.Create(ctx, record)
}

// Resolve returns the destination for slug, reading the cache before the
// repository. Cache failures and visit-count failures are logged, not returned.
// Negative results are never cached.
func (s *Service) Resolve(ctx context.Context, key Slug) (string, error) {
	if !slugPattern.MatchString(string(key)) || len(key) > MaxSlugLength {
		return "", ErrNotFound
	}

	original, hit := s.cached(ctx, key)
	if !hit {
		record, err := s.findBySlug(ctx, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", ErrNotFound
			}

			return "", infraErr("find by slug", err)
		}

		original = record.Original
		s.populate(ctx, key, original)
	}

	s.countVisit(ctx, key)

	return original, nil
}

func (s *Service) cached(ctx context.Context, key Slug) (string, bool) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	original, err := s.cache.Get(ctx, key)
	if err == nil {
		return original, true
	}

	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("cache read failed, falling back to store",
			zap.String("slug", string(key)),
			zap.Error(err),
		)
	}

	return "", false
}

func (s *Service) findBySlug(ctx context.Context, key Slug) (*Record, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.repo.FindBySlug(ctx, key)
}

func (s *Service) populate(ctx context.Context, key Slug, original string) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.cache.Set(ctx, key, original); err != nil {
		s.logger.Warn("cache write failed",
			zap.String("slug", string(key)),
			zap.Error(err),
		)
	}
}

func (s *Service) countVisit(ctx context.Context, key Slug) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.repo.IncrementVisits(ctx, key); err != nil {
		s.logger.Warn("visit increment failed",
			zap.String("slug", string(key)),
			zap.Error(err),
		)
	}
}

// Rename moves the record owned by ownerID to newSlug and returns the
// previous slug. The cache entry for the previous slug is deleted before the
// repository is updated; the rename is committed only once the update succeeds.
func (s *Service) Rename(ctx context.Context, recordID, ownerID string, newSlug Slug) (Slug, error) {
	if ownerID == "" {
		return "", ErrUnauthorized
	}

	if err := s.validate.Struct(renameInput{RecordID: recordID, NewSlug: string(newSlug)}); err != nil {
		return "", validationError(err)
	}

	opCtx, cancel := s.bounded(ctx)
	defer cancel()

	taken, err := s.repo.CountBySlug(opCtx, newSlug)
	if err != nil {
		return "", infraErr("count by slug", err)
	}

	if taken > 0 {
		return "", ErrSlugTaken
	}

	record, err := s.repo.FindByIDAndOwner(opCtx, recordID, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", infraErr("find by id and owner", err)
	}

	if err = s.cache.Delete(opCtx, record.Slug); err != nil {
		return "", infraErr("cache invalidate", err)
	}

	err = s.repo.UpdateSlug(opCtx, recordID, ownerID, newSlug, s.opts.ResetVisitsOnRename)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) || errors.Is(err, ErrNotFound) {
			return "", err
		}

		return "", infraErr("update slug", err)
	}

	// A resolver that read the store between the two steps may have cached
	// the previous slug again.
	if err = s.cache.Delete(opCtx, record.Slug); err != nil {
		s.logger.Warn("post-rename cache invalidation failed",
			zap.String("slug", string(record.Slug)),
			zap.Error(err),
		)
	}

	s.logger.Info("slug renamed",
		zap.String("id", recordID),
		zap.String("from", string(record.Slug)),
		zap.String("to", string(newSlug)),
	)

	return record.Slug, nil
}

func (s *Service) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, s.opts.Timeout)
}
