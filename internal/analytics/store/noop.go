package store

import (
	"context"

	"github.com/serroba/shortlink/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs what it receives.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveSlugCreated(_ context.Context, event *analytics.SlugCreatedEvent) error {
	n.logger.Info("slug created",
		zap.String("slug", event.Slug),
		zap.String("original", event.Original),
		zap.Bool("custom", event.Custom),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveSlugResolved(_ context.Context, event *analytics.SlugResolvedEvent) error {
	n.logger.Info("slug resolved",
		zap.String("slug", event.Slug),
		zap.Time("resolvedAt", event.ResolvedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

func (n *Noop) SaveSlugRenamed(_ context.Context, event *analytics.SlugRenamedEvent) error {
	n.logger.Info("slug renamed",
		zap.String("from", event.OldSlug),
		zap.String("to", event.NewSlug),
	)

	return nil
}
