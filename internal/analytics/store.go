package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveSlugCreated(ctx context.Context, event *SlugCreatedEvent) error
	SaveSlugResolved(ctx context.Context, event *SlugResolvedEvent) error
	SaveSlugRenamed(ctx context.Context, event *SlugRenamedEvent) error
}
