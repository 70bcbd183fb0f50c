package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
)

// Publishers bundles the typed publish functions for every analytics topic.
type Publishers struct {
	Created  messaging.Publish[SlugCreatedEvent]
	Resolved messaging.Publish[SlugResolvedEvent]
	Renamed  messaging.Publish[SlugRenamedEvent]
}

// NewPublishers binds each analytics topic to publisher.
func NewPublishers(publisher message.Publisher) *Publishers {
	return &Publishers{
		Created:  messaging.NewPublishFunc[SlugCreatedEvent](publisher, TopicSlugCreated),
		Resolved: messaging.NewPublishFunc[SlugResolvedEvent](publisher, TopicSlugResolved),
		Renamed:  messaging.NewPublishFunc[SlugRenamedEvent](publisher, TopicSlugRenamed),
	}
}
