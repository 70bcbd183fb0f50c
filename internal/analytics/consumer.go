package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumers returns one consumer per analytics topic, each persisting
// its events into store. Register them on a messaging.ConsumerGroup.
func NewConsumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[SlugCreatedEvent](subscriber, TopicSlugCreated, store.SaveSlugCreated, logger),
		messaging.NewConsumer[SlugResolvedEvent](subscriber, TopicSlugResolved, store.SaveSlugResolved, logger),
		messaging.NewConsumer[SlugRenamedEvent](subscriber, TopicSlugRenamed, store.SaveSlugRenamed, logger),
	}
}
