package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	analyticsstore "github.com/serroba/shortlink/internal/analytics/store"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// PublisherGroupPackage provides the event publisher and the typed analytics
// publishers. Without Redis, events go to an in-process channel nobody reads.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i))

		if !opts.UseRedis() {
			return messaging.NewPublisherGroup(gochannel.NewGoChannel(gochannel.Config{}, logger)), nil
		}

		client, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     client.Client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (*analytics.Publishers, error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return analytics.NewPublishers(group.Publisher()), nil
	})
}

// ConsumerGroupPackage provides the analytics *messaging.ConsumerGroup. It
// always reads from Redis streams.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		switch opts.AnalyticsStore {
		case "noop":
			return analyticsstore.NewNoop(logger), nil
		case "redis":
			client, err := do.Invoke[*Redis](i)
			if err != nil {
				return nil, err
			}

			return analyticsstore.NewRedis(client.Client, analyticsstore.DefaultRetention), nil
		default:
			return nil, fmt.Errorf("unknown analytics store %q", opts.AnalyticsStore)
		}
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		client, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		var subscriber message.Subscriber

		subscriber, err = redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client.Client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: opts.ConsumerGroup,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create stream subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(analytics.NewConsumers(subscriber, do.MustInvoke[analytics.Store](i), logger)...)

		return group, nil
	})
}
