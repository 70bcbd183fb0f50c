package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.uber.org/zap"
)

// Handler processes one decoded event. A returned error nacks the message.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer feeds the messages of one topic to a typed Handler.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger

	mu      sync.Mutex
	stop    context.CancelFunc
	stopped chan struct{}
}

// NewConsumer creates a consumer for events of type T published on topic.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
	}
}

// Topic returns the topic this consumer subscribes to.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes to the topic and processes messages until ctx ends or
// Shutdown is called.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		cancel()

		return fmt.Errorf("subscribe: %w", err)
	}

	stopped := make(chan struct{})

	c.mu.Lock()
	c.stop, c.stopped = cancel, stopped
	c.mu.Unlock()

	go func() {
		defer close(stopped)

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				c.settle(ctx, msg)
			}
		}
	}()

	return nil
}

// settle acks the message when processing succeeds and nacks it otherwise.
func (c *Consumer[T]) settle(ctx context.Context, msg *message.Message) {
	correlationID := middleware.MessageCorrelationID(msg)

	if err := c.process(WithCorrelationID(ctx, correlationID), msg.Payload); err != nil {
		c.logger.Error("event not processed",
			zap.String("message_id", msg.UUID),
			zap.String("correlation_id", correlationID),
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	msg.Ack()
	c.logger.Debug("event processed", zap.String("message_id", msg.UUID))
}

func (c *Consumer[T]) process(ctx context.Context, payload []byte) error {
	event := new(T)
	if err := json.Unmarshal(payload, event); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if err := c.handler(ctx, event); err != nil {
		return fmt.Errorf("handle: %w", err)
	}

	return nil
}

// Shutdown stops consumption and waits for the message in flight, if any.
// It returns immediately for a consumer that was never started.
func (c *Consumer[T]) Shutdown() error {
	c.mu.Lock()
	stop, stopped := c.stop, c.stopped
	c.mu.Unlock()

	if stop == nil {
		return nil
	}

	stop()
	<-stopped

	return nil
}
