package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}

type publishTestEvent struct {
	Slug string `json:"slug"`
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes payload on topic", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[publishTestEvent](mock, "slug.created")

		err := publish(context.Background(), &publishTestEvent{Slug: "a1"})

		require.NoError(t, err)
		assert.Equal(t, "slug.created", mock.topic)
		require.Len(t, mock.messages, 1)
		assert.JSONEq(t, `{"slug":"a1"}`, string(mock.messages[0].Payload))
		assert.Empty(t, middleware.MessageCorrelationID(mock.messages[0]))
	})

	t.Run("carries correlation id from context", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[publishTestEvent](mock, "slug.created")
		ctx := messaging.WithCorrelationID(context.Background(), "req-42")

		require.NoError(t, publish(ctx, &publishTestEvent{Slug: "a1"}))

		require.Len(t, mock.messages, 1)
		assert.Equal(t, "req-42", middleware.MessageCorrelationID(mock.messages[0]))
	})

	t.Run("returns error when publish fails", func(t *testing.T) {
		mock := &mockPublisher{publishErr: errors.New("stream down")}
		publish := messaging.NewPublishFunc[publishTestEvent](mock, "slug.created")

		err := publish(context.Background(), &publishTestEvent{Slug: "a1"})

		assert.Error(t, err)
	})
}

func TestCorrelationIDFromContext(t *testing.T) {
	assert.Empty(t, messaging.CorrelationIDFromContext(context.Background()))

	ctx := messaging.WithCorrelationID(context.Background(), "abc")
	assert.Equal(t, "abc", messaging.CorrelationIDFromContext(ctx))
}

func TestPublisherGroup(t *testing.T) {
	t.Run("returns underlying publisher", func(t *testing.T) {
		mock := &mockPublisher{}
		group := messaging.NewPublisherGroup(mock)

		assert.Equal(t, mock, group.Publisher())
	})

	t.Run("shutdown propagates close error", func(t *testing.T) {
		require.NoError(t, messaging.NewPublisherGroup(&mockPublisher{}).Shutdown())

		err := messaging.NewPublisherGroup(&mockPublisher{closeErr: errors.New("close")}).Shutdown()
		assert.Error(t, err)
	})
}
