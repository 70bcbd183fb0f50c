package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type namedRunnable struct {
	mockRunnable
	topic string
}

func (n *namedRunnable) Topic() string { return n.topic }

type mockRunnable struct {
	started     bool
	shutdown    bool
	startErr    error
	shutdownErr error
}

func (m *mockRunnable) Start(_ context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}

	m.started = true

	return nil
}

func (m *mockRunnable) Shutdown() error {
	m.shutdown = true

	return m.shutdownErr
}

func TestConsumerGroup_Start(t *testing.T) {
	t.Run("starts all consumers", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		consumer1 := &mockRunnable{}
		consumer2 := &mockRunnable{}

		group.Add(consumer1)
		group.Add(consumer2)

		err := group.Start(context.Background())

		require.NoError(t, err)
		assert.True(t, consumer1.started)
		assert.True(t, consumer2.started)
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		consumer1 := &mockRunnable{}
		consumer2 := &mockRunnable{startErr: errors.New("start error")}

		group.Add(consumer1)
		group.Add(consumer2)

		err := group.Start(context.Background())

		require.Error(t, err)
		assert.True(t, consumer1.started)
		assert.True(t, consumer1.shutdown) // Should be rolled back
		assert.False(t, consumer2.started)
	})
}

func TestConsumerGroup_Shutdown(t *testing.T) {
	t.Run("shuts down all consumers", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		consumer1 := &mockRunnable{}
		consumer2 := &mockRunnable{}

		group.Add(consumer1)
		group.Add(consumer2)
		_ = group.Start(context.Background())

		err := group.Shutdown()

		require.NoError(t, err)
		assert.True(t, consumer1.shutdown)
		assert.True(t, consumer2.shutdown)
	})

	t.Run("returns first error but shuts down all", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		consumer1 := &mockRunnable{shutdownErr: errors.New("shutdown error 1")}
		consumer2 := &mockRunnable{shutdownErr: errors.New("shutdown error 2")}

		group.Add(consumer1)
		group.Add(consumer2)
		_ = group.Start(context.Background())

		err := group.Shutdown()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shutdown error 1")
		assert.True(t, consumer1.shutdown)
		assert.True(t, consumer2.shutdown) // Still attempted
	})
}

func TestConsumerGroup_Topics(t *testing.T) {
	group := messaging.NewConsumerGroup(newMockSubscriber(), zap.NewNop())
	group.Add(
		&namedRunnable{topic: "slug.created"},
		&mockRunnable{},
		&namedRunnable{topic: "slug.resolved"},
	)

	assert.Equal(t, []string{"slug.created", "slug.resolved"}, group.Topics())
}

func TestConsumerGroup_StartErrorNamesTopic(t *testing.T) {
	group := messaging.NewConsumerGroup(newMockSubscriber(), zap.NewNop())
	group.Add(&namedRunnable{topic: "slug.renamed", mockRunnable: mockRunnable{startErr: errors.New("boom")}})

	err := group.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug.renamed")
}

func TestConsumerGroup_ShutdownAfterFailedStart(t *testing.T) {
	noop := func(_ context.Context, _ *testEvent) error { return nil }
	group := messaging.NewConsumerGroup(newMockSubscriber(), zap.NewNop())
	group.Add(
		messaging.NewConsumer(newMockSubscriber(), "slug.created", noop, zap.NewNop()),
		messaging.NewConsumer(&mockSubscriber{subscribeErr: errors.New("boom")}, "slug.resolved", noop, zap.NewNop()),
	)

	require.Error(t, group.Start(context.Background()))

	done := make(chan error, 1)
	go func() { done <- group.Shutdown() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("group shutdown blocked on a consumer that failed to start")
	}
}
