package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var adapter watermill.LoggerAdapter = messaging.NewZapLogger(zap.New(core))

	adapter = adapter.With(watermill.LogFields{"topic": "slug.created"})
	adapter.Info("subscribed", watermill.LogFields{"consumer_group": "analytics"})
	adapter.Trace("message received", nil)
	adapter.Error("ack failed", errors.New("stream closed"), nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "slug.created", entries[0].ContextMap()["topic"])
	assert.Equal(t, "analytics", entries[0].ContextMap()["consumer_group"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "stream closed", entries[2].ContextMap()["error"])
}
