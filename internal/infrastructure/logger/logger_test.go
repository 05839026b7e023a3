package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
)

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "console", ""} {
		l, err := logger.New(logger.Config{Level: "debug", Format: format, OutputPaths: []string{"stderr"}})
		require.NoError(t, err, format)
		l.Debug("format check", logger.String("format", format))
	}
}

func TestNewFromZap_WithAttachesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	base := logger.NewFromZap(zap.New(core))

	base.With(logger.String("service", "caloriai-backend")).Info("started", logger.Int("port", 8000))
	base.Debug("filtered out")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "started", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "caloriai-backend", fields["service"])
	assert.EqualValues(t, 8000, fields["port"])
}

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	core, _ := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	ctx := logger.WithContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsSharedAndUsable(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	require.NotNil(t, a)
	assert.Same(t, a, b)

	a.Info("filtered by warn level")
	a.Warn("fallback warn", logger.String("key", "value"))
}

func TestNop(t *testing.T) {
	t.Parallel()

	l := logger.NewNop()
	l.Error("ignored")
	assert.Same(t, l, l.With(logger.String("k", "v")))
	assert.NoError(t, l.Sync())
}
