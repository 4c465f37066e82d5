package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointboard-app/pointboard/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"unknown level falls back to info", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestLoggerContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := WithLogger(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
		assert.Same(t, log, FromContextOrDefault(ctx, nil))
	})

	t.Run("missing logger yields the default", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("missing logger yields the fallback", func(t *testing.T) {
		t.Parallel()
		fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil logger panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			WithLogger(context.Background(), nil)
		})
	})
}
