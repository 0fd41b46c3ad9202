package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"person-api/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_LevelFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  string
		min  slog.Level
	}{
		{"defaults to info", "", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"case insensitive", "DEBUG", slog.LevelDebug},
		{"unknown value falls back to info", "verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			ctx := context.Background()

			logger := NewLogger()

			require.NotNil(t, logger)
			assert.True(t, logger.Enabled(ctx, tt.min), "level %v should be enabled", tt.min)
			assert.False(t, logger.Enabled(ctx, tt.min-4), "level %v should be disabled", tt.min-4)
		})
	}
}

func TestNewTextLogger_HonorsLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	ctx := context.Background()

	logger := NewTextLogger()

	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}

func TestWithRequestID_AttachesField(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")

	WithRequestID(ctx, base).Info("lookup complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
	assert.Equal(t, "lookup complete", entry["msg"])
}

func TestWithRequestID_NoIDInContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	got := WithRequestID(context.Background(), base)

	assert.Same(t, base, got, "logger should pass through untouched")

	got.Info("lookup complete")
	assert.NotContains(t, buf.String(), "request_id")
}
