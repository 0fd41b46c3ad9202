package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"person-api/internal/handler/http/requestid"
)

// levelFromEnv maps LOG_LEVEL to a slog level. Empty or unknown values
// fall back to info so a typo never silences the logs.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handlerOptions() *slog.HandlerOptions {
	level := levelFromEnv()
	return &slog.HandlerOptions{
		Level: level,
		// Source locations only when verbosity is turned up.
		AddSource: level <= slog.LevelWarn,
	}
}

// NewLogger returns a JSON logger writing to stdout. The minimum level
// comes from LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions()))
}

// NewTextLogger returns a human-readable logger for local development.
// It honors LOG_LEVEL the same way NewLogger does.
func NewTextLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, handlerOptions()))
}

// WithRequestID returns logger with the request ID from ctx attached,
// or logger unchanged when the context carries none.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := requestid.FromContext(ctx); id != "" {
		return logger.With("request_id", id)
	}
	return logger
}
