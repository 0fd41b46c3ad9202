package exchange

import (
	"context"
	"log/slog"
)

// Sink receives rendered exchange entries. Implementations may write to a log,
// a database, or anything else; callers treat a failed Write as lost
// diagnostics, never as a failure of the captured call.
type Sink interface {
	Write(ctx context.Context, direction Direction, entry string) error
}

// SlogSink writes exchange entries through a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

// Write logs the entry at info level with its direction attached.
func (s *SlogSink) Write(_ context.Context, direction Direction, entry string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("http exchange",
		slog.String("direction", string(direction)),
		slog.String("exchange", entry))
	return nil
}

// MultiSink fans an entry out to several sinks. Every sink is attempted even
// when an earlier one fails; the first error is returned.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Write(ctx context.Context, direction Direction, entry string) error {
	var firstErr error
	for _, s := range m {
		if err := s.Write(ctx, direction, entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
