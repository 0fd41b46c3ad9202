// Package retry provides bounded retry logic with a fixed backoff delay.
// Classification lives in IsRetryable: network timeouts, transient errnos,
// and retryable HTTP statuses get another try; everything else fails fast.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the maximum number of retries after the initial attempt.
	// The total number of tries is therefore MaxAttempts+1. Zero disables
	// retrying entirely: the operation runs exactly once.
	MaxAttempts int

	// Backoff is the fixed delay between consecutive tries.
	Backoff time.Duration
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 2,
		Backoff:     1 * time.Second,
	}
}

// WithBackoff executes the given function, retrying transient failures with a fixed
// backoff delay between tries. It returns nil as soon as the function succeeds, the
// error unchanged if it is not retryable, or the last error wrapped once the retry
// budget is exhausted. The backoff wait is interruptible: if the context is done
// while waiting, the context error is returned instead of running another try.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts < 0 {
		cfg.MaxAttempts = 0
	}
	tries := cfg.MaxAttempts + 1

	var lastErr error
	for attempt := 1; attempt <= tries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == tries {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", tries),
			slog.Duration("backoff", cfg.Backoff),
			slog.Any("error", lastErr))

		select {
		case <-time.After(cfg.Backoff):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

var transientErrnos = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ETIMEDOUT,
	syscall.ENETUNREACH,
}

// IsRetryable reports whether err is worth another try. Context errors mean
// the caller gave up, so they are never retryable regardless of the cause.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests,
			httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}

	return false
}

// HTTPError carries a non-2xx upstream status through retry classification.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
