// Package genderize calls a genderize.io-style gender guessing API
// through a pooled HTTP client. Calls are retried with a fixed backoff
// on transient faults and every terminal failure is classified into a
// CallError the HTTP layer can map to a client-facing response.
package genderize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"person-api/internal/infra/httpclient"
	"person-api/internal/observability/tracing"
	"person-api/internal/resilience/retry"
)

// Guess is the service's verdict for a first name. Gender and
// Probability are nil when the name is unknown to the service.
type Guess struct {
	Name        string
	Gender      *string
	Probability *float64
	Count       int64
}

// guessPayload mirrors the service's JSON response.
type guessPayload struct {
	Name        string   `json:"name"`
	Gender      *string  `json:"gender"`
	Probability *float64 `json:"probability"`
	Count       int64    `json:"count"`
}

// Client performs gender lookups against one pooled HTTP client.
type Client struct {
	handle      *httpclient.Client
	retryConfig retry.Config
	logger      *slog.Logger
	metrics     CallMetricsRecorder
}

// New creates a client on top of a pooled HTTP client handle.
func New(handle *httpclient.Client, retryConfig retry.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		handle:      handle,
		retryConfig: retryConfig,
		logger:      logger,
		metrics:     NewPrometheusCallMetrics(handle.Name()),
	}
}

// Lookup asks the service for the likely gender of a first name.
//
// Transient faults (timeouts, connection errors, 5xx answers) are
// retried with a fixed backoff; anything else fails on the first try.
// Terminal failures are reported as a *CallError. ErrInvalidParams is
// returned before any network traffic when the name cannot form a
// request path.
func (c *Client) Lookup(ctx context.Context, name string) (*Guess, error) {
	path, err := BuildGenderByNamePath(name)
	if err != nil {
		return nil, err
	}

	// One client span covers the whole call including retries
	ctx, span := tracing.GetTracer().Start(ctx, "genderize.lookup",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()
	span.SetAttributes(attribute.String("external.client", c.handle.Name()))

	requestID := uuid.New().String()
	logger := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("client", c.handle.Name()))

	logger.InfoContext(ctx, "starting gender lookup")
	start := time.Now()

	var guess *Guess
	attempt := 0
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		attempt++
		if attempt > 1 {
			c.metrics.RecordRetry()
		}
		g, err := c.doLookup(ctx, path)
		if err != nil {
			return err
		}
		guess = g
		return nil
	})

	duration := time.Since(start)

	span.SetAttributes(attribute.Int("external.attempts", attempt))

	if retryErr != nil {
		callErr := classify(retryErr)
		c.metrics.RecordFailure(callErr.Kind)
		span.SetAttributes(
			attribute.String("external.failure_kind", string(callErr.Kind)),
			attribute.Bool("error", true),
		)
		logger.ErrorContext(ctx, "gender lookup failed",
			slog.String("kind", string(callErr.Kind)),
			slog.Int("attempts", attempt),
			slog.Duration("duration", duration),
			slog.String("error", retryErr.Error()))
		return nil, callErr
	}

	logger.InfoContext(ctx, "gender lookup completed",
		slog.Int("attempts", attempt),
		slog.Duration("duration", duration),
		slog.Int64("count", guess.Count))

	return guess, nil
}

// Probe checks that the external service is reachable and reports the
// round-trip latency. Any HTTP response counts as reachable, including an
// error status: the probe verifies the network path, not lookup semantics,
// and so never consumes a lookup.
func (c *Client) Probe(ctx context.Context) (time.Duration, error) {
	req, err := c.handle.NewRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return 0, fmt.Errorf("build probe request: %w", err)
	}

	start := time.Now()
	resp, err := c.handle.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe request: %w", err)
	}
	_ = resp.Body.Close()

	return time.Since(start), nil
}

// doLookup performs a single attempt without retry logic.
func (c *Client) doLookup(ctx context.Context, path string) (*Guess, error) {
	req, err := c.handle.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.handle.Do(req)
	if err != nil {
		c.metrics.RecordCall(0, time.Since(start))
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.RecordCall(resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    readErrorBody(resp.Body),
		}
	}

	var payload guessPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// A malformed payload will not improve on retry
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	return &Guess{
		Name:        payload.Name,
		Gender:      payload.Gender,
		Probability: payload.Probability,
		Count:       payload.Count,
	}, nil
}

// classify folds the error left after retries into a CallError.
func classify(err error) *CallError {
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return &CallError{
			Kind:    FailureStatus,
			Status:  httpErr.StatusCode,
			Message: fmt.Sprintf("external service returned status %d", httpErr.StatusCode),
		}
	}

	if isTimeout(err) {
		return &CallError{
			Kind:    FailureTimeout,
			Message: "external service timed out",
		}
	}

	return &CallError{
		Kind:    FailureInternal,
		Message: "external service call failed",
	}
}

// isTimeout reports whether the error chain ended by cancellation,
// deadline, or network timeout rather than an answer.
func isTimeout(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readErrorBody drains a capped prefix of an error response so the
// upstream's complaint lands in the logs, not in client responses.
func readErrorBody(body io.Reader) string {
	const maxErrorBody = 512
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	return string(data)
}
