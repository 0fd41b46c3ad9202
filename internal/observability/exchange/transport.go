package exchange

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that captures both directions of every
// outbound exchange and forwards the rendered entries to a Sink. It is purely
// observational: the request and response pass through unaltered, and capture
// or sink failures are logged and swallowed rather than failing the call.
type Transport struct {
	// Base performs the actual round trip. http.DefaultTransport when nil.
	Base http.RoundTripper

	// Sink receives the rendered entries. Entries are dropped when nil.
	Sink Sink

	// Logger reports capture and sink failures. slog.Default when nil.
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if ex, err := CaptureRequest(req); err != nil {
		t.logger().Warn("request capture failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err))
	} else {
		t.write(req.Context(), ex)
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if ex, cerr := CaptureResponse(resp, time.Since(start)); cerr != nil {
		t.logger().Warn("response capture failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", cerr))
	} else {
		t.write(req.Context(), ex)
	}

	return resp, nil
}

// write hands one entry to the sink. The write uses a context detached from
// the request deadline so diagnostics survive calls that time out.
func (t *Transport) write(ctx context.Context, ex *Exchange) {
	if t.Sink == nil {
		return
	}
	if err := t.Sink.Write(context.WithoutCancel(ctx), ex.Direction, ex.Format()); err != nil {
		t.logger().Error("exchange sink write failed",
			slog.String("direction", string(ex.Direction)),
			slog.Any("error", err))
	}
}

func (t *Transport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}
