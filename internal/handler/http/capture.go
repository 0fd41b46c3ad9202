package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"person-api/internal/handler/http/responsewriter"
	"person-api/internal/observability/exchange"
	"person-api/internal/observability/metrics"
)

// CaptureExchanges returns middleware that records complete inbound HTTP
// exchanges (request and response) through the given sink.
//
// Requests without a path are passed through untouched. For GET requests the
// request body stream is never read; every other method gets a full request
// capture including the body, which is restored so handlers receive identical
// content. The response is buffered, captured, then copied back to the client
// byte-for-byte. Sink failures are logged and swallowed: capture is
// diagnostic and never affects the request pipeline.
//
// Panic recovery must sit inside this middleware in the chain, so that
// handler panics reach it as well-formed error responses.
func CaptureExchanges(sink exchange.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			if r.Method == http.MethodGet {
				// GET bodies are not expected; leave the stream alone
				writeCapture(r.Context(), sink, exchange.CaptureRequestHead(r))
			} else if ex, err := exchange.CaptureRequest(r); err != nil {
				slog.Error("failed to capture inbound request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
			} else {
				writeCapture(r.Context(), sink, ex)
			}

			// Buffer the response so it can be captured before the client sees it
			buf := responsewriter.NewBuffered()

			// The captured response and the forwarded bytes come from the same
			// buffer, so the client receives exactly what was recorded. The
			// deferred block runs on every exit path out of the handler.
			defer func() {
				ex := exchange.CaptureServedResponse(r, buf.StatusCode(), buf.Header(), buf.Body(), time.Since(start))
				writeCapture(r.Context(), sink, ex)

				if err := buf.CopyTo(w); err != nil {
					slog.Error("failed to forward buffered response",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("error", err))
				}
			}()

			next.ServeHTTP(buf, r)
		})
	}
}

// writeCapture hands one rendered exchange entry to the sink. Failures are
// counted and logged, never propagated.
func writeCapture(ctx context.Context, sink exchange.Sink, ex *exchange.Exchange) {
	metrics.RecordExchangeCapture(string(ex.Direction))

	// Detach from the request deadline so a cancelled request still gets
	// its entry written.
	if err := sink.Write(context.WithoutCancel(ctx), ex.Direction, ex.Format()); err != nil {
		metrics.RecordExchangeSinkError()
		slog.Error("failed to write exchange entry",
			slog.String("direction", string(ex.Direction)),
			slog.Any("error", err))
	}
}
