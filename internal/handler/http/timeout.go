package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout aborts requests that outlive the given duration with a 504.
// The deadline claims the response no matter how far the handler got: a
// response that never started is replaced by the 504, while a started
// one is truncated at the claim. Handler writes after the claim fail
// with http.ErrHandlerTimeout instead of reaching the client.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			guard := newWriteGuard(w)
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(guard, r.WithContext(ctx))
			}()

			select {
			case <-done:
				guard.finish()
			case <-ctx.Done():
				if guard.abort() {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
			}
		})
	}
}

// writeGuard hands the handler a private header map and serializes all
// writes, so the underlying ResponseWriter is only ever touched by one
// side of the timeout race. Headers are copied through when the response
// starts; once abort claims the response, handler writes fail with
// http.ErrHandlerTimeout and header changes stay in the private map.
type writeGuard struct {
	http.ResponseWriter
	header http.Header

	mu      sync.Mutex
	aborted bool
	started bool
}

func newWriteGuard(w http.ResponseWriter) *writeGuard {
	return &writeGuard{
		ResponseWriter: w,
		header:         make(http.Header),
	}
}

// Header returns the handler's private header map. Its contents reach
// the underlying writer when the response starts.
func (g *writeGuard) Header() http.Header {
	return g.header
}

// abort claims the response for the timeout path; handler writes from
// here on are suppressed. It reports whether the 504 may still be sent,
// which is only the case when the handler never started the response.
func (g *writeGuard) abort() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.aborted = true
	return !g.started
}

// finish runs after the handler returned in time. It copies headers for
// handlers that set some without ever starting the response body.
func (g *writeGuard) finish() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return
	}
	g.copyHeader()
}

func (g *writeGuard) WriteHeader(statusCode int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted || g.started {
		return
	}
	g.started = true
	g.copyHeader()
	g.ResponseWriter.WriteHeader(statusCode)
}

func (g *writeGuard) Write(data []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted {
		return 0, http.ErrHandlerTimeout
	}
	if !g.started {
		g.started = true
		g.copyHeader()
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(data)
}

// copyHeader flushes the private header map to the underlying writer.
// Callers hold g.mu.
func (g *writeGuard) copyHeader() {
	dst := g.ResponseWriter.Header()
	for k, vv := range g.header {
		dst[k] = vv
	}
}
