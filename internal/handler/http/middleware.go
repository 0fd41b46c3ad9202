package http

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"person-api/internal/handler/http/requestid"
	"person-api/internal/handler/http/respond"
	"person-api/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Logging returns middleware that writes one structured log line per
// request, carrying the request ID and OpenTelemetry trace ID so any
// log line can be tied back to its trace. Server errors log at Error
// and client errors at Warn, which keeps 5xx spikes visible without
// grepping through request noise.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := responsewriter.Wrap(w)
			next.ServeHTTP(rw, r)

			level := slog.LevelInfo
			switch {
			case rw.StatusCode() >= 500:
				level = slog.LevelError
			case rw.StatusCode() >= 400:
				level = slog.LevelWarn
			}

			traceID := trace.SpanFromContext(r.Context()).SpanContext().TraceID()

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", traceID.String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.Int("status", rw.StatusCode()),
				slog.Int("bytes", rw.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover returns middleware that converts a handler panic into a 500
// response. The panic value and stack land in the log together with
// the request ID; the client only ever sees a generic internal error.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				respond.SafeError(w, http.StatusInternalServerError, errors.New("internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request bodies at maxBytes via
// http.MaxBytesReader, so an oversized upload fails on the first read
// instead of buffering without bound.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientLimiter pairs a token bucket with the time it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// RateLimiter implements IP address-based rate limiting middleware using
// a token bucket per client.
type RateLimiter struct {
	clients sync.Map // map[string]*clientLimiter
	rate    rate.Limit
	burst   int
}

// staleClientAge is how long a client may stay idle before its limiter
// is eligible for eviction.
const staleClientAge = 10 * time.Minute

// NewRateLimiter creates a new rate limiting middleware.
// requestsPerSecond: sustained request rate allowed per client IP.
// burst: maximum number of requests that can be made in a burst.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

// Limit applies rate limiting to incoming requests based on client IP address.
// Returns 429 Too Many Requests if the rate limit is exceeded.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)

		if !rl.allow(ip) {
			respond.SafeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow reports whether a request from the given IP is permitted right now
// and marks the client as recently seen.
func (rl *RateLimiter) allow(ip string) bool {
	val, _ := rl.clients.LoadOrStore(ip, &clientLimiter{
		limiter: rate.NewLimiter(rl.rate, rl.burst),
	})
	client := val.(*clientLimiter)

	client.mu.Lock()
	client.lastSeen = time.Now()
	client.mu.Unlock()

	return client.limiter.Allow()
}

// CleanupExpired removes limiters for clients that have been idle longer
// than staleClientAge to prevent unbounded memory growth.
// Returns the number of clients removed.
func (rl *RateLimiter) CleanupExpired() int {
	cutoff := time.Now().Add(-staleClientAge)
	removed := 0

	rl.clients.Range(func(key, value any) bool {
		client := value.(*clientLimiter)

		client.mu.Lock()
		stale := client.lastSeen.Before(cutoff)
		client.mu.Unlock()

		if stale {
			rl.clients.Delete(key)
			removed++
		}
		return true
	})

	return removed
}

// extractIP resolves the client address used as the rate limit key.
// Proxy headers win over RemoteAddr: the first valid entry of
// X-Forwarded-For, then X-Real-IP. Header entries that do not parse as
// an IP are ignored rather than trusted.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if addr, err := netip.ParseAddr(strings.TrimSpace(xri)); err == nil {
			return addr.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP returns the first entry of a comma separated address
// list, or "" when that entry is not a valid IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	addr, err := netip.ParseAddr(strings.TrimSpace(first))
	if err != nil {
		return ""
	}
	return addr.String()
}
