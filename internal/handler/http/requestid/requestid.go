// Package requestid tags every request with an ID that survives from
// the access log to the response headers.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the request ID on both requests and responses.
const Header = "X-Request-ID"

// maxLength caps inbound IDs so a hostile client cannot inflate every
// log line with an oversized header value.
const maxLength = 64

type ctxKey struct{}

// FromContext returns the request ID, or "" when the middleware did
// not run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware assigns each request an ID. A well-formed ID supplied by
// the client on X-Request-ID is kept, anything else is replaced with a
// fresh UUID v4. The ID is echoed on the response so callers can quote
// it when reporting a failure.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxLength {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
