package http

import (
	"errors"
	"net/http"
	"strings"

	"person-api/internal/handler/http/respond"
)

// maxPathLength is the maximum accepted URI path length.
const maxPathLength = 2048

var (
	errURITooLong         = errors.New("request URI too long")
	errUnsupportedContent = errors.New("Content-Type must be application/json")
)

// InputValidation returns middleware that rejects malformed requests before
// they reach a handler. It enforces a URI path length limit and requires a
// JSON content type on requests that carry a body.
//
// Body size is limited separately by LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, errURITooLong)
				return
			}

			if requiresJSONBody(r) && !isJSONContentType(r.Header.Get("Content-Type")) {
				respond.Error(w, http.StatusUnsupportedMediaType, errUnsupportedContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requiresJSONBody reports whether the request is expected to carry a JSON
// body. Bodyless requests pass regardless of method so that empty POSTs get
// a proper validation error from the handler instead of a 415.
func requiresJSONBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.ContentLength != 0
	default:
		return false
	}
}

// isJSONContentType accepts application/json with optional parameters,
// such as "application/json; charset=utf-8".
func isJSONContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), "application/json")
}
