package genderize

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidParams is returned when a request path cannot be built from
// the given parameters. No network call is attempted in that case.
var ErrInvalidParams = errors.New("invalid request params")

// genderByNameRoute is the only route the service exposes. The name is
// passed as a query parameter on the root path.
const genderByNameRoute = "/"

// BuildGenderByNamePath returns the request path for a gender lookup,
// with the name URL-encoded into the query string.
func BuildGenderByNamePath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalidParams)
	}

	q := url.Values{}
	q.Set("name", name)
	return genderByNameRoute + "?" + q.Encode(), nil
}
