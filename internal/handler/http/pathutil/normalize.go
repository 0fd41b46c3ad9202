// Package pathutil keeps request paths usable as metrics labels.
package pathutil

import (
	"regexp"
	"strings"
)

// rewrites maps dynamic routes to fixed labels. Collapsing person IDs
// and swagger assets keeps the path label cardinality bounded no
// matter how many persons exist or which UI asset the browser fetches.
var rewrites = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{regexp.MustCompile(`^/person/\d+$`), "/person/:id"},
	{regexp.MustCompile(`^/swagger(/.*)?$`), "/swagger"},
}

// NormalizePath maps a request path to the label recorded on HTTP
// metrics. "/person/123" and "/person/456" both count against
// "/person/:id", while static routes such as "/persons" and "/health"
// pass through unchanged. Query strings and trailing slashes are
// stripped first so "/person/123/" and "/person/123?verbose=1" land on
// the same label.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, rw := range rewrites {
		if rw.pattern.MatchString(path) {
			return rw.label
		}
	}
	return path
}
