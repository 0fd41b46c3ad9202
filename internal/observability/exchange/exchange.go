// Package exchange provides structured capture of HTTP requests and responses.
// Each direction of an exchange is rendered as one self-contained text block and
// handed to a Sink. Capture never mutates the traffic it observes: bodies are
// buffered and restored so downstream readers see byte-identical content.
package exchange

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Direction labels which half of an HTTP exchange an entry describes.
type Direction string

const (
	// DirectionRequest marks an entry capturing an HTTP request.
	DirectionRequest Direction = "request"
	// DirectionResponse marks an entry capturing an HTTP response.
	DirectionResponse Direction = "response"
)

// Header is a single captured header. Multi-valued headers are joined into one
// comma-separated value so an entry is a flat list of name/value pairs.
type Header struct {
	Name  string
	Value string
}

// Exchange is the captured form of one direction of an HTTP exchange.
// Status and Elapsed are only set for responses.
type Exchange struct {
	Direction Direction
	Method    string
	URI       string
	Status    int
	Headers   []Header
	Body      string
	Truncated bool
	Elapsed   time.Duration
}

// Format renders the exchange as a single structured text block: a summary
// line, one line per header, then a blank line and the body if one was
// captured.
func (e *Exchange) Format() string {
	var b strings.Builder

	switch e.Direction {
	case DirectionResponse:
		fmt.Fprintf(&b, "--- RESPONSE %d %s %s (%s)\n", e.Status, e.Method, e.URI, e.Elapsed.Round(time.Millisecond))
	default:
		fmt.Fprintf(&b, "--- REQUEST %s %s\n", e.Method, e.URI)
	}

	for _, h := range e.Headers {
		fmt.Fprintf(&b, "%s: %s\n", h.Name, h.Value)
	}

	if e.Body != "" {
		b.WriteString("\n")
		b.WriteString(e.Body)
		if e.Truncated {
			b.WriteString("\n[truncated]")
		}
	}

	return b.String()
}

// captureHeaders flattens an http.Header into an ordered slice. Names are
// sorted so the rendered block is deterministic, and multiple values for one
// name are joined with ", ".
func captureHeaders(h http.Header) []Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Header, 0, len(names))
	for _, name := range names {
		out = append(out, Header{Name: name, Value: strings.Join(h[name], ", ")})
	}
	return out
}
