package exchange

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxCaptureBytes caps how much of a body is kept in the rendered entry.
// The stream itself is always restored in full regardless of this limit.
const maxCaptureBytes = 1 << 20 // 1 MiB

// CaptureRequest buffers the request into an Exchange. The request body is
// read fully and replaced with an equivalent reader, so the request can still
// be sent (or handled) afterwards with byte-identical content. Capturing the
// same request twice yields the same entry.
func CaptureRequest(r *http.Request) (*Exchange, error) {
	body, err := bufferBody(&r.Body)
	if err != nil {
		return nil, fmt.Errorf("capture request body: %w", err)
	}

	ex := &Exchange{
		Direction: DirectionRequest,
		Method:    r.Method,
		URI:       r.URL.String(),
		Headers:   captureHeaders(r.Header),
	}
	ex.Body, ex.Truncated = clip(body)
	return ex, nil
}

// CaptureRequestHead records the request line and headers without touching the
// body stream. Intended for requests whose bodies carry no content worth
// capturing, such as inbound GETs.
func CaptureRequestHead(r *http.Request) *Exchange {
	return &Exchange{
		Direction: DirectionRequest,
		Method:    r.Method,
		URI:       r.URL.String(),
		Headers:   captureHeaders(r.Header),
	}
}

// CaptureResponse buffers the response into an Exchange, restoring the body so
// callers can still read it in full. elapsed is the time the exchange took and
// is included in the rendered entry.
func CaptureResponse(resp *http.Response, elapsed time.Duration) (*Exchange, error) {
	body, err := bufferBody(&resp.Body)
	if err != nil {
		return nil, fmt.Errorf("capture response body: %w", err)
	}

	ex := &Exchange{
		Direction: DirectionResponse,
		Status:    resp.StatusCode,
		Headers:   captureHeaders(resp.Header),
		Elapsed:   elapsed,
	}
	if resp.Request != nil {
		ex.Method = resp.Request.Method
		if resp.Request.URL != nil {
			ex.URI = resp.Request.URL.String()
		}
	}
	ex.Body, ex.Truncated = clip(body)
	return ex, nil
}

// CaptureServedResponse records a response produced by this server, where the
// body has already been buffered by the caller. r identifies the request the
// response answers.
func CaptureServedResponse(r *http.Request, status int, header http.Header, body []byte, elapsed time.Duration) *Exchange {
	ex := &Exchange{
		Direction: DirectionResponse,
		Method:    r.Method,
		URI:       r.URL.String(),
		Status:    status,
		Headers:   captureHeaders(header),
		Elapsed:   elapsed,
	}
	ex.Body, ex.Truncated = clip(body)
	return ex
}

// bufferBody drains *body and replaces it with a fresh reader over the same
// bytes. A nil or http.NoBody stream is left untouched and yields no content.
func bufferBody(body *io.ReadCloser) ([]byte, error) {
	if body == nil || *body == nil || *body == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(*body)
	if cerr := (*body).Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}

	*body = io.NopCloser(bytes.NewReader(data))
	return data, nil
}

// clip converts captured bytes to the entry body, truncating the rendered
// portion above maxCaptureBytes.
func clip(data []byte) (string, bool) {
	if len(data) > maxCaptureBytes {
		return string(data[:maxCaptureBytes]), true
	}
	return string(data), false
}
