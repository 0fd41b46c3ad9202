package responsewriter

import (
	"bytes"
	"net/http"
)

// Buffered is an http.ResponseWriter that holds the response in memory
// instead of sending it. The capture middleware hands it to the next
// handler, inspects the buffered body, and then flushes everything to the
// real writer with CopyTo.
type Buffered struct {
	header        http.Header
	body          bytes.Buffer
	statusCode    int
	headerWritten bool
}

// NewBuffered returns an empty buffered response writer with status 200.
func NewBuffered() *Buffered {
	return &Buffered{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

// Header returns the header map that CopyTo will send.
func (b *Buffered) Header() http.Header {
	return b.header
}

// WriteHeader records the status code. Only the first call takes effect,
// matching net/http semantics.
func (b *Buffered) WriteHeader(statusCode int) {
	if !b.headerWritten {
		b.statusCode = statusCode
		b.headerWritten = true
	}
}

// Write appends to the in-memory body. It never fails.
func (b *Buffered) Write(p []byte) (int, error) {
	if !b.headerWritten {
		b.WriteHeader(http.StatusOK)
	}
	return b.body.Write(p)
}

// StatusCode returns the recorded HTTP status code.
func (b *Buffered) StatusCode() int {
	return b.statusCode
}

// Body returns the buffered response body. The slice is only valid until
// the next Write.
func (b *Buffered) Body() []byte {
	return b.body.Bytes()
}

// BytesWritten returns the number of buffered body bytes.
func (b *Buffered) BytesWritten() int {
	return b.body.Len()
}

// CopyTo replays headers, status code and body onto w exactly as the
// handler produced them.
func (b *Buffered) CopyTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, vv := range b.header {
		dst[k] = vv
	}
	w.WriteHeader(b.statusCode)
	if b.body.Len() == 0 {
		return nil
	}
	_, err := w.Write(b.body.Bytes())
	return err
}
