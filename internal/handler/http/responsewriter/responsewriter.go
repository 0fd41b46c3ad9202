// Package responsewriter provides the ResponseWriter wrappers the
// middleware chain uses: a passthrough Recorder that notes status and
// size while writes stream through, and a Buffered writer that holds
// the whole response for inspection before anything is sent.
package responsewriter

import (
	"net/http"
)

// Recorder forwards writes to the wrapped ResponseWriter and records
// the status code and body size on the way through.
type Recorder struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
}

// Wrap returns a Recorder around w. Until the handler says otherwise
// the recorded status is 200, matching net/http's implicit default.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the status code. Only the first call takes
// effect, matching net/http semantics.
func (r *Recorder) WriteHeader(statusCode int) {
	if !r.headerWritten {
		r.statusCode = statusCode
		r.headerWritten = true
		r.ResponseWriter.WriteHeader(statusCode)
	}
}

// Write forwards the body bytes and adds them to the recorded size.
func (r *Recorder) Write(p []byte) (int, error) {
	if !r.headerWritten {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded HTTP status code.
func (r *Recorder) StatusCode() int {
	return r.statusCode
}

// BytesWritten returns the number of body bytes forwarded so far.
func (r *Recorder) BytesWritten() int {
	return r.bytesWritten
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
