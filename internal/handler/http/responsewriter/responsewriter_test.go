package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.headerWritten)
}

func TestRecorder_WriteHeaderForwardsAndRecords(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, wrapped.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, wrapped.headerWritten)
}

func TestRecorder_WriteHeader_FirstCallWins(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusOK)
	wrapped.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecorder_WritePassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte(`{"message":"created"}`))

	require.NoError(t, err)
	assert.Equal(t, 21, n)
	assert.Equal(t, 21, wrapped.BytesWritten())
	assert.Equal(t, `{"message":"created"}`, rec.Body.String())
}

func TestRecorder_Write_ImplicitStatusCode(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	_, err := wrapped.Write([]byte("test"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.True(t, wrapped.headerWritten)
}

func TestRecorder_BytesWrittenAccumulates(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.Equal(t, 0, wrapped.BytesWritten())

	_, err := wrapped.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = wrapped.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, 11, wrapped.BytesWritten())
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestRecorder_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.Equal(t, rec, wrapped.Unwrap())
}

func TestRecorder_InMiddlewarePattern(t *testing.T) {
	// Wrap-then-inspect flow the logging middleware uses.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	})

	var status, size int
	middleware := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := Wrap(w)
		handler.ServeHTTP(wrapped, r)
		status = wrapped.StatusCode()
		size = wrapped.BytesWritten()
	})

	rec := httptest.NewRecorder()
	middleware.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/person/1", nil))

	// The client sees the response untouched; the middleware sees the numbers.
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", rec.Body.String())
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, len("not found"), size)
}
