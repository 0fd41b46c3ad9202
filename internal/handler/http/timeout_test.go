package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeout_FastHandlerPassesThrough(t *testing.T) {
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != "done" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "done")
	}
}

func TestTimeout_SlowHandlerGets504(t *testing.T) {
	handler := Timeout(50*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(20 * time.Millisecond)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/person", nil))

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	if !strings.Contains(rec.Body.String(), "request timeout") {
		t.Errorf("body = %q, want a request timeout message", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestTimeout_HandlerSeesDeadline(t *testing.T) {
	deadlines := make(chan time.Time, 1)

	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok := r.Context().Deadline()
		if !ok {
			t.Error("handler context has no deadline")
		}
		deadlines <- deadline
		w.WriteHeader(http.StatusOK)
	}))

	start := time.Now()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	select {
	case deadline := <-deadlines:
		remaining := deadline.Sub(start)
		if remaining < 500*time.Millisecond || remaining > 1500*time.Millisecond {
			t.Errorf("deadline %v from start, want about 1s", remaining)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never reported its deadline")
	}
}

func TestTimeout_HandlerSeesCancellation(t *testing.T) {
	canceled := make(chan struct{})

	handler := Timeout(30*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(canceled)
			time.Sleep(20 * time.Millisecond)
		case <-time.After(time.Second):
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("handler context was never canceled")
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestTimeout_LateWritesAreDropped(t *testing.T) {
	wrote := make(chan error, 1)

	handler := Timeout(30*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		// Give the timeout response time to claim the writer first.
		time.Sleep(20 * time.Millisecond)
		_, err := w.Write([]byte("too late"))
		wrote <- err
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	select {
	case err := <-wrote:
		if !errors.Is(err, http.ErrHandlerTimeout) {
			t.Errorf("late Write error = %v, want http.ErrHandlerTimeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never attempted its late write")
	}

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	if strings.Contains(rec.Body.String(), "too late") {
		t.Errorf("late handler output leaked into response: %q", rec.Body.String())
	}
}

func TestTimeout_StartedResponseClaimedAtDeadline(t *testing.T) {
	late := make(chan error, 1)

	handler := Timeout(30*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("early"))
		<-r.Context().Done()
		// Give the deadline time to claim the writer first.
		time.Sleep(20 * time.Millisecond)
		_, err := w.Write([]byte(" late"))
		late <- err
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	select {
	case err := <-late:
		if !errors.Is(err, http.ErrHandlerTimeout) {
			t.Errorf("post-deadline Write error = %v, want http.ErrHandlerTimeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never attempted its late write")
	}

	// The started response stands, truncated at the deadline; no 504 and
	// no late bytes mixed in.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want the started 200 kept", rec.Code)
	}
	if rec.Body.String() != "early" {
		t.Errorf("body = %q, want only the bytes written before the deadline", rec.Body.String())
	}
}

func TestTimeout_HandlerHeadersForwarded(t *testing.T) {
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("ETag", `"v7"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if etag := rec.Header().Get("ETag"); etag != `"v7"` {
		t.Errorf("ETag = %q, want %q", etag, `"v7"`)
	}
}

func TestTimeout_HeaderOnlyHandlerKeepsHeaders(t *testing.T) {
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Empty-Reason", "no content yet")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want implicit %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("X-Empty-Reason"); got != "no content yet" {
		t.Errorf("X-Empty-Reason = %q, want it forwarded", got)
	}
}

func TestTimeout_LateHeaderChangesStayPrivate(t *testing.T) {
	set := make(chan struct{})

	handler := Timeout(30*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(20 * time.Millisecond)
		w.Header().Set("X-Outcome", "handler")
		close(set)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	select {
	case <-set:
	case <-time.After(time.Second):
		t.Fatal("handler never set its late header")
	}

	if got := rec.Header().Get("X-Outcome"); got != "" {
		t.Errorf("X-Outcome = %q, want the late header suppressed", got)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestTimeout_WinnerKeepsTheResponse(t *testing.T) {
	// The handler writes just before the deadline fires. Whichever side
	// wins the race, the response must be one or the other, never a mix.
	handler := Timeout(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(15 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("persons"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))
	// Let the slower side finish its suppressed attempt before asserting.
	time.Sleep(30 * time.Millisecond)

	body := rec.Body.String()
	switch rec.Code {
	case http.StatusOK:
		if body != "persons" {
			t.Errorf("handler won but body = %q", body)
		}
	case http.StatusGatewayTimeout:
		if !strings.Contains(body, "request timeout") {
			t.Errorf("timeout won but body = %q", body)
		}
	default:
		t.Errorf("status = %d, want 200 or 504", rec.Code)
	}
}

func TestTimeout_ImplicitStatusOnWrite(t *testing.T) {
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("first "))
		_, _ = w.Write([]byte("second"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want implicit %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "first second" {
		t.Errorf("body = %q, want both writes", rec.Body.String())
	}
}

func TestTimeout_ZeroDurationExpiresImmediately(t *testing.T) {
	handler := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		// Outlive the select in the middleware so the expired context,
		// not handler completion, decides the outcome.
		time.Sleep(20 * time.Millisecond)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons", nil))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}
