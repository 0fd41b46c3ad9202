package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// recordingSink collects every entry it receives.
type recordingSink struct {
	mu      sync.Mutex
	entries []string
	dirs    []Direction
	err     error
}

func (s *recordingSink) Write(_ context.Context, direction Direction, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs = append(s.dirs, direction)
	s.entries = append(s.entries, entry)
	return s.err
}

func TestTransport_CapturesBothDirections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":5,"gender":"male","probability":0.98}`))
	}))
	defer srv.Close()

	sink := &recordingSink{}
	client := &http.Client{Transport: &Transport{Sink: sink}}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/?name=riccardo", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	// The captured response must not consume the body the caller reads
	if !strings.Contains(string(body), `"count":5`) {
		t.Errorf("caller body = %q, want original payload", string(body))
	}

	if len(sink.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sink.entries))
	}
	if sink.dirs[0] != DirectionRequest || sink.dirs[1] != DirectionResponse {
		t.Errorf("directions = %v, want [request response]", sink.dirs)
	}
	if !strings.HasPrefix(sink.entries[0], "--- REQUEST GET ") {
		t.Errorf("request entry = %q", sink.entries[0])
	}
	if !strings.HasPrefix(sink.entries[1], "--- RESPONSE 200 GET ") {
		t.Errorf("response entry = %q", sink.entries[1])
	}
	if !strings.Contains(sink.entries[1], `"probability":0.98`) {
		t.Errorf("response entry missing body: %q", sink.entries[1])
	}
}

func TestTransport_RequestBodyStillSent(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		received = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	client := &http.Client{Transport: &Transport{Sink: sink}}

	payload := `{"name":"riccardo"}`
	resp, err := client.Post(srv.URL, "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	_ = resp.Body.Close()

	if received != payload {
		t.Errorf("server received %q, want %q", received, payload)
	}
	if len(sink.entries) == 0 || !strings.Contains(sink.entries[0], payload) {
		t.Errorf("request entry should contain the payload, got %v", sink.entries)
	}
}

func TestTransport_SinkFailureDoesNotFailCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	sink := &recordingSink{err: errors.New("sink unavailable")}
	client := &http.Client{Transport: &Transport{Sink: sink}}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("call should succeed despite sink failure, got %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", string(body), "ok")
	}
}

func TestTransport_NilSink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Transport{}}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

type failingRoundTripper struct{ err error }

func (f *failingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestTransport_TransportErrorPassesThrough(t *testing.T) {
	wantErr := errors.New("connection refused")
	sink := &recordingSink{}
	tr := &Transport{Base: &failingRoundTripper{err: wantErr}, Sink: sink}

	req := httptest.NewRequest(http.MethodGet, "http://external.invalid/", nil)
	_, err := tr.RoundTrip(req)

	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	// Request was still captured; no response entry exists
	if len(sink.dirs) != 1 || sink.dirs[0] != DirectionRequest {
		t.Errorf("directions = %v, want [request]", sink.dirs)
	}
}

func TestMultiSink_WritesAll(t *testing.T) {
	first := &recordingSink{err: errors.New("first fails")}
	second := &recordingSink{}
	sink := MultiSink(first, second)

	err := sink.Write(context.Background(), DirectionRequest, "entry")

	if err == nil {
		t.Error("expected first sink's error to propagate")
	}
	if len(second.entries) != 1 {
		t.Errorf("second sink should still receive the entry, got %d", len(second.entries))
	}
}

func TestSlogSink_Write(t *testing.T) {
	sink := &SlogSink{}
	if err := sink.Write(context.Background(), DirectionRequest, "--- REQUEST GET /"); err != nil {
		t.Errorf("Write() error = %v", err)
	}
}
