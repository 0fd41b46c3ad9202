package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HealthServer serves the worker's Kubernetes probes:
//   - GET /health: liveness, always 200
//   - GET /health/ready: readiness, 200 once SetReady(true) was called and
//     the database answers a ping, 503 otherwise
//
// A worker that cannot reach the database cannot run retention sweeps, so
// database loss flips readiness rather than liveness. The server shuts down
// gracefully when the context passed to Start is cancelled.
//
// Example usage:
//
//	healthServer := NewHealthServer(":9091", db, logger)
//	go func() {
//	    if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
//	        logger.Error("health server failed", slog.Any("error", err))
//	    }
//	}()
//	healthServer.SetReady(true)
type HealthServer struct {
	addr    string
	db      *sql.DB
	logger  *slog.Logger
	isReady atomic.Bool
	server  *http.Server

	mu sync.Mutex
	ln net.Listener
}

// healthResponse is the JSON body of every probe response.
type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthServer creates a health server that will listen on addr.
// A nil db skips the readiness ping. The server starts as not ready;
// call SetReady(true) once initialization is done.
func NewHealthServer(addr string, db *sql.DB, logger *slog.Logger) *HealthServer {
	return &HealthServer{
		addr:   addr,
		db:     db,
		logger: logger,
	}
}

// Start binds the listener and serves probe requests until ctx is cancelled
// or the server fails. It blocks, and returns http.ErrServerClosed after a
// graceful shutdown so callers can filter that case out. Shutdown waits at
// most 5 seconds for in-flight requests.
func (h *HealthServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleLiveness)
	mux.HandleFunc("/health/ready", h.handleReadiness)

	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("health server listen on %s: %w", h.addr, err)
	}

	h.mu.Lock()
	h.ln = ln
	h.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	h.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server listening", slog.String("addr", ln.Addr().String()))
		errChan <- h.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// Addr returns the bound listener address once Start has bound it, and the
// configured address before that. With ":0" this is how callers learn the
// actual port.
func (h *HealthServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ln != nil {
		return h.ln.Addr().String()
	}
	return h.addr
}

// SetReady flips the readiness state reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

// handleLiveness answers the liveness probe. It succeeds as long as the
// process can serve HTTP at all; restarting the container would not fix
// anything a 200 here hides.
func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, http.StatusOK, "ok")
}

// handleReadiness answers the readiness probe. It requires both that
// SetReady(true) was called and that the database answers a ping within
// 2 seconds; the failing condition is reported in the status field.
func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if !h.isReady.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, "not ready")
		return
	}

	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(pingCtx); err != nil {
			h.logger.Warn("readiness ping failed", slog.Any("error", err))
			h.writeStatus(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}

	h.writeStatus(w, http.StatusOK, "ok")
}

func (h *HealthServer) writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: status}); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
