// Package http carries the HTTP surface of the API: person handlers,
// health and probe endpoints, Prometheus middleware, inbound exchange
// capture, and the middleware chain both servers are built from.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"person-api/internal/handler/http/respond"
	"person-api/internal/resilience/circuitbreaker"
)

// Health check states. Degraded is a warning, not a failure: the
// endpoint still answers 200 so orchestrators do not restart a pod
// that is merely under pressure.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the body served on /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus describes one named check inside a HealthResponse.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler serves /health: a database ping with pool statistics,
// plus the state of the database circuit breaker when one is wired.
// Any unhealthy check turns the whole response into a 503.
type HealthHandler struct {
	DB      *sql.DB
	Version string

	// Breaker is the database circuit breaker (optional).
	Breaker *circuitbreaker.DBCircuitBreaker
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"database": h.checkDatabase(ctx),
	}
	if h.Breaker != nil {
		checks["circuit_breaker"] = h.checkBreaker()
	}

	status, code := statusHealthy, http.StatusOK
	for _, c := range checks {
		if c.Status == statusUnhealthy {
			status, code = statusUnhealthy, http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// checkDatabase pings the database and reports pool pressure. A pool
// running above 80% of its connections is degraded; only a failed ping
// makes the check unhealthy.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: err.Error()}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}

	// MaxOpenConnections of 0 means unlimited, which makes the
	// utilization figure meaningless
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: statusHealthy, Details: details}
}

// checkBreaker reports the database circuit breaker state. An open
// breaker is degraded rather than unhealthy: the ping above already
// covers connectivity, and the breaker closes itself once queries
// succeed again.
func (h *HealthHandler) checkBreaker() CheckStatus {
	details := map[string]any{"state": h.Breaker.State().String()}

	if h.Breaker.IsOpen() {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "database circuit breaker open, queries are failing fast",
			Details: details,
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// ReadyHandler serves the Kubernetes readiness probe. The pod is not
// ready until the database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("failed to write readiness response", slog.Any("error", err))
	}
}

// LiveHandler serves the Kubernetes liveness probe. Answering at all
// is the check.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("failed to write liveness response", slog.Any("error", err))
	}
}
