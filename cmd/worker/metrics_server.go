package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	pkgcfg "person-api/internal/pkg/config"
	"person-api/internal/resilience/circuitbreaker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthResponse is the body of the liveness probe.
type HealthResponse struct {
	Status string `json:"status"`
}

// BreakerHealthResponse reports the state of the database circuit
// breaker that guards the retention sweep.
type BreakerHealthResponse struct {
	Healthy bool   `json:"healthy"`
	State   string `json:"state"`
}

// startMetricsServer serves Prometheus metrics and the sweep health
// probes in a background goroutine, shutting down when ctx is canceled.
//
// Endpoints:
//   - GET /metrics        - Prometheus scrape target
//   - GET /health         - liveness probe, always 200
//   - GET /health/breaker - 503 once the database breaker has opened
//
// The listen port comes from METRICS_PORT and defaults to 9090; an
// unusable value falls back to the default with a logged warning, the
// same fail-open treatment the worker configuration gets.
func startMetricsServer(ctx context.Context, logger *slog.Logger, breaker *circuitbreaker.DBCircuitBreaker) *http.Server {
	port := pkgcfg.LoadInt("METRICS_PORT", 9090, func(v int) error {
		return pkgcfg.ValidateIntRange(v, 1, 65535)
	})
	for _, warning := range port.Warnings {
		logger.Warn("Configuration fallback applied",
			slog.String("field", "MetricsPort"),
			slog.String("warning", warning))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/breaker", breakerHealthHandler(breaker))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port.Value),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port.Value))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Info("metrics server shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		} else {
			logger.Info("metrics server stopped")
		}
	}()

	return server
}

// healthHandler is the liveness probe. It answers 200 as long as the
// process can serve HTTP at all.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

// breakerHealthHandler reports readiness from the breaker's point of
// view: once the breaker opens, the database has been rejecting sweep
// deletes and the worker should be taken out of rotation.
func breakerHealthHandler(breaker *circuitbreaker.DBCircuitBreaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if breaker == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "circuit breaker not initialized",
			})
			return
		}

		state := breaker.State()
		healthy := !breaker.IsOpen()

		statusCode := http.StatusOK
		if !healthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(BreakerHealthResponse{
			Healthy: healthy,
			State:   state.String(),
		})
	}
}
