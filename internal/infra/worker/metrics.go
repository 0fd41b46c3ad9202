package worker

import (
	"person-api/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the retention worker component.
// It embeds the standard ConfigMetrics for configuration monitoring and adds
// worker-specific metrics for sweep execution tracking.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Worker-specific metrics:
//   - worker_sweep_runs_total: Total retention sweep runs by status (started/success/failure)
//   - worker_sweep_duration_seconds: Duration histogram of sweep execution
//   - worker_sweep_exchanges_purged_total: Total exchange log rows deleted
//   - worker_sweep_last_success_timestamp: Unix timestamp of last successful sweep
//
// Example usage:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
//
//	// Record retention sweep execution
//	metrics.RecordSweepRun("started")
//	start := time.Now()
//	purged, err := sweep(ctx)
//	metrics.RecordSweepDuration(time.Since(start).Seconds())
//	if err != nil {
//	    metrics.RecordSweepRun("failure")
//	} else {
//	    metrics.RecordSweepRun("success")
//	    metrics.RecordExchangesPurged(purged)
//	    metrics.RecordLastSuccess()
//	}
type WorkerMetrics struct {
	// Embedded configuration metrics
	*config.ConfigMetrics

	// SweepRunsTotal counts the total number of retention sweep runs.
	// Type: Counter
	// Labels: status (started, success, failure)
	// Usage: Increment when a sweep begins and again when it finishes
	SweepRunsTotal *prometheus.CounterVec

	// SweepDurationSeconds measures the duration of sweep execution.
	// Type: Histogram
	// Labels: none
	// Buckets: 100ms, 500ms, 1s, 5s, 15s, 1m, 5m (optimized for batched deletes)
	// Usage: Observe duration at the end of each sweep
	SweepDurationSeconds prometheus.Histogram

	// SweepExchangesPurgedTotal counts the total number of exchange log rows deleted.
	// Type: Counter
	// Labels: none
	// Usage: Add the number of rows deleted after each successful sweep
	SweepExchangesPurgedTotal prometheus.Counter

	// SweepLastSuccessTimestamp records the Unix timestamp of the last successful sweep.
	// Type: Gauge
	// Labels: none
	// Usage: Set to current time when a sweep completes successfully
	SweepLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics initialized.
// Metrics are created but not registered with Prometheus. Call MustRegister() to register.
//
// Returns:
//   - *WorkerMetrics: Initialized metrics ready for registration
//
// Example:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()  // Register with Prometheus
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sweep_runs_total",
			Help: "Total number of retention sweep runs by status (started/success/failure)",
		}, []string{"status"}),

		SweepDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_sweep_duration_seconds",
			Help:    "Duration of retention sweep execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300}, // 100ms, 500ms, 1s, 5s, 15s, 1m, 5m
		}),

		SweepExchangesPurgedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_exchanges_purged_total",
			Help: "Total number of exchange log rows deleted across all sweeps",
		}),

		SweepLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful retention sweep",
		}),
	}
}

// MustRegister is a no-op kept for symmetry with manual registries.
// The metrics register themselves via promauto in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordSweepRun increments the sweep run counter for the given status:
// "started" when a sweep begins, then "success" or "failure" when it ends.
//
// Example:
//
//	metrics.RecordSweepRun("started")
//	if err := runSweep(); err != nil {
//	    metrics.RecordSweepRun("failure")
//	} else {
//	    metrics.RecordSweepRun("success")
//	}
func (m *WorkerMetrics) RecordSweepRun(status string) {
	m.SweepRunsTotal.WithLabelValues(status).Inc()
}

// RecordSweepDuration observes the duration of a sweep execution.
// Duration should be in seconds.
//
// Parameters:
//   - seconds: Sweep execution duration in seconds
//
// Example:
//
//	start := time.Now()
//	// ... run sweep ...
//	metrics.RecordSweepDuration(time.Since(start).Seconds())
func (m *WorkerMetrics) RecordSweepDuration(seconds float64) {
	m.SweepDurationSeconds.Observe(seconds)
}

// RecordExchangesPurged adds the number of deleted rows to the total counter.
//
// Parameters:
//   - count: Number of exchange log rows deleted in this sweep
//
// Example:
//
//	purged, err := retentionRepo.DeleteOlderThan(ctx, cutoff)
//	if err == nil {
//	    metrics.RecordExchangesPurged(purged)
//	}
func (m *WorkerMetrics) RecordExchangesPurged(count int64) {
	m.SweepExchangesPurgedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful sweep completion.
//
// Example:
//
//	if err := runSweep(); err == nil {
//	    metrics.RecordLastSuccess()
//	}
func (m *WorkerMetrics) RecordLastSuccess() {
	m.SweepLastSuccessTimestamp.SetToCurrentTime()
}
