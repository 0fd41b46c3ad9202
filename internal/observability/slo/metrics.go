package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the application.
// These targets are used to measure and monitor service reliability.
//
// Latency targets are split by path class: the read endpoints answer from
// the database alone, while creating a person performs an external gender
// lookup with retries and is allowed a far larger budget.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// ReadLatencyP95SLO defines the p95 target for the read endpoints in seconds (200ms)
	ReadLatencyP95SLO = 0.200

	// ReadLatencyP99SLO defines the p99 target for the read endpoints in seconds (500ms)
	ReadLatencyP99SLO = 0.500

	// CreateLatencyP95SLO defines the p95 target for POST /person in seconds.
	// The budget covers one lookup round trip against the external service.
	CreateLatencyP95SLO = 1.0

	// CreateLatencyP99SLO defines the p99 target for POST /person in seconds.
	// The budget covers a retried lookup including the backoff wait.
	CreateLatencyP99SLO = 2.5

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (0.1% = 0.001)
	ErrorRateSLO = 0.001

	// LookupSuccessSLO defines the target success percentage for external
	// gender lookups after retries (99% = 1 failed enrichment per 100)
	LookupSuccessSLO = 99.0
)

// SLO tracking metrics
// These gauges are updated periodically (e.g., every minute) based on recent measurements
// to track whether the service is meeting its SLO targets.
var (
	// SLOAvailability tracks the current availability ratio (0-1)
	// calculated as: (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOReadLatencyP95 tracks the current p95 latency of the read endpoints
	// in seconds, calculated from http_request_duration_seconds
	SLOReadLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_read_latency_p95_seconds",
			Help: "Current p95 latency of read endpoints in seconds, target: 0.200",
		},
	)

	// SLOReadLatencyP99 tracks the current p99 latency of the read endpoints
	// in seconds, calculated from http_request_duration_seconds
	SLOReadLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_read_latency_p99_seconds",
			Help: "Current p99 latency of read endpoints in seconds, target: 0.500",
		},
	)

	// SLOCreateLatencyP95 tracks the current p95 latency of POST /person
	// in seconds, including the external lookup
	SLOCreateLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_create_latency_p95_seconds",
			Help: "Current p95 latency of person creation in seconds, target: 1.0",
		},
	)

	// SLOCreateLatencyP99 tracks the current p99 latency of POST /person
	// in seconds, including retried lookups
	SLOCreateLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_create_latency_p99_seconds",
			Help: "Current p99 latency of person creation in seconds, target: 2.5",
		},
	)

	// SLOErrorRate tracks the current error rate ratio (0-1)
	// calculated as: 5xx_errors / total_requests
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)

	// SLOLookupSuccess tracks the ratio of external gender lookups that
	// produced a usable answer after retries (0-1)
	SLOLookupSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_lookup_success_ratio",
			Help: "Current external lookup success ratio (0-1), target: 0.99",
		},
	)
)

// UpdateAvailability updates the availability SLO metric.
// Call this periodically (e.g., every minute) with the calculated availability ratio.
//
// Example calculation:
//
//	totalRequests := getTotalRequestCount()
//	errorRequests := get5xxErrorCount()
//	availability := float64(totalRequests - errorRequests) / float64(totalRequests)
//	slo.UpdateAvailability(availability)
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateReadLatencyP95 updates the read-path p95 latency SLO metric.
// Call this periodically with the calculated p95 latency in seconds.
//
// Example using Prometheus query:
//
//	histogram_quantile(0.95, rate(http_request_duration_seconds_bucket{path!="/person",method="GET"}[5m]))
func UpdateReadLatencyP95(seconds float64) {
	SLOReadLatencyP95.Set(seconds)
}

// UpdateReadLatencyP99 updates the read-path p99 latency SLO metric.
// Call this periodically with the calculated p99 latency in seconds.
//
// Example using Prometheus query:
//
//	histogram_quantile(0.99, rate(http_request_duration_seconds_bucket{path!="/person",method="GET"}[5m]))
func UpdateReadLatencyP99(seconds float64) {
	SLOReadLatencyP99.Set(seconds)
}

// UpdateCreateLatencyP95 updates the create-path p95 latency SLO metric.
// Call this periodically with the calculated p95 latency in seconds.
//
// Example using Prometheus query:
//
//	histogram_quantile(0.95, rate(http_request_duration_seconds_bucket{path="/person",method="POST"}[5m]))
func UpdateCreateLatencyP95(seconds float64) {
	SLOCreateLatencyP95.Set(seconds)
}

// UpdateCreateLatencyP99 updates the create-path p99 latency SLO metric.
// Call this periodically with the calculated p99 latency in seconds.
//
// Example using Prometheus query:
//
//	histogram_quantile(0.99, rate(http_request_duration_seconds_bucket{path="/person",method="POST"}[5m]))
func UpdateCreateLatencyP99(seconds float64) {
	SLOCreateLatencyP99.Set(seconds)
}

// UpdateErrorRate updates the error rate SLO metric.
// Call this periodically with the calculated error rate ratio.
//
// Example calculation:
//
//	totalRequests := getTotalRequestCount()
//	errorRequests := get5xxErrorCount()
//	errorRate := float64(errorRequests) / float64(totalRequests)
//	slo.UpdateErrorRate(errorRate)
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}

// UpdateLookupSuccess updates the external lookup success SLO metric.
// Call this periodically with the calculated success ratio.
//
// Example using Prometheus query:
//
//	1 - (rate(external_failures_total{client="genderize"}[5m]) / rate(external_requests_total{client="genderize"}[5m]))
func UpdateLookupSuccess(ratio float64) {
	SLOLookupSuccess.Set(ratio)
}
