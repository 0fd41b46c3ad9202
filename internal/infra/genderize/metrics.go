package genderize

import (
	"time"

	"person-api/internal/observability/metrics"
)

// CallMetricsRecorder defines the interface for recording lookup metrics.
// This interface abstracts the metrics recording implementation, enabling:
//   - Mocking in unit tests (inject mock recorder instead of Prometheus)
//   - Swapping metrics systems without touching the client
//
// Example usage for testing with mocks:
//
//	type mockMetrics struct {
//	    retries int
//	}
//
//	func (m *mockMetrics) RecordRetry() {
//	    m.retries++
//	}
type CallMetricsRecorder interface {
	// RecordCall records one request/response pair against the service.
	// Status is zero when no response was received.
	RecordCall(status int, duration time.Duration)

	// RecordRetry records an attempt beyond the first try.
	RecordRetry()

	// RecordFailure records a terminal failure by kind.
	RecordFailure(kind FailureKind)
}

// PrometheusCallMetrics records lookup metrics to the central Prometheus
// registry, labeled with the pool client name.
type PrometheusCallMetrics struct {
	client string
}

// NewPrometheusCallMetrics creates a recorder for the named client.
func NewPrometheusCallMetrics(client string) *PrometheusCallMetrics {
	return &PrometheusCallMetrics{client: client}
}

// RecordCall implements CallMetricsRecorder.RecordCall
func (p *PrometheusCallMetrics) RecordCall(status int, duration time.Duration) {
	metrics.RecordExternalRequest(p.client, status, duration)
}

// RecordRetry implements CallMetricsRecorder.RecordRetry
func (p *PrometheusCallMetrics) RecordRetry() {
	metrics.RecordExternalRetry(p.client)
}

// RecordFailure implements CallMetricsRecorder.RecordFailure
func (p *PrometheusCallMetrics) RecordFailure(kind FailureKind) {
	metrics.RecordExternalFailure(p.client, string(kind))
}
