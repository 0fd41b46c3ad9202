package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// External service metrics track calls to upstream HTTP APIs
var (
	// ExternalRequestsTotal counts upstream requests by client name and status class
	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Total number of requests to external services",
		},
		[]string{"client", "status"},
	)

	// ExternalRequestDuration measures how long an upstream call took,
	// including any retry waits
	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "External service call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"client"},
	)

	// ExternalRetriesTotal counts retry attempts beyond the first try
	ExternalRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_retries_total",
			Help: "Total number of retries against external services",
		},
		[]string{"client"},
	)

	// ExternalFailuresTotal counts terminal failures by kind
	ExternalFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_failures_total",
			Help: "Total number of failed external service calls",
		},
		[]string{"client", "kind"}, // kind: status, timeout, internal
	)

	// ExchangeCapturesTotal counts captured HTTP exchanges by direction
	ExchangeCapturesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_captures_total",
			Help: "Total number of captured HTTP exchanges",
		},
		[]string{"direction"},
	)

	// ExchangeSinkErrors counts failed writes to the exchange log sink
	ExchangeSinkErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exchange_sink_errors_total",
			Help: "Total number of failed exchange sink writes",
		},
	)
)

// Business metrics track application-specific operations
var (
	// PersonsTotal tracks total number of person records in the database
	PersonsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "persons_total",
			Help: "Total number of person records in the database",
		},
	)

	// PersonsCreatedTotal counts person records created by enrichment result
	PersonsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persons_created_total",
			Help: "Total number of person records created",
		},
		[]string{"enriched"}, // enriched: yes, no
	)

	// ExchangeLogsPrunedTotal counts exchange log rows removed by retention
	ExchangeLogsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exchange_logs_pruned_total",
			Help: "Total number of exchange log rows removed by the retention job",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
