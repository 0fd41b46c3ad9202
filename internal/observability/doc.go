// Package observability groups the instrumentation shared by the API server
// and the retention worker: structured logging, Prometheus metrics,
// OpenTelemetry tracing, HTTP exchange capture, and SLO tracking.
//
// Subpackages:
//   - logging: slog JSON logging, level picked from LOG_LEVEL
//   - metrics: Prometheus registry plumbing and business event recorders
//   - tracing: OpenTelemetry spans and trace propagation for inbound requests
//   - exchange: full request/response capture with pluggable sinks
//   - slo: latency and availability objectives derived from recorded metrics
//
// The subpackages stand alone; importing one does not pull in the others.
//
//	logger := logging.NewLogger()
//	logger.Info("application started")
//
//	metrics.RecordPersonCreated(true)
package observability
