package metrics

import (
	"time"
)

// RecordExternalRequest records the outcome of a single upstream HTTP call.
// Status is the HTTP status code; zero means the call never produced a response.
func RecordExternalRequest(client string, status int, duration time.Duration) {
	class := "error"
	if status > 0 {
		class = statusClass(status)
	}
	ExternalRequestsTotal.WithLabelValues(client, class).Inc()
	ExternalRequestDuration.WithLabelValues(client).Observe(duration.Seconds())
}

// RecordExternalRetry records a retry attempt against an external service.
func RecordExternalRetry(client string) {
	ExternalRetriesTotal.WithLabelValues(client).Inc()
}

// RecordExternalFailure records a terminal failure of an external call.
// Kind should be one of "status", "timeout", or "internal".
func RecordExternalFailure(client, kind string) {
	ExternalFailuresTotal.WithLabelValues(client, kind).Inc()
}

// RecordExchangeCapture records a captured HTTP exchange.
func RecordExchangeCapture(direction string) {
	ExchangeCapturesTotal.WithLabelValues(direction).Inc()
}

// RecordExchangeSinkError records a failed write to the exchange sink.
func RecordExchangeSinkError() {
	ExchangeSinkErrors.Inc()
}

// RecordPersonCreated records a created person record.
// Enriched is true when the external service returned gender data for the name.
func RecordPersonCreated(enriched bool) {
	label := "no"
	if enriched {
		label = "yes"
	}
	PersonsCreatedTotal.WithLabelValues(label).Inc()
}

// UpdatePersonsTotal updates the total count of person records in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdatePersonsTotal(count int) {
	PersonsTotal.Set(float64(count))
}

// RecordExchangeLogsPruned records the number of exchange log rows removed
// by a retention run.
func RecordExchangeLogsPruned(count int64) {
	if count > 0 {
		ExchangeLogsPrunedTotal.Add(float64(count))
	}
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_person", "insert_person").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// statusClass groups an HTTP status code into its hundred class ("2xx", "5xx").
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
