// Package metrics holds the application's Prometheus collectors and the
// recorder functions the rest of the code calls instead of touching
// collectors directly.
//
// Covered areas:
//   - external lookup calls (duration, retries, failures by kind)
//   - business events (persons created, exchange captures, retention prunes)
//   - database queries and pool connection stats
//
// Everything registers with the default registry at init and is served by
// the /metrics endpoint.
//
//	metrics.RecordPersonCreated(true)
//	metrics.RecordDBQuery("insert_person", time.Since(start))
package metrics
