// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context from incoming requests,
// opens a server span per request, and echoes the trace ID back in the
// X-Trace-Id response header so clients can correlate their logs.
//
// Example usage:
//
//	import "person-api/internal/observability/tracing"
//
//	func main() {
//	    handler := tracing.Middleware(mux)
//	    http.ListenAndServe(":8080", handler)
//	}
//
//	func enrich(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "genderize.lookup")
//	    defer span.End()
//	    // ... call the external service ...
//	}
package tracing
