package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName labels every span this application creates.
const instrumentationName = "person-api"

var tracer = otel.Tracer(instrumentationName)

// GetTracer returns the tracer the HTTP middleware and the lookup
// client use to start spans:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "genderize.lookup")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
