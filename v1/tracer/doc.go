// Package tracer provides distributed tracing using OpenTelemetry.
//
// A *Tracer satisfies unidb.Tracer, so executors can run every statement in a
// span:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "orders"})
//	exec.WithTracer(t)
//
// Spans are named "unidb.<operation>"; failed statements record the error and
// set the span status to Error.
//
// Trace context crosses service boundaries with GetCarrier and
// SetCarrierOnContext, which use the W3C traceparent and baggage headers.
//
// With EnableExport the provider batches spans to an OTLP/HTTP collector
// configured by the standard OTEL_EXPORTER_OTLP_ENDPOINT variables.
package tracer
