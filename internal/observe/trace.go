package observe

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for the periovox tracer.
const tracerName = "github.com/periovox/periovox"

// StartSpan opens a span on the globally registered tracer. The caller owns
// span.End().
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

// CorrelationID is the active trace ID, or "" outside a span. The admin
// middleware echoes it as X-Correlation-ID so one dictated command can be
// followed across logs, spans and HTTP responses.
func CorrelationID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

// Logger returns the default slog logger, with trace_id and span_id attached
// when ctx carries an active span.
func Logger(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		log = log.With("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	return log
}
