// Package observe provides application-wide observability primitives for
// periovox: OpenTelemetry metrics, tracing, structured logging helpers, and
// HTTP middleware that ties them together for the admin server.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. Tests should use [NewMetrics]
// with a custom [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all periovox metrics.
const meterName = "github.com/periovox/periovox"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// ParseDuration tracks how long one normalize+parse cycle takes.
	ParseDuration metric.Float64Histogram

	// Commands counts interpreted dictation commands. Use with attributes:
	//   attribute.String("pass", ...), attribute.String("status", "matched"|"no_match")
	Commands metric.Int64Counter

	// Updates counts measurement updates applied to tooth records. Use with
	// attribute: attribute.String("kind", ...)
	Updates metric.Int64Counter

	// UpdateErrors counts updates rejected at the apply boundary (clinical
	// range violations, no tooth selected).
	UpdateErrors metric.Int64Counter

	// DeriveDuration tracks derived-field recomputation latency per tooth.
	DeriveDuration metric.Float64Histogram

	// ChartedTeeth tracks the number of teeth that have received at least
	// one measurement this session.
	ChartedTeeth metric.Int64UpDownCounter

	// HTTPRequestDuration tracks admin HTTP request processing time. Use
	// with attributes: attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// in-process parse/derive work plus the admin HTTP handlers.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ParseDuration, err = m.Float64Histogram("periovox.dictation.parse.duration",
		metric.WithDescription("Latency of one dictation normalize+parse cycle."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DeriveDuration, err = m.Float64Histogram("periovox.chart.derive.duration",
		metric.WithDescription("Latency of derived-field recomputation for one tooth."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("periovox.http.request.duration",
		metric.WithDescription("Latency of admin HTTP requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Commands, err = m.Int64Counter("periovox.dictation.commands",
		metric.WithDescription("Interpreted dictation commands by pass and status."),
	); err != nil {
		return nil, err
	}
	if met.Updates, err = m.Int64Counter("periovox.chart.updates",
		metric.WithDescription("Measurement updates applied to tooth records by kind."),
	); err != nil {
		return nil, err
	}
	if met.UpdateErrors, err = m.Int64Counter("periovox.chart.update_errors",
		metric.WithDescription("Measurement updates rejected at the apply boundary."),
	); err != nil {
		return nil, err
	}

	if met.ChartedTeeth, err = m.Int64UpDownCounter("periovox.chart.teeth_charted",
		metric.WithDescription("Teeth with at least one recorded measurement this session."),
	); err != nil {
		return nil, err
	}

	return met, nil
}
