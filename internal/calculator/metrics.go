package calculator

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	resultGauge  metric.Float64Gauge
)

// outcomesTotal is scraped from /metrics alongside the OTLP push instruments.
var outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calculator",
	Name:      "outcomes_total",
	Help:      "Calculate actions by operation and outcome.",
}, []string{"operation", "outcome"})

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of successful calculate actions"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculate actions in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Calculate actions that ended in an error message, plus malformed requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last successful calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}

// recordOutcome updates every instrument for one finished calculate action.
func recordOutcome(ctx context.Context, out Outcome, elapsedMS float64) {
	op := operationLabel(out.Operation)
	outcomesTotal.WithLabelValues(op, string(out.Kind)).Inc()

	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", string(out.Kind)),
	)
	opsHistogram.Record(ctx, elapsedMS, attrs)

	if out.Failed() {
		errorCounter.Add(ctx, 1, attrs)
		return
	}
	opsCounter.Add(ctx, 1, attrs)
	resultGauge.Record(ctx, out.Value, attrs)
}

func operationLabel(op Operation) string {
	if op == OpNone {
		return "none"
	}
	return string(op)
}
