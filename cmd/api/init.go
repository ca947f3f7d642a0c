package main

import (
	"context"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// initTelemetry sets up tracing, metrics and OTLP log export when enabled and
// registers the calculator's instruments. The returned operations flush each
// provider on shutdown.
func initTelemetry(ctx context.Context, cfg config.Config) (map[string]gfshutdown.Operation, error) {
	ops := map[string]gfshutdown.Operation{}

	observability.SetServiceName(cfg.ServiceName)

	if cfg.TelemetryEnabled {
		traceShutdown, err := observability.InitTracing(ctx)
		if err != nil {
			return nil, err
		}
		ops["tracing"] = traceShutdown

		metricShutdown, err := observability.InitMetrics(ctx)
		if err != nil {
			return nil, err
		}
		ops["metrics"] = metricShutdown

		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return nil, err
		}
		ops["logging"] = logShutdown
	}

	// Without a provider the instruments fall back to the global no-op meter.
	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return ops, nil
}
