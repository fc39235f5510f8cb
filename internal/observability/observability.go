// Package observability wires the OpenTelemetry metric and trace providers
// and the default slog logger for the service.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/KasumiMercury/primind-channel-timer/internal/observability/logging"
)

type Config struct {
	ServiceInfo logging.ServiceInfo
	Environment logging.Environment
	LogLevel    slog.Level
	// SamplingRate is the trace sampling ratio in [0, 1].
	SamplingRate float64
}

// Resources holds everything Init started so main can shut it down.
type Resources struct {
	logger        *slog.Logger
	meterProvider *metric.MeterProvider
	traceProvider *sdktrace.TracerProvider
}

// Init builds the logger and, when an OTLP endpoint is configured through
// the standard OTEL_EXPORTER_OTLP_ENDPOINT variable, the metric and trace
// providers. Without an endpoint only logging is active.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res := &Resources{
		logger: logging.NewLogger(cfg.Environment, cfg.LogLevel, cfg.ServiceInfo),
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return res, nil
	}

	otelRes, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceInfo.Name),
			semconv.ServiceVersion(cfg.ServiceInfo.Version),
			semconv.DeploymentEnvironment(string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, err
	}
	res.meterProvider = metric.NewMeterProvider(
		metric.WithResource(otelRes),
		metric.WithReader(metric.NewPeriodicReader(metricExporter,
			metric.WithInterval(15*time.Second),
		)),
	)
	otel.SetMeterProvider(res.meterProvider)

	traceExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))
	res.traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(otelRes),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(traceExporter),
	)
	otel.SetTracerProvider(res.traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return res, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.traceProvider != nil {
		if err := r.traceProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
