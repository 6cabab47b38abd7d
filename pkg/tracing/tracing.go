package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"motorhub.backend/pkg/logger"
)

// ServiceName is the resource name reported to the collector
const ServiceName = "motorhub-backend"

// Init configures an OTLP HTTP exporter when endpoint is set. Without an
// endpoint tracing stays a no-op and the returned shutdown does nothing.
func Init(ctx context.Context, endpoint, environment string) (func(context.Context) error, error) {
	if endpoint == "" {
		logger.Info(ctx, "tracing disabled: OTEL_EXPORTER_OTLP_ENDPOINT not set")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logger.Info(ctx, "tracing initialized", zap.String("endpoint", endpoint))
	return tp.Shutdown, nil
}

// Tracer returns the named tracer from the global provider
func Tracer(name string) oteltrace.Tracer {
	return otel.Tracer(name)
}
