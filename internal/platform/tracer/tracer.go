package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

const setupTimeout = 10 * time.Second

// InitTracer installs the W3C propagator and, when otlpEndpoint is set, a
// global provider batching spans to an OTLP gRPC collector. The returned
// provider is always safe to Shutdown.
func InitTracer(serviceName, otlpEndpoint string, appLogger *logger.Logger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if otlpEndpoint == "" {
		appLogger.Info("Tracing disabled, no OTLP endpoint configured")
		return sdktrace.NewTracerProvider()
	}

	tp, err := newProvider(serviceName, otlpEndpoint)
	if err != nil {
		appLogger.Error("Tracing disabled", zap.String("otlp_endpoint", otlpEndpoint), zap.Error(err))
		return sdktrace.NewTracerProvider()
	}
	otel.SetTracerProvider(tp)

	appLogger.Info("Tracing enabled",
		zap.String("service_name", serviceName),
		zap.String("otlp_endpoint", otlpEndpoint),
	)
	return tp
}

func newProvider(serviceName, endpoint string) (*sdktrace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		_ = exporter.Shutdown(ctx)
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	), nil
}
