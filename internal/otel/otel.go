package otel

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/cam2cart/internal/jaeger"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

type OtelController struct {
	traceProvider *sdktrace.TracerProvider
}

// InitOtel installs a Jaeger-backed tracer provider when tracing.enabled is
// set. Otherwise the global no-op provider stays in place.
func InitOtel() *OtelController {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !viper.GetBool("tracing.enabled") {
		return &OtelController{}
	}

	jaegerExporter, err := jaeger.NewJaeger()
	if err != nil {
		slog.Error("Jaeger exporter error, tracing disabled", "error", err)

		return &OtelController{}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(jaegerExporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(viper.GetString("tracing.service_name")),
		)),
	)

	otel.SetTracerProvider(tp)
	slog.Info("Tracing enabled", "endpoint", viper.GetString("tracing.jaeger_endpoint"))

	return &OtelController{
		traceProvider: tp,
	}
}

func (o *OtelController) Shutdown(ctx context.Context) error {
	if o.traceProvider == nil {
		return nil
	}

	return o.traceProvider.Shutdown(ctx)
}
