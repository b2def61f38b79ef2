package tracing

import (
	"context"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

type Controller struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInitTracing wires the global tracer provider to a Jaeger collector.
func MustInitTracing() *Controller {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(viper.GetString("jaeger.endpoint")),
	))
	if err != nil {
		panic(err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("pastry-orders"),
		)),
	)

	otel.SetTracerProvider(tp)

	return &Controller{
		traceProvider: tp,
	}
}

func (c *Controller) Shutdown() error {
	if err := c.traceProvider.Shutdown(context.Background()); err != nil {
		return err
	}

	return nil
}
