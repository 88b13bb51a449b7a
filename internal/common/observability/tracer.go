package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracer sets up a Jaeger-backed tracer provider. If the collector
// endpoint is empty or the exporter fails, a no-op tracer is returned
// so workers keep running without tracing.
func NewTracer(serviceName, collectorEndpoint string) *Tracer {
	if collectorEndpoint == "" {
		return &Tracer{tracer: otel.Tracer(serviceName)}
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(collectorEndpoint)))
	if err != nil {
		log.Printf("Failed to create Jaeger exporter: %v", err)
		return &Tracer{tracer: otel.Tracer(serviceName)}
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(provider)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
	}
}

// StartJobSpan starts a span for a worker job execution.
func (t *Tracer) StartJobSpan(ctx context.Context, taskType string, jobKey int64) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, taskType, trace.WithAttributes(
		attribute.String("camunda.task_type", taskType),
		attribute.Int64("camunda.job_key", jobKey),
	))
}

func (t *Tracer) Shutdown() {
	if t.provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		t.provider.Shutdown(ctx)
	}
}
