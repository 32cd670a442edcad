// Package trace records panel transitions as OpenTelemetry spans so slide
// behavior can be inspected in any OTLP backend.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"slidepane/internal/panel"
)

// Recorder exports one span per panel transition. A nil Recorder is valid
// and records nothing, so callers never need to branch on whether tracing
// is configured.
type Recorder struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewRecorder creates a Recorder if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil if the endpoint is not configured (tracing disabled).
func NewRecorder(ctx context.Context) (*Recorder, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "slidepane"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Recorder{
		provider: provider,
		tracer:   provider.Tracer("slidepane/panel"),
	}, nil
}

// Transition opens a span for a navigation request and returns the
// function that ends it when the animation completes. kind is the
// operation name ("open", "collapse", "jump").
func (r *Recorder) Transition(kind string, from, to panel.State, displacement float64) func(finished bool) {
	if r == nil {
		return func(bool) {}
	}
	_, span := r.tracer.Start(context.Background(), "panel.transition")
	span.SetAttributes(
		attribute.String("panel.kind", kind),
		attribute.String("panel.from", from.String()),
		attribute.String("panel.to", to.String()),
		attribute.Float64("panel.displacement", displacement),
	)
	return func(finished bool) {
		span.SetAttributes(attribute.Bool("panel.finished", finished))
		span.End()
	}
}

// Shutdown flushes and stops the exporter.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.provider.Shutdown(ctx)
}
