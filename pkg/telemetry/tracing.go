package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for vtree.
const defaultTracerName = "vtree"

// TracingConfig configures span creation.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "vtree").
	TracerName string

	// Provider supplies the tracer (default: the global provider).
	Provider trace.TracerProvider

	// Attributes are added to every span started by Trace.
	Attributes []attribute.KeyValue
}

// TracingOption configures tracing.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = p
	}
}

// WithAttributes adds attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Tracing starts spans around work the engine does not trace itself, such
// as preview actions.
type Tracing struct {
	config TracingConfig
	tracer trace.Tracer
}

// NewTracing resolves the tracer.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracing{config: config, tracer: provider.Tracer(config.TracerName)}
}

// Tracer returns the tracer, for engine.WithTracer.
func (t *Tracing) Tracer() trace.Tracer {
	return t.tracer
}

// Trace runs fn inside a span named name. An error from fn is recorded on
// the span and returned.
func (t *Tracing) Trace(ctx context.Context, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	all := make([]attribute.KeyValue, 0, len(t.config.Attributes)+len(attrs))
	all = append(all, t.config.Attributes...)
	all = append(all, attrs...)

	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(all...))
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return err
}
