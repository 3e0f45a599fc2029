package obs

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/revio-dev/revio/pkg/rdom"
)

// Default tracer name for update-engine spans.
const defaultTracerName = "revio"

// TraceConfig configures the flush tracer.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "revio").
	TracerName string

	// Context is the parent context for flush spans
	// (default: context.Background()).
	Context context.Context

	// Attributes are added to every flush span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the flush tracer.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithContext sets the parent context for flush spans.
func WithContext(ctx context.Context) TraceOption {
	return func(c *TraceConfig) {
		c.Context = ctx
	}
}

// WithAttributes adds constant attributes to every flush span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

func defaultTraceConfig() TraceConfig {
	return TraceConfig{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
}

// Tracer emits one OpenTelemetry span per scheduler flush, carrying the
// number of effect runs as an attribute. It implements reactive.Observer.
//
// The tracer resolves from the global OpenTelemetry tracer provider;
// configure that in main() before creating the runtime:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//	rt := reactive.NewRuntime(reactive.WithObserver(obs.NewTracer()))
type Tracer struct {
	config TraceConfig
	span   trace.Span
}

// NewTracer creates a flush tracer.
func NewTracer(opts ...TraceOption) *Tracer {
	config := defaultTraceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &Tracer{config: config}
}

// FlushStart implements reactive.Observer.
func (t *Tracer) FlushStart() {
	_, t.span = t.config.tracer.Start(t.config.Context, "reactive.flush",
		trace.WithAttributes(t.config.Attributes...))
}

// EffectRun implements reactive.Observer.
func (t *Tracer) EffectRun() {}

// FlushEnd implements reactive.Observer.
func (t *Tracer) FlushEnd(runs int) {
	if t.span == nil {
		return
	}
	t.span.SetAttributes(attribute.Int("flush.effect_runs", runs))
	t.span.End()
	t.span = nil
}

// TracePass adapts the tracer to rdom's per-pass hook: one span per
// reconciliation pass, carrying the operation counts by kind. A pass
// during a flush nests under the flush span.
func TracePass[K comparable](t *Tracer) func(ops []rdom.Op[K]) {
	return func(ops []rdom.Op[K]) {
		parent := t.config.Context
		if t.span != nil {
			parent = trace.ContextWithSpan(parent, t.span)
		}
		detach, update, insert, move := rdom.CountKinds(ops)
		_, span := t.config.tracer.Start(parent, "rdom.reconcile",
			trace.WithAttributes(t.config.Attributes...),
			trace.WithAttributes(
				attribute.Int("reconcile.detach", detach),
				attribute.Int("reconcile.update", update),
				attribute.Int("reconcile.insert", insert),
				attribute.Int("reconcile.move", move),
			))
		span.End()
	}
}
