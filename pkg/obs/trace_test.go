package obs

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/revio-dev/revio/pkg/rdom"
	"github.com/revio-dev/revio/pkg/reactive"
)

// These run against the default noop tracer provider: they pin down the
// observer lifecycle (no panics, no dangling span state), not exported
// span contents.

func TestTracerObserverLifecycle(t *testing.T) {
	tr := NewTracer(
		WithTracerName("test"),
		WithContext(context.Background()),
		WithAttributes(attribute.String("app", "test")),
	)
	rt := reactive.NewRuntime(reactive.WithObserver(tr))

	a := reactive.NewCell(rt, 1)
	reactive.Watch(rt, []reactive.Source{a}, func() { a.Get() })

	a.Set(2)
	rt.Flush()

	if tr.span != nil {
		t.Errorf("flush span must be closed and cleared after FlushEnd")
	}
}

func TestTracerFlushEndWithoutStart(t *testing.T) {
	tr := NewTracer()
	// Must not panic when no flush is open.
	tr.FlushEnd(0)
}

func TestTracePassInsideAndOutsideFlush(t *testing.T) {
	tr := NewTracer()
	observe := TracePass[int](tr)

	observe([]rdom.Op[int]{{Kind: rdom.OpInsert, Key: 1}})

	tr.FlushStart()
	observe([]rdom.Op[int]{{Kind: rdom.OpMove, Key: 1, Index: 2}})
	tr.FlushEnd(1)
}
