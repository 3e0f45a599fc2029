// Package revio provides the public API for the revio update engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/revio-dev/revio"
//
// Usage:
//
//	rt := revio.NewRuntime()
//	count := revio.NewCell(rt, 0)
//	doubled := revio.Derive(rt, []revio.Source{count}, func() int {
//	    return count.Get() * 2
//	})
//	revio.Watch(rt, []revio.Source{doubled}, func() {
//	    render(doubled.Get())
//	})
//	count.Set(1)
//	rt.Flush()
//
// The subpackages carry the rest of the engine: pkg/store for structured
// copy-on-write state, pkg/rdom for keyed reconciliation and conditional
// swaps, pkg/live for streaming operations over WebSocket, and pkg/obs for
// Prometheus metrics and OpenTelemetry tracing.
package revio

import (
	"github.com/revio-dev/revio/pkg/reactive"
	"github.com/revio-dev/revio/pkg/store"
)

// =============================================================================
// Core runtime (pkg/reactive exposed at the root)
// =============================================================================

// Runtime owns one scheduler and one scope tree. Runtimes are isolated:
// cells and effects belong to the runtime they were created on.
type Runtime = reactive.Runtime

// Scope owns effects and child scopes; disposing it disposes them.
type Scope = reactive.Scope

// Source is anything an effect can declare as a dependency.
type Source = reactive.Source

// Disposer detaches an effect when called. Safe to call more than once.
type Disposer = reactive.Disposer

// Cleanup runs before an effect's next run and on disposal.
type Cleanup = reactive.Cleanup

// Observer receives scheduler flush callbacks.
type Observer = reactive.Observer

// Option configures a Runtime.
type Option = reactive.Option

// NewRuntime creates an isolated runtime.
func NewRuntime(opts ...Option) *Runtime {
	return reactive.NewRuntime(opts...)
}

// WithObserver registers a flush observer on the runtime.
func WithObserver(o Observer) Option {
	return reactive.WithObserver(o)
}

// WithOnWake sets the callback fired when the pending set goes from empty
// to non-empty, typically to schedule a flush on the host loop.
func WithOnWake(fn func()) Option {
	return reactive.WithOnWake(fn)
}

// NewCell creates a reactive value on rt.
func NewCell[T any](rt *Runtime, initial T) *reactive.Cell[T] {
	return reactive.NewCell(rt, initial)
}

// Watch runs fn eagerly and again after any listed dependency changes.
func Watch(rt *Runtime, deps []Source, fn func()) Disposer {
	return reactive.Watch(rt, deps, fn)
}

// WatchCleanup is Watch for callbacks that allocate per-run resources: the
// returned cleanup runs before the next run and on disposal.
func WatchCleanup(rt *Runtime, deps []Source, fn func() Cleanup) Disposer {
	return reactive.WatchCleanup(rt, deps, fn)
}

// Derive computes a cell from the listed dependencies.
func Derive[R any](rt *Runtime, deps []Source, fn func() R) *reactive.Cell[R] {
	return reactive.Derive(rt, deps, fn)
}

// =============================================================================
// Structured state (pkg/store exposed at the root)
// =============================================================================

// NewStore creates a copy-on-write store over an initial root value.
func NewStore[T any](rt *Runtime, initial T) *store.Store[T] {
	return store.New(rt, initial)
}
