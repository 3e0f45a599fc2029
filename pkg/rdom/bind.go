package rdom

import (
	"github.com/revio-dev/revio/internal/errors"
	"github.com/revio-dev/revio/pkg/reactive"
)

// listConfig carries the optional knobs of a list binding.
type listConfig[K comparable, T any] struct {
	equals   func(T, T) bool
	observer func(ops []Op[K])
}

// ListOption configures BindList.
type ListOption[K comparable, T any] func(*listConfig[K, T])

// WithEquals overrides the default two-tier reuse heuristic.
func WithEquals[K comparable, T any](fn func(T, T) bool) ListOption[K, T] {
	return func(c *listConfig[K, T]) {
		c.equals = fn
	}
}

// WithPassObserver receives each pass's operations after they are applied,
// e.g. for metrics.
func WithPassObserver[K comparable, T any](fn func(ops []Op[K])) ListOption[K, T] {
	return func(c *listConfig[K, T]) {
		c.observer = fn
	}
}

// BindList wires a keyed list to a container: a watch effect reconciles the
// items cell's value against the retained table on every flush, applying
// the resulting operations. The first (eager) run renders the initial
// collection.
//
// Usage errors - duplicate keys, nil render results - are raised as panics
// out of the driving flush, never silently absorbed. The returned disposer
// stops reconciliation; already-attached nodes are left to the container's
// owner.
func BindList[K comparable, T any](
	rt *reactive.Runtime,
	container Container,
	items *reactive.Cell[[]T],
	keyFn func(T) K,
	renderFn func(T) Node,
	opts ...ListOption[K, T],
) reactive.Disposer {
	if container == nil {
		panic(errors.New("E202"))
	}

	var cfg listConfig[K, T]
	for _, opt := range opts {
		opt(&cfg)
	}

	table := Table[K, T]{}
	return reactive.Watch(rt, []reactive.Source{items}, func() {
		next, ops, err := Reconcile(table, items.Get(), keyFn, renderFn, cfg.equals)
		if err != nil {
			panic(err)
		}
		Apply(container, ops)
		table = next
		if cfg.observer != nil {
			cfg.observer(ops)
		}
	})
}

// BindSwap wires a conditional swap to a boolean cell (or derived boolean).
// The eager first run attaches the matching branch; each flush after a flip
// swaps subtrees, and a flush without a flip is a no-op.
func BindSwap(
	rt *reactive.Runtime,
	container Container,
	cond *reactive.Cell[bool],
	then func() Node,
	els func() Node,
) reactive.Disposer {
	swap := NewSwap(container, then, els)
	return reactive.Watch(rt, []reactive.Source{cond}, func() {
		swap.Set(cond.Get())
	})
}
