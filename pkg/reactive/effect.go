package reactive

// effectKind distinguishes side-effecting watches from value-producing
// derives. The two are separate, explicitly named operations; nothing is
// inferred from a callback's return shape.
type effectKind uint8

const (
	kindWatch effectKind = iota + 1
	kindDerive
)

// String returns a human-readable name for the effect kind.
func (k effectKind) String() string {
	switch k {
	case kindWatch:
		return "watch"
	case kindDerive:
		return "derive"
	default:
		return "unknown"
	}
}

// Cleanup is an optional teardown function returned by a watch callback.
// It runs before the next re-run and once more on disposal.
type Cleanup func()

// Disposer tears down an effect: cleanup runs, every dependency forgets it,
// and it is dropped from the pending set if queued. Calling a disposer more
// than once is a no-op.
type Disposer func()

// Effect is a computation bound to an explicit list of cells. It re-runs
// whenever the scheduler flushes after one of its dependencies was written.
type Effect struct {
	id uint64

	rt *Runtime

	kind effectKind

	// deps is the declared dependency list, in caller order.
	deps []Source

	// run wraps the user callback and returns its teardown, if any. For a
	// derive effect it also writes the result cell.
	run func() Cleanup

	// cleanup is the teardown returned by the previous run, if any.
	cleanup Cleanup

	// pending is true while the effect sits in the scheduler's queue.
	pending bool

	disposed bool
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// markDirty queues the effect for the next flush. Repeated writes to any
// number of its dependencies within one tick coalesce into a single run.
func (e *Effect) markDirty() {
	if e.disposed || e.pending {
		return
	}
	e.pending = true
	e.rt.sched.enqueue(e)
}

// invoke runs the callback once, tearing down the previous run first.
func (e *Effect) invoke() {
	if e.disposed {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.cleanup = e.run()
}

// dispose unregisters the effect from every dependency and from the pending
// set. Idempotent; the callback never runs again afterwards.
func (e *Effect) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	for _, dep := range e.deps {
		dep.detach(e)
	}
	e.deps = nil
	if e.pending {
		e.pending = false
		e.rt.sched.remove(e)
	}
}

// newEffect builds an effect, registers it with its dependencies and the
// current scope, and runs it once eagerly. Panics with ErrNoScope when no
// live scope is current.
func newEffect(rt *Runtime, kind effectKind, deps []Source, run func() Cleanup) *Effect {
	scope := rt.current
	if scope == nil || scope.disposed {
		panic(ErrNoScope)
	}

	e := &Effect{
		id:   nextID(),
		rt:   rt,
		kind: kind,
		deps: append([]Source(nil), deps...),
	}
	e.run = run

	for _, dep := range e.deps {
		dep.attach(e)
	}
	scope.register(e)

	// Eager first run. A panic here propagates to the caller before the
	// effect ever sees a flush.
	e.invoke()

	return e
}

// Watch builds a side-effecting watch over the given cells. The callback
// runs once synchronously at creation and again on every flush after one of
// the deps is written. The returned disposer is idempotent.
func Watch(rt *Runtime, deps []Source, fn func()) Disposer {
	e := newEffect(rt, kindWatch, deps, func() Cleanup {
		fn()
		return nil
	})
	return e.dispose
}

// WatchCleanup is Watch for callbacks that need per-run teardown: the
// returned Cleanup runs before the next re-run and on disposal.
func WatchCleanup(rt *Runtime, deps []Source, fn func() Cleanup) Disposer {
	e := newEffect(rt, kindWatch, deps, fn)
	return e.dispose
}

// Derive builds a computed value over the given cells. The computation runs
// once eagerly to populate the result cell; each subsequent flush re-runs it
// and writes the result, which may cascade to further effects within the
// same flush.
//
// The result cell is owned by the derive effect. Disposing the scope that
// created the derive stops recomputation; the cell then simply retains its
// last value.
func Derive[R any](rt *Runtime, deps []Source, fn func() R) *Cell[R] {
	result := NewCell(rt, *new(R))
	first := true
	newEffect(rt, kindDerive, deps, func() Cleanup {
		v := fn()
		if first {
			// The eager first run populates the cell without notifying:
			// nothing can depend on a cell that does not exist yet.
			result.value = v
			first = false
			return nil
		}
		result.Set(v)
		return nil
	})
	return result
}
