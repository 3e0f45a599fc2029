package reactive

// Observer receives scheduler lifecycle callbacks. Implementations (metrics,
// tracing) live outside the core; the engine itself never logs or counts.
type Observer interface {
	// FlushStart fires when a flush begins draining.
	FlushStart()

	// EffectRun fires after each effect callback completes.
	EffectRun()

	// FlushEnd fires when the pending set reaches a fixed point, with the
	// number of effect runs in the pass. It does not fire for a pass
	// aborted by a panicking callback.
	FlushEnd(runs int)
}

// Runtime is one isolated instance of the update engine: a scheduler, a root
// scope, and the cells and effects created against it. One runtime serves
// one single-threaded browsing session; multiple runtimes never share state.
type Runtime struct {
	sched *Scheduler

	root *Scope

	// current is the scope new effects register against. The root scope is
	// current by default; Scope.Run overrides it for a component's
	// construction.
	current *Scope
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithObserver attaches a scheduler observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		rt.sched.observers = append(rt.sched.observers, o)
	}
}

// WithOnWake installs the host wake callback, fired when the pending set
// transitions from empty to non-empty outside a flush or batch.
func WithOnWake(fn func()) Option {
	return func(rt *Runtime) {
		rt.sched.onWake = fn
	}
}

// NewRuntime constructs an engine instance with its own scheduler and a
// live root scope.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		sched: &Scheduler{},
	}
	rt.root = &Scope{
		id: nextID(),
		rt: rt,
	}
	rt.current = rt.root
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Scheduler returns the runtime's scheduler.
func (rt *Runtime) Scheduler() *Scheduler {
	return rt.sched
}

// Root returns the runtime's root scope.
func (rt *Runtime) Root() *Scope {
	return rt.root
}

// Flush drains pending effects to a fixed point. See Scheduler.Flush.
func (rt *Runtime) Flush() {
	rt.sched.Flush()
}

// FlushSync forces an immediate deterministic drain. See Scheduler.FlushSync.
func (rt *Runtime) FlushSync() {
	rt.sched.FlushSync()
}

// Batch groups multiple cell writes so the host wake callback fires at most
// once, when the outermost batch completes. Coalescing itself needs no
// batching - an effect enters the pending set at most once per tick
// regardless - so Batch is purely about deferring the wake signal.
//
// Batches nest; writes inside still enqueue normally and a Flush inside a
// batch drains as usual.
func (rt *Runtime) Batch(fn func()) {
	rt.sched.batchDepth++
	defer func() {
		rt.sched.batchDepth--
		if rt.sched.batchDepth == 0 && len(rt.sched.pending) > 0 &&
			!rt.sched.flushing && rt.sched.onWake != nil {
			rt.sched.onWake()
		}
	}()
	fn()
}
