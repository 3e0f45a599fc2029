package reactive

// Scheduler coalesces pending effect notifications into one flush per tick.
// Each Runtime owns exactly one scheduler; there is no ambient global
// instance, so isolated runtimes (one per test case, say) never
// cross-contaminate.
type Scheduler struct {
	// pending holds dirty effects in FIFO dirty-order. An effect appears at
	// most once regardless of how many of its dependencies changed; the
	// effect's pending flag guards admission.
	pending []*Effect

	// flushing is true while Flush drains. Writes issued by a running
	// callback enlarge the set being drained instead of starting a nested
	// flush.
	flushing bool

	// batchDepth counts nested Batch calls. While positive, wake
	// notifications are deferred until the outermost batch completes.
	batchDepth int

	// onWake, when set, is invoked on the empty-to-non-empty transition of
	// the pending set so a host loop can schedule a tick.
	onWake func()

	observers []Observer
}

// SetOnWake installs the host wake callback. It fires once per tick, when
// the pending set transitions from empty to non-empty outside a flush.
func (s *Scheduler) SetOnWake(fn func()) {
	s.onWake = fn
}

// Pending returns the number of effects currently queued.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// enqueue appends an effect to the pending set. The caller (markDirty) has
// already claimed the effect's pending flag, so membership is unique.
func (s *Scheduler) enqueue(e *Effect) {
	wasEmpty := len(s.pending) == 0
	s.pending = append(s.pending, e)

	if wasEmpty && !s.flushing && s.batchDepth == 0 && s.onWake != nil {
		s.onWake()
	}
}

// Flush drains the pending set to a fixed point: effects run once each in
// original enqueue order, and writes they perform - including a derive
// effect waking a watch effect - are appended and resolved before Flush
// returns.
//
// A panicking callback aborts its own run and propagates out of Flush.
// Effects still queued stay queued for the next trigger; writes already
// applied by earlier effects in the pass are not rolled back.
//
// Calling Flush from inside a running callback is a no-op: the write that
// prompted it has already enlarged the set being drained. A flush with
// nothing pending is also a no-op and notifies no observer.
func (s *Scheduler) Flush() {
	if s.flushing || len(s.pending) == 0 {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	for _, o := range s.observers {
		o.FlushStart()
	}

	runs := 0
	// Popping from the front preserves FIFO dirty-order and, on panic,
	// leaves the unprocessed remainder pending.
	for len(s.pending) > 0 {
		e := s.pending[0]
		s.pending = s.pending[1:]

		if e.disposed || !e.pending {
			continue
		}
		e.pending = false
		e.invoke()
		runs++
		for _, o := range s.observers {
			o.EffectRun()
		}
	}

	for _, o := range s.observers {
		o.FlushEnd(runs)
	}
}

// FlushSync forces an immediate drain regardless of tick boundaries. It is
// the deterministic variant used where post-mutation assertions are needed;
// the drain itself is identical to Flush and is bounded by already-enqueued
// work.
func (s *Scheduler) FlushSync() {
	s.Flush()
}

// remove drops an effect from the pending set, if queued. Called on effect
// disposal so a disposed effect's callback never runs again.
func (s *Scheduler) remove(e *Effect) {
	for i, queued := range s.pending {
		if queued.id == e.id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}
