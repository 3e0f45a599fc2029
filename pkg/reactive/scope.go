package reactive

// Scope is a component construction scope that owns reactive effects. When a
// scope is disposed, every effect created inside it is disposed and every
// registered cleanup runs - exactly once, never for effects owned by a
// different still-live scope.
//
// Scopes form a hierarchy mirroring the component tree: disposing a parent
// disposes its children first, in reverse creation order.
type Scope struct {
	id uint64

	rt *Runtime

	// parent is nil for a runtime's root scope.
	parent *Scope

	children []*Scope

	effects []*Effect

	// cleanups registered via OnCleanup, run in reverse order on disposal.
	cleanups []func()

	disposed bool
}

// NewScope creates a child of this scope. Panics with ErrScopeDisposed if
// the scope is already gone.
func (s *Scope) NewScope() *Scope {
	if s.disposed {
		panic(ErrScopeDisposed)
	}
	child := &Scope{
		id:     nextID(),
		rt:     s.rt,
		parent: s,
	}
	s.children = append(s.children, child)
	return child
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsDisposed returns true once Dispose has run.
func (s *Scope) IsDisposed() bool {
	return s.disposed
}

// Run makes this scope current for the duration of fn, so effects created
// by fn register against this scope's teardown. Scopes nest: the previous
// current scope is restored afterwards.
func (s *Scope) Run(fn func()) {
	if s.disposed {
		panic(ErrScopeDisposed)
	}
	prev := s.rt.current
	s.rt.current = s
	defer func() { s.rt.current = prev }()
	fn()
}

// OnCleanup registers a function to run when this scope is disposed. If the
// scope is already disposed the function runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// register adds an effect to this scope's teardown list.
func (s *Scope) register(e *Effect) {
	s.effects = append(s.effects, e)
}

// removeChild drops a disposed child from the children list.
func (s *Scope) removeChild(child *Scope) {
	for i, c := range s.children {
		if c.id == child.id {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// Dispose tears down this scope: children in reverse creation order, then
// effects, then cleanups in reverse registration order. Idempotent. If this
// scope (or one of its children) is current, the current scope reverts to
// its parent so stray effect creation fails fast rather than attaching to a
// dead owner.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	children := s.children
	s.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	effects := s.effects
	s.effects = nil
	for _, e := range effects {
		e.dispose()
	}

	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if s.rt.current == s {
		s.rt.current = s.parent
	}
}
