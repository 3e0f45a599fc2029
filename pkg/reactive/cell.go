package reactive

// Source is the type-erased face of a Cell. Effects hold their dependency
// lists as Sources so one effect can depend on cells of different value
// types.
type Source interface {
	// ID returns the cell's unique identifier.
	ID() uint64

	// Version returns the cell's write counter.
	Version() uint64

	attach(e *Effect)
	detach(e *Effect)
}

// Cell is the minimal reactive value container: one value, an ordered set of
// dependent effects, and a version counter.
//
// Reads have no tracking side effect. Writes unconditionally replace the
// value, increment the version, and enqueue every dependent exactly once on
// the runtime's scheduler - even when the new value is "equal" to the old
// one. Any equality-based skipping is layered above the cell, never built
// in.
type Cell[T any] struct {
	rt *Runtime

	id uint64

	// value is the current cell value.
	value T

	// version increments on every replacement, equal or not.
	version uint64

	// dependents are the effects registered against this cell, in
	// registration order.
	dependents []*Effect
}

// NewCell creates a cell owned by rt with the given initial value.
func NewCell[T any](rt *Runtime, initial T) *Cell[T] {
	return &Cell[T]{
		rt:    rt,
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value. No dependency is recorded; dependencies are
// declared explicitly when an effect is created.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set replaces the value, bumps the version, and enqueues every dependent.
func (c *Cell[T]) Set(value T) {
	c.value = value
	c.version++
	for _, e := range c.dependents {
		e.markDirty()
	}
}

// Update replaces the value with fn(current). Like Set, it always notifies.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

// ID returns the unique identifier for this cell.
func (c *Cell[T]) ID() uint64 {
	return c.id
}

// Version returns the number of writes this cell has seen.
func (c *Cell[T]) Version() uint64 {
	return c.version
}

// attach registers an effect as a dependent. Deduplicates by effect ID so an
// effect listing the same cell twice is notified once.
func (c *Cell[T]) attach(e *Effect) {
	if e == nil {
		return
	}
	for _, existing := range c.dependents {
		if existing.id == e.id {
			return
		}
	}
	c.dependents = append(c.dependents, e)
}

// detach removes an effect from the dependent set, preserving the order of
// the remaining dependents.
func (c *Cell[T]) detach(e *Effect) {
	for i, existing := range c.dependents {
		if existing.id == e.id {
			c.dependents = append(c.dependents[:i], c.dependents[i+1:]...)
			return
		}
	}
}
