package store

// Branch is a read/write view of a nested sub-value, closed over a lens into
// the root. Reads apply get to the current root; writes rebuild the root via
// put and perform one root write - the parent is never mutated in place,
// which is how untouched siblings keep their identity across writes.
type Branch[T, U any] struct {
	store *Store[T]
	get   func(T) U
	put   func(T, U) T
}

// NewBranch builds a branch view over s. get extracts the sub-value, put
// reconstructs a root with the sub-value replaced.
func NewBranch[T, U any](s *Store[T], get func(T) U, put func(T, U) T) *Branch[T, U] {
	return &Branch[T, U]{store: s, get: get, put: put}
}

// Value returns the branch's current sub-value.
func (b *Branch[T, U]) Value() U {
	return b.get(b.store.root.Get())
}

// Set writes next through the lens: the root becomes put(root, next).
func (b *Branch[T, U]) Set(next U) {
	root := b.store.root.Get()
	b.store.root.Set(b.put(root, next))
}

// Update writes mutator(current sub-value) through the lens.
func (b *Branch[T, U]) Update(mutator func(U) U) {
	root := b.store.root.Get()
	b.store.root.Set(b.put(root, mutator(b.get(root))))
}

// Store returns the underlying store, shared by all branches.
func (b *Branch[T, U]) Store() *Store[T] {
	return b.store
}

// Compose nests a second lens inside an existing branch, yielding a branch
// of the deeper sub-value against the same root cell.
func Compose[T, U, V any](b *Branch[T, U], get func(U) V, put func(U, V) U) *Branch[T, V] {
	return &Branch[T, V]{
		store: b.store,
		get: func(root T) V {
			return get(b.get(root))
		},
		put: func(root T, next V) T {
			return b.put(root, put(b.get(root), next))
		},
	}
}

// UpdateAt is sugar for an anonymous branch update: one lens, one mutation,
// one root write.
func UpdateAt[T, U any](s *Store[T], get func(T) U, put func(T, U) T, mutator func(U) U) {
	NewBranch(s, get, put).Update(mutator)
}
