package rdom

// OpKind is the type of reconciliation operation.
type OpKind uint8

const (
	OpDetach OpKind = iota + 1 // Remove an exited node
	OpUpdate                   // Re-render an existing node in place
	OpInsert                   // Attach a newly rendered node
	OpMove                     // Relocate a retained node
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpDetach:
		return "Detach"
	case OpUpdate:
		return "Update"
	case OpInsert:
		return "Insert"
	case OpMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Op is a single node-level operation produced by a reconciliation pass.
type Op[K comparable] struct {
	Kind OpKind

	// Key identifies the item the operation belongs to.
	Key K

	// Node is the affected node: the detached node, the node kept for an
	// update or move, or the freshly rendered node for an insert.
	Node Node

	// Content is the fresh render output for an Update; nil otherwise.
	Content Node

	// Index is the position for Insert and Move, valid at the moment the
	// operation is applied: it accounts for every operation emitted before
	// it, including the removal half of its own Move. Zero otherwise.
	Index int
}

// Apply drives a container with the operations of one pass, in emission
// order. Indexes are application-time positions, so a straight replay -
// with Move as remove-then-insert - realizes the new key order.
func Apply[K comparable](c Container, ops []Op[K]) {
	for _, op := range ops {
		switch op.Kind {
		case OpDetach:
			c.Remove(op.Node)
		case OpUpdate:
			c.Update(op.Node, op.Content)
		case OpInsert:
			c.InsertAt(op.Node, op.Index)
		case OpMove:
			c.Move(op.Node, op.Index)
		}
	}
}

// CountKinds tallies a pass's operations by kind.
func CountKinds[K comparable](ops []Op[K]) (detach, update, insert, move int) {
	for _, op := range ops {
		switch op.Kind {
		case OpDetach:
			detach++
		case OpUpdate:
			update++
		case OpInsert:
			insert++
		case OpMove:
			move++
		}
	}
	return
}
