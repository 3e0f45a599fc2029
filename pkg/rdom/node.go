package rdom

// Node is an opaque rendered artifact. The engine never inspects one; it
// only stores references and hands them back through operations. Hosts
// should use reference values (pointers) so identity comparisons hold.
type Node any

// Container is the host-side surface the reconciler drives. Indexes refer
// to positions in the container at the moment the operation is applied;
// operations arrive detach-first, so an index never counts a node that is
// about to be removed.
type Container interface {
	// InsertAt places a newly rendered node at the given position.
	InsertAt(n Node, index int)

	// Remove detaches a node. The node reference identifies it.
	Remove(n Node)

	// Move relocates an existing node to the given position.
	Move(n Node, index int)

	// Update replaces a node's content in place, keeping its identity (and
	// with it focus and animation state). content is the fresh render
	// output for the node's item.
	Update(n Node, content Node)
}
