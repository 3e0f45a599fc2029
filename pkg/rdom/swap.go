package rdom

import "github.com/revio-dev/revio/internal/errors"

// Swap is the one-slot reconciler: it holds zero or one rendered subtree
// and swaps between a then-branch and an else-branch as its condition
// flips.
//
// Unlike the keyed reconciler there is no reuse-by-equality step: a branch
// is always fully rebuilt on activation, since its content is typically
// structurally unrelated to the other branch's.
type Swap struct {
	container Container

	then func() Node
	els  func() Node

	// active is the currently attached subtree, nil when the active branch
	// renders nothing (an absent else, say).
	active Node

	state   bool
	mounted bool
}

// NewSwap builds a swap over the given container. els may be nil; the false
// branch then renders nothing.
func NewSwap(container Container, then func() Node, els func() Node) *Swap {
	if container == nil {
		panic(errors.New("E202"))
	}
	return &Swap{container: container, then: then, els: els}
}

// Set applies the condition. The first call attaches the matching branch;
// afterwards a flip detaches the active subtree and attaches the newly
// active branch's render result, and no flip means no operation.
func (s *Swap) Set(cond bool) {
	if s.mounted && cond == s.state {
		return
	}

	if s.active != nil {
		s.container.Remove(s.active)
		s.active = nil
	}
	s.state = cond
	s.mounted = true

	render := s.then
	if !cond {
		render = s.els
	}
	if render == nil {
		return
	}
	node := render()
	if node == nil {
		panic(errors.Newf("E201", "swap branch (cond=%t)", cond))
	}
	s.active = node
	s.container.InsertAt(node, 0)
}

// Active returns the currently attached subtree, nil when empty.
func (s *Swap) Active() Node {
	return s.active
}
