package rdom

import (
	stderrors "errors"
	"testing"

	"github.com/revio-dev/revio/internal/errors"
)

func TestSwapFirstSetAttaches(t *testing.T) {
	c := &fakeContainer{}
	s := NewSwap(c,
		func() Node { return &fakeNode{label: "then"} },
		func() Node { return &fakeNode{label: "else"} })

	s.Set(true)
	if !equalStrings(c.labels(), []string{"then"}) {
		t.Errorf("first Set(true) must attach the then branch, got %v", c.labels())
	}
	if s.Active() != c.nodes[0] {
		t.Errorf("Active must return the attached subtree")
	}
}

func TestSwapFlipRebuildsBranch(t *testing.T) {
	renders := 0
	c := &fakeContainer{}
	s := NewSwap(c,
		func() Node { renders++; return &fakeNode{label: "then"} },
		func() Node { return &fakeNode{label: "else"} })

	s.Set(true)
	first := s.Active()
	s.Set(false)
	if !equalStrings(c.labels(), []string{"else"}) {
		t.Errorf("flip must swap subtrees, got %v", c.labels())
	}
	s.Set(true)
	if renders != 2 {
		t.Errorf("reactivated branch must be rebuilt, got %d renders", renders)
	}
	if s.Active() == first {
		t.Errorf("reactivation must not reuse the previously detached subtree")
	}
}

func TestSwapNoFlipNoOperation(t *testing.T) {
	c := &fakeContainer{}
	s := NewSwap(c,
		func() Node { return &fakeNode{label: "then"} },
		nil)

	s.Set(true)
	ops := len(c.log)
	s.Set(true)
	s.Set(true)
	if len(c.log) != ops {
		t.Errorf("repeated Set with unchanged condition must not touch the container: %v", c.log)
	}
}

func TestSwapNilElseRendersNothing(t *testing.T) {
	c := &fakeContainer{}
	s := NewSwap(c,
		func() Node { return &fakeNode{label: "then"} },
		nil)

	// First call with false still counts as mounting: a later Set(false)
	// must be a no-op, not a re-mount.
	s.Set(false)
	if len(c.nodes) != 0 || s.Active() != nil {
		t.Errorf("absent else branch must leave the slot empty")
	}
	s.Set(true)
	s.Set(false)
	if len(c.nodes) != 0 {
		t.Errorf("flip back to an absent branch must empty the slot, got %v", c.labels())
	}
}

func TestSwapNilContainerPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("nil container must panic")
		}
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, errors.New("E202")) {
			t.Errorf("expected E202, got %v", r)
		}
	}()
	NewSwap(nil, func() Node { return nil }, nil)
}

func TestSwapNilRenderResultPanics(t *testing.T) {
	c := &fakeContainer{}
	s := NewSwap(c, func() Node { return nil }, nil)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("nil render result must panic")
		}
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, errors.New("E201")) {
			t.Errorf("expected E201, got %v", r)
		}
	}()
	s.Set(true)
}
