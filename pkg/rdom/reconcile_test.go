package rdom

import (
	stderrors "errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/revio-dev/revio/internal/errors"
)

// fakeNode is the test rendering surface: identity by pointer, content by
// label.
type fakeNode struct {
	label string
}

// fakeContainer holds nodes in order and logs every operation applied.
type fakeContainer struct {
	nodes []Node
	log   []string
}

func (c *fakeContainer) InsertAt(n Node, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(c.nodes) {
		index = len(c.nodes)
	}
	c.nodes = append(c.nodes, nil)
	copy(c.nodes[index+1:], c.nodes[index:])
	c.nodes[index] = n
	c.log = append(c.log, fmt.Sprintf("insert %s@%d", n.(*fakeNode).label, index))
}

func (c *fakeContainer) Remove(n Node) {
	for i, existing := range c.nodes {
		if existing == n {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			break
		}
	}
	c.log = append(c.log, "remove "+n.(*fakeNode).label)
}

func (c *fakeContainer) Move(n Node, index int) {
	c.Remove(n)
	c.log = c.log[:len(c.log)-1] // collapse into one move entry
	c.InsertAt(n, index)
	c.log[len(c.log)-1] = fmt.Sprintf("move %s@%d", n.(*fakeNode).label, index)
}

func (c *fakeContainer) Update(n Node, content Node) {
	n.(*fakeNode).label = content.(*fakeNode).label
	c.log = append(c.log, "update "+n.(*fakeNode).label)
}

func (c *fakeContainer) labels() []string {
	out := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.(*fakeNode).label
	}
	return out
}

type item struct {
	ID   int
	Name string
}

func itemKey(it *item) int { return it.ID }

func renderItem(it *item) Node {
	return &fakeNode{label: fmt.Sprintf("%d:%s", it.ID, it.Name)}
}

func pass(t *testing.T, prev Table[int, *item], items []*item) (Table[int, *item], []Op[int]) {
	t.Helper()
	next, ops, err := Reconcile(prev, items, itemKey, renderItem, nil)
	if err != nil {
		t.Fatalf("unexpected reconcile error: %v", err)
	}
	return next, ops
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReconcileInitialRender(t *testing.T) {
	items := []*item{{1, "a"}, {2, "b"}, {3, "c"}}
	table, ops := pass(t, nil, items)

	if len(table) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(table))
	}
	detach, update, insert, move := CountKinds(ops)
	if detach != 0 || update != 0 || insert != 3 || move != 0 {
		t.Errorf("expected 3 inserts only, got d=%d u=%d i=%d m=%d", detach, update, insert, move)
	}

	c := &fakeContainer{}
	Apply(c, ops)
	if !equalStrings(c.labels(), []string{"1:a", "2:b", "3:c"}) {
		t.Errorf("unexpected order: %v", c.labels())
	}
}

func TestReuseOnUnchangedReference(t *testing.T) {
	one, two, three := &item{1, "a"}, &item{2, "b"}, &item{3, "c"}
	table, ops := pass(t, nil, []*item{one, two, three})
	c := &fakeContainer{}
	Apply(c, ops)

	node1, node3 := table[1].Node, table[3].Node

	// Replace only id 2's object; ids 1 and 3 keep their references.
	table, ops = pass(t, table, []*item{one, {2, "B"}, three})
	Apply(c, ops)

	detach, update, insert, move := CountKinds(ops)
	if detach != 0 || update != 1 || insert != 0 || move != 0 {
		t.Errorf("expected exactly one update, got d=%d u=%d i=%d m=%d", detach, update, insert, move)
	}
	if table[1].Node != node1 || table[3].Node != node3 {
		t.Errorf("unchanged items must keep node identity")
	}
	if !equalStrings(c.labels(), []string{"1:a", "2:B", "3:c"}) {
		t.Errorf("unexpected content: %v", c.labels())
	}
}

func TestUpdateKeepsNodeIdentity(t *testing.T) {
	table, ops := pass(t, nil, []*item{{1, "a"}})
	c := &fakeContainer{}
	Apply(c, ops)
	node := table[1].Node

	table, ops = pass(t, table, []*item{{1, "z"}})
	Apply(c, ops)

	if table[1].Node != node {
		t.Errorf("in-place re-render must preserve node identity")
	}
	if c.nodes[0] != node {
		t.Errorf("container must still hold the original node")
	}
	if c.labels()[0] != "1:z" {
		t.Errorf("content must be replaced, got %q", c.labels()[0])
	}
}

func TestMinimalMoveReorder(t *testing.T) {
	items := []*item{{1, ""}, {2, ""}, {3, ""}, {4, ""}, {5, ""}}
	table, ops := pass(t, nil, items)
	c := &fakeContainer{}
	Apply(c, ops)

	reordered := []*item{items[0], items[1], items[2], items[4], items[3]}
	table, ops = pass(t, table, reordered)
	Apply(c, ops)

	_, _, _, move := CountKinds(ops)
	if move != 1 {
		t.Errorf("[1 2 3 4 5] -> [1 2 3 5 4] must emit exactly 1 move, got %d", move)
	}
	if !equalStrings(c.labels(), []string{"1:", "2:", "3:", "5:", "4:"}) {
		t.Errorf("unexpected final order: %v", c.labels())
	}
	_ = table
}

func TestReverseMoves(t *testing.T) {
	items := []*item{{1, ""}, {2, ""}, {3, ""}, {4, ""}}
	table, ops := pass(t, nil, items)
	c := &fakeContainer{}
	Apply(c, ops)

	reversed := []*item{items[3], items[2], items[1], items[0]}
	_, ops = pass(t, table, reversed)
	Apply(c, ops)

	_, _, _, move := CountKinds(ops)
	if move != 3 {
		t.Errorf("full reverse of 4 keys needs |stay|-|LIS| = 3 moves, got %d", move)
	}
	if !equalStrings(c.labels(), []string{"4:", "3:", "2:", "1:"}) {
		t.Errorf("unexpected final order: %v", c.labels())
	}
}

func TestEnterExitAndMoveCombined(t *testing.T) {
	a, b, cc, d, e := &item{1, "a"}, &item{2, "b"}, &item{3, "c"}, &item{4, "d"}, &item{5, "e"}
	table, ops := pass(t, nil, []*item{a, b, cc, d, e})
	c := &fakeContainer{}
	Apply(c, ops)

	// c exits, x enters, e and b relocate.
	x := &item{6, "x"}
	table, ops = pass(t, table, []*item{e, x, b, a, d})
	Apply(c, ops)

	detach, update, insert, move := CountKinds(ops)
	if detach != 1 || update != 0 || insert != 1 {
		t.Errorf("expected 1 detach and 1 insert, got d=%d u=%d i=%d m=%d", detach, update, insert, move)
	}
	if !equalStrings(c.labels(), []string{"5:e", "6:x", "2:b", "1:a", "4:d"}) {
		t.Errorf("unexpected final order: %v", c.labels())
	}
	if _, gone := table[3]; gone {
		t.Errorf("exited key must leave the table")
	}
}

func TestOpsEmissionOrder(t *testing.T) {
	a, b, cc := &item{1, "a"}, &item{2, "b"}, &item{3, "c"}
	table, ops := pass(t, nil, []*item{a, b, cc})
	c := &fakeContainer{}
	Apply(c, ops)

	// b exits, a updates, x enters, c moves ahead of a. Placements come
	// last, in target order: c's move to position 0, then x's insert.
	x := &item{4, "x"}
	_, ops = pass(t, table, []*item{cc, x, {1, "A"}})

	var kinds []OpKind
	for _, op := range ops {
		kinds = append(kinds, op.Kind)
	}
	want := []OpKind{OpDetach, OpUpdate, OpMove, OpInsert}
	if len(kinds) != len(want) {
		t.Fatalf("expected kinds %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("ops must be emitted detach, update, then placements in target order; got %v", kinds)
		}
	}
}

func TestReorderAroundRetainedRun(t *testing.T) {
	// The retained run (4 then 5, prior order preserved) keeps its nodes
	// still while 3 and 1 relocate around it from earlier prior positions.
	items := []*item{{1, ""}, {2, ""}, {3, ""}, {4, ""}, {5, ""}}
	table, ops := pass(t, nil, items)
	c := &fakeContainer{}
	Apply(c, ops)

	// 2 exits; new order 4, 5, 3, 1.
	_, ops = pass(t, table, []*item{items[3], items[4], items[2], items[0]})
	Apply(c, ops)

	detach, update, insert, move := CountKinds(ops)
	if detach != 1 || update != 0 || insert != 0 || move != 2 {
		t.Errorf("expected 1 detach and 2 moves, got d=%d u=%d i=%d m=%d", detach, update, insert, move)
	}
	if !equalStrings(c.labels(), []string{"4:", "5:", "3:", "1:"}) {
		t.Errorf("unexpected final order: %v", c.labels())
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	_, _, err := Reconcile(nil, []*item{{7, "a"}, {7, "b"}}, itemKey, renderItem, nil)
	if err == nil {
		t.Fatalf("duplicate key must be rejected, not silently dropped")
	}
	if !stderrors.Is(err, errors.New("E102")) {
		t.Errorf("expected E102, got %v", err)
	}
}

func TestNilRenderRejected(t *testing.T) {
	_, _, err := Reconcile(nil, []*item{{1, "a"}},
		itemKey,
		func(*item) Node { return nil },
		nil)
	if !stderrors.Is(err, errors.New("E201")) {
		t.Errorf("expected E201 for nil render result, got %v", err)
	}
}

func TestExitDetachesNode(t *testing.T) {
	table, ops := pass(t, nil, []*item{{1, "a"}, {2, "b"}})
	c := &fakeContainer{}
	Apply(c, ops)
	node2 := table[2].Node

	_, ops = pass(t, table, []*item{{1, "a"}})
	Apply(c, ops)

	if len(c.nodes) != 1 {
		t.Fatalf("expected one node after exit, got %d", len(c.nodes))
	}
	for _, n := range c.nodes {
		if n == node2 {
			t.Errorf("exited node must be detached")
		}
	}
}

// quadraticLISLen is an independent oracle for the minimal move count.
func quadraticLISLen(seq []int) int {
	if len(seq) == 0 {
		return 0
	}
	best := make([]int, len(seq))
	longest := 0
	for i := range seq {
		best[i] = 1
		for j := 0; j < i; j++ {
			if seq[j] < seq[i] && best[j]+1 > best[i] {
				best[i] = best[j] + 1
			}
		}
		if best[i] > longest {
			longest = best[i]
		}
	}
	return longest
}

func TestRandomizedReorderRealizesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		oldLen := rng.Intn(12)
		items := make([]*item, oldLen)
		for i := range items {
			items[i] = &item{ID: i}
		}
		table, ops := pass(t, nil, items)
		c := &fakeContainer{}
		Apply(c, ops)

		// Drop a random subset, shuffle the rest, splice in fresh keys.
		var next []*item
		for _, it := range items {
			if rng.Intn(3) > 0 {
				next = append(next, it)
			}
		}
		stays := len(next)
		rng.Shuffle(stays, func(a, b int) {
			next[a], next[b] = next[b], next[a]
		})
		for e := 0; e < rng.Intn(4); e++ {
			fresh := &item{ID: oldLen + e}
			at := rng.Intn(len(next) + 1)
			next = append(next, nil)
			copy(next[at+1:], next[at:])
			next[at] = fresh
		}

		table, ops = pass(t, table, next)
		Apply(c, ops)

		want := make([]string, len(next))
		for i, it := range next {
			want[i] = fmt.Sprintf("%d:%s", it.ID, it.Name)
		}
		if !equalStrings(c.labels(), want) {
			t.Fatalf("trial %d: container %v, want %v (ops %v)", trial, c.labels(), want, ops)
		}

		// Old positions of the retained keys, in new order.
		priors := make([]int, 0, stays)
		for _, it := range next {
			if it.ID < oldLen {
				priors = append(priors, it.ID)
			}
		}
		_, _, _, moves := CountKinds(ops)
		if wantMoves := len(priors) - quadraticLISLen(priors); moves != wantMoves {
			t.Fatalf("trial %d: %d moves, want %d for priors %v", trial, moves, wantMoves, priors)
		}
		if len(table) != len(next) {
			t.Fatalf("trial %d: table has %d entries, want %d", trial, len(table), len(next))
		}
	}
}

func TestCustomEqualsSkipsRerender(t *testing.T) {
	// With an always-equal function, nothing re-renders even though the
	// default heuristic would flag fresh struct pointers as changed.
	table, ops, err := Reconcile(nil, []*item{{1, "a"}}, itemKey, renderItem,
		func(a, b *item) bool { return a.ID == b.ID })
	if err != nil {
		t.Fatal(err)
	}
	c := &fakeContainer{}
	Apply(c, ops)

	_, ops, err = Reconcile(table, []*item{{1, "changed"}}, itemKey, renderItem,
		func(a, b *item) bool { return a.ID == b.ID })
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 0 {
		t.Errorf("equal items must produce no operations, got %v", ops)
	}
}
