package rdom

import (
	"sort"

	"github.com/revio-dev/revio/internal/errors"
)

// Entry is one retained key's state: the node rendered for it and the item
// it last rendered.
type Entry[T any] struct {
	Node Node
	Item T

	// index is the key's position after the last pass, consulted to compute
	// minimal moves on the next one.
	index int
}

// Table maps keys to their rendered entries. Entries are created on a key's
// first render, updated in place while the key persists, and removed - with
// node detachment - the pass after the key disappears.
type Table[K comparable, T any] map[K]*Entry[T]

// Reconcile computes the operations transforming the previously rendered
// keyed sequence (prev) into items, and the table for the next pass.
//
// Exited keys produce detaches. Retained keys are compared with equalsFn
// (DefaultEquals when nil): unequal means an in-place update keeping node
// identity, equal means full reuse with no operation. Entering keys render
// and insert; retained keys outside the longest subsequence already in
// correct relative order each get one move, so the move count is minimal
// for position-only reordering.
//
// Insert and move indexes are application-time positions: each is valid
// against the container state produced by the operations before it, so
// replaying the ops in order - with Move as remove-then-insert - realizes
// the new key order. Reconcile tracks that state itself while emitting.
//
// Duplicate keys within items are a usage error, rejected before any
// operation is produced. A renderFn returning nil is a usage error at the
// attach call site.
func Reconcile[K comparable, T any](
	prev Table[K, T],
	items []T,
	keyFn func(T) K,
	renderFn func(T) Node,
	equalsFn func(T, T) bool,
) (Table[K, T], []Op[K], error) {
	if equalsFn == nil {
		equalsFn = DefaultEquals[T]
	}

	keys := make([]K, len(items))
	positions := make(map[K]int, len(items))
	for i, item := range items {
		k := keyFn(item)
		if at, dup := positions[k]; dup {
			return nil, nil, errors.Newf("E102", "key %v at positions %d and %d", k, at, i)
		}
		positions[k] = i
		keys[i] = k
	}

	next := make(Table[K, T], len(items))
	var ops []Op[K]

	// Exits first, in prior order, so later index math never counts a node
	// that is about to disappear.
	type exit struct {
		key   K
		entry *Entry[T]
	}
	var exits []exit
	for k, entry := range prev {
		if _, kept := positions[k]; !kept {
			exits = append(exits, exit{k, entry})
		}
	}
	sort.Slice(exits, func(i, j int) bool { return exits[i].entry.index < exits[j].entry.index })
	for _, x := range exits {
		ops = append(ops, Op[K]{Kind: OpDetach, Key: x.key, Node: x.entry.Node})
	}

	// Retained keys: reuse or update in place.
	type stay struct {
		key      K
		newIndex int
		oldIndex int
	}
	var stays []stay
	for i, k := range keys {
		entry, ok := prev[k]
		if !ok {
			continue
		}
		if !equalsFn(entry.Item, items[i]) {
			content := renderFn(items[i])
			if content == nil {
				return nil, nil, errors.Newf("E201", "key %v", k)
			}
			ops = append(ops, Op[K]{Kind: OpUpdate, Key: k, Node: entry.Node, Content: content})
		}
		entry.Item = items[i]
		next[k] = entry
		stays = append(stays, stay{key: k, newIndex: i, oldIndex: entry.index})
	}

	// Retained keys inside the longest prior-order-preserving subsequence
	// stay put; everything else relocates, |stay| - |LIS| moves in total.
	settled := make(map[K]bool, len(stays))
	if len(stays) > 0 {
		priors := make([]int, len(stays))
		for i, st := range stays {
			priors[i] = st.oldIndex
		}
		inLIS := longestIncreasing(priors)
		for i, st := range stays {
			if inLIS[i] {
				settled[st.key] = true
			}
		}
	}

	// Placement walk. work mirrors the container after the detach phase:
	// retained keys in prior order. Each target position either keeps a
	// settled key where it is or places its key directly after the
	// previously handled one, recording the index the container will see
	// when the op is applied. Placed keys accumulate as a prefix in new
	// order, so a settled key is always past them when its turn comes.
	work := make([]K, 0, len(items))
	for _, st := range stays {
		work = append(work, st.key)
	}
	sort.Slice(work, func(i, j int) bool { return prev[work[i]].index < prev[work[j]].index })

	indexOf := func(k K) int {
		for i, wk := range work {
			if wk == k {
				return i
			}
		}
		return -1
	}

	var anchor K
	placedAny := false
	for i, k := range keys {
		if settled[k] {
			anchor, placedAny = k, true
			continue
		}
		if _, retained := prev[k]; retained {
			cur := indexOf(k)
			work = append(work[:cur], work[cur+1:]...)
			at := 0
			if placedAny {
				at = indexOf(anchor) + 1
			}
			work = append(work, k)
			copy(work[at+1:], work[at:])
			work[at] = k
			ops = append(ops, Op[K]{Kind: OpMove, Key: k, Node: next[k].Node, Index: at})
			anchor, placedAny = k, true
			continue
		}
		node := renderFn(items[i])
		if node == nil {
			return nil, nil, errors.Newf("E201", "key %v", k)
		}
		next[k] = &Entry[T]{Node: node, Item: items[i]}
		at := 0
		if placedAny {
			at = indexOf(anchor) + 1
		}
		work = append(work, k)
		copy(work[at+1:], work[at:])
		work[at] = k
		ops = append(ops, Op[K]{Kind: OpInsert, Key: k, Node: node, Index: at})
		anchor, placedAny = k, true
	}

	for i, k := range keys {
		next[k].index = i
	}
	return next, ops, nil
}
