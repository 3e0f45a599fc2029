// Package store provides a structured, copy-on-write wrapper over one root
// cell, with branch views for nested state.
//
// The store has no propagation mechanism of its own - it is pure sugar over
// a Cell. Every branch write rebuilds the ancestors of the touched value and
// writes the new root, so untouched siblings are shared by reference.
//
// Because all branches share a single root cell, a write through any branch
// notifies every root dependent, including readers of unrelated branches.
// That is a deliberate simplicity/performance tradeoff, not a defect:
// callers who need isolation build a Derive keyed to the sub-path they care
// about.
package store
