// Package rdom reconciles ordered, keyed collections of rendered nodes
// against new collections with minimal node churn.
//
// The rendering surface is opaque to the engine: a Node is an insertable,
// removable object identified by reference, and a Container is whatever can
// hold an ordered sequence of them. Reconcile computes the operations that
// transform the old keyed sequence into the new one - detach, in-place
// update, insert, and a minimal set of moves derived from a longest
// increasing subsequence over the retained keys' prior positions.
//
// Operations are emitted detaches first, then updates, then inserts and
// moves in target order. Insert and move indexes are application-time
// positions: replaying the operations in order reproduces the new key
// order on any container that implements Move as remove-then-insert.
package rdom
