// Package reactive implements the update engine's core primitives: cells,
// effects, scopes, and the per-runtime scheduler.
//
// A Cell holds one value and an ordered set of dependent effects. Writing a
// cell always bumps its version and enqueues every dependent on the runtime's
// scheduler; value equality is never checked here. Effects declare their
// dependencies explicitly - reads are never intercepted and never create
// subscriptions.
//
// All state belonging to one Runtime is mutated on a single cooperative
// thread. Flushing runs to completion before returning, so two flushes can
// never interleave, and no locking is required.
package reactive
