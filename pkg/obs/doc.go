// Package obs provides observability hooks for the update engine:
// Prometheus metrics and OpenTelemetry tracing over scheduler flushes and
// reconciliation passes.
//
// Both collectors implement reactive.Observer and plug into a runtime via
// reactive.WithObserver. Reconciliation passes are observed through
// rdom's WithPassObserver hook.
package obs
