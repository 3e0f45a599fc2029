// Package errors defines the engine's structured, coded errors.
//
// Every usage error the engine raises carries a stable code (e.g. "E102")
// so callers and tests can match on it without parsing messages. The
// registry maps each code to its category, message, and fix suggestion.
//
// The taxonomy is small by design: usage errors are detected eagerly and
// raised synchronously, callback errors propagate out of a flush untouched,
// and reconcile errors are usage errors caught at the attach call site.
// Nothing here retries or swallows.
package errors
