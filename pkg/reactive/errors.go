package reactive

import "github.com/revio-dev/revio/internal/errors"

// ErrNoScope is raised (via panic) when Watch or Derive is called while no
// live scope is current. Effects must be created inside a component's
// construction scope so the owner can dispose them on unmount.
var ErrNoScope = errors.New("E101")

// ErrScopeDisposed is raised when a new effect or child scope is created on
// a scope that has already been disposed.
var ErrScopeDisposed = errors.New("E105")
