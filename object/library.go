package object

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
)

// Initializer is optionally implemented by runtimes that require
// process- or thread-scoped initialization before objects can be
// created.
type Initializer interface {
	Initialize() combridge.Status
	Uninitialize()
}

// Library is a scoped initialization guard for the foreign runtime
// subsystem. Handles must not outlive the Library they were created
// under. For runtimes without an Initializer the guard is inert but
// still enforces the scoping discipline at call sites.
type Library struct {
	init   Initializer
	closed bool
}

// OpenLibrary initializes the foreign runtime subsystem.
func OpenLibrary(rt combridge.Runtime) (*Library, error) {
	const op = "initialize foreign runtime subsystem"
	if rt == nil {
		return nil, errors.InvalidArgument(op + ": nil runtime")
	}
	init, ok := rt.(Initializer)
	if !ok {
		return &Library{}, nil
	}
	st := init.Initialize()
	// StatusFalse means already initialized on this thread; the
	// matching Uninitialize is still required.
	if st.Failed() {
		return nil, errors.FromStatus(st, op)
	}
	return &Library{init: init}, nil
}

// Close tears the subsystem down. Idempotent.
func (l *Library) Close() error {
	if l == nil || l.closed {
		return nil
	}
	l.closed = true
	if l.init != nil {
		l.init.Uninitialize()
	}
	return nil
}
