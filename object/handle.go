package object

import (
	"fmt"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
)

// Capability is implemented by the zero-size marker types façade
// packages declare for each capability interface they wrap. The set of
// cast targets at any call site is closed and known at compile time.
type Capability interface {
	CapabilityID() combridge.CapID
}

// capID returns the capability identity declared by C.
func capID[C Capability]() combridge.CapID {
	var c C
	return c.CapabilityID()
}

// Handle owns zero or one reference to a foreign object exposing the
// capability interface C. The zero value is not usable; construct
// through Adopt, Create, As or Empty.
type Handle[C Capability] struct {
	rt  combridge.Runtime
	raw combridge.Raw
}

// Adopt takes ownership of an already-incremented foreign reference.
// The caller must not release raw afterwards.
func Adopt[C Capability](rt combridge.Runtime, raw combridge.Raw) (*Handle[C], error) {
	if rt == nil {
		return nil, errors.InvalidArgument("adopt foreign reference: nil runtime")
	}
	if raw.Null() {
		return nil, errors.InvalidHandle(
			fmt.Sprintf("adopt foreign reference of capability %s", capID[C]()))
	}
	return &Handle[C]{rt: rt, raw: raw}, nil
}

// Empty returns a valid handle owning no reference. Operations on the
// capability surface of an empty handle fail with the invalid-handle
// error.
func Empty[C Capability](rt combridge.Runtime) *Handle[C] {
	return &Handle[C]{rt: rt}
}

// IsValid reports whether the handle owns a live reference.
func (h *Handle[C]) IsValid() bool {
	return h != nil && !h.raw.Null()
}

// Raw exposes the wrapped reference without transferring ownership.
// The reference is only valid while the handle is live.
func (h *Handle[C]) Raw() combridge.Raw {
	if h == nil {
		return 0
	}
	return h.raw
}

// RuntimeHandle returns the runtime the handle was obtained from.
func (h *Handle[C]) RuntimeHandle() combridge.Runtime {
	if h == nil {
		return nil
	}
	return h.rt
}

// Capability returns the capability identity the handle is typed by.
func (h *Handle[C]) Capability() combridge.CapID {
	return capID[C]()
}

// Clone produces a second live handle to the same object. The foreign
// count is incremented before the new handle exists, so both handles
// release independently. Cloning an empty handle yields an empty handle.
func (h *Handle[C]) Clone() *Handle[C] {
	if !h.IsValid() {
		return Empty[C](h.RuntimeHandle())
	}
	h.rt.AddRef(h.raw)
	return &Handle[C]{rt: h.rt, raw: h.raw}
}

// Move transfers ownership to the returned handle and leaves the
// source empty. No foreign call is performed.
func (h *Handle[C]) Move() *Handle[C] {
	if !h.IsValid() {
		return Empty[C](h.RuntimeHandle())
	}
	moved := &Handle[C]{rt: h.rt, raw: h.raw}
	h.raw = 0
	return moved
}

// Close releases the owned reference. It releases at most once and is
// safe to call on an empty or moved-from handle. It never fails;
// teardown problems are not recoverable by the caller.
func (h *Handle[C]) Close() error {
	if h == nil || h.raw.Null() {
		return nil
	}
	raw := h.raw
	h.raw = 0
	h.rt.Release(raw)
	return nil
}

// As asks the wrapped object whether it also exposes the capability To.
// On acceptance it returns a new live handle holding a freshly
// incremented reference, independent of the source. Rejection yields
// the unsupported-capability error; an empty source is an invalid
// argument.
func As[To Capability, From Capability](h *Handle[From]) (*Handle[To], error) {
	target := capID[To]()
	op := fmt.Sprintf("cast to capability %s", target)
	if !h.IsValid() {
		return nil, errors.InvalidArgument(op)
	}
	raw, st := h.rt.QueryCapability(h.raw, target)
	if st.Failed() {
		if st == combridge.StatusNoInterface {
			return nil, errors.Unsupported(op, target)
		}
		return nil, errors.FromStatus(st, op)
	}
	if raw.Null() {
		// Success must imply a non-null reference.
		return nil, errors.Invariant(op)
	}
	return &Handle[To]{rt: h.rt, raw: raw}, nil
}
