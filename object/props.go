package object

import (
	"fmt"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
)

// Access to the capability surface is only permitted through a live
// handle. Every accessor below fails with the invalid-handle error on
// an empty handle; that is a logic error at the call site, not a
// retryable condition.

func (h *Handle[C]) guard(op string) error {
	if !h.IsValid() {
		return errors.InvalidHandle(op)
	}
	return nil
}

// GetProp reads a raw property value.
func (h *Handle[C]) GetProp(name string) (combridge.Value, error) {
	op := fmt.Sprintf("get property %q", name)
	if err := h.guard(op); err != nil {
		return combridge.Value{}, err
	}
	v, st := h.rt.GetProp(h.raw, name)
	if err := errors.FromStatus(st, op); err != nil {
		return combridge.Value{}, err
	}
	return v, nil
}

// PutProp writes a raw property value.
func (h *Handle[C]) PutProp(name string, v combridge.Value) error {
	op := fmt.Sprintf("put property %q", name)
	if err := h.guard(op); err != nil {
		return err
	}
	return errors.FromStatus(h.rt.PutProp(h.raw, name, v), op)
}

// Call invokes a method on the capability surface. The returned status
// StatusFalse is treated as success with a negative result; outputs
// may then be empty.
func (h *Handle[C]) Call(method string, args ...combridge.Value) ([]combridge.Value, error) {
	op := fmt.Sprintf("call method %q", method)
	if err := h.guard(op); err != nil {
		return nil, err
	}
	out, st := h.rt.Call(h.raw, method, args...)
	if err := errors.FromStatus(st, op); err != nil {
		return nil, err
	}
	return out, nil
}

// CallOp is Call with a caller-supplied operation description used in
// error messages, for call sites where "call method X" loses the
// intent ("cannot connect to resource Y").
func (h *Handle[C]) CallOp(op, method string, args ...combridge.Value) ([]combridge.Value, error) {
	if err := h.guard(op); err != nil {
		return nil, err
	}
	out, st := h.rt.Call(h.raw, method, args...)
	if err := errors.FromStatus(st, op); err != nil {
		return nil, err
	}
	return out, nil
}

// GetString reads a text property, taking ownership of the foreign
// buffer carrying it.
func (h *Handle[C]) GetString(name string) (string, error) {
	v, err := h.GetProp(name)
	if err != nil {
		return "", err
	}
	buf, ok := v.Buffer()
	if !ok {
		return "", errors.InvalidBuffer(fmt.Sprintf("get property %q: not a text buffer", name))
	}
	return TakeString(h.rt, buf)
}

// PutString writes a text property. The runtime copies the string
// during the call; no ownership changes hands.
func (h *Handle[C]) PutString(name, value string) error {
	return h.PutProp(name, combridge.StringValue(value))
}

// GetBool reads a boolean property.
func (h *Handle[C]) GetBool(name string) (bool, error) {
	v, err := h.GetProp(name)
	if err != nil {
		return false, err
	}
	b, ok := v.Bool()
	if !ok {
		return false, errors.ForeignCall(
			fmt.Sprintf("get property %q: unexpected %s value", name, v.Kind()),
			combridge.StatusFail)
	}
	return b, nil
}

// PutBool writes a boolean property.
func (h *Handle[C]) PutBool(name string, value bool) error {
	return h.PutProp(name, combridge.BoolValue(value))
}

// GetInt reads a numeric property.
func (h *Handle[C]) GetInt(name string) (int64, error) {
	v, err := h.GetProp(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.Int()
	if !ok {
		return 0, errors.ForeignCall(
			fmt.Sprintf("get property %q: unexpected %s value", name, v.Kind()),
			combridge.StatusFail)
	}
	return n, nil
}

// PutInt writes a numeric property.
func (h *Handle[C]) PutInt(name string, value int64) error {
	return h.PutProp(name, combridge.IntValue(value))
}

// GetObject reads a sub-object property and adopts the reference it
// carries into a new handle typed To.
func GetObject[To Capability, C Capability](h *Handle[C], name string) (*Handle[To], error) {
	v, err := h.GetProp(name)
	if err != nil {
		return nil, err
	}
	raw, ok := v.Object()
	if !ok {
		return nil, errors.Invariant(fmt.Sprintf("get property %q: no object returned", name))
	}
	return Adopt[To](h.rt, raw)
}

// CallObject invokes a method whose single output is an object
// reference and adopts it into a new handle typed To. A StatusFalse
// negative result yields (nil, nil).
func CallObject[To Capability, C Capability](h *Handle[C], method string, args ...combridge.Value) (*Handle[To], error) {
	out, err := h.Call(method, args...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	raw, ok := out[0].Object()
	if !ok || raw.Null() {
		return nil, nil
	}
	return Adopt[To](h.rt, raw)
}
