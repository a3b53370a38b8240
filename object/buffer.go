package object

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
)

// TakeString converts a foreign-allocated text buffer into a Go string,
// taking ownership of deallocation exactly once. A null buffer where a
// value is required yields the invalid-buffer error without invoking
// the deallocator; a legitimately empty string is a zero-length,
// non-null buffer and converts to "".
func TakeString(rt combridge.Runtime, buf combridge.Raw) (string, error) {
	b, err := TakeBytes(rt, buf)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TakeBytes converts a foreign-allocated byte buffer into a caller-owned
// slice and frees the foreign buffer exactly once.
func TakeBytes(rt combridge.Runtime, buf combridge.Raw) ([]byte, error) {
	const op = "take ownership of foreign buffer"
	if rt == nil {
		return nil, errors.InvalidArgument(op + ": nil runtime")
	}
	if buf.Null() {
		return nil, errors.InvalidBuffer(op)
	}
	src, ok := rt.BufferBytes(buf)
	if !ok {
		return nil, errors.InvalidBuffer(op)
	}
	out := make([]byte, len(src))
	copy(out, src)
	rt.FreeBuffer(buf)
	return out, nil
}
