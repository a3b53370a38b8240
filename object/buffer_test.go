package object

import (
	"errors"
	"testing"

	"github.com/wippyai/combridge/comtest"
	cberrors "github.com/wippyai/combridge/errors"
)

func TestTakeString(t *testing.T) {
	rt := comtest.New()
	buf := rt.NewStringBuffer("hello boundary")

	s, err := TakeString(rt, buf)
	if err != nil {
		t.Fatalf("TakeString: %v", err)
	}
	if s != "hello boundary" {
		t.Fatalf("s = %q, want %q", s, "hello boundary")
	}
	if rt.BufferFreed(buf) != 1 {
		t.Fatalf("BufferFreed = %d, want 1", rt.BufferFreed(buf))
	}
	assertNoViolations(t, rt)
}

func TestTakeString_Empty(t *testing.T) {
	rt := comtest.New()
	// A legitimately empty string is a zero-length, non-null buffer.
	buf := rt.NewStringBuffer("")

	s, err := TakeString(rt, buf)
	if err != nil {
		t.Fatalf("TakeString: %v", err)
	}
	if s != "" {
		t.Fatalf("s = %q, want empty", s)
	}
	if rt.BufferFreed(buf) != 1 {
		t.Fatalf("BufferFreed = %d, want 1", rt.BufferFreed(buf))
	}
}

func TestTakeString_Null(t *testing.T) {
	rt := comtest.New()

	_, err := TakeString(rt, 0)
	if !errors.Is(err, cberrors.ErrInvalidBuffer) {
		t.Fatalf("err = %v, want invalid buffer", err)
	}
	// The deallocator must not run on the null buffer.
	if frees := rt.TraceMatching("FreeBuffer"); len(frees) != 0 {
		t.Fatalf("FreeBuffer calls = %v, want none", frees)
	}
	assertNoViolations(t, rt)
}

func TestTakeBytes(t *testing.T) {
	rt := comtest.New()
	buf := rt.NewBuffer([]byte{0x01, 0x02, 0x03})

	b, err := TakeBytes(rt, buf)
	if err != nil {
		t.Fatalf("TakeBytes: %v", err)
	}
	if len(b) != 3 || b[0] != 0x01 || b[2] != 0x03 {
		t.Fatalf("b = %v, want [1 2 3]", b)
	}
	if rt.LiveBuffers() != 0 {
		t.Fatalf("LiveBuffers = %d, want 0", rt.LiveBuffers())
	}
}

func TestTakeBytes_AlreadyTaken(t *testing.T) {
	rt := comtest.New()
	buf := rt.NewBuffer([]byte("once"))

	if _, err := TakeBytes(rt, buf); err != nil {
		t.Fatalf("first take: %v", err)
	}

	// The second take sees a dead buffer and must not free it again.
	_, err := TakeBytes(rt, buf)
	if !errors.Is(err, cberrors.ErrInvalidBuffer) {
		t.Fatalf("err = %v, want invalid buffer", err)
	}
	if rt.BufferFreed(buf) != 1 {
		t.Fatalf("BufferFreed = %d, want 1", rt.BufferFreed(buf))
	}
	assertNoViolations(t, rt)
}

func TestTakeBytes_NilRuntime(t *testing.T) {
	_, err := TakeBytes(nil, 1)
	if !errors.Is(err, cberrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
