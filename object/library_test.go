package object

import (
	"errors"
	"testing"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
	cberrors "github.com/wippyai/combridge/errors"
)

// inertRuntime wraps a Runtime while hiding its Initializer, modeling
// runtimes without scoped initialization.
type inertRuntime struct {
	combridge.Runtime
}

func TestOpenLibrary(t *testing.T) {
	rt := comtest.New()

	lib, err := OpenLibrary(rt)
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	_ = lib.Close()
	assertNoViolations(t, rt)
}

func TestOpenLibrary_Nested(t *testing.T) {
	rt := comtest.New()

	outer, err := OpenLibrary(rt)
	if err != nil {
		t.Fatalf("outer: %v", err)
	}
	// The nested open reports the already-initialized negative result,
	// which still succeeds and still requires a matching close.
	inner, err := OpenLibrary(rt)
	if err != nil {
		t.Fatalf("inner: %v", err)
	}

	_ = inner.Close()
	_ = outer.Close()
	assertNoViolations(t, rt)
}

func TestLibrary_CloseIdempotent(t *testing.T) {
	rt := comtest.New()

	lib, err := OpenLibrary(rt)
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	_ = lib.Close()
	_ = lib.Close()
	// The second close must not unbalance the runtime's teardown.
	assertNoViolations(t, rt)
}

func TestOpenLibrary_Inert(t *testing.T) {
	rt := comtest.New()

	lib, err := OpenLibrary(inertRuntime{rt})
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	_ = lib.Close()
	assertNoViolations(t, rt)
}

func TestOpenLibrary_NilRuntime(t *testing.T) {
	_, err := OpenLibrary(nil)
	if !errors.Is(err, cberrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
