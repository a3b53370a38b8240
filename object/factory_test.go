package object

import (
	"errors"
	"testing"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
	cberrors "github.com/wippyai/combridge/errors"
)

var classWidget = combridge.MustClassID("33333333-3333-3333-3333-333333333333")

func newWidgetRuntime() *comtest.Runtime {
	rt := comtest.New()
	rt.RegisterClass(classWidget, &comtest.Class{
		Caps:  []combridge.CapID{capWidget},
		Props: map[string]combridge.Value{"Name": combridge.StringValue("widget")},
	})
	return rt
}

func TestCreate(t *testing.T) {
	rt := newWidgetRuntime()

	h, err := Create[widgetCap](rt, classWidget, combridge.CreateInProcess)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !h.IsValid() {
		t.Fatal("created handle should be valid")
	}
	if rt.Refs(h.Raw()) != 1 {
		t.Fatalf("Refs = %d, want 1", rt.Refs(h.Raw()))
	}

	_ = h.Close()
	if rt.LiveObjects() != 0 {
		t.Fatalf("LiveObjects = %d, want 0", rt.LiveObjects())
	}
	assertNoViolations(t, rt)
}

func TestCreate_NilRuntime(t *testing.T) {
	_, err := Create[widgetCap](nil, classWidget, combridge.CreateInProcess)
	if !errors.Is(err, cberrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestCreate_UnknownClass(t *testing.T) {
	rt := comtest.New()

	_, err := Create[widgetCap](rt, classWidget, combridge.CreateInProcess)
	if !errors.Is(err, cberrors.ErrCreationFailed) {
		t.Fatalf("err = %v, want creation failed", err)
	}
}

func TestCreate_CapabilityNotExposed(t *testing.T) {
	rt := newWidgetRuntime()

	_, err := Create[gadgetCap](rt, classWidget, combridge.CreateInProcess)
	if !errors.Is(err, cberrors.ErrCreationFailed) {
		t.Fatalf("err = %v, want creation failed", err)
	}
	var ce *cberrors.Error
	if !errors.As(err, &ce) || ce.Status != combridge.StatusNoInterface {
		t.Fatalf("err = %v, want status StatusNoInterface", err)
	}
	if rt.LiveObjects() != 0 {
		t.Fatalf("LiveObjects = %d, want 0 after failed create", rt.LiveObjects())
	}
}

func TestCreate_Forced(t *testing.T) {
	rt := newWidgetRuntime()

	t.Run("generic failure", func(t *testing.T) {
		rt.FailNext(comtest.OpCreateObject, combridge.StatusFail)
		_, err := Create[widgetCap](rt, classWidget, combridge.CreateInProcess)
		if !errors.Is(err, cberrors.ErrCreationFailed) {
			t.Fatalf("err = %v, want creation failed", err)
		}
	})

	t.Run("out of memory", func(t *testing.T) {
		rt.FailNext(comtest.OpCreateObject, combridge.StatusOutOfMemory)
		_, err := Create[widgetCap](rt, classWidget, combridge.CreateInProcess)
		if !errors.Is(err, cberrors.ErrAllocation) {
			t.Fatalf("err = %v, want allocation", err)
		}
	})

	t.Run("success without object", func(t *testing.T) {
		rt.FailNext(comtest.OpCreateObject, combridge.StatusOK)
		_, err := Create[widgetCap](rt, classWidget, combridge.CreateInProcess)
		if !errors.Is(err, cberrors.ErrInvariant) {
			t.Fatalf("err = %v, want invariant", err)
		}
	})
}
