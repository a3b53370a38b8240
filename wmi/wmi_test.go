package wmi

import (
	"errors"
	"testing"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
	cberrors "github.com/wippyai/combridge/errors"
)

type process struct {
	name string
	pid  int64
}

// newInstrumentationRuntime seeds a locator whose queries enumerate a
// fixed set of process result objects.
func newInstrumentationRuntime(procs []process) *comtest.Runtime {
	rt := comtest.New()

	newResult := func(r *comtest.Runtime, p process) combridge.Raw {
		raw := r.NewObject(CapClassObject)
		r.SetOnCall(raw, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "Get" {
				return nil, combridge.StatusNotImplemented
			}
			name, _ := args[0].Str()
			switch name {
			case "Name":
				return []combridge.Value{
					combridge.BufferValue(r.NewStringBuffer(p.name)),
					combridge.IntValue(8), // CIM string
					combridge.IntValue(0),
				}, combridge.StatusOK
			case "ProcessId":
				return []combridge.Value{
					combridge.IntValue(p.pid),
					combridge.IntValue(19), // CIM uint32
					combridge.IntValue(0),
				}, combridge.StatusOK
			}
			return nil, combridge.StatusUnknownName
		})
		return raw
	}

	newEnum := func(r *comtest.Runtime) combridge.Raw {
		next := 0
		raw := r.NewObject(CapObjectEnum)
		r.SetOnCall(raw, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "Next" {
				return nil, combridge.StatusNotImplemented
			}
			if next >= len(procs) {
				// Exhausted: the negative result with no output.
				return nil, combridge.StatusFalse
			}
			p := procs[next]
			next++
			return []combridge.Value{combridge.ObjectValue(newResult(r, p))}, combridge.StatusOK
		})
		return raw
	}

	newServices := func(r *comtest.Runtime) combridge.Raw {
		raw := r.NewObject(CapServices)
		r.SetOnCall(raw, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "ExecQuery" {
				return nil, combridge.StatusNotImplemented
			}
			return []combridge.Value{combridge.ObjectValue(newEnum(r))}, combridge.StatusOK
		})
		return raw
	}

	rt.RegisterClass(ClassLocator, &comtest.Class{
		Caps: []combridge.CapID{CapLocator},
		OnCall: func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "ConnectServer" {
				return nil, combridge.StatusNotImplemented
			}
			return []combridge.Value{combridge.ObjectValue(newServices(r))}, combridge.StatusOK
		},
	})

	return rt
}

func TestQueryEnumeration(t *testing.T) {
	rt := newInstrumentationRuntime([]process{
		{name: "init", pid: 1},
		{name: "sshd", pid: 742},
	})

	loc, err := NewLocator(rt)
	if err != nil {
		t.Fatalf("NewLocator: %v", err)
	}
	svc, err := loc.ConnectServer(`ROOT\CIMV2`, "", "", "", 0, "")
	if err != nil {
		t.Fatalf("ConnectServer: %v", err)
	}
	enum, err := svc.ExecQuery("SELECT * FROM Win32_Process")
	if err != nil {
		t.Fatalf("ExecQuery: %v", err)
	}

	var names []string
	var pids []int64
	for {
		obj, err := enum.Next(Infinite)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if obj == nil {
			break
		}
		name, err := obj.StringProperty("Name")
		if err != nil {
			t.Fatalf("StringProperty: %v", err)
		}
		p, err := obj.Property("ProcessId")
		if err != nil {
			t.Fatalf("Property: %v", err)
		}
		pid, _ := p.Value.Int()
		names = append(names, name)
		pids = append(pids, pid)
		_ = obj.Close()
	}

	if len(names) != 2 || names[0] != "init" || names[1] != "sshd" {
		t.Fatalf("names = %v, want [init sshd]", names)
	}
	if pids[0] != 1 || pids[1] != 742 {
		t.Fatalf("pids = %v, want [1 742]", pids)
	}

	_ = enum.Close()
	_ = svc.Close()
	_ = loc.Close()
	if rt.LiveObjects() != 0 {
		t.Fatalf("LiveObjects = %d, want 0", rt.LiveObjects())
	}
	if rt.LiveBuffers() != 0 {
		t.Fatalf("LiveBuffers = %d, want 0", rt.LiveBuffers())
	}
	if v := rt.Violations(); len(v) != 0 {
		t.Fatalf("boundary violations: %v", v)
	}
}

func TestNext_TimeoutWithoutItem(t *testing.T) {
	rt := newInstrumentationRuntime(nil)

	loc, _ := NewLocator(rt)
	defer loc.Close()
	svc, _ := loc.ConnectServer(`ROOT\CIMV2`, "", "", "", 0, "")
	defer svc.Close()
	enum, err := svc.ExecQuery("SELECT * FROM Win32_Process")
	if err != nil {
		t.Fatalf("ExecQuery: %v", err)
	}
	defer enum.Close()

	// No item within the timeout is a normal outcome, not an error.
	obj, err := enum.Next(0)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if obj != nil {
		t.Fatal("expected no item")
	}
}

func TestConnectServer_Errors(t *testing.T) {
	rt := newInstrumentationRuntime(nil)
	loc, err := NewLocator(rt)
	if err != nil {
		t.Fatalf("NewLocator: %v", err)
	}
	defer loc.Close()

	if _, err := loc.ConnectServer("", "", "", "", 0, ""); !errors.Is(err, cberrors.ErrInvalidArgument) {
		t.Errorf("empty resource: err = %v, want invalid argument", err)
	}

	rt.FailNext(comtest.OpCall, combridge.StatusFail)
	_, err = loc.ConnectServer(`ROOT\CIMV2`, "", "", "", 0, "")
	if !errors.Is(err, cberrors.ErrForeignCall) {
		t.Fatalf("err = %v, want foreign call", err)
	}
	var ce *cberrors.Error
	if !errors.As(err, &ce) || ce.Op != `connect to ROOT\CIMV2` {
		t.Fatalf("err = %v, want operation naming the resource", err)
	}

	rt.FailNext(comtest.OpCall, combridge.StatusOutOfMemory)
	_, err = loc.ConnectServer(`ROOT\CIMV2`, "", "", "", 0, "")
	if !errors.Is(err, cberrors.ErrAllocation) {
		t.Fatalf("err = %v, want allocation", err)
	}
}

func TestExecQuery_EmptyQuery(t *testing.T) {
	rt := newInstrumentationRuntime(nil)
	loc, _ := NewLocator(rt)
	defer loc.Close()
	svc, _ := loc.ConnectServer(`ROOT\CIMV2`, "", "", "", 0, "")
	defer svc.Close()

	if _, err := svc.ExecQuery(""); !errors.Is(err, cberrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
