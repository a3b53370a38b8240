package rdpts

import (
	"testing"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
)

func newClientRuntime() *comtest.Runtime {
	rt := comtest.New()

	advanced := rt.NewObject(CapAdvancedSettings)
	rt.SetProp(advanced, "RDPPort", combridge.IntValue(3389))
	rt.SetProp(advanced, "SmartSizing", combridge.BoolValue(false))

	rt.RegisterClass(ClassClient, &comtest.Class{
		Caps: []combridge.CapID{CapClient},
		Props: map[string]combridge.Value{
			"Server":           combridge.StringValue(""),
			"Connected":        combridge.IntValue(int64(Disconnected)),
			"AdvancedSettings": combridge.ObjectValue(advanced),
		},
		OnCall: func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			switch method {
			case "Connect":
				r.SetProp(obj, "Connected", combridge.IntValue(int64(Connected)))
				return nil, combridge.StatusOK
			case "Disconnect":
				r.SetProp(obj, "Connected", combridge.IntValue(int64(Disconnected)))
				return nil, combridge.StatusOK
			}
			return nil, combridge.StatusNotImplemented
		},
	})

	return rt
}

func TestClient_ConnectLifecycle(t *testing.T) {
	rt := newClientRuntime()

	c, err := NewClient(rt)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := c.SetServer("desk01.example.net"); err != nil {
		t.Fatalf("SetServer: %v", err)
	}
	server, err := c.Server()
	if err != nil {
		t.Fatalf("Server: %v", err)
	}
	if server != "desk01.example.net" {
		t.Errorf("Server = %q, want %q", server, "desk01.example.net")
	}

	state, err := c.ConnectionState()
	if err != nil {
		t.Fatalf("ConnectionState: %v", err)
	}
	if state != Disconnected {
		t.Errorf("state = %v, want Disconnected", state)
	}

	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	state, _ = c.ConnectionState()
	if state != Connected {
		t.Errorf("state = %v, want Connected", state)
	}

	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	state, _ = c.ConnectionState()
	if state != Disconnected {
		t.Errorf("state = %v, want Disconnected", state)
	}

	_ = c.Close()
	if v := rt.Violations(); len(v) != 0 {
		t.Fatalf("boundary violations: %v", v)
	}
	if rt.LiveBuffers() != 0 {
		t.Fatalf("LiveBuffers = %d, want 0", rt.LiveBuffers())
	}
}

func TestClient_AdvancedSettings(t *testing.T) {
	rt := newClientRuntime()
	c, err := NewClient(rt)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	adv, err := c.AdvancedSettings()
	if err != nil {
		t.Fatalf("AdvancedSettings: %v", err)
	}
	defer adv.Close()

	port, err := adv.Port()
	if err != nil {
		t.Fatalf("Port: %v", err)
	}
	if port != 3389 {
		t.Errorf("Port = %d, want 3389", port)
	}

	if err := adv.SetPort(13389); err != nil {
		t.Fatalf("SetPort: %v", err)
	}
	port, _ = adv.Port()
	if port != 13389 {
		t.Errorf("Port = %d, want 13389", port)
	}

	if err := adv.SetSmartSizing(true); err != nil {
		t.Fatalf("SetSmartSizing: %v", err)
	}
	on, err := adv.SmartSizing()
	if err != nil {
		t.Fatalf("SmartSizing: %v", err)
	}
	if !on {
		t.Error("SmartSizing = false, want true")
	}
}
