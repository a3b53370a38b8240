package main

import (
	"fmt"
	"io"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
	"github.com/wippyai/combridge/firewall"
	"github.com/wippyai/combridge/object"
	"github.com/wippyai/combridge/rdp"
	"github.com/wippyai/combridge/rdpts"
	"github.com/wippyai/combridge/wmi"
)

// demoClass is one creatable class of the demo runtime, for -list.
type demoClass struct {
	id   combridge.ClassID
	name string
}

var demoClasses = []demoClass{
	{firewall.ClassPolicy2, "firewall policy"},
	{firewall.ClassRule, "firewall rule"},
	{wmi.ClassLocator, "instrumentation locator"},
	{rdpts.ClassClient, "terminal-services client"},
	{rdp.ClassSharingSession, "desktop sharing session"},
	{rdp.ClassViewer, "desktop sharing viewer"},
}

// newDemoRuntime seeds an in-memory runtime with every class the
// façade packages wrap, backed by small stateful implementations.
func newDemoRuntime() *comtest.Runtime {
	rt := comtest.New()
	seedFirewall(rt)
	seedInstrumentation(rt)
	seedTerminalServices(rt)
	seedSharing(rt)
	return rt
}

func seedFirewall(rt *comtest.Runtime) {
	store := make(map[string]combridge.Raw)
	groups := make(map[string]bool)

	rules := rt.NewObject(firewall.CapRules)
	rt.SetProp(rules, "Count", combridge.IntValue(0))
	rt.SetOnCall(rules, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
		switch method {
		case "Add":
			raw, ok := args[0].Object()
			if !ok {
				return nil, combridge.StatusPointer
			}
			nameVal, _ := r.PropValue(raw, "Name")
			name, _ := nameVal.Str()
			store[name] = r.Retain(raw)
			r.SetProp(obj, "Count", combridge.IntValue(int64(len(store))))
			return nil, combridge.StatusOK
		case "Remove":
			name, _ := args[0].Str()
			raw, ok := store[name]
			if !ok {
				return nil, combridge.StatusFail
			}
			delete(store, name)
			r.Release(raw)
			r.SetProp(obj, "Count", combridge.IntValue(int64(len(store))))
			return nil, combridge.StatusOK
		case "Item":
			name, _ := args[0].Str()
			raw, ok := store[name]
			if !ok {
				return nil, combridge.StatusFalse
			}
			return []combridge.Value{combridge.ObjectValue(r.Retain(raw))}, combridge.StatusOK
		}
		return nil, combridge.StatusNotImplemented
	})

	rt.RegisterClass(firewall.ClassPolicy2, &comtest.Class{
		Caps: []combridge.CapID{firewall.CapPolicy2},
		Props: map[string]combridge.Value{
			"Rules":                  combridge.ObjectValue(rules),
			"CurrentProfileTypes":    combridge.IntValue(int64(firewall.MaskPublic)),
			"LocalPolicyModifyState": combridge.IntValue(1),
		},
		OnCall: func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			switch method {
			case "EnableRuleGroup":
				group, _ := args[1].Str()
				enabled, _ := args[2].Bool()
				groups[group] = enabled
				return nil, combridge.StatusOK
			case "IsRuleGroupCurrentlyEnabled", "IsRuleGroupEnabled":
				group, _ := args[len(args)-1].Str()
				return []combridge.Value{combridge.BoolValue(groups[group])}, combridge.StatusOK
			case "FirewallEnabled":
				return []combridge.Value{combridge.BoolValue(true)}, combridge.StatusOK
			}
			return nil, combridge.StatusNotImplemented
		},
	})
	rt.RegisterClass(firewall.ClassRule, &comtest.Class{
		Caps: []combridge.CapID{firewall.CapRule},
		Props: map[string]combridge.Value{
			"Name":        combridge.StringValue(""),
			"Description": combridge.StringValue(""),
			"Enabled":     combridge.BoolValue(false),
			"Profiles":    combridge.IntValue(int64(firewall.MaskAll)),
			"Protocol":    combridge.IntValue(6),
		},
	})
}

func seedInstrumentation(rt *comtest.Runtime) {
	type row struct {
		name string
		pid  int64
	}
	rows := []row{
		{"System", 4},
		{"winlogon.exe", 612},
		{"rdpclip.exe", 2144},
	}

	newResult := func(r *comtest.Runtime, it row) combridge.Raw {
		raw := r.NewObject(wmi.CapClassObject)
		r.SetOnCall(raw, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "Get" {
				return nil, combridge.StatusNotImplemented
			}
			name, _ := args[0].Str()
			switch name {
			case "Name":
				return []combridge.Value{
					combridge.BufferValue(r.NewStringBuffer(it.name)),
					combridge.IntValue(8),
					combridge.IntValue(0),
				}, combridge.StatusOK
			case "ProcessId":
				return []combridge.Value{
					combridge.IntValue(it.pid),
					combridge.IntValue(19),
					combridge.IntValue(0),
				}, combridge.StatusOK
			}
			return nil, combridge.StatusUnknownName
		})
		return raw
	}

	newEnum := func(r *comtest.Runtime) combridge.Raw {
		next := 0
		raw := r.NewObject(wmi.CapObjectEnum)
		r.SetOnCall(raw, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "Next" {
				return nil, combridge.StatusNotImplemented
			}
			if next >= len(rows) {
				return nil, combridge.StatusFalse
			}
			it := rows[next]
			next++
			return []combridge.Value{combridge.ObjectValue(newResult(r, it))}, combridge.StatusOK
		})
		return raw
	}

	rt.RegisterClass(wmi.ClassLocator, &comtest.Class{
		Caps: []combridge.CapID{wmi.CapLocator},
		OnCall: func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			if method != "ConnectServer" {
				return nil, combridge.StatusNotImplemented
			}
			svc := r.NewObject(wmi.CapServices)
			r.SetOnCall(svc, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
				if method != "ExecQuery" {
					return nil, combridge.StatusNotImplemented
				}
				return []combridge.Value{combridge.ObjectValue(newEnum(r))}, combridge.StatusOK
			})
			return []combridge.Value{combridge.ObjectValue(svc)}, combridge.StatusOK
		},
	})
}

func seedTerminalServices(rt *comtest.Runtime) {
	advanced := rt.NewObject(rdpts.CapAdvancedSettings)
	rt.SetProp(advanced, "RDPPort", combridge.IntValue(3389))
	rt.SetProp(advanced, "SmartSizing", combridge.BoolValue(false))

	rt.RegisterClass(rdpts.ClassClient, &comtest.Class{
		Caps: []combridge.CapID{rdpts.CapClient},
		Props: map[string]combridge.Value{
			"Server":           combridge.StringValue(""),
			"Connected":        combridge.IntValue(int64(rdpts.Disconnected)),
			"AdvancedSettings": combridge.ObjectValue(advanced),
		},
		OnCall: func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
			switch method {
			case "Connect":
				r.SetProp(obj, "Connected", combridge.IntValue(int64(rdpts.Connected)))
				return nil, combridge.StatusOK
			case "Disconnect":
				r.SetProp(obj, "Connected", combridge.IntValue(int64(rdpts.Disconnected)))
				return nil, combridge.StatusOK
			}
			return nil, combridge.StatusNotImplemented
		},
	})
}

func seedSharing(rt *comtest.Runtime) {
	invitations := rt.NewObject(rdp.CapInvitationManager)
	rt.SetOnCall(invitations, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
		if method != "CreateInvitation" {
			return nil, combridge.StatusNotImplemented
		}
		group, _ := args[1].Str()
		inv := r.NewObject(rdp.CapInvitation)
		r.SetProp(inv, "ConnectionString", combridge.StringValue("rdp-invite:"+group))
		return []combridge.Value{combridge.ObjectValue(inv)}, combridge.StatusOK
	})

	attendees := rt.NewObject(rdp.CapAttendeeManager)
	properties := rt.NewObject(rdp.CapSessionProperties)

	sessionCall := func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
		switch method {
		case "Open", "Close", "Pause", "Resume",
			"Connect", "Disconnect", "RequestControl":
			return nil, combridge.StatusOK
		}
		return nil, combridge.StatusNotImplemented
	}

	rt.RegisterClass(rdp.ClassSharingSession, &comtest.Class{
		Caps: []combridge.CapID{rdp.CapSharingSession, combridge.CapConnectionContainer},
		Props: map[string]combridge.Value{
			"Invitations": combridge.ObjectValue(invitations),
			"Attendees":   combridge.ObjectValue(attendees),
			"Properties":  combridge.ObjectValue(properties),
		},
		OnCall: sessionCall,
	})
	rt.RegisterClass(rdp.ClassViewer, &comtest.Class{
		Caps: []combridge.CapID{rdp.CapViewer, combridge.CapConnectionContainer},
		Props: map[string]combridge.Value{
			"Properties": combridge.ObjectValue(properties),
		},
		OnCall: sessionCall,
	})
}

// runFirewallScenario exercises the policy and rule collection end to
// end and prints what it does.
func runFirewallScenario(w io.Writer, rt *comtest.Runtime) error {
	lib, err := object.OpenLibrary(rt)
	if err != nil {
		return err
	}
	defer lib.Close()

	policy, err := firewall.NewPolicy2(rt)
	if err != nil {
		return err
	}
	defer policy.Close()

	mask, err := policy.CurrentProfileTypes()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "active profiles: %#x\n", int64(mask))

	rules, err := policy.Rules()
	if err != nil {
		return err
	}
	defer rules.Close()

	rule, err := firewall.NewRule(rt)
	if err != nil {
		return err
	}
	defer rule.Close()
	if err := rule.SetName("Allow web"); err != nil {
		return err
	}
	if err := rule.SetRemotePorts("80,443"); err != nil {
		return err
	}
	if err := rule.SetEnabled(true); err != nil {
		return err
	}
	if err := rules.Add(rule); err != nil {
		return err
	}

	n, err := rules.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "rules after add: %d\n", n)

	if err := policy.EnableRuleGroup(firewall.MaskAll, "Remote Desktop", true); err != nil {
		return err
	}
	on, err := policy.IsRuleGroupCurrentlyEnabled("Remote Desktop")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "remote desktop group enabled: %v\n", on)
	return nil
}

// runQueryScenario connects to the demo namespace and enumerates the
// process query results.
func runQueryScenario(w io.Writer, rt *comtest.Runtime) error {
	lib, err := object.OpenLibrary(rt)
	if err != nil {
		return err
	}
	defer lib.Close()

	loc, err := wmi.NewLocator(rt)
	if err != nil {
		return err
	}
	defer loc.Close()

	svc, err := loc.ConnectServer(`ROOT\CIMV2`, "", "", "", 0, "")
	if err != nil {
		return err
	}
	defer svc.Close()

	enum, err := svc.ExecQuery("SELECT * FROM Win32_Process")
	if err != nil {
		return err
	}
	defer enum.Close()

	for {
		obj, err := enum.Next(wmi.Infinite)
		if err != nil {
			return err
		}
		if obj == nil {
			return nil
		}
		name, err := obj.StringProperty("Name")
		if err != nil {
			obj.Close()
			return err
		}
		p, err := obj.Property("ProcessId")
		if err != nil {
			obj.Close()
			return err
		}
		pid, _ := p.Value.Int()
		fmt.Fprintf(w, "%6d  %s\n", pid, name)
		obj.Close()
	}
}
