package firewall

import (
	"testing"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
)

// newPolicyRuntime builds a runtime exposing the modern policy object
// with a working rule collection and rule-group state.
func newPolicyRuntime() *comtest.Runtime {
	rt := comtest.New()

	store := make(map[string]combridge.Raw)
	groups := make(map[string]bool)

	rules := rt.NewObject(CapRules)
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

	rt.RegisterClass(ClassPolicy2, &comtest.Class{
		Caps: []combridge.CapID{CapPolicy2},
		Props: map[string]combridge.Value{
			"Rules":                  combridge.ObjectValue(rules),
			"CurrentProfileTypes":    combridge.IntValue(int64(MaskPublic)),
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

	rt.RegisterClass(ClassRule, &comtest.Class{
		Caps: []combridge.CapID{CapRule},
		Props: map[string]combridge.Value{
			"Name":        combridge.StringValue(""),
			"Description": combridge.StringValue(""),
			"Enabled":     combridge.BoolValue(false),
			"Profiles":    combridge.IntValue(int64(MaskAll)),
			"Protocol":    combridge.IntValue(6),
		},
	})

	return rt
}

func assertNoViolations(t *testing.T, rt *comtest.Runtime) {
	t.Helper()
	if v := rt.Violations(); len(v) != 0 {
		t.Fatalf("boundary violations: %v", v)
	}
}

func TestPolicy2_RuleCollection(t *testing.T) {
	rt := newPolicyRuntime()

	policy, err := NewPolicy2(rt)
	if err != nil {
		t.Fatalf("NewPolicy2: %v", err)
	}
	rules, err := policy.Rules()
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}

	rule, err := NewRule(rt)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	if err := rule.SetName("Allow web"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := rule.SetRemotePorts("80,443"); err != nil {
		t.Fatalf("SetRemotePorts: %v", err)
	}
	if err := rule.SetEnabled(true); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if err := rules.Add(rule); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// The collection took its own reference; ours is still required for
	// further configuration and released independently.
	_ = rule.Close()

	n, err := rules.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}

	got, err := rules.Item("Allow web")
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if got == nil {
		t.Fatal("Item returned no rule")
	}
	ports, err := got.RemotePorts()
	if err != nil {
		t.Fatalf("RemotePorts: %v", err)
	}
	if ports != "80,443" {
		t.Errorf("RemotePorts = %q, want %q", ports, "80,443")
	}
	_ = got.Close()

	if err := rules.Remove("Allow web"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	missing, err := rules.Item("Allow web")
	if err != nil {
		t.Fatalf("Item after remove: %v", err)
	}
	if missing != nil {
		t.Fatal("removed rule should not be found")
	}

	_ = rules.Close()
	_ = policy.Close()
	assertNoViolations(t, rt)
	// All text buffers handed across the boundary were freed.
	if rt.LiveBuffers() != 0 {
		t.Fatalf("LiveBuffers = %d, want 0", rt.LiveBuffers())
	}
}

func TestPolicy2_RuleGroups(t *testing.T) {
	rt := newPolicyRuntime()
	policy, err := NewPolicy2(rt)
	if err != nil {
		t.Fatalf("NewPolicy2: %v", err)
	}
	defer policy.Close()

	enabled, err := policy.IsRuleGroupCurrentlyEnabled("Remote Desktop")
	if err != nil {
		t.Fatalf("IsRuleGroupCurrentlyEnabled: %v", err)
	}
	if enabled {
		t.Fatal("group should start disabled")
	}

	if err := policy.EnableRuleGroup(MaskAll, "Remote Desktop", true); err != nil {
		t.Fatalf("EnableRuleGroup: %v", err)
	}
	enabled, err = policy.IsRuleGroupEnabled(MaskPublic, "Remote Desktop")
	if err != nil {
		t.Fatalf("IsRuleGroupEnabled: %v", err)
	}
	if !enabled {
		t.Fatal("group should be enabled")
	}
	assertNoViolations(t, rt)
}

func TestPolicy2_State(t *testing.T) {
	rt := newPolicyRuntime()
	policy, err := NewPolicy2(rt)
	if err != nil {
		t.Fatalf("NewPolicy2: %v", err)
	}
	defer policy.Close()

	mask, err := policy.CurrentProfileTypes()
	if err != nil {
		t.Fatalf("CurrentProfileTypes: %v", err)
	}
	if mask != MaskPublic {
		t.Errorf("CurrentProfileTypes = %v, want MaskPublic", mask)
	}

	on, err := policy.IsFirewallEnabled(MaskPublic)
	if err != nil {
		t.Fatalf("IsFirewallEnabled: %v", err)
	}
	if !on {
		t.Error("firewall should report enabled")
	}

	state, err := policy.LocalPolicyModifyState()
	if err != nil {
		t.Fatalf("LocalPolicyModifyState: %v", err)
	}
	if state != 1 {
		t.Errorf("LocalPolicyModifyState = %d, want 1", state)
	}
}

// newLegacyRuntime seeds the legacy manager object chain.
func newLegacyRuntime() *comtest.Runtime {
	rt := comtest.New()

	exceptions := make(map[string]combridge.Raw)

	apps := rt.NewObject(CapAuthorizedApplications)
	rt.SetOnCall(apps, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
		switch method {
		case "Add":
			raw, ok := args[0].Object()
			if !ok {
				return nil, combridge.StatusPointer
			}
			imageVal, _ := r.PropValue(raw, "ProcessImageFileName")
			image, _ := imageVal.Str()
			exceptions[image] = r.Retain(raw)
			return nil, combridge.StatusOK
		case "Remove":
			image, _ := args[0].Str()
			raw, ok := exceptions[image]
			if !ok {
				return nil, combridge.StatusFail
			}
			delete(exceptions, image)
			r.Release(raw)
			return nil, combridge.StatusOK
		}
		return nil, combridge.StatusNotImplemented
	})

	profile := rt.NewObject(CapProfile)
	rt.SetProp(profile, "AuthorizedApplications", combridge.ObjectValue(apps))

	policy := rt.NewObject(CapPolicy)
	rt.SetProp(policy, "CurrentProfile", combridge.ObjectValue(profile))
	rt.SetOnCall(policy, func(r *comtest.Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status) {
		if method == "GetProfileByType" {
			return []combridge.Value{combridge.ObjectValue(r.Retain(profile))}, combridge.StatusOK
		}
		return nil, combridge.StatusNotImplemented
	})

	rt.RegisterClass(ClassManager, &comtest.Class{
		Caps: []combridge.CapID{CapManager},
		Props: map[string]combridge.Value{
			"LocalPolicy":        combridge.ObjectValue(policy),
			"CurrentProfileType": combridge.IntValue(int64(ProfileStandard)),
		},
	})
	rt.RegisterClass(ClassAuthorizedApplication, &comtest.Class{
		Caps: []combridge.CapID{CapAuthorizedApplication},
		Props: map[string]combridge.Value{
			"Name":                 combridge.StringValue(""),
			"ProcessImageFileName": combridge.StringValue(""),
			"Enabled":              combridge.BoolValue(false),
			"IpVersion":            combridge.IntValue(2),
		},
	})

	return rt
}

func TestManager_LegacyChain(t *testing.T) {
	rt := newLegacyRuntime()

	mgr, err := NewManager(rt)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	pt, err := mgr.CurrentProfileType()
	if err != nil {
		t.Fatalf("CurrentProfileType: %v", err)
	}
	if pt != ProfileStandard {
		t.Errorf("CurrentProfileType = %v, want ProfileStandard", pt)
	}

	policy, err := mgr.LocalPolicy()
	if err != nil {
		t.Fatalf("LocalPolicy: %v", err)
	}
	profile, err := policy.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile: %v", err)
	}
	apps, err := profile.AuthorizedApplications()
	if err != nil {
		t.Fatalf("AuthorizedApplications: %v", err)
	}

	app, err := NewAuthorizedApplication(rt)
	if err != nil {
		t.Fatalf("NewAuthorizedApplication: %v", err)
	}
	if err := app.SetName("Demo"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := app.SetProcessImageFileName(`C:\demo\demo.exe`); err != nil {
		t.Fatalf("SetProcessImageFileName: %v", err)
	}
	if err := app.SetEnabled(true); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if err := apps.Add(app); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_ = app.Close()

	if err := apps.Remove(`C:\demo\demo.exe`); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	_ = apps.Close()
	_ = profile.Close()
	_ = policy.Close()
	_ = mgr.Close()
	assertNoViolations(t, rt)
}

func TestPolicy_ProfileByType(t *testing.T) {
	rt := newLegacyRuntime()
	mgr, err := NewManager(rt)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer mgr.Close()

	policy, err := mgr.LocalPolicy()
	if err != nil {
		t.Fatalf("LocalPolicy: %v", err)
	}
	defer policy.Close()

	profile, err := policy.ProfileByType(ProfileDomain)
	if err != nil {
		t.Fatalf("ProfileByType: %v", err)
	}
	if profile == nil {
		t.Fatal("ProfileByType returned no profile")
	}
	_ = profile.Close()
	assertNoViolations(t, rt)
}
