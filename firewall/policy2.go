package firewall

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/object"
)

// Policy2 is the modern firewall policy object.
type Policy2 struct {
	h *object.Handle[policy2Cap]
}

// NewPolicy2 creates the firewall policy object.
func NewPolicy2(rt combridge.Runtime) (*Policy2, error) {
	h, err := object.Create[policy2Cap](rt, ClassPolicy2, combridge.CreateInProcess)
	if err != nil {
		return nil, err
	}
	return &Policy2{h: h}, nil
}

func (p *Policy2) Close() error {
	return p.h.Close()
}

// EnableRuleGroup toggles the named group of rules on the profiles
// selected by mask.
func (p *Policy2) EnableRuleGroup(mask ProfileMask, group string, enabled bool) error {
	_, err := p.h.Call("EnableRuleGroup",
		combridge.IntValue(int64(mask)),
		combridge.StringValue(group),
		combridge.BoolValue(enabled))
	return err
}

// IsRuleGroupCurrentlyEnabled reports the group's state on the
// currently active profiles.
func (p *Policy2) IsRuleGroupCurrentlyEnabled(group string) (bool, error) {
	return callBool(p.h, "IsRuleGroupCurrentlyEnabled", combridge.StringValue(group))
}

// IsRuleGroupEnabled reports the group's state on one profile.
func (p *Policy2) IsRuleGroupEnabled(mask ProfileMask, group string) (bool, error) {
	return callBool(p.h, "IsRuleGroupEnabled",
		combridge.IntValue(int64(mask)), combridge.StringValue(group))
}

// CurrentProfileTypes returns the bitmask of currently active
// profiles.
func (p *Policy2) CurrentProfileTypes() (ProfileMask, error) {
	n, err := p.h.GetInt("CurrentProfileTypes")
	return ProfileMask(n), err
}

// IsFirewallEnabled reports whether the firewall is enabled on the
// given profile.
func (p *Policy2) IsFirewallEnabled(mask ProfileMask) (bool, error) {
	return callBool(p.h, "FirewallEnabled", combridge.IntValue(int64(mask)))
}

// LocalPolicyModifyState reports whether local policy changes take
// effect.
func (p *Policy2) LocalPolicyModifyState() (int64, error) {
	return p.h.GetInt("LocalPolicyModifyState")
}

// Rules returns the policy's rule collection as a new owned handle.
func (p *Policy2) Rules() (*Rules, error) {
	h, err := object.GetObject[rulesCap](p.h, "Rules")
	if err != nil {
		return nil, err
	}
	return &Rules{h: h}, nil
}

func callBool[C object.Capability](h *object.Handle[C], method string, args ...combridge.Value) (bool, error) {
	out, err := h.Call(method, args...)
	if err != nil {
		return false, err
	}
	if len(out) == 1 {
		if b, ok := out[0].Bool(); ok {
			return b, nil
		}
	}
	return false, nil
}
