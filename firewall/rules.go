package firewall

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/object"
)

// Rules is the firewall rule collection.
type Rules struct {
	h *object.Handle[rulesCap]
}

func (r *Rules) Close() error {
	return r.h.Close()
}

// Add inserts a rule into the collection. The collection keeps its
// own reference; the caller still owns rule.
func (r *Rules) Add(rule *Rule) error {
	return addToCollection(r.h, rule.h)
}

// Remove deletes the named rule.
func (r *Rules) Remove(name string) error {
	_, err := r.h.Call("Remove", combridge.StringValue(name))
	return err
}

// Count returns the number of rules in the collection.
func (r *Rules) Count() (int64, error) {
	return r.h.GetInt("Count")
}

// Item retrieves the named rule as a new owned handle.
func (r *Rules) Item(name string) (*Rule, error) {
	h, err := object.CallObject[ruleCap](r.h, "Item", combridge.StringValue(name))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	return &Rule{h: h}, nil
}

func addToCollection[C, E object.Capability](col *object.Handle[C], elem *object.Handle[E]) error {
	_, err := col.Call("Add", combridge.ObjectValue(elem.Raw()))
	return err
}

// Rule is one firewall rule.
type Rule struct {
	h *object.Handle[ruleCap]
}

// NewRule creates a detached rule object, to be configured and added
// to a Rules collection.
func NewRule(rt combridge.Runtime) (*Rule, error) {
	h, err := object.Create[ruleCap](rt, ClassRule, combridge.CreateInProcess)
	if err != nil {
		return nil, err
	}
	return &Rule{h: h}, nil
}

func (r *Rule) Close() error {
	return r.h.Close()
}

func (r *Rule) Name() (string, error) {
	return r.h.GetString("Name")
}

func (r *Rule) SetName(v string) error {
	return r.h.PutString("Name", v)
}

func (r *Rule) Description() (string, error) {
	return r.h.GetString("Description")
}

func (r *Rule) SetDescription(v string) error {
	return r.h.PutString("Description", v)
}

func (r *Rule) ApplicationName() (string, error) {
	return r.h.GetString("ApplicationName")
}

func (r *Rule) SetApplicationName(imageFileName string) error {
	return r.h.PutString("ApplicationName", imageFileName)
}

func (r *Rule) Grouping() (string, error) {
	return r.h.GetString("Grouping")
}

func (r *Rule) SetGrouping(context string) error {
	return r.h.PutString("Grouping", context)
}

func (r *Rule) InterfaceTypes() (string, error) {
	return r.h.GetString("InterfaceTypes")
}

func (r *Rule) SetInterfaceTypes(v string) error {
	return r.h.PutString("InterfaceTypes", v)
}

func (r *Rule) RemoteAddresses() (string, error) {
	return r.h.GetString("RemoteAddresses")
}

func (r *Rule) SetRemoteAddresses(v string) error {
	return r.h.PutString("RemoteAddresses", v)
}

func (r *Rule) RemotePorts() (string, error) {
	return r.h.GetString("RemotePorts")
}

func (r *Rule) SetRemotePorts(v string) error {
	return r.h.PutString("RemotePorts", v)
}

func (r *Rule) Profiles() (ProfileMask, error) {
	n, err := r.h.GetInt("Profiles")
	return ProfileMask(n), err
}

func (r *Rule) SetProfiles(mask ProfileMask) error {
	return r.h.PutInt("Profiles", int64(mask))
}

func (r *Rule) Protocol() (int64, error) {
	return r.h.GetInt("Protocol")
}

func (r *Rule) SetProtocol(v int64) error {
	return r.h.PutInt("Protocol", v)
}

func (r *Rule) IsEnabled() (bool, error) {
	return r.h.GetBool("Enabled")
}

func (r *Rule) SetEnabled(v bool) error {
	return r.h.PutBool("Enabled", v)
}
