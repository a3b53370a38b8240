package firewall

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/object"
)

// Manager is the legacy firewall manager object.
type Manager struct {
	h *object.Handle[managerCap]
}

// NewManager creates the legacy firewall manager.
func NewManager(rt combridge.Runtime) (*Manager, error) {
	h, err := object.Create[managerCap](rt, ClassManager, combridge.CreateInProcess)
	if err != nil {
		return nil, err
	}
	return &Manager{h: h}, nil
}

func (m *Manager) Close() error {
	return m.h.Close()
}

// CurrentProfileType returns the profile the firewall currently
// applies.
func (m *Manager) CurrentProfileType() (ProfileType, error) {
	n, err := m.h.GetInt("CurrentProfileType")
	return ProfileType(n), err
}

// LocalPolicy returns the local legacy policy as a new owned handle.
func (m *Manager) LocalPolicy() (*Policy, error) {
	h, err := object.GetObject[policyCap](m.h, "LocalPolicy")
	if err != nil {
		return nil, err
	}
	return &Policy{h: h}, nil
}

// Policy is the legacy firewall policy.
type Policy struct {
	h *object.Handle[policyCap]
}

func (p *Policy) Close() error {
	return p.h.Close()
}

// CurrentProfile returns the currently applied profile.
func (p *Policy) CurrentProfile() (*Profile, error) {
	h, err := object.GetObject[profileCap](p.h, "CurrentProfile")
	if err != nil {
		return nil, err
	}
	return &Profile{h: h}, nil
}

// ProfileByType returns the profile of the given type.
func (p *Policy) ProfileByType(t ProfileType) (*Profile, error) {
	h, err := object.CallObject[profileCap](p.h, "GetProfileByType", combridge.IntValue(int64(t)))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	return &Profile{h: h}, nil
}

// Profile is one legacy firewall profile.
type Profile struct {
	h *object.Handle[profileCap]
}

func (p *Profile) Close() error {
	return p.h.Close()
}

// AuthorizedApplications returns the profile's application exception
// collection.
func (p *Profile) AuthorizedApplications() (*AuthorizedApplications, error) {
	h, err := object.GetObject[appsCap](p.h, "AuthorizedApplications")
	if err != nil {
		return nil, err
	}
	return &AuthorizedApplications{h: h}, nil
}

// AuthorizedApplications is the legacy application exception
// collection.
type AuthorizedApplications struct {
	h *object.Handle[appsCap]
}

func (a *AuthorizedApplications) Close() error {
	return a.h.Close()
}

// Add inserts an application exception. The collection keeps its own
// reference; the caller still owns app.
func (a *AuthorizedApplications) Add(app *AuthorizedApplication) error {
	return addToCollection(a.h, app.h)
}

// Remove deletes the exception for the given image file name.
func (a *AuthorizedApplications) Remove(imageFileName string) error {
	_, err := a.h.Call("Remove", combridge.StringValue(imageFileName))
	return err
}

// AuthorizedApplication is one legacy application exception.
type AuthorizedApplication struct {
	h *object.Handle[appCap]
}

// NewAuthorizedApplication creates a detached application exception.
func NewAuthorizedApplication(rt combridge.Runtime) (*AuthorizedApplication, error) {
	h, err := object.Create[appCap](rt, ClassAuthorizedApplication, combridge.CreateInProcess)
	if err != nil {
		return nil, err
	}
	return &AuthorizedApplication{h: h}, nil
}

func (a *AuthorizedApplication) Close() error {
	return a.h.Close()
}

func (a *AuthorizedApplication) IsEnabled() (bool, error) {
	return a.h.GetBool("Enabled")
}

func (a *AuthorizedApplication) SetEnabled(v bool) error {
	return a.h.PutBool("Enabled", v)
}

func (a *AuthorizedApplication) IPVersion() (int64, error) {
	return a.h.GetInt("IpVersion")
}

func (a *AuthorizedApplication) SetIPVersion(v int64) error {
	return a.h.PutInt("IpVersion", v)
}

func (a *AuthorizedApplication) Name() (string, error) {
	return a.h.GetString("Name")
}

func (a *AuthorizedApplication) SetName(v string) error {
	return a.h.PutString("Name", v)
}

func (a *AuthorizedApplication) ProcessImageFileName() (string, error) {
	return a.h.GetString("ProcessImageFileName")
}

func (a *AuthorizedApplication) SetProcessImageFileName(v string) error {
	return a.h.PutString("ProcessImageFileName", v)
}
