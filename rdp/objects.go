package rdp

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
	"github.com/wippyai/combridge/object"
)

// InvitationManager issues invitations to a shared session.
type InvitationManager struct {
	h *object.Handle[invitationManagerCap]
}

func (m *InvitationManager) Close() error {
	return m.h.Close()
}

// CreateInvitation issues an invitation for up to limit attendees in
// the given group, protected by password.
func (m *InvitationManager) CreateInvitation(group, password string, limit int64) (*Invitation, error) {
	const op = "create session invitation"
	out, err := m.h.CallOp(op, "CreateInvitation",
		combridge.StringValue(""),
		combridge.StringValue(group),
		combridge.StringValue(password),
		combridge.IntValue(limit))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Invariant(op)
	}
	raw, ok := out[0].Object()
	if !ok {
		return nil, errors.Invariant(op)
	}
	h, err := object.Adopt[invitationCap](m.h.RuntimeHandle(), raw)
	if err != nil {
		return nil, err
	}
	return &Invitation{h: h}, nil
}

// Invitation is one issued session invitation.
type Invitation struct {
	h *object.Handle[invitationCap]
}

func (i *Invitation) Close() error {
	return i.h.Close()
}

// ConnectionString returns the string a Client passes to Open,
// taking ownership of the buffer carrying it.
func (i *Invitation) ConnectionString() (string, error) {
	return i.h.GetString("ConnectionString")
}

// AttendeeManager tracks the attendees of a shared session.
type AttendeeManager struct {
	h *object.Handle[attendeeManagerCap]
}

func (m *AttendeeManager) Close() error {
	return m.h.Close()
}

// Attendee is one participant in a shared session. Attendee
// references typically arrive through session event notifications.
type Attendee struct {
	h *object.Handle[attendeeCap]
}

// AdoptAttendee takes ownership of an attendee reference delivered in
// a notification argument.
func AdoptAttendee(rt combridge.Runtime, raw combridge.Raw) (*Attendee, error) {
	h, err := object.Adopt[attendeeCap](rt, raw)
	if err != nil {
		return nil, err
	}
	return &Attendee{h: h}, nil
}

func (a *Attendee) Close() error {
	return a.h.Close()
}

// SetControlLevel grants or revokes the attendee's control of the
// session.
func (a *Attendee) SetControlLevel(level ControlLevel) error {
	return a.h.PutInt("ControlLevel", int64(level))
}

// SessionProperties is the session's named property bag.
type SessionProperties struct {
	h *object.Handle[sessionPropsCap]
}

func (p *SessionProperties) Close() error {
	return p.h.Close()
}

// SetClipboardRedirect toggles clipboard redirection for the session.
func (p *SessionProperties) SetClipboardRedirect(enabled bool) error {
	return p.h.PutBool("EnableClipboardRedirect", enabled)
}

// SetProperty writes an arbitrary named session property.
func (p *SessionProperties) SetProperty(name string, value combridge.Value) error {
	return p.h.PutProp(name, value)
}
