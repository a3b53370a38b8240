package rdp

import "github.com/wippyai/combridge"

// Class identities of the creatable sharing objects.
var (
	ClassSharingSession = combridge.MustClassID("2e2f588d-b1c8-4e85-b0cc-40e72dbec43f")
	ClassViewer         = combridge.MustClassID("32be5ed2-5c86-480f-a914-0ff8885a1b3f")
)

// Capability identities of the sharing interfaces.
var (
	CapSharingSession    = combridge.MustCapID("eeb20886-e470-4cf6-842b-2739c0ec5cfb")
	CapViewer            = combridge.MustCapID("c6bfcd38-8ce9-404d-8ae8-f31d00c65cb5")
	CapInvitationManager = combridge.MustCapID("4fac1d43-fc51-45bb-b1b4-2b53aa562fa3")
	CapInvitation        = combridge.MustCapID("4fcd4c1d-b8f9-4f49-a5e6-a6dcb4ce1c89")
	CapAttendeeManager   = combridge.MustCapID("ba3a37e8-33da-4749-8da0-07fa34da7944")
	CapAttendee          = combridge.MustCapID("ec0671b3-1b78-4b80-a464-9132247543e3")
	CapSessionProperties = combridge.MustCapID("339b24f2-9bc0-4f16-9aac-f165433d13d4")

	// CapSessionEvents is the notification capability session peers
	// publish; adapters subscribe to it.
	CapSessionEvents = combridge.MustCapID("98a97042-6698-40e9-8efd-b3200990004b")
)

type sharerCap struct{}

func (sharerCap) CapabilityID() combridge.CapID { return CapSharingSession }

type viewerCap struct{}

func (viewerCap) CapabilityID() combridge.CapID { return CapViewer }

type invitationManagerCap struct{}

func (invitationManagerCap) CapabilityID() combridge.CapID { return CapInvitationManager }

type invitationCap struct{}

func (invitationCap) CapabilityID() combridge.CapID { return CapInvitation }

type attendeeManagerCap struct{}

func (attendeeManagerCap) CapabilityID() combridge.CapID { return CapAttendeeManager }

type attendeeCap struct{}

func (attendeeCap) CapabilityID() combridge.CapID { return CapAttendee }

type sessionPropsCap struct{}

func (sessionPropsCap) CapabilityID() combridge.CapID { return CapSessionProperties }

// Session event member ids delivered to subscription handlers.
const (
	EventAttendeeConnected     int32 = 301
	EventAttendeeDisconnected  int32 = 302
	EventControlLevelChanged   int32 = 303
	EventGraphicsStreamPaused  int32 = 304
	EventConnectionEstablished int32 = 305
	EventConnectionFailed      int32 = 306
	EventConnectionTerminated  int32 = 307
	EventSharedRectChanged     int32 = 308
	EventError                 int32 = 309
)

// ControlLevel is an attendee's level of control over the shared
// session.
type ControlLevel int64

const (
	ControlInvalid     ControlLevel = 0
	ControlNone        ControlLevel = 1
	ControlView        ControlLevel = 2
	ControlInteractive ControlLevel = 3
)
