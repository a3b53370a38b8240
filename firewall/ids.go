package firewall

import "github.com/wippyai/combridge"

// Class identities of the creatable firewall objects.
var (
	ClassPolicy2               = combridge.MustClassID("e2b3c97f-6ae1-41ac-817a-f6f92166d7dd")
	ClassRule                  = combridge.MustClassID("2c5bc43e-3369-4c33-ab0c-be9469677af4")
	ClassManager               = combridge.MustClassID("304ce942-6e39-40d8-943a-b913c40c9cd4")
	ClassAuthorizedApplication = combridge.MustClassID("ec9846b3-2762-4a6b-a214-6acb603462d2")
)

// Capability identities of the firewall interfaces.
var (
	CapPolicy2                = combridge.MustCapID("98325047-c671-4174-8d81-defcd3f03186")
	CapRules                  = combridge.MustCapID("9c4c6277-5027-441e-afae-ca1f542da009")
	CapRule                   = combridge.MustCapID("af230d27-baba-4e42-aced-f524f22cfce2")
	CapManager                = combridge.MustCapID("f7898af5-cac4-4632-a2ec-da06e5111af2")
	CapPolicy                 = combridge.MustCapID("d46d2478-9ac9-4008-9dc7-5563ce5536cc")
	CapProfile                = combridge.MustCapID("174a0dda-e9f9-449d-993b-21ab667ca456")
	CapAuthorizedApplications = combridge.MustCapID("644efd52-ccf9-486c-97a2-39f352570b30")
	CapAuthorizedApplication  = combridge.MustCapID("b5e64ffa-c2c5-444e-a301-fb5e00018050")
)

type policy2Cap struct{}

func (policy2Cap) CapabilityID() combridge.CapID { return CapPolicy2 }

type rulesCap struct{}

func (rulesCap) CapabilityID() combridge.CapID { return CapRules }

type ruleCap struct{}

func (ruleCap) CapabilityID() combridge.CapID { return CapRule }

type managerCap struct{}

func (managerCap) CapabilityID() combridge.CapID { return CapManager }

type policyCap struct{}

func (policyCap) CapabilityID() combridge.CapID { return CapPolicy }

type profileCap struct{}

func (profileCap) CapabilityID() combridge.CapID { return CapProfile }

type appsCap struct{}

func (appsCap) CapabilityID() combridge.CapID { return CapAuthorizedApplications }

type appCap struct{}

func (appCap) CapabilityID() combridge.CapID { return CapAuthorizedApplication }

// ProfileType selects a legacy firewall profile.
type ProfileType int64

const (
	ProfileDomain   ProfileType = 0
	ProfileStandard ProfileType = 1
	ProfileCurrent  ProfileType = 2
)

// ProfileMask is a bitmask over the modern profile categories.
type ProfileMask int64

const (
	MaskDomain  ProfileMask = 0x1
	MaskPrivate ProfileMask = 0x2
	MaskPublic  ProfileMask = 0x4
	MaskAll     ProfileMask = 0x7FFFFFFF
)
