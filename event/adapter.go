package event

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/object"
)

// Adapter is the sink the foreign runtime invokes to deliver
// notifications. It implements the minimal callback contract: it
// accepts capability queries only for its own declared notification
// interface, the generic introspectable-object id and the base
// reference-counted-object id, counts references locally, and
// declares no runtime-discoverable members.
//
// The adapter never stores a pointer to the Subscription that bound
// it; delivery goes through the owner registry, which the
// Subscription invalidates on teardown.
type Adapter struct {
	cap   combridge.CapID
	refs  atomic.Int64
	owner atomic.Uint64
}

// NewAdapter creates an adapter declaring the given notification
// capability.
func NewAdapter(cap combridge.CapID) *Adapter {
	return &Adapter{cap: cap}
}

// CapabilityID returns the declared notification capability.
func (a *Adapter) CapabilityID() combridge.CapID {
	return a.cap
}

// QueryCapability accepts queries for the declared set and declines
// everything else.
func (a *Adapter) QueryCapability(cap combridge.CapID) combridge.Status {
	switch cap {
	case a.cap, combridge.CapIntrospect, combridge.CapObject:
		return combridge.StatusOK
	}
	return combridge.StatusNoInterface
}

// AddRef increments the local reference count.
func (a *Adapter) AddRef() uint32 {
	return uint32(a.refs.Add(1))
}

// Release decrements the local reference count. The count floors at
// zero: the foreign runtime's call discipline is trusted but not
// verified, and an over-release here points at a bug on the foreign
// side rather than in caller code. It is logged, never clamped
// silently.
func (a *Adapter) Release() uint32 {
	for {
		cur := a.refs.Load()
		if cur <= 0 {
			object.Logger().Warn("sink reference count released below zero",
				zap.String("capability", a.cap.String()))
			return 0
		}
		if a.refs.CompareAndSwap(cur, cur-1) {
			return uint32(cur - 1)
		}
	}
}

// Refs returns the current local reference count.
func (a *Adapter) Refs() int64 {
	return a.refs.Load()
}

// MemberCount declares zero runtime-discoverable members.
func (a *Adapter) MemberCount() uint32 {
	return 0
}

// ResolveMember declines every name-resolution request, filling all
// ids with the unknown-member marker.
func (a *Adapter) ResolveMember(names []string, ids []int32) combridge.Status {
	for i := range ids {
		ids[i] = combridge.MemberIDUnknown
	}
	_ = names
	return combridge.StatusUnknownName
}

// Invoke delivers one notification to the owning Subscription's
// handler. Notifications arriving after the owner is torn down are
// dropped; that is the normal shutdown race, not an error.
func (a *Adapter) Invoke(member int32, args []combridge.Value) combridge.Status {
	key := ownerKey(a.owner.Load())
	handler, ok := owners.lookup(key)
	if !ok {
		return combridge.StatusOK
	}
	handler.HandleEvent(member, args)
	return combridge.StatusOK
}

func (a *Adapter) setOwner(k ownerKey) {
	a.owner.Store(uint64(k))
}

func (a *Adapter) clearOwner() {
	a.owner.Store(0)
}
