package event

import (
	"go.uber.org/zap"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
	"github.com/wippyai/combridge/object"
)

// Subscription binds an Adapter to a foreign object's notification
// source. It owns the connection-point container reference, the
// connection-point reference and the subscription token, and releases
// them together in strict reverse order of acquisition.
//
// A closed Subscription cannot be rebound; construct a new one to
// resubscribe.
type Subscription struct {
	rt        combridge.Runtime
	adapter   *Adapter
	container combridge.Raw
	point     combridge.Raw
	token     combridge.Token
	key       ownerKey
	closed    bool
}

// Subscribe connects handler to the notification source behind src
// using the adapter's declared capability. Setup is staged; a failure
// at any stage releases whatever the prior stages acquired before the
// error is returned.
func Subscribe[C object.Capability](src *object.Handle[C], adapter *Adapter, handler Handler) (*Subscription, error) {
	if !src.IsValid() {
		return nil, errors.InvalidArgument("subscribe: empty source handle")
	}
	if adapter == nil {
		return nil, errors.InvalidArgument("subscribe: nil adapter")
	}
	if handler == nil {
		return nil, errors.InvalidArgument("subscribe: nil handler")
	}

	rt := src.RuntimeHandle()

	container, st := rt.QueryCapability(src.Raw(), combridge.CapConnectionContainer)
	if st.Failed() || container.Null() {
		if !container.Null() {
			rt.Release(container)
		}
		return nil, errors.CapabilityMissing("query connection-point container", st)
	}

	point, st := rt.FindConnectionPoint(container, adapter.CapabilityID())
	if st.Failed() || point.Null() {
		if !point.Null() {
			rt.Release(point)
		}
		rt.Release(container)
		return nil, errors.ConnectionPointMissing("find connection point",
			adapter.CapabilityID(), st)
	}

	token, st := rt.Advise(point, adapter)
	if st.Failed() {
		rt.Release(point)
		rt.Release(container)
		return nil, errors.SubscriptionFailed("advise sink to connection point", st)
	}

	key := owners.register(handler)
	adapter.setOwner(key)

	return &Subscription{
		rt:        rt,
		adapter:   adapter,
		container: container,
		point:     point,
		token:     token,
		key:       key,
	}, nil
}

// Token returns the subscription token issued by the connection point.
func (s *Subscription) Token() combridge.Token {
	return s.token
}

// Adapter returns the bound adapter.
func (s *Subscription) Adapter() *Adapter {
	return s.adapter
}

// Close tears the subscription down: the owner slot is invalidated so
// no further notifications dispatch, then unadvise, then the
// connection-point release, then the container release, in that exact
// order, each at most once. Foreign teardown failures are logged and
// suppressed; Close runs on cleanup paths where nothing can act on
// them.
func (s *Subscription) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	owners.invalidate(s.key)
	s.adapter.clearOwner()

	if st := s.rt.Unadvise(s.point, s.token); st.Failed() {
		object.Logger().Warn("unadvise failed during subscription teardown",
			zap.Uint32("token", uint32(s.token)),
			zap.String("status", st.String()))
	}
	s.rt.Release(s.point)
	s.point = 0
	s.rt.Release(s.container)
	s.container = 0
	return nil
}
