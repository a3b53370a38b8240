package event

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/object"
)

// Peer owns a factory-created, event-bearing foreign object together
// with the Subscription feeding its notifications to caller code.
// Once constructed it must stay put: the subscription's owner slot
// routes deliveries to the handler bound at construction, so a Peer
// is shared by pointer, never copied or rebound.
type Peer[C object.Capability] struct {
	obj *object.Handle[C]
	sub *Subscription
}

// NewPeer creates an object of the given class and subscribes handler
// to its notifications in one step. If subscription setup fails the
// freshly created object is released before the error is returned.
func NewPeer[C object.Capability](rt combridge.Runtime, class combridge.ClassID, flags combridge.CreateFlags, adapter *Adapter, handler Handler) (*Peer[C], error) {
	obj, err := object.Create[C](rt, class, flags)
	if err != nil {
		return nil, err
	}
	sub, err := Subscribe(obj, adapter, handler)
	if err != nil {
		obj.Close()
		return nil, err
	}
	return &Peer[C]{obj: obj, sub: sub}, nil
}

// Object returns the owned handle. The handle stays owned by the
// peer; callers must not Close or Move it.
func (p *Peer[C]) Object() *object.Handle[C] {
	return p.obj
}

// Subscription returns the owned subscription.
func (p *Peer[C]) Subscription() *Subscription {
	return p.sub
}

// Close tears down the subscription before releasing the object, so
// the notification source never outlives its sink registration.
// Idempotent.
func (p *Peer[C]) Close() error {
	if p == nil {
		return nil
	}
	p.sub.Close()
	return p.obj.Close()
}
