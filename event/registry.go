package event

import (
	"sync"

	"github.com/wippyai/combridge"
)

// Handler receives notifications delivered through an Adapter.
type Handler interface {
	HandleEvent(member int32, args []combridge.Value)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(member int32, args []combridge.Value)

func (f HandlerFunc) HandleEvent(member int32, args []combridge.Value) {
	f(member, args)
}

// ownerKey is a weak reference to a registered handler: slot index+1
// in the low half, slot generation in the high half. The generation
// tag makes a stale key harmless after its slot is recycled.
type ownerKey uint64

func makeKey(idx, gen uint32) ownerKey {
	return ownerKey(uint64(gen)<<32 | uint64(idx+1))
}

func (k ownerKey) index() (uint32, bool) {
	if k&0xFFFFFFFF == 0 {
		return 0, false
	}
	return uint32(k&0xFFFFFFFF) - 1, true
}

func (k ownerKey) generation() uint32 {
	return uint32(k >> 32)
}

// registry is a slot table with free-list reuse. Subscriptions
// register their handler on bind and invalidate the slot on teardown;
// delivery looks the handler up and drops the notification if the
// slot is gone or recycled.
type registry struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32
}

type slot struct {
	handler Handler
	gen     uint32
	live    bool
}

var owners registry

func (r *registry) register(h Handler) ownerKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		s := &r.slots[idx]
		s.handler = h
		s.live = true
		return makeKey(idx, s.gen)
	}

	r.slots = append(r.slots, slot{handler: h, live: true})
	return makeKey(uint32(len(r.slots)-1), 0)
}

func (r *registry) invalidate(k ownerKey) {
	idx, ok := k.index()
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if int(idx) >= len(r.slots) {
		return
	}
	s := &r.slots[idx]
	if !s.live || s.gen != k.generation() {
		return
	}
	s.handler = nil
	s.live = false
	s.gen++
	r.free = append(r.free, idx)
}

func (r *registry) lookup(k ownerKey) (Handler, bool) {
	idx, ok := k.index()
	if !ok {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(idx) >= len(r.slots) {
		return nil, false
	}
	s := r.slots[idx]
	if !s.live || s.gen != k.generation() {
		return nil, false
	}
	return s.handler, true
}
