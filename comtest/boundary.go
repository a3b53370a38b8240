package comtest

import (
	"github.com/wippyai/combridge"
)

// CreateObject implements combridge.Runtime.
func (rt *Runtime) CreateObject(class combridge.ClassID, cap combridge.CapID, flags combridge.CreateFlags, aggregate combridge.Raw) (combridge.Raw, combridge.Status) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("CreateObject(%s)", class)
	if st, ok := rt.forcedStatus(OpCreateObject); ok {
		return 0, st
	}

	c, ok := rt.classes[class]
	if !ok {
		return 0, combridge.StatusFail
	}

	raw, e := rt.newEntry()
	rt.seed(e, c)
	if !e.caps[cap] {
		e.dead = true
		delete(rt.objects, raw)
		return 0, combridge.StatusNoInterface
	}
	_ = flags
	_ = aggregate
	return raw, combridge.StatusOK
}

// QueryCapability implements combridge.Runtime. A successful query
// returns the same reference with a fresh increment, preserving
// object identity.
func (rt *Runtime) QueryCapability(obj combridge.Raw, cap combridge.CapID) (combridge.Raw, combridge.Status) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("QueryCapability(%d, %s)", obj, cap)
	if st, ok := rt.forcedStatus(OpQueryCapability); ok {
		return 0, st
	}

	e, ok := rt.live(obj, "QueryCapability")
	if !ok {
		return 0, combridge.StatusFail
	}
	if !e.caps[cap] {
		return 0, combridge.StatusNoInterface
	}
	e.refs++
	return obj, combridge.StatusOK
}

// AddRef implements combridge.Runtime.
func (rt *Runtime) AddRef(obj combridge.Raw) uint32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("AddRef(%d)", obj)
	e, ok := rt.live(obj, "AddRef")
	if !ok {
		return 0
	}
	e.refs++
	return uint32(e.refs)
}

// Release implements combridge.Runtime. Over-release is recorded as a
// violation rather than panicking, so tests can assert on it.
func (rt *Runtime) Release(obj combridge.Raw) uint32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("Release(%d)", obj)
	e, ok := rt.objects[obj]
	if !ok {
		rt.violatef("Release: unknown reference %d", obj)
		return 0
	}
	if e.dead || e.refs == 0 {
		rt.violatef("Release: over-release of reference %d", obj)
		return 0
	}
	e.refs--
	if e.refs == 0 {
		e.dead = true
	}
	return uint32(e.refs)
}

// GetProp implements combridge.Runtime. Text properties cross the
// boundary as fresh foreign-owned buffers; object properties carry a
// fresh increment owned by the caller.
func (rt *Runtime) GetProp(obj combridge.Raw, name string) (combridge.Value, combridge.Status) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("GetProp(%d, %s)", obj, name)
	if st, ok := rt.forcedStatus(OpGetProp); ok {
		return combridge.Value{}, st
	}

	e, ok := rt.live(obj, "GetProp")
	if !ok {
		return combridge.Value{}, combridge.StatusFail
	}
	v, ok := e.props[name]
	if !ok {
		return combridge.Value{}, combridge.StatusUnknownName
	}

	if s, ok := v.Str(); ok {
		return combridge.BufferValue(rt.newBufferLocked([]byte(s))), combridge.StatusOK
	}
	if sub, ok := v.Object(); ok {
		se, ok := rt.live(sub, "GetProp")
		if !ok {
			return combridge.Value{}, combridge.StatusFail
		}
		se.refs++
		return combridge.ObjectValue(sub), combridge.StatusOK
	}
	return v, combridge.StatusOK
}

// PutProp implements combridge.Runtime.
func (rt *Runtime) PutProp(obj combridge.Raw, name string, value combridge.Value) combridge.Status {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("PutProp(%d, %s)", obj, name)
	if st, ok := rt.forcedStatus(OpPutProp); ok {
		return st
	}

	e, ok := rt.live(obj, "PutProp")
	if !ok {
		return combridge.StatusFail
	}
	e.props[name] = value
	return combridge.StatusOK
}

// Call implements combridge.Runtime.
func (rt *Runtime) Call(obj combridge.Raw, method string, args ...combridge.Value) ([]combridge.Value, combridge.Status) {
	rt.mu.Lock()
	rt.tracef("Call(%d, %s)", obj, method)
	if st, ok := rt.forcedStatus(OpCall); ok {
		rt.mu.Unlock()
		return nil, st
	}
	e, ok := rt.live(obj, "Call")
	if !ok {
		rt.mu.Unlock()
		return nil, combridge.StatusFail
	}
	fn := e.onCall
	rt.mu.Unlock()

	if fn == nil {
		return nil, combridge.StatusNotImplemented
	}
	// Invoked without the lock so the implementation may call back
	// into the runtime.
	return fn(rt, obj, method, args)
}

// FindConnectionPoint implements combridge.Runtime. Points are
// persistent per (container, capability); each lookup hands out a
// fresh owned reference.
func (rt *Runtime) FindConnectionPoint(container combridge.Raw, cap combridge.CapID) (combridge.Raw, combridge.Status) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("FindConnectionPoint(%d, %s)", container, cap)
	if st, ok := rt.forcedStatus(OpFindConnectionPoint); ok {
		return 0, st
	}

	e, ok := rt.live(container, "FindConnectionPoint")
	if !ok {
		return 0, combridge.StatusFail
	}
	if !e.caps[combridge.CapConnectionContainer] {
		return 0, combridge.StatusNoInterface
	}

	if e.points == nil {
		e.points = make(map[combridge.CapID]combridge.Raw)
	}
	if raw, ok := e.points[cap]; ok {
		pe := rt.objects[raw]
		if pe.dead {
			// Token holders released the point; revive it for the
			// new subscriber.
			pe.dead = false
		}
		pe.refs++
		return raw, combridge.StatusOK
	}

	raw, pe := rt.newEntry()
	pe.isPoint = true
	pe.pointCap = cap
	pe.sinks = make(map[combridge.Token]combridge.Sink)
	e.points[cap] = raw
	return raw, combridge.StatusOK
}

// Advise implements combridge.Runtime.
func (rt *Runtime) Advise(point combridge.Raw, sink combridge.Sink) (combridge.Token, combridge.Status) {
	rt.mu.Lock()

	rt.tracef("Advise(%d)", point)
	if st, ok := rt.forcedStatus(OpAdvise); ok {
		rt.mu.Unlock()
		return 0, st
	}

	e, ok := rt.live(point, "Advise")
	if !ok || !e.isPoint {
		rt.mu.Unlock()
		return 0, combridge.StatusFail
	}
	if sink == nil {
		rt.mu.Unlock()
		return 0, combridge.StatusPointer
	}
	if st := sink.QueryCapability(e.pointCap); st.Failed() {
		rt.mu.Unlock()
		return 0, combridge.StatusNoInterface
	}

	rt.nextToken++
	token := combridge.Token(rt.nextToken)
	e.sinks[token] = sink
	e.sinkOrder = append(e.sinkOrder, token)
	rt.mu.Unlock()

	sink.AddRef()
	return token, combridge.StatusOK
}

// Unadvise implements combridge.Runtime.
func (rt *Runtime) Unadvise(point combridge.Raw, token combridge.Token) combridge.Status {
	rt.mu.Lock()

	rt.tracef("Unadvise(%d, %d)", point, token)
	if st, ok := rt.forcedStatus(OpUnadvise); ok {
		rt.mu.Unlock()
		return st
	}

	e, ok := rt.live(point, "Unadvise")
	if !ok || !e.isPoint {
		rt.mu.Unlock()
		return combridge.StatusFail
	}
	sink, ok := e.sinks[token]
	if !ok {
		rt.mu.Unlock()
		return combridge.StatusFail
	}
	delete(e.sinks, token)
	for i, t := range e.sinkOrder {
		if t == token {
			e.sinkOrder = append(e.sinkOrder[:i], e.sinkOrder[i+1:]...)
			break
		}
	}
	rt.mu.Unlock()

	sink.Release()
	return combridge.StatusOK
}

// BufferBytes implements combridge.Runtime.
func (rt *Runtime) BufferBytes(buf combridge.Raw) ([]byte, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	b, ok := rt.buffers[buf]
	if !ok || b.freed > 0 {
		return nil, false
	}
	return b.data, true
}

// FreeBuffer implements combridge.Runtime. Double frees are recorded
// as violations.
func (rt *Runtime) FreeBuffer(buf combridge.Raw) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.tracef("FreeBuffer(%d)", buf)
	b, ok := rt.buffers[buf]
	if !ok {
		rt.violatef("FreeBuffer: unknown buffer %d", buf)
		return
	}
	b.freed++
	if b.freed > 1 {
		rt.violatef("FreeBuffer: double free of buffer %d", buf)
	}
}

// Initialize implements object.Initializer. The first call reports
// StatusOK, nested calls StatusFalse, mirroring runtimes that count
// per-thread initialization.
func (rt *Runtime) Initialize() combridge.Status {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.initDepth++
	if rt.initDepth == 1 {
		return combridge.StatusOK
	}
	return combridge.StatusFalse
}

// Uninitialize implements object.Initializer.
func (rt *Runtime) Uninitialize() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.initDepth == 0 {
		rt.violatef("Uninitialize: unbalanced teardown")
		return
	}
	rt.initDepth--
}
