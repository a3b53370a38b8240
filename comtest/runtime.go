package comtest

import (
	"fmt"
	"sync"

	"github.com/wippyai/combridge"
)

// Boundary operation names accepted by FailNext.
const (
	OpCreateObject        = "CreateObject"
	OpQueryCapability     = "QueryCapability"
	OpGetProp             = "GetProp"
	OpPutProp             = "PutProp"
	OpCall                = "Call"
	OpFindConnectionPoint = "FindConnectionPoint"
	OpAdvise              = "Advise"
	OpUnadvise            = "Unadvise"
)

// CallFunc implements a method of a registered class. Outputs carrying
// object references must already hold the increment the caller takes
// ownership of (use Runtime.NewObject or Runtime.Retain).
type CallFunc func(rt *Runtime, obj combridge.Raw, method string, args []combridge.Value) ([]combridge.Value, combridge.Status)

// Class describes a creatable foreign object class.
type Class struct {
	// Caps lists the capability interfaces instances expose, in
	// addition to the implicit combridge.CapObject.
	Caps []combridge.CapID

	// Props seeds the property bag of each new instance.
	Props map[string]combridge.Value

	// OnCall handles method invocations; nil means every method
	// reports StatusNotImplemented.
	OnCall CallFunc
}

type entry struct {
	props  map[string]combridge.Value
	caps   map[combridge.CapID]bool
	onCall CallFunc
	refs   int
	dead   bool
	// connection-point bookkeeping
	isPoint   bool
	pointCap  combridge.CapID
	points    map[combridge.CapID]combridge.Raw
	sinks     map[combridge.Token]combridge.Sink
	sinkOrder []combridge.Token
}

type buffer struct {
	data  []byte
	freed int
}

// Runtime is an instrumented in-memory foreign runtime.
type Runtime struct {
	mu         sync.Mutex
	classes    map[combridge.ClassID]*Class
	objects    map[combridge.Raw]*entry
	buffers    map[combridge.Raw]*buffer
	forced     map[string][]combridge.Status
	trace      []string
	violations []string
	nextRaw    uint64
	nextToken  uint32
	initDepth  int
}

// New creates an empty instrumented runtime.
func New() *Runtime {
	return &Runtime{
		classes: make(map[combridge.ClassID]*Class),
		objects: make(map[combridge.Raw]*entry),
		buffers: make(map[combridge.Raw]*buffer),
		forced:  make(map[string][]combridge.Status),
	}
}

// RegisterClass makes a class creatable through CreateObject.
func (rt *Runtime) RegisterClass(id combridge.ClassID, c *Class) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.classes[id] = c
}

// FailNext forces the next call of the named boundary operation to
// report st. Multiple calls queue in order.
func (rt *Runtime) FailNext(op string, st combridge.Status) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.forced[op] = append(rt.forced[op], st)
}

func (rt *Runtime) forcedStatus(op string) (combridge.Status, bool) {
	q := rt.forced[op]
	if len(q) == 0 {
		return 0, false
	}
	rt.forced[op] = q[1:]
	return q[0], true
}

func (rt *Runtime) tracef(format string, args ...any) {
	rt.trace = append(rt.trace, fmt.Sprintf(format, args...))
}

func (rt *Runtime) violatef(format string, args ...any) {
	rt.violations = append(rt.violations, fmt.Sprintf(format, args...))
}

func (rt *Runtime) live(raw combridge.Raw, op string) (*entry, bool) {
	e, ok := rt.objects[raw]
	if !ok {
		rt.violatef("%s: unknown reference %d", op, raw)
		return nil, false
	}
	if e.dead {
		rt.violatef("%s: use of dead reference %d", op, raw)
		return nil, false
	}
	return e, true
}

func (rt *Runtime) newEntry() (combridge.Raw, *entry) {
	rt.nextRaw++
	raw := combridge.Raw(rt.nextRaw)
	e := &entry{
		props: make(map[string]combridge.Value),
		caps:  map[combridge.CapID]bool{combridge.CapObject: true},
		refs:  1,
	}
	rt.objects[raw] = e
	return raw, e
}

// NewObject creates a live object outside the factory path, exposing
// the given capabilities, with one reference owned by the caller.
// This models sub-objects obtained from other objects.
func (rt *Runtime) NewObject(caps ...combridge.CapID) combridge.Raw {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	raw, e := rt.newEntry()
	for _, c := range caps {
		e.caps[c] = true
	}
	return raw
}

// NewObjectOfClass creates a live object seeded from a registered
// class without going through CreateObject.
func (rt *Runtime) NewObjectOfClass(id combridge.ClassID) combridge.Raw {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	c, ok := rt.classes[id]
	if !ok {
		return 0
	}
	raw, e := rt.newEntry()
	rt.seed(e, c)
	return raw
}

func (rt *Runtime) seed(e *entry, c *Class) {
	for _, cap := range c.Caps {
		e.caps[cap] = true
	}
	for k, v := range c.Props {
		e.props[k] = v
	}
	e.onCall = c.OnCall
}

// SetOnCall installs a method implementation on one live object.
func (rt *Runtime) SetOnCall(raw combridge.Raw, fn CallFunc) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if e, ok := rt.objects[raw]; ok {
		e.onCall = fn
	}
}

// PropValue reads a property directly, bypassing the boundary: no
// buffer conversion, no reference increment, no trace entry.
func (rt *Runtime) PropValue(raw combridge.Raw, name string) (combridge.Value, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	e, ok := rt.objects[raw]
	if !ok {
		return combridge.Value{}, false
	}
	v, ok := e.props[name]
	return v, ok
}

// SetProp sets a property directly, bypassing the boundary.
func (rt *Runtime) SetProp(raw combridge.Raw, name string, v combridge.Value) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if e, ok := rt.objects[raw]; ok {
		e.props[name] = v
	}
}

// Retain increments an object's count outside the boundary trace,
// for handing out an owned reference from a CallFunc.
func (rt *Runtime) Retain(raw combridge.Raw) combridge.Raw {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if e, ok := rt.objects[raw]; ok && !e.dead {
		e.refs++
	}
	return raw
}

// NewBuffer allocates a foreign-owned buffer holding a copy of data.
func (rt *Runtime) NewBuffer(data []byte) combridge.Raw {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.newBufferLocked(data)
}

func (rt *Runtime) newBufferLocked(data []byte) combridge.Raw {
	rt.nextRaw++
	raw := combridge.Raw(rt.nextRaw)
	rt.buffers[raw] = &buffer{data: append([]byte(nil), data...)}
	return raw
}

// NewStringBuffer allocates a foreign-owned buffer holding s.
func (rt *Runtime) NewStringBuffer(s string) combridge.Raw {
	return rt.NewBuffer([]byte(s))
}
