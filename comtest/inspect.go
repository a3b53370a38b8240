package comtest

import (
	"strings"

	"github.com/wippyai/combridge"
)

// Fire delivers a notification to every sink advised on the source
// object's connection point for cap, in advise order. It returns the
// number of sinks invoked.
func (rt *Runtime) Fire(source combridge.Raw, cap combridge.CapID, member int32, args ...combridge.Value) int {
	rt.mu.Lock()
	e, ok := rt.objects[source]
	if !ok || e.dead || e.points == nil {
		rt.mu.Unlock()
		return 0
	}
	praw, ok := e.points[cap]
	if !ok {
		rt.mu.Unlock()
		return 0
	}
	pe := rt.objects[praw]
	sinks := make([]combridge.Sink, 0, len(pe.sinkOrder))
	for _, token := range pe.sinkOrder {
		sinks = append(sinks, pe.sinks[token])
	}
	rt.mu.Unlock()

	// Deliver outside the lock; handlers may call back into the
	// runtime.
	for _, s := range sinks {
		s.Invoke(member, args)
	}
	return len(sinks)
}

// Refs returns the current reference count of an object, or 0 for
// dead or unknown references.
func (rt *Runtime) Refs(raw combridge.Raw) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	e, ok := rt.objects[raw]
	if !ok || e.dead {
		return 0
	}
	return e.refs
}

// LiveRefs returns the sum of all outstanding references.
func (rt *Runtime) LiveRefs() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	total := 0
	for _, e := range rt.objects {
		if !e.dead {
			total += e.refs
		}
	}
	return total
}

// LiveObjects returns the number of objects with outstanding
// references.
func (rt *Runtime) LiveObjects() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	n := 0
	for _, e := range rt.objects {
		if !e.dead {
			n++
		}
	}
	return n
}

// BufferFreed returns how many times a buffer has been freed.
func (rt *Runtime) BufferFreed(buf combridge.Raw) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	b, ok := rt.buffers[buf]
	if !ok {
		return 0
	}
	return b.freed
}

// LiveBuffers returns the number of buffers not yet freed.
func (rt *Runtime) LiveBuffers() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	n := 0
	for _, b := range rt.buffers {
		if b.freed == 0 {
			n++
		}
	}
	return n
}

// Violations returns the recorded boundary violations: over-releases,
// double frees and uses of dead references. A correct caller leaves
// this empty.
func (rt *Runtime) Violations() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.violations...)
}

// Trace returns the recorded boundary calls in order.
func (rt *Runtime) Trace() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.trace...)
}

// TraceMatching returns the recorded boundary calls whose name has one
// of the given prefixes, preserving order.
func (rt *Runtime) TraceMatching(prefixes ...string) []string {
	var out []string
	for _, call := range rt.Trace() {
		for _, p := range prefixes {
			if strings.HasPrefix(call, p) {
				out = append(out, call)
				break
			}
		}
	}
	return out
}

// ResetTrace clears the recorded boundary calls.
func (rt *Runtime) ResetTrace() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.trace = nil
}
