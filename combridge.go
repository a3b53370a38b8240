package combridge

import (
	"fmt"

	"github.com/google/uuid"
)

// Raw is an opaque reference to a foreign object as issued by a Runtime.
// The zero value is the null reference and must never be dereferenced.
type Raw uint64

// Null reports whether the reference is the null reference.
func (r Raw) Null() bool {
	return r == 0
}

// Token identifies one advise registration on a connection point.
type Token uint32

// CapID identifies one capability interface shape. Two references are
// interface-compatible only if their CapID match.
type CapID uuid.UUID

func (id CapID) String() string {
	return uuid.UUID(id).String()
}

// ClassID identifies a creatable foreign object class.
type ClassID uuid.UUID

func (id ClassID) String() string {
	return uuid.UUID(id).String()
}

// MustCapID parses a capability identity from its canonical string form.
// It panics on malformed input and is intended for package-level constants.
func MustCapID(s string) CapID {
	return CapID(uuid.MustParse(s))
}

// MustClassID parses a class identity from its canonical string form.
func MustClassID(s string) ClassID {
	return ClassID(uuid.MustParse(s))
}

// Well-known capability identities every foreign object exposes.
var (
	// CapObject is the base reference-counted-object capability.
	CapObject = MustCapID("00000000-0000-0000-c000-000000000046")

	// CapIntrospect is the generic introspectable-object capability used
	// for late-bound member resolution and notification delivery.
	CapIntrospect = MustCapID("00020400-0000-0000-c000-000000000046")

	// CapConnectionContainer is the connection-point container
	// capability notification sources expose.
	CapConnectionContainer = MustCapID("b196b284-bab4-101a-b69c-00aa00341d07")
)

// Status is a foreign status code. The high bit distinguishes failure
// from success; StatusFalse is a successful negative result.
type Status uint32

const (
	StatusOK             Status = 0x00000000
	StatusFalse          Status = 0x00000001
	StatusNotImplemented Status = 0x80004001
	StatusNoInterface    Status = 0x80004002
	StatusPointer        Status = 0x80004003
	StatusFail           Status = 0x80004005
	StatusUnknownName    Status = 0x80020006
	StatusBadIndex       Status = 0x8002000B
	StatusOutOfMemory    Status = 0x8007000E
)

// Succeeded reports whether the status is a success code.
// Note that StatusFalse succeeds; it signals a negative result.
func (s Status) Succeeded() bool {
	return s&0x80000000 == 0
}

// Failed reports whether the status is a failure code.
func (s Status) Failed() bool {
	return !s.Succeeded()
}

func (s Status) String() string {
	return fmt.Sprintf("0x%08X", uint32(s))
}

// CreateFlags selects the execution context for object creation.
type CreateFlags uint32

const (
	CreateInProcess CreateFlags = 0x1
	CreateLocal     CreateFlags = 0x4
	CreateRemote    CreateFlags = 0x10
)

// MemberIDUnknown is the member id reported for names the callee does
// not recognize.
const MemberIDUnknown int32 = -1

// Runtime is the foreign component runtime boundary. Every call is
// synchronous and blocks until the foreign side returns. The reference
// count mutators are the only operations safe to call concurrently on
// one object; everything else requires external serialization per
// object, which the object and event packages provide by construction.
//
// Ownership discipline: CreateObject, QueryCapability and
// FindConnectionPoint return references that already carry one
// increment owned by the caller. Any buffer returned through a Value
// is owned by the caller and must be released through FreeBuffer
// exactly once.
type Runtime interface {
	// CreateObject instantiates a new foreign object of the given class
	// exposing the requested capability. aggregate is the optional
	// aggregation owner; pass 0 for none.
	CreateObject(class ClassID, cap CapID, flags CreateFlags, aggregate Raw) (Raw, Status)

	// QueryCapability asks an object whether it also exposes cap.
	// On success the returned reference holds a fresh increment.
	QueryCapability(obj Raw, cap CapID) (Raw, Status)

	// AddRef increments the object's reference count. The returned
	// count is informational only.
	AddRef(obj Raw) uint32

	// Release decrements the object's reference count. The returned
	// count is informational only.
	Release(obj Raw) uint32

	// GetProp reads a property of the object's capability surface.
	GetProp(obj Raw, name string) (Value, Status)

	// PutProp writes a property of the object's capability surface.
	PutProp(obj Raw, name string, value Value) Status

	// Call invokes a method on the object's capability surface.
	Call(obj Raw, method string, args ...Value) ([]Value, Status)

	// FindConnectionPoint resolves the connection point publishing
	// notifications of the given capability shape.
	FindConnectionPoint(container Raw, cap CapID) (Raw, Status)

	// Advise subscribes a sink to a connection point.
	Advise(point Raw, sink Sink) (Token, Status)

	// Unadvise revokes a prior Advise registration.
	Unadvise(point Raw, token Token) Status

	// BufferBytes exposes the content of a foreign-owned buffer.
	// It reports false for null, freed or unknown buffers.
	BufferBytes(buf Raw) ([]byte, bool)

	// FreeBuffer returns a foreign-owned buffer to the runtime's
	// allocator. Calling it twice for the same buffer is a fatal
	// caller bug; the runtime is not required to detect it.
	FreeBuffer(buf Raw)
}

// Sink is the callback contract the foreign runtime invokes to deliver
// notifications. Implementations are provided by the event package.
type Sink interface {
	// QueryCapability reports whether the sink exposes the given
	// capability. StatusNoInterface declines.
	QueryCapability(cap CapID) Status

	// AddRef increments the sink's local reference count.
	AddRef() uint32

	// Release decrements the sink's local reference count.
	Release() uint32

	// MemberCount reports how many members are discoverable at
	// runtime.
	MemberCount() uint32

	// ResolveMember maps member names to member ids, filling ids
	// positionally. Unknown names yield MemberIDUnknown entries and
	// StatusUnknownName.
	ResolveMember(names []string, ids []int32) Status

	// Invoke delivers one notification.
	Invoke(member int32, args []Value) Status
}
