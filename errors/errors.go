package errors

import (
	"fmt"
	"strings"

	"github.com/wippyai/combridge"
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArgument        Kind = "invalid_argument"
	KindInvalidHandle          Kind = "invalid_handle"
	KindInvalidBuffer          Kind = "invalid_buffer"
	KindUnsupportedCapability  Kind = "unsupported_capability"
	KindCapabilityMissing      Kind = "capability_missing"
	KindConnectionPointMissing Kind = "connection_point_missing"
	KindSubscriptionFailed     Kind = "subscription_failed"
	KindCreationFailed         Kind = "creation_failed"
	KindAllocation             Kind = "allocation"
	KindUnknownMember          Kind = "unknown_member"
	KindInvariant              Kind = "invariant"
	KindForeignCall            Kind = "foreign_call"
)

// Error is the structured error type used throughout the library.
// Op names the attempted operation in caller terms; Status carries the
// foreign status code when one was involved.
type Error struct {
	Cause      error
	Kind       Kind
	Op         string
	Capability string
	Status     combridge.Status
	HasStatus  bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.Op != "" {
		b.WriteByte(' ')
		b.WriteString(e.Op)
	}

	if e.Capability != "" {
		b.WriteString(": capability ")
		b.WriteString(e.Capability)
	}

	if e.HasStatus {
		b.WriteString(" (status ")
		b.WriteString(e.Status.String())
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match on
// Kind alone so callers can test taxonomy membership with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel values for errors.Is matching by kind.
var (
	ErrInvalidArgument        = &Error{Kind: KindInvalidArgument}
	ErrInvalidHandle          = &Error{Kind: KindInvalidHandle}
	ErrInvalidBuffer          = &Error{Kind: KindInvalidBuffer}
	ErrUnsupportedCapability  = &Error{Kind: KindUnsupportedCapability}
	ErrCapabilityMissing      = &Error{Kind: KindCapabilityMissing}
	ErrConnectionPointMissing = &Error{Kind: KindConnectionPointMissing}
	ErrSubscriptionFailed     = &Error{Kind: KindSubscriptionFailed}
	ErrCreationFailed         = &Error{Kind: KindCreationFailed}
	ErrAllocation             = &Error{Kind: KindAllocation}
	ErrUnknownMember          = &Error{Kind: KindUnknownMember}
	ErrInvariant              = &Error{Kind: KindInvariant}
	ErrForeignCall            = &Error{Kind: KindForeignCall}
)

// Convenience constructors for common error patterns

// InvalidArgument creates an error for null or malformed caller input.
func InvalidArgument(op string) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op}
}

// InvalidHandle creates an error for an operation attempted on an
// empty or invalid owning handle.
func InvalidHandle(op string) *Error {
	return &Error{Kind: KindInvalidHandle, Op: op}
}

// InvalidBuffer creates an error for a null foreign buffer where the
// call site requires a value.
func InvalidBuffer(op string) *Error {
	return &Error{Kind: KindInvalidBuffer, Op: op}
}

// Unsupported creates an error for a capability query the foreign
// object rejected.
func Unsupported(op string, cap combridge.CapID) *Error {
	return &Error{Kind: KindUnsupportedCapability, Op: op, Capability: cap.String()}
}

// CapabilityMissing creates an error for a failed connection-point
// container query during subscription setup.
func CapabilityMissing(op string, st combridge.Status) *Error {
	return &Error{Kind: KindCapabilityMissing, Op: op, Status: st, HasStatus: true}
}

// ConnectionPointMissing creates an error for a failed connection-point
// lookup during subscription setup.
func ConnectionPointMissing(op string, cap combridge.CapID, st combridge.Status) *Error {
	return &Error{
		Kind:       KindConnectionPointMissing,
		Op:         op,
		Capability: cap.String(),
		Status:     st,
		HasStatus:  true,
	}
}

// SubscriptionFailed creates an error for a failed advise call during
// subscription setup.
func SubscriptionFailed(op string, st combridge.Status) *Error {
	return &Error{Kind: KindSubscriptionFailed, Op: op, Status: st, HasStatus: true}
}

// CreationFailed creates an error for a failed object instantiation.
func CreationFailed(op string, st combridge.Status) *Error {
	if st == combridge.StatusOutOfMemory {
		return AllocationFailed(op)
	}
	return &Error{Kind: KindCreationFailed, Op: op, Status: st, HasStatus: true}
}

// AllocationFailed creates the distinguished out-of-resources error.
func AllocationFailed(op string) *Error {
	return &Error{
		Kind:      KindAllocation,
		Op:        op,
		Status:    combridge.StatusOutOfMemory,
		HasStatus: true,
	}
}

// UnknownMember creates an error for a name-resolution request the
// callee declined.
func UnknownMember(op, name string) *Error {
	return &Error{
		Kind: KindUnknownMember,
		Op:   fmt.Sprintf("%s: member %q", op, name),
	}
}

// Invariant creates an error for a defensive check the foreign runtime
// violated, such as reporting success while returning no object.
func Invariant(op string) *Error {
	return &Error{Kind: KindInvariant, Op: op}
}

// ForeignCall creates the catch-all error for a non-success status,
// annotated with the attempted operation.
func ForeignCall(op string, st combridge.Status) *Error {
	return &Error{Kind: KindForeignCall, Op: op, Status: st, HasStatus: true}
}

// FromStatus translates a foreign status into the error taxonomy.
// Success codes (including the negative-result StatusFalse) yield nil.
// The designated out-of-resources code always yields the allocation
// error regardless of which operation produced it.
func FromStatus(st combridge.Status, op string) error {
	if st.Succeeded() {
		return nil
	}
	switch st {
	case combridge.StatusOutOfMemory:
		return AllocationFailed(op)
	case combridge.StatusPointer:
		return InvalidArgument(op)
	default:
		return ForeignCall(op, st)
	}
}
