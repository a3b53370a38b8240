package wmi

import (
	"fmt"
	"time"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
	"github.com/wippyai/combridge/object"
)

// Class and capability identities of the instrumentation objects.
var (
	ClassLocator = combridge.MustClassID("4590f811-1d3a-11d0-891f-00aa004b2e24")

	CapLocator     = combridge.MustCapID("dc12a687-737f-11cf-884d-00aa004b2e24")
	CapServices    = combridge.MustCapID("9556dc99-828c-11cf-a37e-00aa003240c7")
	CapObjectEnum  = combridge.MustCapID("027947e1-d731-11ce-a357-000000000001")
	CapClassObject = combridge.MustCapID("dc12a681-737f-11cf-884d-00aa004b2e24")
)

type locatorCap struct{}

func (locatorCap) CapabilityID() combridge.CapID { return CapLocator }

type servicesCap struct{}

func (servicesCap) CapabilityID() combridge.CapID { return CapServices }

type enumCap struct{}

func (enumCap) CapabilityID() combridge.CapID { return CapObjectEnum }

type classObjectCap struct{}

func (classObjectCap) CapabilityID() combridge.CapID { return CapClassObject }

// Query flags for Services.ExecQuery.
const (
	FlagReturnImmediately int64 = 0x10
	FlagForwardOnly       int64 = 0x20
)

// Infinite blocks enumeration until an item is available.
const Infinite time.Duration = -1

// Locator connects to instrumentation namespaces.
type Locator struct {
	h *object.Handle[locatorCap]
}

// NewLocator creates the locator object.
func NewLocator(rt combridge.Runtime) (*Locator, error) {
	h, err := object.Create[locatorCap](rt, ClassLocator, combridge.CreateInProcess)
	if err != nil {
		return nil, err
	}
	return &Locator{h: h}, nil
}

func (l *Locator) Close() error {
	return l.h.Close()
}

// ConnectServer connects to the given namespace and returns its
// services object. user, password, locale and authority may be empty
// for defaults.
func (l *Locator) ConnectServer(resource, user, password, locale string, securityFlags int64, authority string) (*Services, error) {
	op := fmt.Sprintf("connect to %s", resource)
	if resource == "" {
		return nil, errors.InvalidArgument(op + ": empty resource")
	}
	out, err := l.h.CallOp(op, "ConnectServer",
		combridge.StringValue(resource),
		combridge.StringValue(user),
		combridge.StringValue(password),
		combridge.StringValue(locale),
		combridge.IntValue(securityFlags),
		combridge.StringValue(authority))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Invariant(op)
	}
	raw, ok := out[0].Object()
	if !ok {
		return nil, errors.Invariant(op)
	}
	h, err := object.Adopt[servicesCap](l.h.RuntimeHandle(), raw)
	if err != nil {
		return nil, err
	}
	return &Services{h: h}, nil
}

// Services executes queries against one connected namespace.
type Services struct {
	h *object.Handle[servicesCap]
}

func (s *Services) Close() error {
	return s.h.Close()
}

// ExecQuery runs a query and returns a forward-only enumerator over
// the results.
func (s *Services) ExecQuery(query string) (*ObjectEnum, error) {
	return s.ExecQueryFlags(query, FlagReturnImmediately|FlagForwardOnly)
}

// ExecQueryFlags is ExecQuery with explicit enumeration flags.
func (s *Services) ExecQueryFlags(query string, flags int64) (*ObjectEnum, error) {
	op := fmt.Sprintf("execute query %q", query)
	if query == "" {
		return nil, errors.InvalidArgument(op)
	}
	out, err := s.h.CallOp(op, "ExecQuery",
		combridge.StringValue("WQL"),
		combridge.StringValue(query),
		combridge.IntValue(flags))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Invariant(op)
	}
	raw, ok := out[0].Object()
	if !ok {
		return nil, errors.Invariant(op)
	}
	h, err := object.Adopt[enumCap](s.h.RuntimeHandle(), raw)
	if err != nil {
		return nil, err
	}
	return &ObjectEnum{h: h}, nil
}

// ObjectEnum walks a query result set.
type ObjectEnum struct {
	h *object.Handle[enumCap]
}

func (e *ObjectEnum) Close() error {
	return e.h.Close()
}

// Next returns the next result object, blocking up to timeout. A
// timeout expiring with no item is a normal outcome and yields
// (nil, nil); use Infinite to block until an item arrives.
func (e *ObjectEnum) Next(timeout time.Duration) (*ClassObject, error) {
	ms := int64(-1)
	if timeout >= 0 {
		ms = timeout.Milliseconds()
	}
	h, err := object.CallObject[classObjectCap](e.h, "Next", combridge.IntValue(ms))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	return &ClassObject{h: h}, nil
}

// Clone duplicates the enumerator at its current position.
func (e *ObjectEnum) Clone() (*ObjectEnum, error) {
	h, err := object.CallObject[enumCap](e.h, "Clone")
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.Invariant("clone enumerator")
	}
	return &ObjectEnum{h: h}, nil
}

// Property is one typed property of a result object.
type Property struct {
	Value  combridge.Value
	Type   int64
	Flavor int64
}

// ClassObject is one query result object.
type ClassObject struct {
	h *object.Handle[classObjectCap]
}

func (o *ClassObject) Close() error {
	return o.h.Close()
}

// Property reads a property with its type and flavor metadata.
func (o *ClassObject) Property(name string) (Property, error) {
	op := fmt.Sprintf("get property %q of result object", name)
	if name == "" {
		return Property{}, errors.InvalidArgument(op)
	}
	out, err := o.h.CallOp(op, "Get", combridge.StringValue(name))
	if err != nil {
		return Property{}, err
	}
	p := Property{}
	if len(out) > 0 {
		p.Value = out[0]
	}
	if len(out) > 1 {
		p.Type, _ = out[1].Int()
	}
	if len(out) > 2 {
		p.Flavor, _ = out[2].Int()
	}
	return p, nil
}

// StringProperty reads a text property, taking ownership of the
// buffer carrying it.
func (o *ClassObject) StringProperty(name string) (string, error) {
	p, err := o.Property(name)
	if err != nil {
		return "", err
	}
	buf, ok := p.Value.Buffer()
	if !ok {
		return "", errors.InvalidBuffer(
			fmt.Sprintf("get property %q of result object: not a text buffer", name))
	}
	return object.TakeString(o.h.RuntimeHandle(), buf)
}
