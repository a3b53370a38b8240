package combridge

// ValueKind discriminates the payload of a Value.
type ValueKind uint8

const (
	ValueEmpty ValueKind = iota
	ValueInt
	ValueBool
	ValueString
	ValueBuffer
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueEmpty:
		return "empty"
	case ValueInt:
		return "int"
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	case ValueBuffer:
		return "buffer"
	case ValueObject:
		return "object"
	}
	return "invalid"
}

// Value is the tagged variant crossing the runtime boundary.
//
// Direction matters for text: inputs carry native strings which the
// runtime copies during the call, while text outputs arrive as
// foreign-owned buffers that the caller must take ownership of through
// object.TakeString (or free directly via Runtime.FreeBuffer).
type Value struct {
	str  string
	num  int64
	raw  Raw
	kind ValueKind
}

// IntValue wraps a numeric value.
func IntValue(v int64) Value {
	return Value{kind: ValueInt, num: v}
}

// BoolValue wraps a boolean value.
func BoolValue(v bool) Value {
	n := int64(0)
	if v {
		n = 1
	}
	return Value{kind: ValueBool, num: n}
}

// StringValue wraps a native string for the input direction.
func StringValue(v string) Value {
	return Value{kind: ValueString, str: v}
}

// BufferValue wraps a foreign-owned buffer reference.
func BufferValue(buf Raw) Value {
	return Value{kind: ValueBuffer, raw: buf}
}

// ObjectValue wraps a nested object reference. The reference carries
// one increment owned by the receiver of the Value.
func ObjectValue(obj Raw) Value {
	return Value{kind: ValueObject, raw: obj}
}

// Kind returns the payload discriminator.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsEmpty reports whether the value carries no payload.
func (v Value) IsEmpty() bool {
	return v.kind == ValueEmpty
}

// Int returns the numeric payload.
func (v Value) Int() (int64, bool) {
	if v.kind != ValueInt {
		return 0, false
	}
	return v.num, true
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	if v.kind != ValueBool {
		return false, false
	}
	return v.num != 0, true
}

// Str returns the native string payload.
func (v Value) Str() (string, bool) {
	if v.kind != ValueString {
		return "", false
	}
	return v.str, true
}

// Buffer returns the foreign buffer reference payload.
func (v Value) Buffer() (Raw, bool) {
	if v.kind != ValueBuffer {
		return 0, false
	}
	return v.raw, true
}

// Object returns the nested object reference payload.
func (v Value) Object() (Raw, bool) {
	if v.kind != ValueObject {
		return 0, false
	}
	return v.raw, true
}
