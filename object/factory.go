package object

import (
	"fmt"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
)

// Create requests the foreign runtime instantiate a new object of the
// given class exposing the capability C, without aggregation. The
// resulting handle owns exactly one reference.
func Create[C Capability](rt combridge.Runtime, class combridge.ClassID, flags combridge.CreateFlags) (*Handle[C], error) {
	return CreateAggregated[C](rt, class, flags, 0)
}

// CreateAggregated is Create with an explicit aggregation owner.
// Pass 0 for none.
func CreateAggregated[C Capability](rt combridge.Runtime, class combridge.ClassID, flags combridge.CreateFlags, aggregate combridge.Raw) (*Handle[C], error) {
	op := fmt.Sprintf("create object of class %s", class)
	if rt == nil {
		return nil, errors.InvalidArgument(op + ": nil runtime")
	}
	raw, st := rt.CreateObject(class, capID[C](), flags, aggregate)
	if st.Failed() {
		return nil, errors.CreationFailed(op, st)
	}
	if raw.Null() {
		// The runtime reported success but returned no object.
		return nil, errors.Invariant(op)
	}
	return &Handle[C]{rt: rt, raw: raw}, nil
}
