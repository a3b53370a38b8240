// Package object provides the reference-owning Handle over foreign objects.
//
// A Handle wraps one reference to a reference-counted object owned by a
// foreign component runtime, typed by the capability interface it was
// obtained through. The package enforces the central ownership invariant:
// every acquired reference is released exactly once.
//
// # Acquiring
//
// Handles come from three places:
//
//	h, err := object.Create[fwPolicy](rt, classPolicy, combridge.CreateInProcess)  // factory
//	h, err := object.Adopt[fwRules](rt, raw)                                      // sub-object property
//	h, err := object.As[fwRules](container)                                       // dynamic cast
//
// # Copying and moving
//
// Clone performs the foreign increment before producing a second live
// handle; Move transfers ownership and leaves the source empty without a
// foreign call. There is no way to duplicate the underlying reference
// without the increment.
//
// # Releasing
//
// Close releases the owned reference at most once and is idempotent, so
// the usual defer pattern is safe even after a Move.
package object
