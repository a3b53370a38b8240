// Package errors provides structured error types for the combridge library.
//
// Errors are categorized by Kind and always carry the attempted operation,
// so callers see "cannot connect to resource X (status 0x8007000E)" rather
// than a bare numeric code.
//
// Use the convenience constructors:
//
//	err := errors.Unsupported("cast rule handle", cap)
//	err := errors.CreationFailed("create firewall policy", st)
//
// Foreign statuses are translated through FromStatus:
//
//	if err := errors.FromStatus(st, "enable rule group"); err != nil {
//	    return err
//	}
//
// The designated out-of-resources status always maps to the allocation
// error so callers can abandon retries on exhaustion:
//
//	if errors.Is(err, errors.ErrAllocation) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
