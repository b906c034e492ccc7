// Package ipaerr holds the sentinel errors shared across the IPA core.
package ipaerr

import "errors"

// ErrInvalidInputLength is returned when a shape invariant from the data
// model is violated: a vector length that is not a power of two, vectors
// of mismatched length, or a proof with 32 or more rounds.
var ErrInvalidInputLength = errors.New("ipacore: invalid input length")

// ErrInvalidIPA is returned when the final multi-exponentiation check
// fails, or when batch inversion is asked to invert a zero scalar.
var ErrInvalidIPA = errors.New("ipacore: invalid inner product argument")

// ErrAssignmentMissing is propagated from gadget-level code when a
// witness value a circuit needs was never assigned.
var ErrAssignmentMissing = errors.New("ipacore: assignment missing")

// ErrDecode is returned when a compressed group element does not decode
// to a valid point.
var ErrDecode = errors.New("ipacore: invalid compressed group element")
