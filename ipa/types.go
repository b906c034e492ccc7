// Package ipa implements the inner-product argument engine of the
// recursion core: StepIPA folds two inner-product claims into one via a
// single transcript challenge, and FinalIPA/FinalIPAAux produce the
// logarithmic-sized Fiat-Shamir argument that a committed vector has a
// claimed inner product with a public (or committed) vector.
//
// The recursive-halving structure and the exact tensor-expansion
// verification identity are grounded on original_source/src/ipa.rs; the
// Go idiom (explicit error returns, plain structs, transcript threaded
// as an explicit argument) follows bulletproofs/bip.go.
package ipa

import (
	"math/big"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipaerr"
)

// InnerProductWitness is the ordered vector x_vec of a claim, with
// length a power of two (spec.md §3 invariant 1).
type InnerProductWitness struct {
	XVec []field.Scalar
}

// NewInnerProductWitness copies xVec into a witness.
func NewInnerProductWitness(xVec []field.Scalar) InnerProductWitness {
	out := make([]field.Scalar, len(xVec))
	copy(out, xVec)
	return InnerProductWitness{XVec: out}
}

// InnerProductInstance is the public triple (comm_x_vec, a_vec, y) with
// comm_x_vec = Commit(x_vec, gens) held decompressed, a_vec public, and
// y = <x_vec, a_vec>.
type InnerProductInstance struct {
	CommXVec group.Element
	AVec     []field.Scalar
	Y        field.Scalar
}

// NewInnerProductInstance decompresses commXVec and copies aVec/y into a
// fresh instance.
func NewInnerProductInstance(gp group.Group, commXVec group.CompressedElement, aVec []field.Scalar, y field.Scalar) (InnerProductInstance, error) {
	e, err := commXVec.Decompress(gp)
	if err != nil {
		return InnerProductInstance{}, ipaerr.ErrDecode
	}
	out := make([]field.Scalar, len(aVec))
	copy(out, aVec)
	return InnerProductInstance{CommXVec: e, AVec: out, Y: y}, nil
}

// innerProduct computes <a, b>, panicking on mismatched lengths: a
// length mismatch between two vectors built inside a single call is a
// local programming error the caller could not have triggered
// (spec.md §7, "Panic is reserved for violated local assertions").
func innerProduct(a, b []field.Scalar, order *big.Int) field.Scalar {
	if len(a) != len(b) {
		panic("ipa: inner product over mismatched-length vectors")
	}
	acc := field.Zero(order)
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc
}

// isPowerOfTwo reports whether n is a power of two (n > 0).
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// log2 returns k such that n == 1<<k, for a power-of-two n.
func log2(n int) int {
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}

func bigIntSlice(s []field.Scalar) []*big.Int {
	out := make([]*big.Int, len(s))
	for i, v := range s {
		out[i] = v.BigInt()
	}
	return out
}
