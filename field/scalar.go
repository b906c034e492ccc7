// Package field implements the scalar-field arithmetic the IPA engine is
// built over: a prime field F with +, -, x, inverse, equality, the
// zero/one constants, uniform sampling, and a fixed-endian byte encoding.
//
// Arithmetic is delegated to github.com/ing-bank/zkrp/util/bn, the same
// helper the teacher's bulletproofs package reduces vectors with; this
// package only adds the order-carrying Scalar wrapper and the
// non-panicking inversion-on-zero contract spec.md §9 requires.
package field

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/arcfold/ipacore/ipaerr"
	"github.com/ing-bank/zkrp/util/bn"
)

// Order is the type of a prime field modulus, such as the group orders
// this module targets (P-256, P-384, Ristretto255); individual Scalars
// carry their own modulus, so the field is chosen per curve.
type Order = big.Int

// Scalar is an element of a prime field F, reduced modulo Order.
type Scalar struct {
	v     *big.Int
	Order *big.Int
}

// New reduces v modulo order and returns the resulting Scalar.
func New(v *big.Int, order *big.Int) Scalar {
	return Scalar{v: bn.Mod(new(big.Int).Set(v), order), Order: order}
}

// FromUint64 builds a Scalar from a small non-negative integer.
func FromUint64(v uint64, order *big.Int) Scalar {
	return New(new(big.Int).SetUint64(v), order)
}

// Zero returns the additive identity of the field.
func Zero(order *big.Int) Scalar { return New(big.NewInt(0), order) }

// One returns the multiplicative identity of the field.
func One(order *big.Int) Scalar { return New(big.NewInt(1), order) }

// Random samples a uniformly distributed Scalar using rnd as its source
// of randomness. Callers that need prover randomness to come exclusively
// from the transcript (spec.md §3 invariant 5) must not call Random from
// inside a proving routine.
func Random(rnd io.Reader, order *big.Int) (Scalar, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	v, err := rand.Int(rnd, order)
	if err != nil {
		return Scalar{}, err
	}
	return New(v, order), nil
}

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar { return New(bn.Add(s.v, o.v), s.Order) }

// Sub returns s - o.
func (s Scalar) Sub(o Scalar) Scalar { return New(bn.Sub(s.v, o.v), s.Order) }

// Mul returns s * o.
func (s Scalar) Mul(o Scalar) Scalar { return New(bn.Multiply(s.v, o.v), s.Order) }

// Neg returns -s.
func (s Scalar) Neg() Scalar { return New(bn.Sub(big.NewInt(0), s.v), s.Order) }

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.v.Sign() == 0 }

// Equal reports whether s and o denote the same field element.
func (s Scalar) Equal(o Scalar) bool { return s.v.Cmp(o.v) == 0 }

// Inverse returns the multiplicative inverse of s. Per spec.md §9,
// inversion never panics: on a zero input it returns an arbitrary valid
// scalar (One) alongside ok=false instead of calling bn.ModInverse,
// which is undefined on zero and would otherwise return nil.
func (s Scalar) Inverse() (inv Scalar, ok bool) {
	if s.v.Sign() == 0 {
		return One(s.Order), false
	}
	r := bn.ModInverse(s.v, s.Order)
	return New(r, s.Order), true
}

// Bytes returns the fixed-width, big-endian encoding of s sized to the
// byte length of Order.
func (s Scalar) Bytes() []byte {
	width := (s.Order.BitLen() + 7) / 8
	out := make([]byte, width)
	b := s.v.Bytes()
	copy(out[width-len(b):], b)
	return out
}

// BigInt exposes the underlying representative in [0, Order).
func (s Scalar) BigInt() *big.Int { return new(big.Int).Set(s.v) }

// SetBytes reinterprets a fixed-width big-endian encoding as a Scalar
// reduced modulo order.
func SetBytes(b []byte, order *big.Int) Scalar {
	return New(new(big.Int).SetBytes(b), order)
}

// BatchInvert inverts every entry of v using a single field inversion
// and O(n) multiplications via the standard prefix-product trick
// (spec.md §4.3 "Batch inversion"). It returns ipaerr.ErrInvalidIPA if
// the accumulated product is zero, i.e. some v[i] is zero.
func BatchInvert(v []Scalar, order *big.Int) ([]Scalar, error) {
	n := len(v)
	products := make([]Scalar, n)
	acc := One(order)
	for i := 0; i < n; i++ {
		products[i] = acc
		acc = acc.Mul(v[i])
	}
	if acc.IsZero() {
		return nil, ipaerr.ErrInvalidIPA
	}
	accInv, _ := acc.Inverse()

	out := make([]Scalar, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = products[i].Mul(accInv)
		accInv = accInv.Mul(v[i])
	}
	return out, nil
}
