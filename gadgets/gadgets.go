// Package gadgets provides the R1CS building blocks of spec.md §4.5:
// constant allocation, bit/number conversions, equality testing, and
// conditional selection, all expressed against gnark's frontend.API so
// they compose directly into any circuit's Define method, the same way
// a Merkle-path circuit wires its own helpers into frontend.API calls.
package gadgets

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// AllocZero allocates a witness constrained to equal 0 via z*z = 0.
func AllocZero(api frontend.API) (frontend.Variable, error) {
	outs, err := api.Compiler().NewHint(identityHint, 1, 0)
	if err != nil {
		return nil, err
	}
	z := outs[0]
	api.AssertIsEqual(api.Mul(z, z), 0)
	return z, nil
}

// AllocOne allocates a witness constrained to equal 1 via (1-o)*(1-o) = 0.
func AllocOne(api frontend.API) (frontend.Variable, error) {
	outs, err := api.Compiler().NewHint(identityHint, 1, 1)
	if err != nil {
		return nil, err
	}
	o := outs[0]
	diff := api.Sub(1, o)
	api.AssertIsEqual(api.Mul(diff, diff), 0)
	return o, nil
}

// AllocFalse allocates a boolean witness constrained to 0.
func AllocFalse(api frontend.API) (frontend.Variable, error) { return AllocZero(api) }

// AllocTrue allocates a boolean witness constrained to 1.
func AllocTrue(api frontend.API) (frontend.Variable, error) { return AllocOne(api) }

// LeBitsToNum folds a little-endian bit slice into the field element it
// represents, asserting booleanity of every bit along the way.
func LeBitsToNum(api frontend.API, bits []frontend.Variable) (frontend.Variable, error) {
	hintInputs := make([]frontend.Variable, len(bits))
	for i, b := range bits {
		api.AssertIsBoolean(b)
		hintInputs[i] = b
	}
	outs, err := api.Compiler().NewHint(leBitsToNumHint, 1, hintInputs...)
	if err != nil {
		return nil, err
	}
	n := outs[0]

	sum := frontend.Variable(0)
	coeff := big.NewInt(1)
	two := big.NewInt(2)
	for _, b := range bits {
		sum = api.Add(sum, api.Mul(b, coeff))
		coeff = new(big.Int).Mul(coeff, two)
	}
	api.AssertIsEqual(sum, n)
	return n, nil
}

// BitToNum converts a single boolean bit into a field element equal to
// its value; it is LeBitsToNum specialized to one bit.
func BitToNum(api frontend.API, bit frontend.Variable) (frontend.Variable, error) {
	return LeBitsToNum(api, []frontend.Variable{bit})
}

// AllocNumEquals implements the delta/delta_inv equality gadget with
// three constraints: it allocates a boolean r equal to 1 iff a == b,
// without branching on witness values inside the constraint system.
//
//	delta     = a - b
//	delta_inv = inverse(delta), or an arbitrary value when delta == 0
//	r         = 1 - delta * delta_inv
//	r * delta = 0
//	r is boolean
func AllocNumEquals(api frontend.API, a, b frontend.Variable) (frontend.Variable, error) {
	delta := api.Sub(a, b)

	invOuts, err := api.Compiler().NewHint(invOrOneHint, 1, delta)
	if err != nil {
		return nil, err
	}
	deltaInv := invOuts[0]

	rOuts, err := api.Compiler().NewHint(boolEqHint, 1, a, b)
	if err != nil {
		return nil, err
	}
	r := rOuts[0]

	api.AssertIsEqual(r, api.Sub(1, api.Mul(delta, deltaInv)))
	api.AssertIsEqual(api.Mul(r, delta), 0)
	api.AssertIsBoolean(r)

	return r, nil
}

// ConditionallySelect returns a if cond == 1, b if cond == 0; cond must
// already be constrained boolean by the caller.
func ConditionallySelect(api frontend.API, cond, a, b frontend.Variable) frontend.Variable {
	return api.Select(cond, a, b)
}

// ConditionallySelectBit is ConditionallySelect specialized to boolean
// a/b: it asserts cond, a, and b are each boolean before selecting.
func ConditionallySelectBit(api frontend.API, cond, a, b frontend.Variable) frontend.Variable {
	api.AssertIsBoolean(cond)
	api.AssertIsBoolean(a)
	api.AssertIsBoolean(b)
	return api.Select(cond, a, b)
}

// ConditionallySelect2 selects between a and b using an arithmetic
// (non-pre-asserted) condition, asserting booleanity itself.
func ConditionallySelect2(api frontend.API, cond, a, b frontend.Variable) frontend.Variable {
	api.AssertIsBoolean(cond)
	return api.Select(cond, a, b)
}

// SelectZeroOr returns 0 if cond == 1, a otherwise; cond must be boolean.
func SelectZeroOr(api frontend.API, cond, a frontend.Variable) frontend.Variable {
	api.AssertIsBoolean(cond)
	return api.Select(cond, 0, a)
}

// SelectOneOr returns 1 if cond == 1, a otherwise; cond must be boolean.
func SelectOneOr(api frontend.API, cond, a frontend.Variable) frontend.Variable {
	api.AssertIsBoolean(cond)
	return api.Select(cond, 1, a)
}

// SelectVariableOrOne returns b if cond == 1, 1 otherwise; cond must be
// boolean. Useful for building a running product that should be
// unaffected by disabled terms.
func SelectVariableOrOne(api frontend.API, cond, b frontend.Variable) frontend.Variable {
	api.AssertIsBoolean(cond)
	return api.Select(cond, b, 1)
}
