package gadgets

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

// identityHint returns its single input unchanged. It backs the
// constant-allocation gadgets (AllocZero, AllocOne, AllocFalse,
// AllocTrue): the input is the literal constant, and the hint gives the
// circuit a genuine witness wire to constrain, matching the "unused
// constant" allocation pattern of the original gadget library rather
// than folding the constant directly into a linear combination.
func identityHint(_ *big.Int, inputs, outputs []*big.Int) error {
	outputs[0] = new(big.Int).Set(inputs[0])
	return nil
}

// invOrOneHint computes the field inverse of inputs[0], or 1 if
// inputs[0] is zero. It backs AllocNumEquals' delta_inv witness: the
// value assigned on the zero branch is arbitrary by spec (spec.md §9,
// "avoid leaking witnesses via timing") and is never used by the
// constraints that follow it.
func invOrOneHint(field *big.Int, inputs, outputs []*big.Int) error {
	delta := inputs[0]
	if delta.Sign() == 0 {
		outputs[0] = big.NewInt(1)
		return nil
	}
	outputs[0] = new(big.Int).ModInverse(delta, field)
	return nil
}

// boolEqHint reports whether inputs[0] == inputs[1] as 0/1. It backs
// AllocNumEquals' result bit r, whose assigned value cannot be derived
// from a,b by an arithmetic expression alone.
func boolEqHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if inputs[0].Cmp(inputs[1]) == 0 {
		outputs[0] = big.NewInt(1)
	} else {
		outputs[0] = big.NewInt(0)
	}
	return nil
}

// leBitsToNumHint folds little-endian bits into the field element they
// represent. It backs LeBitsToNum's witness n, whose value is an
// arithmetic combination of the bits but is computed outside the
// constraint system for efficiency, the same way the original gadget
// library pre-computes `fe` while building the linear combination.
func leBitsToNumHint(_ *big.Int, inputs, outputs []*big.Int) error {
	acc := new(big.Int)
	coeff := big.NewInt(1)
	two := big.NewInt(2)
	for _, bit := range inputs {
		if bit.Sign() != 0 {
			acc.Add(acc, coeff)
		}
		coeff = new(big.Int).Mul(coeff, two)
	}
	outputs[0] = acc
	return nil
}

func init() {
	solver.RegisterHint(identityHint)
	solver.RegisterHint(invOrOneHint)
	solver.RegisterHint(boolEqHint)
	solver.RegisterHint(leBitsToNumHint)
}
