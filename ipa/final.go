package ipa

import (
	"math/big"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipaerr"
	"github.com/arcfold/ipacore/transcript"
)

// FinalIPA is the logarithmic-sized Fiat-Shamir argument of spec.md §4.3:
// a list of left/right commitments that halve the witness and public
// vector lengths each round, ending with a single scalar x_hat.
type FinalIPA struct {
	LVec []group.CompressedElement
	RVec []group.CompressedElement
	XHat field.Scalar
}

func finalProtocolName() string { return "inner product argument (final)" }

// ProveFinal produces a FinalIPA for instance U / witness W over gens
// (length n, a power of two matching U and W).
func ProveFinal(U InnerProductInstance, W InnerProductWitness, gens group.CommitGens, tr *transcript.Transcript, gp group.Group) (FinalIPA, error) {
	n := len(W.XVec)
	if len(U.AVec) != n || gens.Len() != n || !isPowerOfTwo(n) {
		return FinalIPA{}, ipaerr.ErrInvalidInputLength
	}

	tr.Absorb("protocol-name", []byte(finalProtocolName()))
	absorbElement(tr, "comm_x_vec", U.CommXVec)
	order := U.Y.Order
	tr.AbsorbScalar("y", U.Y.Bytes())

	r := tr.Challenge("r", order)
	gensY, err := group.FromScalar(gp, r)
	if err != nil {
		return FinalIPA{}, err
	}

	xVec := make([]field.Scalar, n)
	copy(xVec, W.XVec)
	aVec := make([]field.Scalar, n)
	copy(aVec, U.AVec)
	gensRef := gens.Clone()

	rounds := log2(n)
	LVec := make([]group.CompressedElement, 0, rounds)
	RVec := make([]group.CompressedElement, 0, rounds)

	cur := n
	for i := 0; i < rounds; i++ {
		half := cur / 2
		xL, xR := xVec[:half], xVec[half:cur]
		aL, aR := aVec[:half], aVec[half:cur]
		gensL, gensR := gensRef.SplitAt(half)

		cL := innerProduct(xL, aR, order)
		cR := innerProduct(xR, aL, order)

		L, err := group.Commit(append(bigIntSlice(xL), cL.BigInt()), gensR.Combine(gensY))
		if err != nil {
			return FinalIPA{}, err
		}
		R, err := group.Commit(append(bigIntSlice(xR), cR.BigInt()), gensL.Combine(gensY))
		if err != nil {
			return FinalIPA{}, err
		}

		Lc, err := group.Compress(L)
		if err != nil {
			return FinalIPA{}, err
		}
		Rc, err := group.Compress(R)
		if err != nil {
			return FinalIPA{}, err
		}
		tr.Absorb("L", Lc)
		tr.Absorb("R", Rc)
		LVec = append(LVec, Lc)
		RVec = append(RVec, Rc)

		rChal := field.New(tr.Challenge("challenge_r", order), order)
		rInv, ok := rChal.Inverse()
		if !ok {
			return FinalIPA{}, ipaerr.ErrInvalidIPA
		}

		nextX := make([]field.Scalar, half)
		nextA := make([]field.Scalar, half)
		for j := 0; j < half; j++ {
			nextX[j] = xL[j].Mul(rChal).Add(rInv.Mul(xR[j]))
			nextA[j] = aL[j].Mul(rInv).Add(rChal.Mul(aR[j]))
		}
		xVec, aVec = nextX, nextA
		gensRef.Fold(rInv.BigInt(), rChal.BigInt())
		cur = half
	}

	return FinalIPA{LVec: LVec, RVec: RVec, XHat: xVec[0]}, nil
}

// VerifyFinal replays the same transcript interactions as ProveFinal and
// checks the single multi-exponentiation identity of spec.md §4.3.
func (p FinalIPA) VerifyFinal(n int, U InnerProductInstance, gens group.CommitGens, tr *transcript.Transcript, gp group.Group) error {
	if gens.Len() != n || len(U.AVec) != n || len(p.LVec) != len(p.RVec) || n != (1<<len(p.LVec)) || len(p.LVec) >= 32 {
		return ipaerr.ErrInvalidInputLength
	}

	tr.Absorb("protocol-name", []byte(finalProtocolName()))
	absorbElement(tr, "comm_x_vec", U.CommXVec)
	order := U.Y.Order
	tr.AbsorbScalar("y", U.Y.Bytes())

	r := tr.Challenge("r", order)
	gensY, err := group.FromScalar(gp, r)
	if err != nil {
		return err
	}
	commY, err := group.Commit([]*big.Int{U.Y.BigInt()}, gensY)
	if err != nil {
		return err
	}
	gamma := gp.Element().Add(U.CommXVec, commY)

	k := len(p.LVec)
	rs := make([]field.Scalar, k)
	for i := 0; i < k; i++ {
		tr.Absorb("L", p.LVec[i])
		tr.Absorb("R", p.RVec[i])
		rs[i] = field.New(tr.Challenge("challenge_r", order), order)
	}

	rInv, err := field.BatchInvert(rs, order)
	if err != nil {
		return err
	}
	rSquare := make([]field.Scalar, k)
	rInvSquare := make([]field.Scalar, k)
	for i := 0; i < k; i++ {
		rSquare[i] = rs[i].Mul(rs[i])
		rInvSquare[i] = rInv[i].Mul(rInv[i])
	}

	exps := make([]field.Scalar, n)
	exps[0] = field.One(order)
	for i := 0; i < k; i++ {
		exps[0] = exps[0].Mul(rInv[i])
	}
	for j := 1; j < n; j++ {
		pos := highestSetBit(j)
		exps[j] = exps[j-(1<<pos)].Mul(rSquare[k-1-pos])
	}

	aHat := innerProduct(U.AVec, exps, order)

	gensHatElem, err := group.Commit(bigIntSlice(exps), gens)
	if err != nil {
		return err
	}
	gensHatC, err := group.Compress(gensHatElem)
	if err != nil {
		return err
	}
	gensHat, err := group.ReinterpretCommitmentsAsGens(gp, []group.CompressedElement{gensHatC})
	if err != nil {
		return err
	}

	gensL, err := group.ReinterpretCommitmentsAsGens(gp, p.LVec)
	if err != nil {
		return err
	}
	gensR, err := group.ReinterpretCommitmentsAsGens(gp, p.RVec)
	if err != nil {
		return err
	}
	gammaC, err := group.Compress(gamma)
	if err != nil {
		return err
	}
	gensGamma, err := group.ReinterpretCommitmentsAsGens(gp, []group.CompressedElement{gammaC})
	if err != nil {
		return err
	}
	gensFolded := gensL.Combine(gensR).Combine(gensGamma)

	scalars := make([]*big.Int, 0, 2*k+1)
	for i := 0; i < k; i++ {
		scalars = append(scalars, rSquare[i].BigInt())
	}
	for i := 0; i < k; i++ {
		scalars = append(scalars, rInvSquare[i].BigInt())
	}
	scalars = append(scalars, field.One(order).BigInt())

	gammaHat, err := group.Commit(scalars, gensFolded)
	if err != nil {
		return err
	}

	yHat := p.XHat.Mul(aHat)
	rhsGens := gensHat.Combine(gensY)
	rhs, err := group.Commit([]*big.Int{p.XHat.BigInt(), yHat.BigInt()}, rhsGens)
	if err != nil {
		return err
	}

	if !gammaHat.IsEqual(rhs) {
		return ipaerr.ErrInvalidIPA
	}
	return nil
}

// highestSetBit returns the position of the highest set bit of j (j > 0).
func highestSetBit(j int) int {
	pos := 0
	for j > 1 {
		j >>= 1
		pos++
	}
	return pos
}
