package ipa

import (
	"math/big"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipaerr"
	"github.com/arcfold/ipacore/transcript"
)

// FinalIPAAux is the variant of FinalIPA where both x_vec and a_vec are
// committed (spec.md §4.4): each side folds under its own generator set,
// and the proof additionally exposes a_hat alongside x_hat.
type FinalIPAAux struct {
	LVec []group.CompressedElement
	RVec []group.CompressedElement
	XHat field.Scalar
	AHat field.Scalar
}

func finalAuxProtocolName() string { return "inner product argument (final, aux)" }

// ProveFinalAux produces a FinalIPAAux for the committed pair (x_vec,
// a_vec), each under its own generator vector (gens, gensAux).
func ProveFinalAux(commXVec, commAVec group.Element, y field.Scalar, xVec, aVec []field.Scalar, gens, gensAux group.CommitGens, tr *transcript.Transcript, gp group.Group) (FinalIPAAux, error) {
	n := len(xVec)
	if len(aVec) != n || gens.Len() != n || !isPowerOfTwo(gens.Len()) || gensAux.Len() != n || !isPowerOfTwo(gensAux.Len()) {
		return FinalIPAAux{}, ipaerr.ErrInvalidInputLength
	}

	tr.Absorb("protocol-name", []byte(finalAuxProtocolName()))
	absorbElement(tr, "comm_x_vec", commXVec)
	absorbElement(tr, "comm_a_vec", commAVec)
	order := y.Order
	tr.AbsorbScalar("y", y.Bytes())

	r := tr.Challenge("r", order)
	gensY, err := group.FromScalar(gp, r)
	if err != nil {
		return FinalIPAAux{}, err
	}

	xRef := make([]field.Scalar, n)
	copy(xRef, xVec)
	aRef := make([]field.Scalar, n)
	copy(aRef, aVec)
	gensRef := gens.Clone()
	gensAuxRef := gensAux.Clone()

	rounds := log2(n)
	LVec := make([]group.CompressedElement, 0, rounds)
	RVec := make([]group.CompressedElement, 0, rounds)

	cur := n
	for i := 0; i < rounds; i++ {
		half := cur / 2
		xL, xR := xRef[:half], xRef[half:cur]
		aL, aR := aRef[:half], aRef[half:cur]
		gensL, gensR := gensRef.SplitAt(half)
		gensAuxL, gensAuxR := gensAuxRef.SplitAt(half)

		cL := innerProduct(xL, aR, order)
		cR := innerProduct(xR, aL, order)

		lScalars := append(append(bigIntSlice(xL), bigIntSlice(aR)...), cL.BigInt())
		L, err := group.Commit(lScalars, gensR.Combine(gensAuxL).Combine(gensY))
		if err != nil {
			return FinalIPAAux{}, err
		}
		rScalars := append(append(bigIntSlice(xR), bigIntSlice(aL)...), cR.BigInt())
		R, err := group.Commit(rScalars, gensL.Combine(gensAuxR).Combine(gensY))
		if err != nil {
			return FinalIPAAux{}, err
		}

		Lc, err := group.Compress(L)
		if err != nil {
			return FinalIPAAux{}, err
		}
		Rc, err := group.Compress(R)
		if err != nil {
			return FinalIPAAux{}, err
		}
		tr.Absorb("L", Lc)
		tr.Absorb("R", Rc)
		LVec = append(LVec, Lc)
		RVec = append(RVec, Rc)

		rChal := field.New(tr.Challenge("challenge_r", order), order)
		rInv, ok := rChal.Inverse()
		if !ok {
			return FinalIPAAux{}, ipaerr.ErrInvalidIPA
		}

		nextX := make([]field.Scalar, half)
		nextA := make([]field.Scalar, half)
		for j := 0; j < half; j++ {
			nextX[j] = xL[j].Mul(rChal).Add(rInv.Mul(xR[j]))
			nextA[j] = aL[j].Mul(rInv).Add(rChal.Mul(aR[j]))
		}
		xRef, aRef = nextX, nextA
		// the aux generators fold with swapped coefficients (spec.md §4.4).
		gensRef.Fold(rInv.BigInt(), rChal.BigInt())
		gensAuxRef.Fold(rChal.BigInt(), rInv.BigInt())
		cur = half
	}

	return FinalIPAAux{LVec: LVec, RVec: RVec, XHat: xRef[0], AHat: aRef[0]}, nil
}

// VerifyFinalAux replays ProveFinalAux's transcript interactions and
// checks the aux multi-exponentiation identity of spec.md §4.4.
func (p FinalIPAAux) VerifyFinalAux(n int, commXVec, commAVec group.Element, y field.Scalar, gens, gensAux group.CommitGens, tr *transcript.Transcript, gp group.Group) error {
	if gens.Len() != n || gensAux.Len() != n || len(p.LVec) != len(p.RVec) || n != (1<<len(p.LVec)) || len(p.LVec) >= 32 {
		return ipaerr.ErrInvalidInputLength
	}

	tr.Absorb("protocol-name", []byte(finalAuxProtocolName()))
	absorbElement(tr, "comm_x_vec", commXVec)
	absorbElement(tr, "comm_a_vec", commAVec)
	order := y.Order
	tr.AbsorbScalar("y", y.Bytes())

	r := tr.Challenge("r", order)
	gensY, err := group.FromScalar(gp, r)
	if err != nil {
		return err
	}
	commY, err := group.Commit([]*big.Int{y.BigInt()}, gensY)
	if err != nil {
		return err
	}

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
	expsInv, err := field.BatchInvert(exps, order)
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

	P := gp.Element().Add(gp.Element().Add(commXVec, commAVec), commY)
	lhsScalars := make([]*big.Int, 0, 2*k)
	for i := 0; i < k; i++ {
		lhsScalars = append(lhsScalars, rSquare[i].BigInt())
	}
	for i := 0; i < k; i++ {
		lhsScalars = append(lhsScalars, rInvSquare[i].BigInt())
	}
	foldTerm, err := group.Commit(lhsScalars, gensL.Combine(gensR))
	if err != nil {
		return err
	}
	lhs := gp.Element().Add(P, foldTerm)

	rhsScalars := make([]*big.Int, 0, 1+2*n)
	rhsScalars = append(rhsScalars, p.XHat.Mul(p.AHat).BigInt())
	for i := 0; i < n; i++ {
		rhsScalars = append(rhsScalars, exps[i].Mul(p.XHat).BigInt())
	}
	for i := 0; i < n; i++ {
		rhsScalars = append(rhsScalars, expsInv[i].Mul(p.AHat).BigInt())
	}
	rhs, err := group.Commit(rhsScalars, gensY.Combine(gens).Combine(gensAux))
	if err != nil {
		return err
	}

	if !lhs.IsEqual(rhs) {
		return ipaerr.ErrInvalidIPA
	}
	return nil
}
