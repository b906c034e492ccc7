package ipa_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipa"
	"github.com/arcfold/ipacore/transcript"
)

func buildFinalInstance(t *testing.T, n int) (ipa.InnerProductInstance, ipa.InnerProductWitness, group.CommitGens, group.Group, *big.Int) {
	gp := group.P256()
	order := gp.N()
	gens, err := group.NewCommitGens(gp, "final-test-gens", n)
	require.NoError(t, err)

	xVec := make([]field.Scalar, n)
	aVec := make([]field.Scalar, n)
	for i := 0; i < n; i++ {
		xVec[i] = field.FromUint64(uint64(i+1), order)
		aVec[i] = field.FromUint64(uint64(2*i+3), order)
	}
	commX, err := group.Commit(bigIntSliceForTest(xVec), gens)
	require.NoError(t, err)
	commXC, err := group.Compress(commX)
	require.NoError(t, err)

	y := field.Zero(order)
	for i := 0; i < n; i++ {
		y = y.Add(xVec[i].Mul(aVec[i]))
	}

	U, err := ipa.NewInnerProductInstance(gp, commXC, aVec, y)
	require.NoError(t, err)
	W := ipa.NewInnerProductWitness(xVec)
	return U, W, gens, gp, order
}

func bigIntSliceForTest(s []field.Scalar) []*big.Int {
	out := make([]*big.Int, len(s))
	for i, v := range s {
		out[i] = v.BigInt()
	}
	return out
}

func TestFinalIPARoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		U, W, gens, gp, _ := buildFinalInstance(t, n)

		proveTr := transcript.New("final-ipa-test")
		proof, err := ipa.ProveFinal(U, W, gens, proveTr, gp)
		require.NoError(t, err)

		verifyTr := transcript.New("final-ipa-test")
		err = proof.VerifyFinal(n, U, gens, verifyTr, gp)
		require.NoError(t, err, "n=%d", n)
	}
}

func TestFinalIPARejectsTamperedXHat(t *testing.T) {
	n := 4
	U, W, gens, gp, order := buildFinalInstance(t, n)

	proveTr := transcript.New("final-ipa-test")
	proof, err := ipa.ProveFinal(U, W, gens, proveTr, gp)
	require.NoError(t, err)

	proof.XHat = proof.XHat.Add(field.One(order))

	verifyTr := transcript.New("final-ipa-test")
	err = proof.VerifyFinal(n, U, gens, verifyTr, gp)
	require.Error(t, err)
}

func TestFinalIPARejectsShapeMismatch(t *testing.T) {
	n := 4
	U, W, gens, gp, _ := buildFinalInstance(t, n)

	proveTr := transcript.New("final-ipa-test")
	proof, err := ipa.ProveFinal(U, W, gens, proveTr, gp)
	require.NoError(t, err)

	verifyTr := transcript.New("final-ipa-test")
	err = proof.VerifyFinal(n*2, U, gens, verifyTr, gp)
	require.Error(t, err)
}

func TestFinalIPAMarshalRoundTrip(t *testing.T) {
	n := 8
	U, W, gens, gp, order := buildFinalInstance(t, n)

	proveTr := transcript.New("final-ipa-test")
	proof, err := ipa.ProveFinal(U, W, gens, proveTr, gp)
	require.NoError(t, err)

	encoded, err := proof.MarshalBinary()
	require.NoError(t, err)
	decoded, err := ipa.UnmarshalFinalIPA(encoded, order)
	require.NoError(t, err)

	require.Equal(t, len(proof.LVec), len(decoded.LVec))
	require.True(t, proof.XHat.Equal(decoded.XHat))

	verifyTr := transcript.New("final-ipa-test")
	require.NoError(t, decoded.VerifyFinal(n, U, gens, verifyTr, gp))
}
