package ipa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipa"
	"github.com/arcfold/ipacore/transcript"
)

func buildFinalAuxInstance(t *testing.T, n int) (group.Element, group.Element, field.Scalar, []field.Scalar, []field.Scalar, group.CommitGens, group.CommitGens, group.Group) {
	gp := group.P256()
	order := gp.N()
	gens, err := group.NewCommitGens(gp, "final-aux-test-gens", n)
	require.NoError(t, err)
	gensAux, err := group.NewCommitGens(gp, "final-aux-test-gens-aux", n)
	require.NoError(t, err)

	xVec := make([]field.Scalar, n)
	aVec := make([]field.Scalar, n)
	for i := 0; i < n; i++ {
		xVec[i] = field.FromUint64(uint64(i+1), order)
		aVec[i] = field.FromUint64(uint64(2*i+3), order)
	}

	commX, err := group.Commit(bigIntSliceForTest(xVec), gens)
	require.NoError(t, err)
	commA, err := group.Commit(bigIntSliceForTest(aVec), gensAux)
	require.NoError(t, err)

	y := field.Zero(order)
	for i := 0; i < n; i++ {
		y = y.Add(xVec[i].Mul(aVec[i]))
	}

	return commX, commA, y, xVec, aVec, gens, gensAux, gp
}

func TestFinalIPAAuxRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8} {
		commX, commA, y, xVec, aVec, gens, gensAux, gp := buildFinalAuxInstance(t, n)

		proveTr := transcript.New("final-ipa-aux-test")
		proof, err := ipa.ProveFinalAux(commX, commA, y, xVec, aVec, gens, gensAux, proveTr, gp)
		require.NoError(t, err)

		verifyTr := transcript.New("final-ipa-aux-test")
		err = proof.VerifyFinalAux(n, commX, commA, y, gens, gensAux, verifyTr, gp)
		require.NoError(t, err, "n=%d", n)
	}
}

func TestFinalIPAAuxRejectsTamperedAHat(t *testing.T) {
	n := 4
	commX, commA, y, xVec, aVec, gens, gensAux, gp := buildFinalAuxInstance(t, n)

	proveTr := transcript.New("final-ipa-aux-test")
	proof, err := ipa.ProveFinalAux(commX, commA, y, xVec, aVec, gens, gensAux, proveTr, gp)
	require.NoError(t, err)

	order := gp.N()
	proof.AHat = proof.AHat.Add(field.One(order))

	verifyTr := transcript.New("final-ipa-aux-test")
	err = proof.VerifyFinalAux(n, commX, commA, y, gens, gensAux, verifyTr, gp)
	require.Error(t, err)
}

func TestFinalIPAAuxMarshalRoundTrip(t *testing.T) {
	n := 4
	commX, commA, y, xVec, aVec, gens, gensAux, gp := buildFinalAuxInstance(t, n)

	proveTr := transcript.New("final-ipa-aux-test")
	proof, err := ipa.ProveFinalAux(commX, commA, y, xVec, aVec, gens, gensAux, proveTr, gp)
	require.NoError(t, err)

	order := gp.N()
	encoded, err := proof.MarshalBinary()
	require.NoError(t, err)
	decoded, err := ipa.UnmarshalFinalIPAAux(encoded, order)
	require.NoError(t, err)

	require.True(t, proof.XHat.Equal(decoded.XHat))
	require.True(t, proof.AHat.Equal(decoded.AHat))

	verifyTr := transcript.New("final-ipa-aux-test")
	require.NoError(t, decoded.VerifyFinalAux(n, commX, commA, y, gens, gensAux, verifyTr, gp))
}
