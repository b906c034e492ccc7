package group_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcfold/ipacore/group"
)

func TestCommitGensSplitCombineRoundTrip(t *testing.T) {
	gp := group.P256()
	gens, err := group.NewCommitGens(gp, "test-gens", 4)
	require.NoError(t, err)

	left, right := gens.SplitAt(2)
	require.Equal(t, 2, left.Len())
	require.Equal(t, 2, right.Len())

	combined := left.Combine(right)
	require.Equal(t, 4, combined.Len())
	for i := range gens.Gens {
		require.True(t, gens.Gens[i].IsEqual(combined.Gens[i]))
	}
}

func TestCommitLinearity(t *testing.T) {
	gp := group.P256()
	gens, err := group.NewCommitGens(gp, "commit-linearity", 3)
	require.NoError(t, err)

	a := []*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(5)}
	b := []*big.Int{big.NewInt(7), big.NewInt(11), big.NewInt(13)}
	sum := make([]*big.Int, 3)
	for i := range a {
		sum[i] = new(big.Int).Add(a[i], b[i])
	}

	ca, err := group.Commit(a, gens)
	require.NoError(t, err)
	cb, err := group.Commit(b, gens)
	require.NoError(t, err)
	cSum, err := group.Commit(sum, gens)
	require.NoError(t, err)

	require.True(t, cSum.IsEqual(gp.Element().Add(ca, cb)))
}

func TestCommitLengthMismatch(t *testing.T) {
	gp := group.P256()
	gens, err := group.NewCommitGens(gp, "commit-mismatch", 3)
	require.NoError(t, err)

	_, err = group.Commit([]*big.Int{big.NewInt(1), big.NewInt(2)}, gens)
	require.Error(t, err)
}

func TestCommitGensFold(t *testing.T) {
	gp := group.P256()
	gens, err := group.NewCommitGens(gp, "commit-fold", 4)
	require.NoError(t, err)

	alpha := big.NewInt(3)
	beta := big.NewInt(5)
	left, right := gens.SplitAt(2)

	wantFolded := make([]group.Element, 2)
	for i := 0; i < 2; i++ {
		l := gp.Element().Scale(left.Gens[i], alpha)
		r := gp.Element().Scale(right.Gens[i], beta)
		wantFolded[i] = gp.Element().Add(l, r)
	}

	gens.Fold(alpha, beta)
	require.Equal(t, 2, gens.Len())
	for i := range wantFolded {
		require.True(t, gens.Gens[i].IsEqual(wantFolded[i]))
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	gp := group.P256()
	e := gp.Random()

	c, err := group.Compress(e)
	require.NoError(t, err)
	back, err := c.Decompress(gp)
	require.NoError(t, err)
	require.True(t, e.IsEqual(back))
}

func TestFromScalarDeterministic(t *testing.T) {
	gp := group.P256()
	s := big.NewInt(42)

	g1, err := group.FromScalar(gp, s)
	require.NoError(t, err)
	g2, err := group.FromScalar(gp, s)
	require.NoError(t, err)
	require.True(t, g1.Gens[0].IsEqual(g2.Gens[0]))
}

func TestReinterpretCommitmentsAsGens(t *testing.T) {
	gp := group.P256()
	e1 := gp.Random()
	e2 := gp.Random()
	c1, err := group.Compress(e1)
	require.NoError(t, err)
	c2, err := group.Compress(e2)
	require.NoError(t, err)

	gens, err := group.ReinterpretCommitmentsAsGens(gp, []group.CompressedElement{c1, c2})
	require.NoError(t, err)
	require.Equal(t, 2, gens.Len())
	require.True(t, gens.Gens[0].IsEqual(e1))
	require.True(t, gens.Gens[1].IsEqual(e2))
}
