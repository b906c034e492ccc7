package transcript_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcfold/ipacore/transcript"
)

var order, _ = new(big.Int).SetString("115792089210356248762697446949407573529996955224135760342422259061068512044369", 10)

func TestChallengeDeterministic(t *testing.T) {
	t1 := transcript.New("test-protocol")
	t1.Absorb("x", []byte("hello"))
	c1 := t1.Challenge("r", order)

	t2 := transcript.New("test-protocol")
	t2.Absorb("x", []byte("hello"))
	c2 := t2.Challenge("r", order)

	require.Equal(t, 0, c1.Cmp(c2))
}

func TestChallengeVariesWithTranscriptInput(t *testing.T) {
	t1 := transcript.New("test-protocol")
	t1.Absorb("x", []byte("hello"))
	c1 := t1.Challenge("r", order)

	t2 := transcript.New("test-protocol")
	t2.Absorb("x", []byte("goodbye"))
	c2 := t2.Challenge("r", order)

	require.NotEqual(t, 0, c1.Cmp(c2))
}

func TestChallengeVariesWithLabel(t *testing.T) {
	tr := transcript.New("test-protocol")
	tr.Absorb("x", []byte("hello"))
	c1 := tr.Challenge("r1", order)
	c2 := tr.Challenge("r2", order)
	require.NotEqual(t, 0, c1.Cmp(c2))
}

func TestChallengeDoesNotPerturbAbsorb(t *testing.T) {
	t1 := transcript.New("p")
	t1.Absorb("a", []byte("1"))
	_ = t1.Challenge("r", order)
	t1.Absorb("b", []byte("2"))
	c1 := t1.Challenge("s", order)

	t2 := transcript.New("p")
	t2.Absorb("a", []byte("1"))
	_ = t2.Challenge("r", order)
	t2.Absorb("b", []byte("2"))
	c2 := t2.Challenge("s", order)

	require.Equal(t, 0, c1.Cmp(c2))
}

func TestChallengeInRange(t *testing.T) {
	tr := transcript.New("p")
	for i := 0; i < 8; i++ {
		c := tr.Challenge("r", order)
		require.True(t, c.Sign() >= 0)
		require.True(t, c.Cmp(order) < 0)
	}
}
