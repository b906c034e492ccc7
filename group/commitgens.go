package group

import (
	"math/big"

	"golang.org/x/sync/errgroup"
)

// CommitGens is an ordered sequence of n independent generators of a
// Group, used to Pedersen-commit to a scalar vector of matching length.
type CommitGens struct {
	GP   Group
	Gens []Element
}

// NewCommitGens derives n independent generators deterministically from
// label, the same hash-to-group convention the teacher's
// bulletproofs.setupInnerProduct uses for its SEEDH-prefixed generators:
// each generator is MapToGroup(label + index), so two calls with the
// same label and n reproduce the same generators.
func NewCommitGens(gp Group, label string, n int) (CommitGens, error) {
	gens := make([]Element, n)
	for i := 0; i < n; i++ {
		e, err := gp.Element().MapToGroup(label + itoa(i))
		if err != nil {
			return CommitGens{}, err
		}
		gens[i] = e
	}
	return CommitGens{GP: gp, Gens: gens}, nil
}

// FromScalar builds a single-generator CommitGens by hashing the
// hexadecimal text of a challenge scalar into the group; this is
// the gens_y of spec.md §4.3, committing a single field element with a
// generator whose discrete log nobody knows.
func FromScalar(gp Group, s *big.Int) (CommitGens, error) {
	e, err := gp.Element().MapToGroup(s.Text(16))
	if err != nil {
		return CommitGens{}, err
	}
	return CommitGens{GP: gp, Gens: []Element{e}}, nil
}

// ReinterpretCommitmentsAsGens decodes a slice of CompressedElement and
// treats the decoded points as generators, as spec.md §3 requires for
// collapsing the L_vec/R_vec commitments of a FinalIPA proof into a
// single folded generator set during verification.
func ReinterpretCommitmentsAsGens(gp Group, cs []CompressedElement) (CommitGens, error) {
	gens := make([]Element, len(cs))
	for i, c := range cs {
		e, err := c.Decompress(gp)
		if err != nil {
			return CommitGens{}, err
		}
		gens[i] = e
	}
	return CommitGens{GP: gp, Gens: gens}, nil
}

// Len returns the number of generators.
func (g CommitGens) Len() int { return len(g.Gens) }

// Clone returns an independent copy of g.
func (g CommitGens) Clone() CommitGens {
	out := make([]Element, len(g.Gens))
	copy(out, g.Gens)
	return CommitGens{GP: g.GP, Gens: out}
}

// SplitAt splits g into (g[:mid], g[mid:]).
func (g CommitGens) SplitAt(mid int) (left, right CommitGens) {
	return CommitGens{GP: g.GP, Gens: g.Gens[:mid]}, CommitGens{GP: g.GP, Gens: g.Gens[mid:]}
}

// Combine concatenates g and o into a single generator sequence.
func (g CommitGens) Combine(o CommitGens) CommitGens {
	out := make([]Element, 0, len(g.Gens)+len(o.Gens))
	out = append(out, g.Gens...)
	out = append(out, o.Gens...)
	return CommitGens{GP: g.GP, Gens: out}
}

// Fold replaces each pair (g_L_i, g_R_i) of the first/second half of g
// with alpha*g_L_i + beta*g_R_i, halving g's length in place. This is
// the generator-folding step of spec.md §4.3's reduction loop.
func (g *CommitGens) Fold(alpha, beta *big.Int) {
	n := len(g.Gens)
	half := n / 2
	folded := make([]Element, half)
	for i := 0; i < half; i++ {
		l := g.GP.Element().Scale(g.Gens[i], alpha)
		r := g.GP.Element().Scale(g.Gens[half+i], beta)
		folded[i] = g.GP.Element().Add(l, r)
	}
	g.Gens = folded
}

// Commit computes sum_i scalars[i] * gens[i] over CommitGens of matching
// length, the Pedersen-style vector commitment of spec.md §3.
//
// The per-term scalar multiplications are independent, pure
// data-parallel work (spec.md §5), so on vectors long enough to be worth
// the goroutine overhead they are dispatched across an errgroup; the
// reduction itself is sequential and happens after every term lands.
func Commit(scalars []*big.Int, gens CommitGens) (Element, error) {
	if len(scalars) != gens.Len() {
		return nil, errLengthMismatch
	}
	n := len(scalars)
	if n == 0 {
		return gens.GP.Identity(), nil
	}
	if n < minParallelCommitLen {
		acc := gens.GP.Identity()
		for i := 0; i < n; i++ {
			term := gens.GP.Element().Scale(gens.Gens[i], scalars[i])
			acc = gens.GP.Element().Add(acc, term)
		}
		return acc, nil
	}

	terms := make([]Element, n)
	var eg errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			terms[i] = gens.GP.Element().Scale(gens.Gens[i], scalars[i])
			return nil
		})
	}
	_ = eg.Wait()

	acc := gens.GP.Identity()
	for i := 0; i < n; i++ {
		acc = gens.GP.Element().Add(acc, terms[i])
	}
	return acc, nil
}

// minParallelCommitLen is the vector length at or above which Commit splits
// its scalar multiplications across goroutines.
const minParallelCommitLen = 64

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
