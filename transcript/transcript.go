// Package transcript implements the label-keyed Fiat-Shamir transcript
// every IPA algorithm in this module draws its challenges from
// (spec.md §3, §4.1): an append-only byte state that absorbs labeled
// messages and emits uniformly distributed scalar challenges.
//
// The sponge is golang.org/x/crypto/sha3's SHAKE256, generalizing the
// teacher's bulletproofs.HashBP (a single fixed sha256 call over L and
// R) into an arbitrary sequence of domain-separated absorptions, the
// way a Merlin-style transcript would, but built from a library already
// present in the example pack instead of a bespoke strobe construction.
package transcript

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Transcript is a sequential, append-only state machine. It is not safe
// for concurrent use: all public coins in a proof are derived from a
// single transcript threaded through the algorithm in order
// (spec.md §3 invariant 5, §5).
type Transcript struct {
	sponge sha3.ShakeHash
}

// New starts a fresh transcript domain-separated by name, the
// protocol-name absorption every algorithm in §4 performs first.
func New(name string) *Transcript {
	t := &Transcript{sponge: sha3.NewShake256()}
	t.Absorb("protocol-name", []byte(name))
	return t
}

// Absorb appends a labeled message to the transcript state. label and
// the message length are both mixed in so that two differently-shaped
// absorptions never collide.
func (t *Transcript) Absorb(label string, msg []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(label)))
	_, _ = t.sponge.Write(lenBuf[:])
	_, _ = t.sponge.Write([]byte(label))
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(msg)))
	_, _ = t.sponge.Write(lenBuf[:])
	_, _ = t.sponge.Write(msg)
}

// AbsorbScalar absorbs the canonical byte encoding of a scalar, as the
// §4 algorithms do for the cross-term C and for y.
func (t *Transcript) AbsorbScalar(label string, encoded []byte) {
	t.Absorb(label, encoded)
}

// Challenge squeezes a fresh scalar challenge keyed by label, reduced
// into the field of the given order. The label is first absorbed into
// the running state (under "challenge-label"), so it also feeds every
// later draw; the output bytes are then read from a clone of the sponge,
// so reading them does not consume t's state or block later Absorb calls.
func (t *Transcript) Challenge(label string, order *big.Int) *big.Int {
	t.Absorb("challenge-label", []byte(label))
	width := (order.BitLen()+7)/8 + 16 // extra bytes to reduce bias
	out := make([]byte, width)
	// cloning via Clone preserves t's state for subsequent absorptions
	// while letting us read an arbitrary number of output bytes.
	reader := t.sponge.Clone()
	if _, err := reader.Read(out); err != nil {
		panic(err) // a sponge read never fails; a panic here signals a broken build
	}
	c := new(big.Int).SetBytes(out)
	c.Mod(c, order)
	return c
}
