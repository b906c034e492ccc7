package ipa

import (
	"encoding/binary"
	"math/big"

	"github.com/arcfold/ipacore/field"
	"github.com/arcfold/ipacore/group"
	"github.com/arcfold/ipacore/ipaerr"
)

// MarshalBinary encodes a FinalIPA as the concatenation of its fields in
// declaration order (spec.md §6): a round count, then L_vec and R_vec
// (each entry length-prefixed), then the canonical bytes of x_hat filling
// the rest of the buffer. No version tag is
// written; compatibility across encodings is explicitly not attempted.
func (p FinalIPA) MarshalBinary() ([]byte, error) {
	var out []byte
	out = appendUint32(out, uint32(len(p.LVec)))
	for _, c := range p.LVec {
		out = appendBytes(out, c)
	}
	for _, c := range p.RVec {
		out = appendBytes(out, c)
	}
	out = append(out, p.XHat.Bytes()...)
	return out, nil
}

// UnmarshalFinalIPA decodes bytes produced by FinalIPA.MarshalBinary,
// reducing x_hat modulo order.
func UnmarshalFinalIPA(b []byte, order *big.Int) (FinalIPA, error) {
	r := newByteReader(b)
	k, err := r.uint32()
	if err != nil {
		return FinalIPA{}, err
	}
	LVec := make([]group.CompressedElement, k)
	for i := range LVec {
		LVec[i], err = r.bytes()
		if err != nil {
			return FinalIPA{}, err
		}
	}
	RVec := make([]group.CompressedElement, k)
	for i := range RVec {
		RVec[i], err = r.bytes()
		if err != nil {
			return FinalIPA{}, err
		}
	}
	rest, err := r.rest()
	if err != nil {
		return FinalIPA{}, err
	}
	return FinalIPA{LVec: LVec, RVec: RVec, XHat: field.SetBytes(rest, order)}, nil
}

// MarshalBinary encodes a FinalIPAAux like FinalIPA, except that x_hat is
// length-prefixed and the bytes of a_hat fill the rest of the buffer.
func (p FinalIPAAux) MarshalBinary() ([]byte, error) {
	var out []byte
	out = appendUint32(out, uint32(len(p.LVec)))
	for _, c := range p.LVec {
		out = appendBytes(out, c)
	}
	for _, c := range p.RVec {
		out = appendBytes(out, c)
	}
	out = appendBytes(out, p.XHat.Bytes())
	out = append(out, p.AHat.Bytes()...)
	return out, nil
}

// UnmarshalFinalIPAAux decodes bytes produced by FinalIPAAux.MarshalBinary.
func UnmarshalFinalIPAAux(b []byte, order *big.Int) (FinalIPAAux, error) {
	r := newByteReader(b)
	k, err := r.uint32()
	if err != nil {
		return FinalIPAAux{}, err
	}
	LVec := make([]group.CompressedElement, k)
	for i := range LVec {
		LVec[i], err = r.bytes()
		if err != nil {
			return FinalIPAAux{}, err
		}
	}
	RVec := make([]group.CompressedElement, k)
	for i := range RVec {
		RVec[i], err = r.bytes()
		if err != nil {
			return FinalIPAAux{}, err
		}
	}
	xHatBytes, err := r.bytes()
	if err != nil {
		return FinalIPAAux{}, err
	}
	aHatBytes, err := r.rest()
	if err != nil {
		return FinalIPAAux{}, err
	}
	return FinalIPAAux{
		LVec: LVec,
		RVec: RVec,
		XHat: field.SetBytes(xHatBytes, order),
		AHat: field.SetBytes(aHatBytes, order),
	}, nil
}

func appendUint32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendBytes(out []byte, b []byte) []byte {
	out = appendUint32(out, uint32(len(b)))
	return append(out, b...)
}

type byteReader struct {
	b   []byte
	pos int
}

func newByteReader(b []byte) *byteReader { return &byteReader{b: b} }

func (r *byteReader) uint32() (uint32, error) {
	if r.pos+4 > len(r.b) {
		return 0, ipaerr.ErrDecode
	}
	v := binary.BigEndian.Uint32(r.b[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *byteReader) bytes() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.b) {
		return nil, ipaerr.ErrDecode
	}
	out := r.b[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return out, nil
}

func (r *byteReader) rest() ([]byte, error) {
	return r.b[r.pos:], nil
}
