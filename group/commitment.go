package group

import "errors"

var errLengthMismatch = errors.New("group: scalar vector length does not match generator count")

// CompressedElement is the canonical byte encoding of a group element, as
// produced by Element.MarshalBinary; for the P-256 and P-384 backends that
// is the uncompressed point form. Decompression can fail if the bytes do
// not decode to a valid point on the curve.
type CompressedElement []byte

// Compress returns the canonical encoding of e (Element.MarshalBinary).
func Compress(e Element) (CompressedElement, error) {
	b, err := e.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return CompressedElement(b), nil
}

// Decompress recovers the group element a CompressedElement encodes.
func (c CompressedElement) Decompress(gp Group) (Element, error) {
	e := gp.Element()
	if err := e.UnmarshalBinary(c); err != nil {
		return nil, err
	}
	return e, nil
}
