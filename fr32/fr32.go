// Package fr32 handles the canonical 32-byte serialization of BLS12-381
// scalar field elements used throughout the construction. Every node of the
// data graph, every Merkle node and every replica identity is one such
// element, so the fixed width here fixes the on-disk layout everywhere else.
package fr32

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ElementSize is the serialized width of one field element in bytes.
const ElementSize = fr.Bytes

// FrIntoBytes returns the canonical big-endian 32-byte representation of e.
func FrIntoBytes(e *fr.Element) []byte {
	b := e.Bytes()
	return b[:]
}

// BytesIntoFr decodes a canonical 32-byte representation. It rejects inputs
// of the wrong width or representing a value >= the field modulus.
func BytesIntoFr(b []byte) (fr.Element, error) {
	var e fr.Element
	if len(b) != ElementSize {
		return e, fmt.Errorf("fr32: need %d bytes, got %d", ElementSize, len(b))
	}
	if err := e.SetBytesCanonical(b); err != nil {
		return e, fmt.Errorf("fr32: non-canonical element: %w", err)
	}
	return e, nil
}

// Reduce maps an arbitrary 32-byte digest into the field by modular
// reduction. Used to bring hash outputs onto the domain.
func Reduce(b []byte) fr.Element {
	var e fr.Element
	e.SetBytes(b)
	return e
}

// RandFr draws one field element from the supplied pseudo-random stream.
// The raw 32 bytes are reduced into the field, so the draw is deterministic
// for a deterministic stream.
func RandFr(r io.Reader) (fr.Element, error) {
	var buf [ElementSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		var zero fr.Element
		return zero, fmt.Errorf("fr32: read random element: %w", err)
	}
	return Reduce(buf[:]), nil
}
