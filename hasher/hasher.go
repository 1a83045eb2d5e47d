// Package hasher provides the three named hash constructions the benchmark
// can run against. All of them map into the BLS12-381 scalar field, so a
// Domain value is always a canonical 32-byte field element regardless of the
// underlying hash function.
package hasher

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"drg-porep/fr32"
)

// Domain is a hash output living in the scalar field, in canonical
// serialized form.
type Domain [fr32.ElementSize]byte

// DomainFromFr serializes a field element into its domain representation.
func DomainFromFr(e *fr.Element) Domain {
	var d Domain
	copy(d[:], fr32.FrIntoBytes(e))
	return d
}

// Fr decodes the domain value back into a field element.
func (d Domain) Fr() (fr.Element, error) {
	return fr32.BytesIntoFr(d[:])
}

// Hasher is one named hash construction. Implementations must be stateless
// and safe for repeated use.
type Hasher interface {
	// Name returns the selection name used on the command line.
	Name() string
	// Hash maps arbitrary bytes onto the domain.
	Hash(data []byte) Domain
	// KDF derives the encoding key for one node from the replica identity
	// and the current values of the node's parents.
	KDF(id Domain, parents []Domain) Domain
	// NodeHash combines two Merkle children into their parent.
	NodeHash(left, right Domain) Domain
}

// FromName resolves a hasher by its selection name. Available: "pedersen",
// "sha256", "blake2s". An unknown name is a configuration error.
func FromName(name string) (Hasher, error) {
	switch name {
	case "pedersen":
		return PedersenHasher{}, nil
	case "sha256":
		return Sha256Hasher{}, nil
	case "blake2s":
		return Blake2sHasher{}, nil
	default:
		return nil, fmt.Errorf("hasher: invalid hasher: %q", name)
	}
}
