package hasher

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"

	"drg-porep/fr32"
)

// PedersenHasher is the default, algebraic hasher: MiMC over the BLS12-381
// scalar field. Inputs are absorbed as canonical field elements, so its
// outputs need no reduction step.
type PedersenHasher struct{}

func (PedersenHasher) Name() string { return "pedersen" }

func (PedersenHasher) Hash(data []byte) Domain {
	h := mimc.NewMiMC()
	// Arbitrary bytes are reduced chunk by chunk so every absorbed block is
	// a canonical element, which MiMC requires.
	for len(data) > 0 {
		n := fr32.ElementSize
		if len(data) < n {
			n = len(data)
		}
		var chunk [fr32.ElementSize]byte
		copy(chunk[fr32.ElementSize-n:], data[:n])
		e := fr32.Reduce(chunk[:])
		h.Write(fr32.FrIntoBytes(&e))
		data = data[n:]
	}
	var d Domain
	copy(d[:], h.Sum(nil))
	return d
}

func (p PedersenHasher) KDF(id Domain, parents []Domain) Domain {
	h := mimc.NewMiMC()
	h.Write(id[:])
	for _, par := range parents {
		h.Write(par[:])
	}
	var d Domain
	copy(d[:], h.Sum(nil))
	return d
}

func (p PedersenHasher) NodeHash(left, right Domain) Domain {
	h := mimc.NewMiMC()
	h.Write(left[:])
	h.Write(right[:])
	var d Domain
	copy(d[:], h.Sum(nil))
	return d
}
