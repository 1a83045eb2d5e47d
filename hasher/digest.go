package hasher

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2s"

	"drg-porep/fr32"
)

// Sha256Hasher hashes with SHA-256 and reduces the digest into the field.
type Sha256Hasher struct{}

func (Sha256Hasher) Name() string { return "sha256" }

func (Sha256Hasher) Hash(data []byte) Domain {
	sum := sha256.Sum256(data)
	return reduceDigest(sum[:])
}

func (s Sha256Hasher) KDF(id Domain, parents []Domain) Domain {
	h := sha256.New()
	h.Write(id[:])
	for _, par := range parents {
		h.Write(par[:])
	}
	return reduceDigest(h.Sum(nil))
}

func (s Sha256Hasher) NodeHash(left, right Domain) Domain {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	return reduceDigest(h.Sum(nil))
}

// Blake2sHasher hashes with BLAKE2s-256 and reduces the digest into the
// field.
type Blake2sHasher struct{}

func (Blake2sHasher) Name() string { return "blake2s" }

func (Blake2sHasher) Hash(data []byte) Domain {
	sum := blake2s.Sum256(data)
	return reduceDigest(sum[:])
}

func (b Blake2sHasher) KDF(id Domain, parents []Domain) Domain {
	h, _ := blake2s.New256(nil)
	h.Write(id[:])
	for _, par := range parents {
		h.Write(par[:])
	}
	return reduceDigest(h.Sum(nil))
}

func (b Blake2sHasher) NodeHash(left, right Domain) Domain {
	h, _ := blake2s.New256(nil)
	h.Write(left[:])
	h.Write(right[:])
	return reduceDigest(h.Sum(nil))
}

// reduceDigest maps a raw 32-byte digest onto the domain. Digests can exceed
// the field modulus, so the reduction keeps every Domain value canonical.
func reduceDigest(sum []byte) Domain {
	e := fr32.Reduce(sum)
	return DomainFromFr(&e)
}
