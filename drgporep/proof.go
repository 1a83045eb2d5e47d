package drgporep

import (
	"encoding/binary"
	"fmt"

	"drg-porep/hasher"
)

// MerkleProof is one Merkle opening: a leaf, its index and the sibling path
// up to the committed root.
type MerkleProof struct {
	Leaf  hasher.Domain
	Index uint64
	Path  []hasher.Domain
}

// ParentProof is the opening of one parent of a challenged node in the
// replica tree.
type ParentProof struct {
	Node  uint64
	Proof MerkleProof
}

// ChallengeProof answers one challenge: openings of the data node, the
// replica node and the replica values of all its parents.
type ChallengeProof struct {
	DataNode       MerkleProof
	ReplicaNode    MerkleProof
	ReplicaParents []ParentProof
}

// Proof is the serializable object returned by one proving call.
type Proof struct {
	Challenges []ChallengeProof
}

// Serialize renders the proof in a deterministic little-endian binary form.
// Two proofs over identical inputs serialize identically.
func (p *Proof) Serialize() []byte {
	var out []byte
	out = appendU32(out, uint32(len(p.Challenges)))
	for i := range p.Challenges {
		c := &p.Challenges[i]
		out = appendMerkleProof(out, &c.DataNode)
		out = appendMerkleProof(out, &c.ReplicaNode)
		out = appendU32(out, uint32(len(c.ReplicaParents)))
		for j := range c.ReplicaParents {
			pp := &c.ReplicaParents[j]
			out = appendU64(out, pp.Node)
			out = appendMerkleProof(out, &pp.Proof)
		}
	}
	return out
}

// DeserializeProof parses a serialized proof, rejecting truncated or
// trailing input.
func DeserializeProof(b []byte) (*Proof, error) {
	r := &byteReader{buf: b}
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	p := &Proof{Challenges: make([]ChallengeProof, n)}
	for i := range p.Challenges {
		c := &p.Challenges[i]
		if c.DataNode, err = r.merkleProof(); err != nil {
			return nil, err
		}
		if c.ReplicaNode, err = r.merkleProof(); err != nil {
			return nil, err
		}
		np, err := r.u32()
		if err != nil {
			return nil, err
		}
		c.ReplicaParents = make([]ParentProof, np)
		for j := range c.ReplicaParents {
			pp := &c.ReplicaParents[j]
			if pp.Node, err = r.u64(); err != nil {
				return nil, err
			}
			if pp.Proof, err = r.merkleProof(); err != nil {
				return nil, err
			}
		}
	}
	if len(r.buf) != r.off {
		return nil, fmt.Errorf("drgporep: %d trailing proof bytes", len(r.buf)-r.off)
	}
	return p, nil
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

func appendMerkleProof(b []byte, m *MerkleProof) []byte {
	b = append(b, m.Leaf[:]...)
	b = appendU64(b, m.Index)
	b = appendU32(b, uint32(len(m.Path)))
	for _, sib := range m.Path {
		b = append(b, sib[:]...)
	}
	return b
}

type byteReader struct {
	buf []byte
	off int
}

func (r *byteReader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("drgporep: truncated proof at offset %d", r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *byteReader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *byteReader) merkleProof() (MerkleProof, error) {
	var m MerkleProof
	leaf, err := r.take(len(m.Leaf))
	if err != nil {
		return m, err
	}
	copy(m.Leaf[:], leaf)
	if m.Index, err = r.u64(); err != nil {
		return m, err
	}
	n, err := r.u32()
	if err != nil {
		return m, err
	}
	if int(n) > len(r.buf)-r.off {
		return m, fmt.Errorf("drgporep: path length %d exceeds remaining proof", n)
	}
	m.Path = make([]hasher.Domain, n)
	for i := range m.Path {
		sib, err := r.take(len(m.Leaf))
		if err != nil {
			return m, err
		}
		copy(m.Path[i][:], sib)
	}
	return m, nil
}
