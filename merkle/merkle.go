// Package merkle implements the authentication trees backing the replication
// commitments. Leaves and internal nodes are field-domain values; the node
// hash is supplied by the caller so all three benchmark hashers share one
// tree shape.
package merkle

import (
	"fmt"

	"drg-porep/hasher"
)

// Tree is a full binary Merkle tree over domain-valued leaves. The leaf
// layer is padded with zero elements up to the next power of two.
type Tree struct {
	h      hasher.Hasher
	leaves int
	layers [][]hasher.Domain
}

// Build constructs a balanced tree from leaves using h for node hashing.
func Build(h hasher.Hasher, leaves []hasher.Domain) (*Tree, error) {
	n := len(leaves)
	if n == 0 {
		return nil, fmt.Errorf("merkle: no leaves")
	}
	size := 1
	for size < n {
		size <<= 1
	}
	layer := make([]hasher.Domain, size)
	copy(layer, leaves)
	layers := [][]hasher.Domain{layer}

	for sz := size; sz > 1; sz >>= 1 {
		prev := layers[len(layers)-1]
		next := make([]hasher.Domain, sz/2)
		for i := 0; i < sz; i += 2 {
			next[i/2] = h.NodeHash(prev[i], prev[i+1])
		}
		layers = append(layers, next)
	}

	return &Tree{h: h, leaves: n, layers: layers}, nil
}

// Root returns the root commitment.
func (t *Tree) Root() hasher.Domain {
	return t.layers[len(t.layers)-1][0]
}

// Leaves returns the unpadded leaf count.
func (t *Tree) Leaves() int { return t.leaves }

// Depth returns the number of sibling hashes in an opening path.
func (t *Tree) Depth() int { return len(t.layers) - 1 }

// Leaf returns the value stored at leaf idx.
func (t *Tree) Leaf(idx int) hasher.Domain {
	return t.layers[0][idx]
}

// Path returns the sibling path for leaf idx, bottom up.
func (t *Tree) Path(idx int) ([]hasher.Domain, error) {
	if idx < 0 || idx >= len(t.layers[0]) {
		return nil, fmt.Errorf("merkle: leaf %d out of range", idx)
	}
	path := make([]hasher.Domain, len(t.layers)-1)
	for lvl := 0; lvl < len(t.layers)-1; lvl++ {
		path[lvl] = t.layers[lvl][idx^1]
		idx >>= 1
	}
	return path, nil
}

// VerifyPath checks leaf→root via path.
func VerifyPath(h hasher.Hasher, leaf hasher.Domain, path []hasher.Domain, root hasher.Domain, idx int) bool {
	cur := leaf
	for _, sib := range path {
		if idx&1 == 0 {
			cur = h.NodeHash(cur, sib)
		} else {
			cur = h.NodeHash(sib, cur)
		}
		idx >>= 1
	}
	return cur == root
}
