// Package vde implements the sequential delay encoding of a buffer against a
// dependency graph and a replica identity. Nodes are encoded in index order;
// every key depends on already-encoded predecessors, which is what makes the
// pass non-parallelizable.
package vde

import (
	"fmt"

	"drg-porep/drgraph"
	"drg-porep/fr32"
	"drg-porep/hasher"
)

// Key derives the encoding key for one node. Node 0 has no predecessors and
// is keyed from the replica identity alone; decoding relies on this rule
// matching between Encode and Decode.
func Key(h hasher.Hasher, id hasher.HybridDomain, node uint64, parents []hasher.Domain) hasher.Domain {
	if node == 0 {
		return h.KDF(id.Value(), nil)
	}
	return h.KDF(id.Value(), parents)
}

// Encode transforms data in place: replica[v] = data[v] + key(v) over the
// scalar field. The buffer must hold exactly g.Size() serialized elements
// and every element must be canonical.
func Encode(g *drgraph.BucketGraph, h hasher.Hasher, id hasher.HybridDomain, data []byte) error {
	if err := checkBuffer(g, data); err != nil {
		return err
	}
	n := uint64(g.Size())
	for v := uint64(0); v < n; v++ {
		parents, err := parentValues(g, v, data)
		if err != nil {
			return err
		}
		key := Key(h, id, v, parents)
		if err := combineNode(data, v, key, false); err != nil {
			return err
		}
	}
	return nil
}

// Decode inverts Encode in place, recovering the original data. Nodes are
// processed in reverse so each node's predecessors still hold their encoded
// values when its key is re-derived.
func Decode(g *drgraph.BucketGraph, h hasher.Hasher, id hasher.HybridDomain, data []byte) error {
	if err := checkBuffer(g, data); err != nil {
		return err
	}
	for v := uint64(g.Size()); v > 0; v-- {
		node := v - 1
		parents, err := parentValues(g, node, data)
		if err != nil {
			return err
		}
		key := Key(h, id, node, parents)
		if err := combineNode(data, node, key, true); err != nil {
			return err
		}
	}
	return nil
}

// DecodeNode recovers a single plaintext node from its key and encoded value.
func DecodeNode(key, replica hasher.Domain) (hasher.Domain, error) {
	k, err := key.Fr()
	if err != nil {
		return hasher.Domain{}, fmt.Errorf("vde: key: %w", err)
	}
	r, err := replica.Fr()
	if err != nil {
		return hasher.Domain{}, fmt.Errorf("vde: replica node: %w", err)
	}
	r.Sub(&r, &k)
	return hasher.DomainFromFr(&r), nil
}

func checkBuffer(g *drgraph.BucketGraph, data []byte) error {
	want := g.Size() * fr32.ElementSize
	if len(data) != want {
		return fmt.Errorf("vde: buffer is %d bytes, graph needs %d", len(data), want)
	}
	return nil
}

// parentValues reads the current buffer values of node's parents. Expander
// parents participate when the graph carries them.
func parentValues(g *drgraph.BucketGraph, node uint64, data []byte) ([]hasher.Domain, error) {
	if node == 0 {
		return nil, nil
	}
	idx := g.AllParents(node)
	vals := make([]hasher.Domain, len(idx))
	for i, p := range idx {
		var d hasher.Domain
		copy(d[:], data[p*fr32.ElementSize:(p+1)*fr32.ElementSize])
		vals[i] = d
	}
	return vals, nil
}

// combineNode adds (or subtracts, when invert) key into the node slot.
func combineNode(data []byte, node uint64, key hasher.Domain, invert bool) error {
	off := node * fr32.ElementSize
	cur, err := fr32.BytesIntoFr(data[off : off+fr32.ElementSize])
	if err != nil {
		return fmt.Errorf("vde: node %d: %w", node, err)
	}
	k, err := key.Fr()
	if err != nil {
		return fmt.Errorf("vde: key for node %d: %w", node, err)
	}
	if invert {
		cur.Sub(&cur, &k)
	} else {
		cur.Add(&cur, &k)
	}
	copy(data[off:off+fr32.ElementSize], fr32.FrIntoBytes(&cur))
	return nil
}
