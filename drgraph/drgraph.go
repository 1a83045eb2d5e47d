// Package drgraph implements the dependency graph over data nodes. Parent
// selection is streamed from a keyed BLAKE3 XOF, so a graph is fully
// determined by (node count, degree, expansion degree, seed).
package drgraph

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
)

// SeedSize is the byte width of a graph seed.
const SeedSize = 32

// Seed keys the parent-selection stream of one graph instance.
type Seed [SeedSize]byte

// NewSeed returns a fresh unpredictable graph seed.
func NewSeed() (Seed, error) {
	var s Seed
	if _, err := crand.Read(s[:]); err != nil {
		return s, fmt.Errorf("drgraph: new seed: %w", err)
	}
	return s, nil
}

// BucketGraph is a DRG with base degree m plus an optional expander layer.
// Base parents of node v live strictly below v, which is what makes the
// delay encoding sequential.
type BucketGraph struct {
	nodes           int
	degree          int
	expansionDegree int
	seed            Seed
}

// New validates the graph shape and returns the graph.
func New(nodes, degree, expansionDegree int, seed Seed) (*BucketGraph, error) {
	if nodes < 2 {
		return nil, fmt.Errorf("drgraph: node count %d out of range (need >= 2)", nodes)
	}
	if degree < 1 {
		return nil, fmt.Errorf("drgraph: degree %d out of range (need >= 1)", degree)
	}
	if degree >= nodes {
		return nil, fmt.Errorf("drgraph: degree %d too large for %d nodes", degree, nodes)
	}
	if expansionDegree < 0 {
		return nil, fmt.Errorf("drgraph: negative expansion degree %d", expansionDegree)
	}
	return &BucketGraph{
		nodes:           nodes,
		degree:          degree,
		expansionDegree: expansionDegree,
		seed:            seed,
	}, nil
}

// Size returns the node count.
func (g *BucketGraph) Size() int { return g.nodes }

// Degree returns the base degree m.
func (g *BucketGraph) Degree() int { return g.degree }

// ExpansionDegree returns the expander degree.
func (g *BucketGraph) ExpansionDegree() int { return g.expansionDegree }

// Seed returns the parent-selection seed.
func (g *BucketGraph) Seed() Seed { return g.seed }

// Parents returns the base parents of node, ascending. Node 0 has no
// predecessors and is parented to itself, keeping the parent list a fixed
// width of Degree() entries for every node.
func (g *BucketGraph) Parents(node uint64) []uint64 {
	parents := make([]uint64, g.degree)
	if node == 0 {
		return parents
	}
	g.drawBelow(node, 'b', parents)
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })
	return parents
}

// ExpandedParents returns the expander parents of node, ascending. They are
// drawn from the same strict predecessor range as the base parents so that
// sequential encoding stays well defined; a graph with expansion degree zero
// returns nil.
func (g *BucketGraph) ExpandedParents(node uint64) []uint64 {
	if g.expansionDegree == 0 {
		return nil
	}
	parents := make([]uint64, g.expansionDegree)
	if node == 0 {
		return parents
	}
	g.drawBelow(node, 'e', parents)
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })
	return parents
}

// AllParents returns base parents followed by expander parents.
func (g *BucketGraph) AllParents(node uint64) []uint64 {
	base := g.Parents(node)
	exp := g.ExpandedParents(node)
	if len(exp) == 0 {
		return base
	}
	return append(base, exp...)
}

// drawBelow fills out with values in [0, node) from the XOF keyed by the
// graph seed, domain-separated by tag and the node index.
func (g *BucketGraph) drawBelow(node uint64, tag byte, out []uint64) {
	h, err := blake3.NewKeyed(g.seed[:])
	if err != nil {
		// Seed is always SeedSize bytes, a keying failure is a programming
		// error.
		panic(fmt.Sprintf("drgraph: keyed xof: %v", err))
	}
	var hdr [9]byte
	hdr[0] = tag
	binary.LittleEndian.PutUint64(hdr[1:], node)
	h.Write(hdr[:])
	xof := h.Digest()

	var buf [8]byte
	for i := range out {
		if _, err := xof.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("drgraph: xof read: %v", err))
		}
		out[i] = binary.LittleEndian.Uint64(buf[:]) % node
	}
}
