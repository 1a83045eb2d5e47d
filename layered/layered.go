// Package layered holds the parameter records of the layered variant, which
// applies multiple sequential encoding passes with a per-layer challenge
// policy. The encoding benchmark consumes only the graph of a single-layer
// setup; the full multi-pass replication lives in the external construction.
package layered

import (
	"fmt"

	"drg-porep/drgporep"
	"drg-porep/drgraph"
	"drg-porep/hasher"
)

// LayerChallenges is a fixed per-layer challenge policy.
type LayerChallenges struct {
	layers int
	count  int
}

// NewFixed returns a policy of count challenges for each of layers layers.
func NewFixed(layers, count int) (LayerChallenges, error) {
	if layers < 1 {
		return LayerChallenges{}, fmt.Errorf("layered: layer count %d out of range", layers)
	}
	if count < 1 {
		return LayerChallenges{}, fmt.Errorf("layered: challenge count %d out of range", count)
	}
	return LayerChallenges{layers: layers, count: count}, nil
}

// Layers returns the number of layers.
func (lc LayerChallenges) Layers() int { return lc.layers }

// ChallengesForLayer returns the challenge count of one layer.
func (lc LayerChallenges) ChallengesForLayer(layer int) (int, error) {
	if layer < 0 || layer >= lc.layers {
		return 0, fmt.Errorf("layered: layer %d out of range", layer)
	}
	return lc.count, nil
}

// SetupParams is the layered-variant setup record: graph shape, challenge
// policy, and the per-layer beta heights selecting the hybrid-domain split.
type SetupParams struct {
	Drg             drgporep.DrgParams
	LayerChallenges LayerChallenges
	BetaHeights     []int
}

// PublicParams is the derived record. Both benchmarks only ever read Graph.
type PublicParams struct {
	Graph           *drgraph.BucketGraph
	Hasher          hasher.Hasher
	LayerChallenges LayerChallenges
	BetaHeights     []int
}

// Setup validates the layered parameters and derives the graph.
func Setup(h hasher.Hasher, sp *SetupParams) (*PublicParams, error) {
	if h == nil {
		return nil, fmt.Errorf("layered: nil hasher")
	}
	if len(sp.BetaHeights) != sp.LayerChallenges.Layers() {
		return nil, fmt.Errorf("layered: %d beta heights for %d layers",
			len(sp.BetaHeights), sp.LayerChallenges.Layers())
	}
	for i, bh := range sp.BetaHeights {
		if bh < 0 {
			return nil, fmt.Errorf("layered: negative beta height %d at layer %d", bh, i)
		}
	}
	g, err := drgraph.New(sp.Drg.Nodes, sp.Drg.Degree, sp.Drg.ExpansionDegree, sp.Drg.Seed)
	if err != nil {
		return nil, fmt.Errorf("layered: setup: %w", err)
	}
	return &PublicParams{
		Graph:           g,
		Hasher:          h,
		LayerChallenges: sp.LayerChallenges,
		BetaHeights:     append([]int(nil), sp.BetaHeights...),
	}, nil
}

// ReplicaID wraps v in the domain representation of the first layer: a beta
// height of zero means alpha-domain identities.
func (pp *PublicParams) ReplicaID(v hasher.Domain) hasher.HybridDomain {
	if pp.BetaHeights[0] == 0 {
		return hasher.Alpha(v)
	}
	return hasher.Beta(v)
}
