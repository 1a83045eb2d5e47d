// Package drgporep implements the DRG Proof-of-Replication the benchmark
// harness measures: setup of the public parameters, in-place replication of
// a data buffer bound to a replica identity, and challenge-based proving and
// verification against the two Merkle commitments.
package drgporep

import (
	"fmt"

	"drg-porep/drgraph"
	"drg-porep/fr32"
	"drg-porep/hasher"
	"drg-porep/merkle"
	"drg-porep/vde"
)

// DrgParams is the graph shape of one construction instance.
type DrgParams struct {
	Nodes           int
	Degree          int
	ExpansionDegree int
	Seed            drgraph.Seed
}

// SetupParams is the immutable per-run parameter record consumed by Setup.
type SetupParams struct {
	Drg             DrgParams
	Private         bool
	ChallengesCount int

	// BetaHeight and PrevLayerBetaHeight control the hybrid-domain split of
	// the layered variant. Both benchmarks run with BetaHeight zero, where
	// replica identities are plain alpha-domain values.
	BetaHeight          int
	PrevLayerBetaHeight int
}

// PublicParams are the runtime parameters derived by Setup.
type PublicParams struct {
	Graph           *drgraph.BucketGraph
	Hasher          hasher.Hasher
	Private         bool
	ChallengesCount int

	BetaHeight          int
	PrevLayerBetaHeight int
}

// Setup validates the graph shape and derives the public parameters.
func Setup(h hasher.Hasher, sp *SetupParams) (*PublicParams, error) {
	if h == nil {
		return nil, fmt.Errorf("drgporep: nil hasher")
	}
	if sp.ChallengesCount < 1 {
		return nil, fmt.Errorf("drgporep: challenge count %d out of range", sp.ChallengesCount)
	}
	g, err := drgraph.New(sp.Drg.Nodes, sp.Drg.Degree, sp.Drg.ExpansionDegree, sp.Drg.Seed)
	if err != nil {
		return nil, fmt.Errorf("drgporep: setup: %w", err)
	}
	return &PublicParams{
		Graph:               g,
		Hasher:              h,
		Private:             sp.Private,
		ChallengesCount:     sp.ChallengesCount,
		BetaHeight:          sp.BetaHeight,
		PrevLayerBetaHeight: sp.PrevLayerBetaHeight,
	}, nil
}

// Tau is the public commitment pair: original-data tree root and replica
// tree root.
type Tau struct {
	CommD hasher.Domain
	CommR hasher.Domain
}

// Aux holds the two authentication trees needed to answer challenges.
type Aux struct {
	TreeD *merkle.Tree
	TreeR *merkle.Tree
}

// Replicate encodes data in place, binding it to the replica identity, and
// returns the commitments plus the authentication trees. The data tree is
// committed before encoding, the replica tree after.
func Replicate(pp *PublicParams, id hasher.HybridDomain, data []byte) (*Tau, *Aux, error) {
	leavesD, err := bufferLeaves(pp.Graph, data)
	if err != nil {
		return nil, nil, fmt.Errorf("drgporep: replicate: %w", err)
	}
	treeD, err := merkle.Build(pp.Hasher, leavesD)
	if err != nil {
		return nil, nil, fmt.Errorf("drgporep: data tree: %w", err)
	}

	if err := vde.Encode(pp.Graph, pp.Hasher, id, data); err != nil {
		return nil, nil, fmt.Errorf("drgporep: encode: %w", err)
	}

	leavesR, err := bufferLeaves(pp.Graph, data)
	if err != nil {
		return nil, nil, fmt.Errorf("drgporep: replicate: %w", err)
	}
	treeR, err := merkle.Build(pp.Hasher, leavesR)
	if err != nil {
		return nil, nil, fmt.Errorf("drgporep: replica tree: %w", err)
	}

	tau := &Tau{CommD: treeD.Root(), CommR: treeR.Root()}
	aux := &Aux{TreeD: treeD, TreeR: treeR}
	return tau, aux, nil
}

// ExtractAll decodes a replica in place, recovering the original data.
func ExtractAll(pp *PublicParams, id hasher.HybridDomain, data []byte) error {
	if err := vde.Decode(pp.Graph, pp.Hasher, id, data); err != nil {
		return fmt.Errorf("drgporep: extract all: %w", err)
	}
	return nil
}

// Extract recovers the plaintext of a single node from the replica buffer.
func Extract(pp *PublicParams, id hasher.HybridDomain, data []byte, node uint64) (hasher.Domain, error) {
	if node >= uint64(pp.Graph.Size()) {
		return hasher.Domain{}, fmt.Errorf("drgporep: extract node %d out of range", node)
	}
	parents, err := parentLeaves(pp.Graph, node, data)
	if err != nil {
		return hasher.Domain{}, err
	}
	key := vde.Key(pp.Hasher, id, node, parents)
	var replica hasher.Domain
	copy(replica[:], data[node*fr32.ElementSize:(node+1)*fr32.ElementSize])
	out, err := vde.DecodeNode(key, replica)
	if err != nil {
		return hasher.Domain{}, fmt.Errorf("drgporep: extract node %d: %w", node, err)
	}
	return out, nil
}

// PublicInputs bundles the replica identity, the challenge list and the
// commitments. Constructed once per run and reused across samples.
type PublicInputs struct {
	ReplicaID  *hasher.HybridDomain
	Challenges []uint64
	Tau        *Tau
}

// PrivateInputs borrows the authentication trees produced by Replicate.
type PrivateInputs struct {
	TreeD *merkle.Tree
	TreeR *merkle.Tree
}

func bufferLeaves(g *drgraph.BucketGraph, data []byte) ([]hasher.Domain, error) {
	want := g.Size() * fr32.ElementSize
	if len(data) != want {
		return nil, fmt.Errorf("buffer is %d bytes, graph needs %d", len(data), want)
	}
	leaves := make([]hasher.Domain, g.Size())
	for i := range leaves {
		copy(leaves[i][:], data[i*fr32.ElementSize:(i+1)*fr32.ElementSize])
	}
	return leaves, nil
}

func parentLeaves(g *drgraph.BucketGraph, node uint64, data []byte) ([]hasher.Domain, error) {
	if node == 0 {
		return nil, nil
	}
	idx := g.AllParents(node)
	vals := make([]hasher.Domain, len(idx))
	for i, p := range idx {
		copy(vals[i][:], data[p*fr32.ElementSize:(p+1)*fr32.ElementSize])
	}
	return vals, nil
}
