package drgporep

import (
	"fmt"

	"drg-porep/hasher"
	"drg-porep/merkle"
	"drg-porep/vde"
)

// Prove answers every challenge in the public inputs with openings from the
// two authentication trees. Challenges are reduced modulo the node count;
// node 0 has no predecessors and cannot be challenged.
func Prove(pp *PublicParams, pub *PublicInputs, priv *PrivateInputs) (*Proof, error) {
	if pub.ReplicaID == nil {
		return nil, fmt.Errorf("drgporep: prove: missing replica id")
	}
	if pub.Tau == nil {
		return nil, fmt.Errorf("drgporep: prove: missing tau")
	}
	if priv.TreeD == nil || priv.TreeR == nil {
		return nil, fmt.Errorf("drgporep: prove: missing authentication trees")
	}
	if len(pub.Challenges) == 0 {
		return nil, fmt.Errorf("drgporep: prove: empty challenge list")
	}

	proof := &Proof{Challenges: make([]ChallengeProof, len(pub.Challenges))}
	size := uint64(pp.Graph.Size())
	for i, raw := range pub.Challenges {
		c := raw % size
		if c == 0 {
			return nil, fmt.Errorf("drgporep: prove: cannot prove the first node")
		}
		cp, err := proveChallenge(pp, priv, c)
		if err != nil {
			return nil, err
		}
		proof.Challenges[i] = cp
	}
	return proof, nil
}

func proveChallenge(pp *PublicParams, priv *PrivateInputs, c uint64) (ChallengeProof, error) {
	var cp ChallengeProof
	var err error
	if cp.DataNode, err = openLeaf(priv.TreeD, c); err != nil {
		return cp, fmt.Errorf("drgporep: prove data node %d: %w", c, err)
	}
	if cp.ReplicaNode, err = openLeaf(priv.TreeR, c); err != nil {
		return cp, fmt.Errorf("drgporep: prove replica node %d: %w", c, err)
	}
	parents := pp.Graph.AllParents(c)
	cp.ReplicaParents = make([]ParentProof, len(parents))
	for i, par := range parents {
		mp, err := openLeaf(priv.TreeR, par)
		if err != nil {
			return cp, fmt.Errorf("drgporep: prove parent %d of node %d: %w", par, c, err)
		}
		cp.ReplicaParents[i] = ParentProof{Node: par, Proof: mp}
	}
	return cp, nil
}

func openLeaf(t *merkle.Tree, idx uint64) (MerkleProof, error) {
	path, err := t.Path(int(idx))
	if err != nil {
		return MerkleProof{}, err
	}
	return MerkleProof{Leaf: t.Leaf(int(idx)), Index: idx, Path: path}, nil
}

// Verify checks a proof against the public inputs: every opening must
// authenticate against its committed root, the parent set must match the
// graph, and decoding the replica node with the re-derived key must yield
// the committed data node. It returns false on any mismatch and reserves
// errors for malformed inputs.
func Verify(pp *PublicParams, pub *PublicInputs, proof *Proof) (bool, error) {
	if pub.ReplicaID == nil || pub.Tau == nil {
		return false, fmt.Errorf("drgporep: verify: incomplete public inputs")
	}
	if len(proof.Challenges) != len(pub.Challenges) {
		return false, nil
	}
	size := uint64(pp.Graph.Size())
	for i, raw := range pub.Challenges {
		c := raw % size
		if c == 0 {
			return false, fmt.Errorf("drgporep: verify: cannot verify the first node")
		}
		if !verifyChallenge(pp, pub, &proof.Challenges[i], c) {
			return false, nil
		}
	}
	return true, nil
}

func verifyChallenge(pp *PublicParams, pub *PublicInputs, cp *ChallengeProof, c uint64) bool {
	h := pp.Hasher
	if cp.DataNode.Index != c || cp.ReplicaNode.Index != c {
		return false
	}
	if !merkle.VerifyPath(h, cp.DataNode.Leaf, cp.DataNode.Path, pub.Tau.CommD, int(c)) {
		return false
	}
	if !merkle.VerifyPath(h, cp.ReplicaNode.Leaf, cp.ReplicaNode.Path, pub.Tau.CommR, int(c)) {
		return false
	}

	wantParents := pp.Graph.AllParents(c)
	if len(cp.ReplicaParents) != len(wantParents) {
		return false
	}
	parentVals := make([]hasher.Domain, len(wantParents))
	for i, par := range wantParents {
		pp2 := &cp.ReplicaParents[i]
		if pp2.Node != par || pp2.Proof.Index != par {
			return false
		}
		if !merkle.VerifyPath(h, pp2.Proof.Leaf, pp2.Proof.Path, pub.Tau.CommR, int(par)) {
			return false
		}
		parentVals[i] = pp2.Proof.Leaf
	}

	key := vde.Key(h, *pub.ReplicaID, c, parentVals)
	decoded, err := vde.DecodeNode(key, cp.ReplicaNode.Leaf)
	if err != nil {
		return false
	}
	return decoded == cp.DataNode.Leaf
}
