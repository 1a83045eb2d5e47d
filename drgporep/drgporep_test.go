package drgporep

import (
	"bytes"
	"testing"

	"drg-porep/drgraph"
	"drg-porep/fr32"
	"drg-porep/hasher"
)

func setupSmall(t *testing.T, hasherName string, nodes, degree, challenges int) (*PublicParams, hasher.HybridDomain, []byte) {
	t.Helper()
	h, err := hasher.FromName(hasherName)
	if err != nil {
		t.Fatalf("FromName: %v", err)
	}
	var seed drgraph.Seed
	seed[0] = 0xC4
	pp, err := Setup(h, &SetupParams{
		Drg: DrgParams{
			Nodes:  nodes,
			Degree: degree,
			Seed:   seed,
		},
		Private:             true,
		ChallengesCount:     challenges,
		BetaHeight:          0,
		PrevLayerBetaHeight: 6,
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	var idRaw hasher.Domain
	idRaw[31] = 0x61
	id := hasher.Alpha(idRaw)

	data := make([]byte, 0, nodes*fr32.ElementSize)
	for i := 0; i < nodes; i++ {
		raw := bytes.Repeat([]byte{byte(i + 3)}, fr32.ElementSize)
		e := fr32.Reduce(raw)
		data = append(data, fr32.FrIntoBytes(&e)...)
	}
	return pp, id, data
}

func TestSetupRejectsBadShape(t *testing.T) {
	h, _ := hasher.FromName("sha256")
	var seed drgraph.Seed
	bad := []SetupParams{
		{Drg: DrgParams{Nodes: 0, Degree: 6, Seed: seed}, ChallengesCount: 1},
		{Drg: DrgParams{Nodes: 32, Degree: 0, Seed: seed}, ChallengesCount: 1},
		{Drg: DrgParams{Nodes: 32, Degree: 40, Seed: seed}, ChallengesCount: 1},
		{Drg: DrgParams{Nodes: 32, Degree: 6, Seed: seed}, ChallengesCount: 0},
	}
	for i := range bad {
		if _, err := Setup(h, &bad[i]); err == nil {
			t.Fatalf("case %d: invalid setup accepted", i)
		}
	}
}

func TestReplicateProveVerify(t *testing.T) {
	pp, id, data := setupSmall(t, "blake2s", 32, 6, 2)
	original := append([]byte(nil), data...)

	tau, aux, err := Replicate(pp, id, data)
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}
	if tau.CommD == tau.CommR {
		t.Fatalf("data and replica commitments coincide")
	}
	if bytes.Equal(data, original) {
		t.Fatalf("replication left the buffer unchanged")
	}

	pub := &PublicInputs{
		ReplicaID:  &id,
		Challenges: []uint64{2, 2},
		Tau:        tau,
	}
	priv := &PrivateInputs{TreeD: aux.TreeD, TreeR: aux.TreeR}

	proof, err := Prove(pp, pub, priv)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	ok, err := Verify(pp, pub, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("valid proof rejected")
	}
}

func TestVerifyRejectsWrongID(t *testing.T) {
	pp, id, data := setupSmall(t, "blake2s", 32, 6, 1)
	tau, aux, err := Replicate(pp, id, data)
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}
	pub := &PublicInputs{ReplicaID: &id, Challenges: []uint64{2}, Tau: tau}
	priv := &PrivateInputs{TreeD: aux.TreeD, TreeR: aux.TreeR}
	proof, err := Prove(pp, pub, priv)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	var otherRaw hasher.Domain
	otherRaw[31] = 0x62
	other := hasher.Alpha(otherRaw)
	forged := &PublicInputs{ReplicaID: &other, Challenges: []uint64{2}, Tau: tau}
	ok, err := Verify(pp, forged, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("proof verified under the wrong replica id")
	}
}

func TestProveRejectsFirstNode(t *testing.T) {
	pp, id, data := setupSmall(t, "blake2s", 32, 6, 1)
	tau, aux, err := Replicate(pp, id, data)
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}
	pub := &PublicInputs{ReplicaID: &id, Challenges: []uint64{32}, Tau: tau}
	priv := &PrivateInputs{TreeD: aux.TreeD, TreeR: aux.TreeR}
	// 32 % 32 == 0, the unchallengeable first node.
	if _, err := Prove(pp, pub, priv); err == nil {
		t.Fatalf("challenge on node 0 accepted")
	}
}

func TestProofSerializationRoundTrip(t *testing.T) {
	pp, id, data := setupSmall(t, "sha256", 32, 6, 2)
	tau, aux, err := Replicate(pp, id, data)
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}
	pub := &PublicInputs{ReplicaID: &id, Challenges: []uint64{2, 7}, Tau: tau}
	priv := &PrivateInputs{TreeD: aux.TreeD, TreeR: aux.TreeR}
	proof, err := Prove(pp, pub, priv)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	raw := proof.Serialize()
	if len(raw) == 0 {
		t.Fatalf("empty serialization")
	}
	back, err := DeserializeProof(raw)
	if err != nil {
		t.Fatalf("DeserializeProof: %v", err)
	}
	if !bytes.Equal(back.Serialize(), raw) {
		t.Fatalf("serialization not stable across a roundtrip")
	}
	ok, err := Verify(pp, pub, back)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("deserialized proof rejected")
	}
}

func TestCorruptedProofFailsVerification(t *testing.T) {
	pp, id, data := setupSmall(t, "sha256", 32, 6, 1)
	tau, aux, err := Replicate(pp, id, data)
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}
	pub := &PublicInputs{ReplicaID: &id, Challenges: []uint64{2}, Tau: tau}
	priv := &PrivateInputs{TreeD: aux.TreeD, TreeR: aux.TreeR}
	proof, err := Prove(pp, pub, priv)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	raw := proof.Serialize()

	for _, pos := range []int{0, 4, len(raw) / 2, len(raw) - 1} {
		corrupted := append([]byte(nil), raw...)
		corrupted[pos] ^= 0x01
		back, err := DeserializeProof(corrupted)
		if err != nil {
			// Structural corruption is already a failure.
			continue
		}
		ok, err := Verify(pp, pub, back)
		if err == nil && ok {
			t.Fatalf("proof corrupted at byte %d still verified", pos)
		}
	}
}

func TestExtractRecoversData(t *testing.T) {
	pp, id, data := setupSmall(t, "blake2s", 32, 6, 1)
	original := append([]byte(nil), data...)
	if _, _, err := Replicate(pp, id, data); err != nil {
		t.Fatalf("Replicate: %v", err)
	}

	for _, node := range []uint64{0, 1, 17, 31} {
		got, err := Extract(pp, id, data, node)
		if err != nil {
			t.Fatalf("Extract(%d): %v", node, err)
		}
		want := original[node*fr32.ElementSize : (node+1)*fr32.ElementSize]
		if !bytes.Equal(got[:], want) {
			t.Fatalf("Extract(%d) returned wrong plaintext", node)
		}
	}

	if err := ExtractAll(pp, id, data); err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Fatalf("ExtractAll did not recover the original buffer")
	}
}
