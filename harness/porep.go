package harness

import (
	"fmt"
	"log"
	"math"
	"time"

	"drg-porep/drgporep"
	"drg-porep/drgraph"
	"drg-porep/fr32"
	"drg-porep/hasher"
	"drg-porep/measure"
	"drg-porep/prof"
)

// Samples is the fixed trial count of the sampling loop.
const Samples = 30

// fixedChallenge is the constant node index repeated for every challenge.
const fixedChallenge = 2

// betaHeight is fixed to zero in both benchmarks: replica identities are
// plain alpha-domain values.
const betaHeight = 0

// PoRepConfig drives one full-cycle benchmark run.
type PoRepConfig struct {
	// DataSize is the input size in bytes (KB argument times 1024).
	DataSize int
	// M is the graph degree.
	M int
	// Challenges is the number of challenges per proof.
	Challenges int
	// Hasher selects the hash construction by name.
	Hasher string
	// Scope optionally brackets the setup and replicate stages with CPU
	// profiling; nil disables profiling.
	Scope prof.Scope
}

// PoRepReport is the reduced result of one full-cycle run.
type PoRepReport struct {
	DataSize            int
	Nodes               int
	ReplicationTime     time.Duration
	AvgProvingSeconds   float64
	AvgVerifyingSeconds float64
	AvgProofSize        int64
}

// RunPoRep executes mode A: generate input, assemble parameters, replicate
// once, then sample the prove/verify loop and reduce the statistics. Every
// failure is terminal for the run.
func RunPoRep(cfg *PoRepConfig) (*PoRepReport, error) {
	h, err := hasher.FromName(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	scope := cfg.Scope
	if scope == nil {
		scope = prof.NopScope{}
	}

	log.Printf("data_size: %s", measure.Human(int64(cfg.DataSize)))
	log.Printf("challenge_count: %d", cfg.Challenges)
	log.Printf("m: %d", cfg.M)
	log.Printf("hasher: %s", h.Name())

	nodes := cfg.DataSize / fr32.ElementSize
	// Structural parameter of the underlying layered construction; the
	// ceiling rounding plus one must not change.
	prevLayerBetaHeight := int(math.Ceil(math.Log2(float64(nodes)))) + 1

	rng, err := NewBenchPRNG()
	if err != nil {
		return nil, err
	}
	idFr, err := fr32.RandFr(rng)
	if err != nil {
		return nil, err
	}
	replicaID := hasher.Alpha(hasher.DomainFromFr(&idFr))

	log.Printf("generating fake data")
	bufRNG, err := NewBenchPRNG()
	if err != nil {
		return nil, err
	}
	var buf *Buffer
	measure.Section("input generation", func() {
		buf, err = FileBackedBufferFromPRNG(bufRNG, nodes)
	})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	seed, err := drgraph.NewSeed()
	if err != nil {
		return nil, err
	}
	sp := &drgporep.SetupParams{
		Drg: drgporep.DrgParams{
			Nodes:           nodes,
			Degree:          cfg.M,
			ExpansionDegree: 0,
			Seed:            seed,
		},
		Private:             true,
		ChallengesCount:     cfg.Challenges,
		BetaHeight:          betaHeight,
		PrevLayerBetaHeight: prevLayerBetaHeight,
	}

	log.Printf("running setup")
	if err := scope.Start("setup"); err != nil {
		return nil, err
	}
	pp, err := drgporep.Setup(h, sp)
	if serr := scope.Stop(); err == nil {
		err = serr
	}
	if err != nil {
		return nil, err
	}

	log.Printf("running replicate")
	if err := scope.Start("replicate"); err != nil {
		return nil, err
	}
	start := time.Now()
	tau, aux, err := drgporep.Replicate(pp, replicaID, buf.Bytes())
	replicationTime := time.Since(start)
	prof.Track(start, "replication")
	if serr := scope.Stop(); err == nil {
		err = serr
	}
	if err != nil {
		return nil, err
	}

	challenges := make([]uint64, cfg.Challenges)
	for i := range challenges {
		challenges[i] = fixedChallenge
	}
	pub := &drgporep.PublicInputs{
		ReplicaID:  &replicaID,
		Challenges: challenges,
		Tau:        tau,
	}
	priv := &drgporep.PrivateInputs{TreeD: aux.TreeD, TreeR: aux.TreeR}

	stats := SampleStats{Samples: Samples}
	log.Printf("sampling proving & verifying (samples: %d)", Samples)
	defer prof.Track(time.Now(), "sampling")
	for i := 0; i < Samples; i++ {
		start := time.Now()
		proof, err := drgporep.Prove(pp, pub, priv)
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("failed to prove: %w", err)
		}
		serialized := proof.Serialize()
		stats.AddProving(elapsed, len(serialized))
		measure.Global.Add("proofs", int64(len(serialized)))

		start = time.Now()
		ok, err := drgporep.Verify(pp, pub, proof)
		stats.AddVerifying(time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("failed to verify: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("failed to verify: sampled proof %d rejected", i)
		}
	}

	return &PoRepReport{
		DataSize:            cfg.DataSize,
		Nodes:               nodes,
		ReplicationTime:     replicationTime,
		AvgProvingSeconds:   stats.MeanProvingSeconds(),
		AvgVerifyingSeconds: stats.MeanVerifyingSeconds(),
		AvgProofSize:        stats.AvgProofSize(),
	}, nil
}

// Log renders the report the way the benchmark has always printed it.
func (r *PoRepReport) Log() {
	log.Printf("avg_proving_time: %v seconds", r.AvgProvingSeconds)
	log.Printf("avg_verifying_time: %v seconds", r.AvgVerifyingSeconds)
	log.Printf("replication_time: %v", r.ReplicationTime)
	log.Printf("avg_proof_size: %s", measure.Human(r.AvgProofSize))
}
