package harness

import (
	"log"
	"time"

	"drg-porep/drgporep"
	"drg-porep/drgraph"
	"drg-porep/fr32"
	"drg-porep/hasher"
	"drg-porep/layered"
	"drg-porep/measure"
	"drg-porep/prof"
	"drg-porep/vde"
)

// EncodingConfig drives one standalone delay-encoding benchmark run.
type EncodingConfig struct {
	// DataSize is the input size in bytes (KB argument times 1024).
	DataSize int
	// M is the graph degree.
	M int
	// ExpansionDegree is the expander degree of the layered graph.
	ExpansionDegree int
	// Hasher selects the hash construction by name; empty means the default.
	Hasher string
	// Scope optionally brackets the setup and encode stages with CPU
	// profiling; nil disables profiling.
	Scope prof.Scope
}

// EncodingReport is the result of one encoding run. PerByte is the elapsed
// time divided by the byte count; PerGiB is PerByte scaled by 2^30.
type EncodingReport struct {
	DataSize       int
	EncodingTime   time.Duration
	PerByteSeconds float64
	PerGiB         time.Duration
}

// RunEncoding executes mode B: generate input, run a single-layer setup, and
// time exactly one delay-encoding pass over the graph and buffer.
func RunEncoding(cfg *EncodingConfig) (*EncodingReport, error) {
	name := cfg.Hasher
	if name == "" {
		name = "pedersen"
	}
	h, err := hasher.FromName(name)
	if err != nil {
		return nil, err
	}
	scope := cfg.Scope
	if scope == nil {
		scope = prof.NopScope{}
	}

	log.Printf("data size: %s", measure.Human(int64(cfg.DataSize)))
	log.Printf("m: %d", cfg.M)
	log.Printf("expansion_degree: %d", cfg.ExpansionDegree)
	log.Printf("generating fake data")

	nodes := cfg.DataSize / fr32.ElementSize

	rng, err := NewBenchPRNG()
	if err != nil {
		return nil, err
	}
	idFr, err := fr32.RandFr(rng)
	if err != nil {
		return nil, err
	}

	bufRNG, err := NewBenchPRNG()
	if err != nil {
		return nil, err
	}
	buf, err := FileBackedBufferFromPRNG(bufRNG, nodes)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	seed, err := drgraph.NewSeed()
	if err != nil {
		return nil, err
	}
	lc, err := layered.NewFixed(1, 1)
	if err != nil {
		return nil, err
	}
	sp := &layered.SetupParams{
		Drg: drgporep.DrgParams{
			Nodes:           nodes,
			Degree:          cfg.M,
			ExpansionDegree: cfg.ExpansionDegree,
			Seed:            seed,
		},
		LayerChallenges: lc,
		BetaHeights:     []int{betaHeight},
	}

	log.Printf("running setup")
	if err := scope.Start("setup"); err != nil {
		return nil, err
	}
	pp, err := layered.Setup(h, sp)
	if serr := scope.Stop(); err == nil {
		err = serr
	}
	if err != nil {
		return nil, err
	}
	replicaID := pp.ReplicaID(hasher.DomainFromFr(&idFr))

	log.Printf("encoding")
	if err := scope.Start("encode"); err != nil {
		return nil, err
	}
	start := time.Now()
	encErr := vde.Encode(pp.Graph, h, replicaID, buf.Bytes())
	elapsed := time.Since(start)
	prof.Track(start, "encoding")
	if serr := scope.Stop(); encErr == nil {
		encErr = serr
	}
	if encErr != nil {
		return nil, encErr
	}

	perByte := elapsed.Seconds() / float64(cfg.DataSize)
	return &EncodingReport{
		DataSize:       cfg.DataSize,
		EncodingTime:   elapsed,
		PerByteSeconds: perByte,
		PerGiB:         time.Duration(perByte * float64(1<<30) * 1e9),
	}, nil
}

// Log renders the report the way the benchmark has always printed it.
func (r *EncodingReport) Log() {
	log.Printf("encoding_time: %v", r.EncodingTime)
	log.Printf("encoding time/byte: %.9gs", r.PerByteSeconds)
	log.Printf("encoding time/GiB: %v", r.PerGiB)
}
