// drgporep_bench runs the full-cycle DRG-PoRep benchmark: setup, one
// replication, then a 30-sample prove/verify loop with aggregate statistics.
package main

import (
	"flag"
	"log"

	"drg-porep/harness"
	"drg-porep/hasher"
	"drg-porep/measure"
	"drg-porep/prof"
)

func main() {
	size := flag.Int("size", 0, "the data size in KB (required)")
	m := flag.Int("m", 6, "the size of m")
	challenges := flag.Int("challenges", 1, "how many challenges to execute, defaults to 1")
	hasherName := flag.String("hasher", "pedersen",
		`which hasher should be used. Available: "pedersen", "sha256", "blake2s" (default "pedersen")`)
	flag.Parse()

	if *size <= 0 {
		log.Fatalf("-size must be a positive number of KB")
	}
	if *m <= 0 {
		log.Fatalf("-m must be a positive integer")
	}
	if *challenges <= 0 {
		log.Fatalf("-challenges must be a positive integer")
	}
	// Reject bad hasher names before any work begins.
	if _, err := hasher.FromName(*hasherName); err != nil {
		log.Fatalf("%v", err)
	}

	report, err := harness.RunPoRep(&harness.PoRepConfig{
		DataSize:   *size * 1024,
		M:          *m,
		Challenges: *challenges,
		Hasher:     *hasherName,
	})
	if err != nil {
		log.Fatalf("benchmark failed: %v", err)
	}
	report.Log()
	prof.DumpStages()
	measure.Global.Dump()
}
