// encoding_bench times a single delay-encoding pass over a freshly generated
// buffer and reports absolute, per-byte and per-GiB throughput.
package main

import (
	"flag"
	"log"

	"drg-porep/harness"
	"drg-porep/prof"
)

func main() {
	size := flag.Int("size", 0, "the data size in KB (required)")
	m := flag.Int("m", 5, "the size of m")
	expansion := flag.Int("expansion", 6, "expansion degree")
	layers := flag.Int("layers", 10, "how many layers to use")
	profile := flag.Bool("profile", false, "write CPU profiles for the setup and encode stages")
	flag.Parse()

	if *size <= 0 {
		log.Fatalf("-size must be a positive number of KB")
	}
	if *m <= 0 {
		log.Fatalf("-m must be a positive integer")
	}
	if *expansion < 0 {
		log.Fatalf("-expansion must not be negative")
	}
	if *layers <= 0 {
		log.Fatalf("-layers must be a positive integer")
	}
	log.Printf("layers: %d", *layers)

	cfg := &harness.EncodingConfig{
		DataSize:        *size * 1024,
		M:               *m,
		ExpansionDegree: *expansion,
	}
	if *profile {
		cfg.Scope = prof.NewCPUScope()
	}
	report, err := harness.RunEncoding(cfg)
	if err != nil {
		log.Fatalf("benchmark failed: %v", err)
	}
	report.Log()
	prof.DumpStages()
}
