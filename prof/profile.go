package prof

import (
	"log"
	"sync"
	"time"
)

// StageTime is one wall-clock measurement of a named benchmark stage.
type StageTime struct {
	Stage string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	stages []StageTime
)

// Track records the time elapsed since start under the given stage name.
// Call it with defer at the top of a stage:
//
//	defer prof.Track(time.Now(), "replication")
func Track(start time.Time, stage string) {
	elapsed := time.Since(start)
	mu.Lock()
	stages = append(stages, StageTime{Stage: stage, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the recorded stage timings and clears the record.
func SnapshotAndReset() []StageTime {
	mu.Lock()
	defer mu.Unlock()
	out := make([]StageTime, len(stages))
	copy(out, stages)
	stages = nil
	return out
}

// DumpStages logs the recorded stage timings and clears the record.
func DumpStages() {
	for _, st := range SnapshotAndReset() {
		log.Printf("stage %s: %v", st.Stage, st.Dur)
	}
}
