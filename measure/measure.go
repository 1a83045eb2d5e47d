package measure

import (
	"fmt"
	"os"
	"sync"
)

var Enabled bool
var Global Counter

func init() {
	Enabled = os.Getenv("MEASURE_SIZES") == "1"
	Global = Counter{M: make(map[string]int64)}
}

// Human renders a byte count with a binary-scaled unit and two decimals.
func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
		GiB = 1024 * MiB
	)
	switch {
	case n >= GiB:
		return fmt.Sprintf("%.2f GiB", float64(n)/float64(GiB))
	case n >= MiB:
		return fmt.Sprintf("%.2f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.2f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Counter accumulates byte counts by key, gated by MEASURE_SIZES=1.
type Counter struct {
	mu sync.Mutex
	M  map[string]int64
}

func (c *Counter) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	c.M[key] += n
	c.mu.Unlock()
}

// SnapshotAndReset returns the accumulated counts and clears them.
func (c *Counter) SnapshotAndReset() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.M))
	for k, v := range c.M {
		out[k] = v
	}
	c.M = make(map[string]int64)
	return out
}

func (c *Counter) Dump() {
	if !Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Println("[measure] Size report:")
	for k, v := range c.M {
		fmt.Printf("[measure] %s = %s\n", k, Human(v))
	}
}

// Section brackets a named phase in the size report.
func Section(name string, f func()) {
	if !Enabled {
		f()
		return
	}
	fmt.Printf("[measure] Begin %s\n", name)
	f()
	fmt.Printf("[measure] End %s\n", name)
}
