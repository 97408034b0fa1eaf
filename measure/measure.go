package measure

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Byte-size accounting for encoded keys and signatures, enabled with
// MEASURE_SIZES=1. Counters are no-ops when disabled, so call sites hook
// in unconditionally.

var Enabled bool
var Global Counter

func init() {
	Enabled = os.Getenv("MEASURE_SIZES") == "1"
	Global = Counter{M: make(map[string]int64)}
}

// Human renders a byte count with a binary unit suffix.
func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
	)
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

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

// Dump prints the collected sizes, keys sorted.
func (c *Counter) Dump() {
	if !Enabled {
		return
	}
	c.mu.Lock()
	keys := make([]string, 0, len(c.M))
	for k := range c.M {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("[measure] Size report:")
	for _, k := range keys {
		fmt.Printf("[measure] %s = %s\n", k, Human(c.M[k]))
	}
	c.mu.Unlock()
}

// SnapshotAndReset returns the collected sizes and clears the counter.
func (c *Counter) SnapshotAndReset() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.M
	c.M = make(map[string]int64)
	return out
}

// Section brackets a phase in the report output.
func Section(name string, f func()) {
	if !Enabled {
		f()
		return
	}
	fmt.Printf("[measure] Begin %s\n", name)
	f()
	fmt.Printf("[measure] End %s\n", name)
}
