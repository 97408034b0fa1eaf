package prof

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Entry represents a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start under the given label. Use with
// defer: defer prof.Track(time.Now(), "sign").
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Report writes one line per label with call count, total and mean
// duration, labels sorted.
func Report(w io.Writer, entries []Entry) {
	type agg struct {
		n     int
		total time.Duration
	}
	byLabel := make(map[string]*agg)
	for _, e := range entries {
		a, ok := byLabel[e.Label]
		if !ok {
			a = &agg{}
			byLabel[e.Label] = a
		}
		a.n++
		a.total += e.Dur
	}
	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		a := byLabel[l]
		fmt.Fprintf(w, "%-20s %4d call(s)  total %-14v mean %v\n",
			l, a.n, a.total, a.total/time.Duration(a.n))
	}
}
