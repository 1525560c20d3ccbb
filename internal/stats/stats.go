// Package stats aggregates frame durations so the simulator and export
// tools can report how the engine is keeping up.
package stats

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes a set of observed frame durations.
type FrameStats struct {
	Frames int
	Mean   time.Duration
	P50    time.Duration
	P95    time.Duration
	Max    time.Duration
}

// Collector accumulates per-frame durations. The frame loop owns it; it is
// not safe for concurrent use.
type Collector struct {
	seconds []float64
}

func NewCollector() *Collector {
	return &Collector{}
}

// Observe records one frame duration.
func (c *Collector) Observe(d time.Duration) {
	c.seconds = append(c.seconds, d.Seconds())
}

// Len returns the number of observed frames.
func (c *Collector) Len() int {
	return len(c.seconds)
}

// Summary computes mean and percentiles over everything observed so far.
func (c *Collector) Summary() FrameStats {
	n := len(c.seconds)
	if n == 0 {
		return FrameStats{}
	}
	sorted := make([]float64, n)
	copy(sorted, c.seconds)
	sort.Float64s(sorted)

	return FrameStats{
		Frames: n,
		Mean:   secs(stat.Mean(sorted, nil)),
		P50:    secs(stat.Quantile(0.5, stat.Empirical, sorted, nil)),
		P95:    secs(stat.Quantile(0.95, stat.Empirical, sorted, nil)),
		Max:    secs(sorted[n-1]),
	}
}

func secs(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
