// Package stats tracks parse request latencies within a rolling window,
// broken down by input format, for the /stats endpoint.
package stats

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	format     string
	durationMs int64
}

// Snapshot is a point-in-time aggregate of parse latency samples.
type Snapshot struct {
	Count    int            `json:"count"`
	ByFormat map[string]int `json:"byFormat,omitempty"`
	MinMs    int64          `json:"minMs"`
	MaxMs    int64          `json:"maxMs"`
	AvgMs    float64        `json:"avgMs"`
	P50Ms    float64        `json:"p50Ms"`
	P95Ms    float64        `json:"p95Ms"`
	P99Ms    float64        `json:"p99Ms"`
}

// ParseStats tracks recent parse durations within a rolling window.
// Samples older than the window are dropped lazily on the next Record or
// Snapshot call.
type ParseStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func New(maxAge time.Duration) *ParseStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ParseStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one parse duration, tagged with the input format
// (a file extension like ".pdf"). Negative durations clamp to zero.
func (s *ParseStats) Record(format string, durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		format:     format,
		durationMs: durationMs,
	})
}

func (s *ParseStats) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return Snapshot{}
	}

	values := make([]int64, 0, len(s.samples))
	byFormat := make(map[string]int, 4)
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		if sm.format != "" {
			byFormat[sm.format]++
		}
	}
	slices.Sort(values)

	return Snapshot{
		Count:    len(values),
		ByFormat: byFormat,
		MinMs:    values[0],
		MaxMs:    values[len(values)-1],
		AvgMs:    float64(sum) / float64(len(values)),
		P50Ms:    percentile(values, 50),
		P95Ms:    percentile(values, 95),
		P99Ms:    percentile(values, 99),
	}
}

func (s *ParseStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.timestamp.Before(cutoff)
	})
}

// percentile linearly interpolates between the two nearest sorted values.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	return float64(sorted[lower]) + (float64(sorted[upper])-float64(sorted[lower]))*weight
}
