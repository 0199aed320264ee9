package monitoring

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultStepWindow is how many recent step durations StepStats keeps.
const DefaultStepWindow = 256

// StepStats keeps a sliding window of step durations for one app instance
type StepStats struct {
	samples []float64
	next    int
	full    bool
	count   uint64
}

// StepSummary describes the step durations in the window, in seconds
type StepSummary struct {
	Count  uint64  `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P95    float64 `json:"p95"`
	Max    float64 `json:"max"`
}

// NewStepStats creates a window of the given size
func NewStepStats(window int) *StepStats {
	if window < 1 {
		window = DefaultStepWindow
	}
	return &StepStats{samples: make([]float64, window)}
}

// Observe adds one step duration
func (s *StepStats) Observe(d time.Duration) {
	s.samples[s.next] = d.Seconds()
	s.next++
	if s.next == len(s.samples) {
		s.next = 0
		s.full = true
	}
	s.count++
}

// Count returns the number of steps ever observed
func (s *StepStats) Count() uint64 {
	return s.count
}

// Summary computes mean, standard deviation, p95, and max over the window
func (s *StepStats) Summary() StepSummary {
	window := s.window()
	if len(window) == 0 {
		return StepSummary{}
	}

	sorted := make([]float64, len(window))
	copy(sorted, window)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}

	return StepSummary{
		Count:  s.count,
		Mean:   mean,
		StdDev: std,
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Max:    floats.Max(sorted),
	}
}

func (s *StepStats) window() []float64 {
	if s.full {
		return s.samples
	}
	return s.samples[:s.next]
}
