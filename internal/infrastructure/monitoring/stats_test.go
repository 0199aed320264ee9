package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepStatsEmpty(t *testing.T) {
	s := NewStepStats(8)
	assert.Equal(t, StepSummary{}, s.Summary())
}

func TestStepStatsSummary(t *testing.T) {
	s := NewStepStats(8)
	for _, ms := range []int{1, 2, 3, 4} {
		s.Observe(time.Duration(ms) * time.Millisecond)
	}

	sum := s.Summary()
	assert.Equal(t, uint64(4), sum.Count)
	assert.InDelta(t, 0.0025, sum.Mean, 1e-9)
	assert.InDelta(t, 0.004, sum.Max, 1e-9)
	assert.InDelta(t, 0.004, sum.P95, 1e-9)
	assert.Greater(t, sum.StdDev, 0.0)
}

func TestStepStatsWindowSlides(t *testing.T) {
	s := NewStepStats(2)
	s.Observe(100 * time.Millisecond)
	s.Observe(time.Millisecond)
	s.Observe(time.Millisecond)

	sum := s.Summary()
	assert.Equal(t, uint64(3), sum.Count)
	assert.InDelta(t, 0.001, sum.Max, 1e-9)
}

func TestStepStatsSingleSample(t *testing.T) {
	s := NewStepStats(0)
	s.Observe(5 * time.Millisecond)

	sum := s.Summary()
	assert.InDelta(t, 0.005, sum.Mean, 1e-9)
	assert.Zero(t, sum.StdDev)
}
