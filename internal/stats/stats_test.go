package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummaryComputesPercentiles(t *testing.T) {
	c := NewCollector()
	// 1ms..100ms in shuffled-ish order; Summary sorts internally.
	for i := 100; i >= 1; i-- {
		c.Observe(time.Duration(i) * time.Millisecond)
	}

	s := c.Summary()
	assert.Equal(t, 100, s.Frames)
	assert.InDelta(t, 50.5, s.Mean.Seconds()*1000, 1e-9)
	assert.Equal(t, 50*time.Millisecond, s.P50)
	assert.Equal(t, 95*time.Millisecond, s.P95)
	assert.Equal(t, 100*time.Millisecond, s.Max)
}

func TestSummaryOfNothingIsZero(t *testing.T) {
	s := NewCollector().Summary()
	assert.Zero(t, s.Frames)
	assert.Zero(t, s.Mean)
	assert.Zero(t, s.P95)
}

func TestObserveAccumulates(t *testing.T) {
	c := NewCollector()
	assert.Zero(t, c.Len())
	c.Observe(time.Millisecond)
	c.Observe(2 * time.Millisecond)
	assert.Equal(t, 2, c.Len())
}
