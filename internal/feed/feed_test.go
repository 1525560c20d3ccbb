package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChurnPatternIsSeedReproducible(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := Config{Seed: 7, Initial: 10, Start: start}
	a := New(cfg)
	b := New(cfg)

	now := start
	for i := 0; i < 300; i++ {
		now = now.Add(33 * time.Millisecond)
		pa := a.Tick(now)
		pb := b.Tick(now)
		require.Equal(t, len(pa), len(pb), "tick %d", i)
	}

	// URLs carry the deterministic part of a photo (seed + aspect).
	pa, pb := a.Photos(), b.Photos()
	for i := range pa {
		assert.Equal(t, pa[i].URL, pb[i].URL)
		assert.Equal(t, pa[i].CreatedAt, pb[i].CreatedAt)
	}
}

func TestJoinsStopAtMax(t *testing.T) {
	s := New(Config{Seed: 1, Initial: 4, MaxPhotos: 6, JoinChance: 1, LeaveChance: -1})
	now := time.Now()
	for i := 0; i < 50; i++ {
		s.Tick(now.Add(time.Duration(i) * time.Second))
	}
	assert.Len(t, s.Photos(), 6)
}

func TestLeavesStopAtMin(t *testing.T) {
	s := New(Config{Seed: 1, Initial: 10, MinPhotos: 3, JoinChance: -1, LeaveChance: 1})
	now := time.Now()
	for i := 0; i < 50; i++ {
		s.Tick(now.Add(time.Duration(i) * time.Second))
	}
	assert.Len(t, s.Photos(), 3)
}

func TestPhotosAreWellFormed(t *testing.T) {
	s := New(Config{Seed: 3, Initial: 8})
	seen := map[string]bool{}
	for _, p := range s.Photos() {
		require.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate ID %s", p.ID)
		seen[p.ID] = true
		assert.True(t, strings.HasPrefix(p.URL, "proc://photo/"), p.URL)
		assert.Greater(t, p.Width, 0)
		assert.Greater(t, p.Height, 0)
	}
}

func TestInitialSetHasStableOrdering(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New(Config{Seed: 9, Initial: 5, Start: start})
	photos := s.Photos()
	require.Len(t, photos, 5)
	for i := 1; i < len(photos); i++ {
		assert.True(t, photos[i-1].CreatedAt.Before(photos[i].CreatedAt),
			"initial photos should have strictly increasing CreatedAt")
	}
	assert.True(t, photos[len(photos)-1].CreatedAt.Before(start))
}
