package pattern

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/settings"
)

// Wave lays slots along one or more sinusoidal ribbons running along X.
// The Y output is clamped so a photo's bottom edge never dips below the
// floor clearance: the floor plane and lighting assume photos stay above it,
// so the clamp is a correctness requirement, not cosmetic.
type Wave struct {
	count     int
	photoSize float64
	amplitude float64
	frequency float64
	ribbons   int
	spacing   float64
}

// NewWave builds a wave generator for count slots.
func NewWave(count int, cfg settings.PatternConfig, photoSize, spacing float64) *Wave {
	ribbons := cfg.WaveRibbons
	if ribbons < 1 {
		ribbons = 1
	}
	return &Wave{
		count:     count,
		photoSize: photoSize,
		amplitude: cfg.WaveAmplitude,
		frequency: cfg.WaveFrequency,
		ribbons:   ribbons,
		spacing:   spacing,
	}
}

func (w *Wave) Name() string { return settings.PatternWave }

// MinY is the lowest center height Generate can emit.
func (w *Wave) MinY() float64 { return baseHeight(w.photoSize) }

func (w *Wave) Generate(elapsed float64) Output {
	n := w.count
	if n < 1 {
		return Output{}
	}

	perRibbon := (n + w.ribbons - 1) / w.ribbons
	// The ribbon runs along X at one slot per spacing step, so same-ribbon
	// neighbors keep the guarantee on X alone; parallel ribbons keep it on Z.
	stepX := w.spacing
	gapZ := w.spacing
	center := baseHeight(w.photoSize) + w.amplitude*0.5

	positions := make([]mgl64.Vec3, n)
	orients := make([]mgl64.Quat, n)
	for i := 0; i < n; i++ {
		ribbon := i % w.ribbons
		k := i / w.ribbons

		x := (float64(k) - float64(perRibbon-1)/2) * stepX
		z := (float64(ribbon) - float64(w.ribbons-1)/2) * gapZ
		phase := float64(ribbon) * math.Pi / 3
		y := center + w.amplitude*math.Sin(x*w.frequency+elapsed+phase)
		if y < w.MinY() {
			y = w.MinY()
		}
		positions[i] = mgl64.Vec3{x, y, z}

		// Lean each photo into the ribbon's slope so the wave reads as a
		// surface instead of a picket fence.
		slope := w.amplitude * w.frequency * math.Cos(x*w.frequency+elapsed+phase)
		tilt := math.Atan(slope) * 0.35
		orients[i] = mgl64.QuatRotate(tilt, mgl64.Vec3{0, 0, 1})
	}
	return Output{Positions: positions, Orientations: orients}
}
