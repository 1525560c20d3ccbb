package pattern

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/settings"
)

// Float scatters slots through a bounded volume. Each slot owns one cell of
// a coarse 3D lattice plus a hashed jitter, so layouts are deterministic and
// collision-free; a per-slot sinusoid makes the cloud breathe without
// synchronized motion. Photos billboard toward the camera.
type Float struct {
	count     int
	photoSize float64
	spread    float64 // requested half-extent of the volume
	drift     float64 // breathing amplitude
	spacing   float64 // guaranteed minimum center distance
}

// NewFloat builds a float generator for count slots.
func NewFloat(count int, photoSize, spread, drift, spacing float64) *Float {
	return &Float{
		count:     count,
		photoSize: photoSize,
		spread:    spread,
		drift:     drift,
		spacing:   spacing,
	}
}

func (f *Float) Name() string { return settings.PatternFloat }

// jitterAmp is the per-axis jitter as an absolute distance; the cell size
// below budgets for twice this plus twice the drift so neighbors can never
// meet even at opposing phase.
func (f *Float) jitterAmp() float64 { return 0.25 * f.spacing }

func (f *Float) cellSize(side int) float64 {
	min := f.spacing + 2*f.jitterAmp() + 2*f.drift
	want := 2 * f.spread / float64(side)
	return math.Max(min, want)
}

func (f *Float) Generate(elapsed float64) Output {
	n := f.count
	if n < 1 {
		return Output{Billboard: true}
	}

	side := int(math.Ceil(math.Cbrt(float64(n))))
	if side < 1 {
		side = 1
	}
	cell := f.cellSize(side)
	j := f.jitterAmp()
	base := baseHeight(f.photoSize) + j + f.drift

	positions := make([]mgl64.Vec3, n)
	for i := 0; i < n; i++ {
		seed := uint64(i)
		ix := i % side
		iy := (i / side) % side
		iz := i / (side * side)

		jx := (mathx.HashUnit(seed, 1)*2 - 1) * j
		jy := (mathx.HashUnit(seed, 2)*2 - 1) * j
		jz := (mathx.HashUnit(seed, 3)*2 - 1) * j

		// One breathing oscillator per slot, phase and rate hashed so the
		// cloud never moves in lockstep.
		phase := mathx.HashUnit(seed, 4) * 2 * math.Pi
		rate := 0.3 + 0.5*mathx.HashUnit(seed, 5)
		bob := f.drift * math.Sin(elapsed*rate+phase)
		sway := f.drift * math.Sin(elapsed*rate*0.7+phase*1.3)

		positions[i] = mgl64.Vec3{
			(float64(ix)-float64(side-1)/2)*cell + jx + sway,
			base + float64(iy)*cell + jy + bob,
			(float64(iz)-float64(side-1)/2)*cell + jz,
		}
	}
	return Output{
		Positions:    positions,
		Orientations: identityOrients(n),
		Billboard:    true,
	}
}
