package pattern

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fallback is the trivial rows/columns layout used when a configured
// generator fails. It takes no tunable parameters so it cannot itself fail,
// and it covers the same slot count as the generator it replaces.
type Fallback struct {
	count     int
	photoSize float64
}

// NewFallback builds the recovery grid for count slots.
func NewFallback(count int, photoSize float64) *Fallback {
	return &Fallback{count: count, photoSize: photoSize}
}

func (f *Fallback) Name() string { return "fallback" }

func (f *Fallback) Generate(elapsed float64) Output {
	n := f.count
	if n < 1 {
		return Output{}
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	step := f.photoSize * 1.2
	bottom := baseHeight(f.photoSize)

	positions := make([]mgl64.Vec3, n)
	for i := 0; i < n; i++ {
		row := i / cols
		col := i % cols
		positions[i] = mgl64.Vec3{
			(float64(col) - float64(cols-1)/2) * step,
			bottom + float64(rows-1-row)*step,
			0,
		}
	}
	return Output{
		Positions:    positions,
		Orientations: identityOrients(n),
	}
}
