// Package pattern maps slot indexes to 3D targets. Every generator is a
// pure function of (slot count, elapsed seconds, parameters): same inputs,
// same layout, which is what keeps slots stable while photos churn.
package pattern

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/settings"
)

// FloorClearance is the minimum height of a photo's bottom edge above the
// floor plane. The wave clamp and every base height build on it; the floor
// and lighting assume photos never dip below it.
const FloorClearance = 0.5

// Output is one frame's worth of slot targets. Positions and Orientations
// are index-aligned; Billboard asks the renderer to face each photo toward
// the camera instead of using the listed orientation.
type Output struct {
	Positions    []mgl64.Vec3
	Orientations []mgl64.Quat
	Billboard    bool
}

// Generator produces slot targets for a point in animation time.
type Generator interface {
	Name() string
	Generate(elapsed float64) Output
}

// Spacing returns the guaranteed minimum center-to-center distance between
// slots for scatter-style patterns: photos must not overlap at any
// configured size.
func Spacing(cfg settings.PatternConfig, photoSize float64) float64 {
	return math.Max(cfg.MinSpacing, photoSize*cfg.SpacingFactor)
}

// MinPairwiseDistance returns the smallest center-to-center distance among
// the positions, or +Inf for fewer than two. Quadratic; diagnostic use only.
func MinPairwiseDistance(positions []mgl64.Vec3) float64 {
	min := math.Inf(1)
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if d := positions[i].Sub(positions[j]).Len(); d < min {
				min = d
			}
		}
	}
	return min
}

// baseHeight is the Y of a photo center resting at the clearance line.
func baseHeight(photoSize float64) float64 {
	return FloorClearance + photoSize/2
}

// identityOrients returns n copies of the identity orientation (facing +Z).
func identityOrients(n int) []mgl64.Quat {
	out := make([]mgl64.Quat, n)
	for i := range out {
		out[i] = mgl64.QuatIdent()
	}
	return out
}
