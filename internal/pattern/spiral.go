package pattern

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/settings"
)

// multiArmThreshold is the slot count above which the helix splits into
// offset arms so large collections wrap the camera evenly instead of
// climbing out of frame.
const multiArmThreshold = 50

// Spiral lays slots along an ascending helix, splitting into up to four
// interleaved arms for large counts. Photos face the spiral axis.
type Spiral struct {
	count      int
	photoSize  float64
	radius     float64
	heightStep float64
	spacing    float64
}

// NewSpiral builds a spiral generator for count slots.
func NewSpiral(count int, cfg settings.PatternConfig, photoSize, spacing float64) *Spiral {
	return &Spiral{
		count:      count,
		photoSize:  photoSize,
		radius:     cfg.SpiralRadius,
		heightStep: cfg.SpiralHeightStep,
		spacing:    spacing,
	}
}

func (s *Spiral) Name() string { return settings.PatternSpiral }

// Arms returns how many interleaved helix arms the layout uses.
func (s *Spiral) Arms() int {
	if s.count <= multiArmThreshold {
		return 1
	}
	arms := (s.count + multiArmThreshold - 1) / multiArmThreshold
	if arms > 4 {
		arms = 4
	}
	return arms
}

// geometry resolves the effective radius, angle step, and height step so
// that every neighbor pair (same arm, across arms, turn above turn) keeps
// the minimum spacing.
func (s *Spiral) geometry(arms int) (radius, dTheta, dy float64) {
	radius = math.Max(s.radius, s.spacing/2)
	if arms > 1 {
		// Arms sit 2*pi/arms apart at the same height; the chord between
		// them must not collapse below the spacing.
		need := s.spacing / (2 * math.Sin(math.Pi/float64(arms)))
		if radius < need {
			radius = need
		}
	}

	// Chord between consecutive steps on one arm: 2R*sin(dTheta/2) >= spacing.
	dTheta = 2 * math.Asin(s.spacing/(2*radius))
	if dTheta < 0.05 {
		dTheta = 0.05
	}

	// Vertical gap between turns: steps per turn * dy >= spacing.
	dy = s.heightStep
	stepsPerTurn := 2 * math.Pi / dTheta
	if dy*stepsPerTurn < s.spacing {
		dy = s.spacing / stepsPerTurn
	}
	return radius, dTheta, dy
}

func (s *Spiral) Generate(elapsed float64) Output {
	n := s.count
	if n < 1 {
		return Output{}
	}

	arms := s.Arms()
	radius, dTheta, dy := s.geometry(arms)
	base := baseHeight(s.photoSize)

	positions := make([]mgl64.Vec3, n)
	orients := make([]mgl64.Quat, n)
	for i := 0; i < n; i++ {
		arm := i % arms
		k := i / arms
		theta := float64(k)*dTheta + float64(arm)*2*math.Pi/float64(arms)

		positions[i] = mgl64.Vec3{
			radius * math.Sin(theta),
			base + float64(k)*dy,
			radius * math.Cos(theta),
		}
		// Face the axis: the photo's +Z normal points back at the center.
		orients[i] = mgl64.QuatRotate(theta+math.Pi, mgl64.Vec3{0, 1, 0})
	}
	return Output{Positions: positions, Orientations: orients}
}
