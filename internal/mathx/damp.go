package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DampFactor converts a per-second smoothing rate into a per-step blend
// factor for a step of dt seconds. The result is frame-rate independent:
// two 8ms steps move as far as one 16ms step.
func DampFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// Damp moves current toward target by the damp factor for (rate, dt).
func Damp(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	f := DampFactor(rate, dt)
	return current.Add(target.Sub(current).Mul(f))
}

// DampScalar moves current toward target by the damp factor for (rate, dt).
func DampScalar(current, target, rate, dt float64) float64 {
	return current + (target-current)*DampFactor(rate, dt)
}
