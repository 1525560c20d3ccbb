package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Spherical holds an offset from a focus point in spherical coordinates,
// Y-up: azimuth is the horizontal angle around Y, elevation the angle above
// the horizontal plane.
type Spherical struct {
	Radius    float64
	Azimuth   float64
	Elevation float64
}

// SphericalFromOffset converts a cartesian offset (position - target) to
// spherical coordinates. A zero offset yields a degenerate but usable
// Spherical with radius 0.
func SphericalFromOffset(off mgl64.Vec3) Spherical {
	r := off.Len()
	if r < 1e-12 {
		return Spherical{}
	}
	return Spherical{
		Radius:    r,
		Azimuth:   math.Atan2(off.X(), off.Z()),
		Elevation: math.Asin(Clamp(off.Y()/r, -1, 1)),
	}
}

// Offset converts spherical coordinates back to a cartesian offset.
func (s Spherical) Offset() mgl64.Vec3 {
	ce := math.Cos(s.Elevation)
	return mgl64.Vec3{
		s.Radius * ce * math.Sin(s.Azimuth),
		s.Radius * math.Sin(s.Elevation),
		s.Radius * ce * math.Cos(s.Azimuth),
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HashUnit returns a deterministic pseudo-random value in [0, 1) for the
// given seed and salt. Used for stable per-slot scatter that survives
// restarts (splitmix64 finalizer).
func HashUnit(seed, salt uint64) float64 {
	z := seed*0x9E3779B97F4A7C15 + salt
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return float64(z>>11) / float64(1<<53)
}
