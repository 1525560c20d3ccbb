package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/settings"
)

// Framing is the scale a trajectory operates at, derived each frame from the
// bounding box of occupied slot positions so the camera frames whatever the
// active pattern produced.
type Framing struct {
	Center mgl64.Vec3
	Radius float64 // orbit distance from Center
	Height float64 // camera Y above Center
}

// Default framing used while no photos are placed. Keeps the trajectories
// well-defined before the first assignment and under degenerate bounds.
const (
	defaultFrameRadius = 12.0
	defaultFrameHeight = 4.0
)

// FramingFor scales a framing from the photo bounding box and the configured
// distance/height multipliers. A degenerate box falls back to fixed defaults.
func FramingFor(bounds mathx.Box3, cfg settings.CameraConfig) Framing {
	if bounds.IsEmpty() || bounds.Radius() < 1e-6 {
		return Framing{
			Center: mgl64.Vec3{0, 2, 0},
			Radius: defaultFrameRadius * cfg.Distance,
			Height: defaultFrameHeight * cfg.Height,
		}
	}
	center := bounds.Center()
	radius := math.Max(bounds.Radius(), 3) * cfg.Distance
	height := (bounds.Size().Y()*0.5 + 2) * cfg.Height
	return Framing{Center: center, Radius: radius, Height: height}
}

// trajectory computes a camera offset from the framing center at animation
// time t. PhaseFor inverts the azimuth for jump-free resume; trajectories
// whose azimuth is not monotonic report ok=false and rely on position
// damping alone.
type trajectory interface {
	Offset(t float64, f Framing) mgl64.Vec3
	PhaseFor(s mathx.Spherical) (t float64, ok bool)
}

// Base angular rates (radians per second at speed 1).
const (
	orbitRate  = 0.3
	spiralRate = 0.45
)

func trajectoryFor(name string) trajectory {
	switch name {
	case settings.CameraFigure8:
		return figure8Path{}
	case settings.CameraCenterRotate:
		return centerRotatePath{}
	case settings.CameraWave:
		return wavePath{}
	case settings.CameraSpiral:
		return spiralPath{}
	default:
		return orbitPath{}
	}
}

// orbitPath circles the scene at constant radius and height.
type orbitPath struct{}

func (orbitPath) Offset(t float64, f Framing) mgl64.Vec3 {
	az := t * orbitRate
	return mgl64.Vec3{f.Radius * math.Sin(az), f.Height, f.Radius * math.Cos(az)}
}

func (orbitPath) PhaseFor(s mathx.Spherical) (float64, bool) {
	return s.Azimuth / orbitRate, true
}

// figure8Path sweeps a horizontal lemniscate through the scene. Its azimuth
// doubles back, so resume relies on damping.
type figure8Path struct{}

func (figure8Path) Offset(t float64, f Framing) mgl64.Vec3 {
	u := t * orbitRate
	return mgl64.Vec3{
		f.Radius * math.Sin(u),
		f.Height * (0.8 + 0.2*math.Sin(u*0.5)),
		f.Radius * math.Sin(u) * math.Cos(u),
	}
}

func (figure8Path) PhaseFor(mathx.Spherical) (float64, bool) { return 0, false }

// centerRotatePath holds close to the middle of the set and rotates, for
// the inside-the-collage view.
type centerRotatePath struct{}

func (centerRotatePath) Offset(t float64, f Framing) mgl64.Vec3 {
	az := t * orbitRate
	r := f.Radius * 0.35
	return mgl64.Vec3{r * math.Sin(az), f.Height * 1.2, r * math.Cos(az)}
}

func (centerRotatePath) PhaseFor(s mathx.Spherical) (float64, bool) {
	return s.Azimuth / orbitRate, true
}

// wavePath orbits while bobbing vertically.
type wavePath struct{}

func (wavePath) Offset(t float64, f Framing) mgl64.Vec3 {
	az := t * orbitRate
	y := f.Height * (0.55 + 0.45*math.Sin(t*0.9))
	return mgl64.Vec3{f.Radius * math.Sin(az), y, f.Radius * math.Cos(az)}
}

func (wavePath) PhaseFor(s mathx.Spherical) (float64, bool) {
	return s.Azimuth / orbitRate, true
}

// spiralPath orbits while breathing in and out and climbing up and down,
// matched to the tall helical layouts.
type spiralPath struct{}

func (spiralPath) Offset(t float64, f Framing) mgl64.Vec3 {
	az := t * spiralRate
	r := f.Radius * (0.95 + 0.3*math.Sin(t*0.21))
	y := f.Height * (0.4 + 0.6*(0.5+0.5*math.Sin(t*0.13)))
	return mgl64.Vec3{r * math.Sin(az), y, r * math.Cos(az)}
}

func (spiralPath) PhaseFor(s mathx.Spherical) (float64, bool) {
	return s.Azimuth / spiralRate, true
}
