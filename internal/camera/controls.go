package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/mathx"
)

// Elevation clamps keep the manual camera above the floor plane and off the
// pole where the orbit basis degenerates.
const (
	minElevation = -0.08
	maxElevation = 1.45
)

// InteractionListener receives manual-input lifecycle events. The animator
// and auto-rotate drivers implement it so synthetic input in tests exercises
// the same path as a real frontend.
type InteractionListener interface {
	InteractionStarted()
	InteractionEnded()
}

// Controls applies orbit/pan/zoom input to the rig under radius and
// elevation clamps. Any frontend (or a test) calls Begin, feeds deltas, and
// calls End; listeners hear the start/end transitions exactly once each.
type Controls struct {
	rig *Rig

	minRadius float64
	maxRadius float64

	interacting bool
	listeners   []InteractionListener
}

// NewControls wraps the rig with default distance clamps.
func NewControls(rig *Rig) *Controls {
	return &Controls{rig: rig, minRadius: 2, maxRadius: 200}
}

// SetDistanceLimits updates the zoom clamps (from settings).
func (c *Controls) SetDistanceLimits(min, max float64) {
	if min <= 0 {
		min = 0.5
	}
	if max < min {
		max = min
	}
	c.minRadius, c.maxRadius = min, max
}

// AddListener subscribes to interaction start/end events.
func (c *Controls) AddListener(l InteractionListener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// Begin marks the start of a manual gesture. Nested calls are collapsed.
func (c *Controls) Begin() {
	if c.interacting {
		return
	}
	c.interacting = true
	for _, l := range c.listeners {
		l.InteractionStarted()
	}
}

// End marks the end of a manual gesture.
func (c *Controls) End() {
	if !c.interacting {
		return
	}
	c.interacting = false
	for _, l := range c.listeners {
		l.InteractionEnded()
	}
}

// Interacting reports whether a gesture is in progress.
func (c *Controls) Interacting() bool {
	return c.interacting
}

// Orbit rotates the camera around the target by the given azimuth and
// elevation deltas (radians).
func (c *Controls) Orbit(dAzimuth, dElevation float64) {
	sph := c.rig.Spherical()
	if sph.Radius < 1e-9 {
		sph.Radius = c.minRadius
	}
	sph.Azimuth += dAzimuth
	sph.Elevation = mathx.Clamp(sph.Elevation+dElevation, minElevation, maxElevation)
	sph.Radius = mathx.Clamp(sph.Radius, c.minRadius, c.maxRadius)
	c.rig.Position = c.rig.Target.Add(sph.Offset())
}

// Pan slides the target and camera together in the view plane. dx moves
// along the camera's right axis, dy along its up axis, in world units.
func (c *Controls) Pan(dx, dy float64) {
	forward := c.rig.Target.Sub(c.rig.Position)
	if forward.Len() < 1e-9 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl64.Vec3{0, 1, 0})
	if right.Len() < 1e-9 {
		right = mgl64.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up := right.Cross(forward)

	shift := right.Mul(dx).Add(up.Mul(dy))
	c.rig.Target = c.rig.Target.Add(shift)
	c.rig.Position = c.rig.Position.Add(shift)
}

// Zoom scales the camera distance by factor (<1 zooms in), clamped to the
// configured limits.
func (c *Controls) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	sph := c.rig.Spherical()
	if sph.Radius < 1e-9 {
		sph.Radius = c.minRadius
	}
	sph.Radius = mathx.Clamp(sph.Radius*factor, c.minRadius, c.maxRadius)
	c.rig.Position = c.rig.Target.Add(sph.Offset())
}
