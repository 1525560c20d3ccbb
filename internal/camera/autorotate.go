package camera

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/settings"
)

// centroidDampRate recenters the auto-rotate pivot onto the photo centroid
// without yanking the camera when the set shifts.
const centroidDampRate = 1.5

// AutoRotate is the plain alternative to the cinematic animator: a constant
// angular velocity orbit around the photo centroid, preserving whatever
// radius and elevation the user chose. It has its own cool-down and is never
// active at the same time as the animator (settings normalization enforces
// that).
type AutoRotate struct {
	rig *Rig
	clk clock.Clock

	enabled  bool
	speed    float64 // radians per second
	cooldown time.Duration

	interacting bool
	resumeAt    time.Time
}

// NewAutoRotate builds a disabled rotator; ApplySettings arms it.
func NewAutoRotate(rig *Rig, clk clock.Clock) *AutoRotate {
	return &AutoRotate{rig: rig, clk: clk}
}

// ApplySettings takes the auto-rotate flag, speed, and cool-down.
func (ar *AutoRotate) ApplySettings(cfg settings.CameraConfig) {
	ar.enabled = cfg.AutoRotate
	ar.speed = cfg.AutoRotateSpeed
	ar.cooldown = time.Duration(cfg.CooldownSeconds * float64(time.Second))
}

// InteractionStarted implements InteractionListener.
func (ar *AutoRotate) InteractionStarted() {
	ar.interacting = true
}

// InteractionEnded implements InteractionListener and arms the cool-down.
func (ar *AutoRotate) InteractionEnded() {
	ar.interacting = false
	ar.resumeAt = ar.clk.Now().Add(ar.cooldown)
}

// Active reports whether the rotator will write the rig this frame.
func (ar *AutoRotate) Active() bool {
	return ar.enabled && !ar.interacting && !ar.clk.Now().Before(ar.resumeAt)
}

// Update advances the orbit. centroid is the mean of occupied photo
// positions; a zero-photo scene keeps the current pivot.
func (ar *AutoRotate) Update(dt float64, centroid mgl64.Vec3, havePhotos bool) {
	if !ar.Active() {
		return
	}
	if havePhotos {
		ar.rig.Target = mathx.Damp(ar.rig.Target, centroid, centroidDampRate, dt)
	}
	sph := ar.rig.Spherical()
	if sph.Radius < 1e-9 {
		return
	}
	sph.Azimuth += ar.speed * dt
	ar.rig.Position = ar.rig.Target.Add(sph.Offset())
}
