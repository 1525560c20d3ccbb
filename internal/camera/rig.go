// Package camera drives the viewpoint: a manual orbit/pan/zoom rig, a
// cinematic animator that frames the live photo set, and a simple
// auto-rotate mode. Exactly one driver writes the rig per frame; the
// animator and auto-rotate yield to manual input and resume after a
// cool-down.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/mathx"
)

// Rig is the camera state shared by every driver and read by the renderer.
type Rig struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FOV      float64 // vertical field of view, degrees
}

// NewRig places the camera at the default vantage point.
func NewRig() *Rig {
	return &Rig{
		Position: mgl64.Vec3{0, 4, 16},
		Target:   mgl64.Vec3{0, 2, 0},
		FOV:      50,
	}
}

// Offset is the camera position relative to its look-at target.
func (r *Rig) Offset() mgl64.Vec3 {
	return r.Position.Sub(r.Target)
}

// Spherical is the rig offset in spherical coordinates around the target.
func (r *Rig) Spherical() mathx.Spherical {
	return mathx.SphericalFromOffset(r.Offset())
}
