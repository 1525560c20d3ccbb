package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/camera"
)

// zNear is the view-space clip distance. Triangles touching a vertex nearer
// than this (or behind the camera) are skipped whole; room shells and the
// floor are tessellated so the skipped patch stays small.
const zNear = 0.1

// projector turns world-space points into screen coordinates plus a
// view-space depth for the z-test. Depth is view z directly: visible points
// are negative and larger means nearer.
type projector struct {
	view  mgl64.Mat4
	focal float64
	halfW float64
	halfH float64
}

func newProjector(rig camera.Rig, width, height int) *projector {
	eye, target := rig.Position, rig.Target
	off := eye.Sub(target)
	// A vertical (or zero) offset degenerates the look-at basis.
	if !finiteVec(eye) || !finiteVec(target) || math.Hypot(off.X(), off.Z()) < 1e-9 {
		def := camera.NewRig()
		eye, target = def.Position, def.Target
	}
	fov := rig.FOV * math.Pi / 180
	if !(fov > 0 && fov < math.Pi) {
		fov = camera.NewRig().FOV * math.Pi / 180
	}
	return &projector{
		view:  mgl64.LookAtV(eye, target, mgl64.Vec3{0, 1, 0}),
		focal: float64(height) / 2 / math.Tan(fov/2),
		halfW: float64(width) / 2,
		halfH: float64(height) / 2,
	}
}

// project fills px, py with screen coordinates and pz with view depth for
// each world vertex. Vertices at or beyond the near plane still get a real
// pz so the per-triangle near test can see them, but their screen coords
// are meaningless; callers reject any triangle touching one.
func (p *projector) project(world []mgl64.Vec3, px, py, pz []float64) {
	for i, v := range world {
		t := p.view.Mul4x1(v.Vec4(1))
		z := t.Z()
		pz[i] = z
		d := -z
		if d < 1e-6 {
			d = 1e-6
		}
		s := p.focal / d
		px[i] = p.halfW + t.X()*s
		py[i] = p.halfH - t.Y()*s
	}
}

func finiteVec(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}
