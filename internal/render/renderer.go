// Package render rasterizes scene frames to images on the CPU: perspective
// projection, z-buffered flat-shaded triangles, sRGB-correct lighting with
// ACES tone mapping, and optional supersampling.
package render

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/geom"
	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/scene"
)

// photoEmissive sets how self-lit photo planes are at brightness 1, so
// photos stay readable outside the spotlight pools.
const photoEmissive = 0.55

// Config sizes the output image. Supersample renders at an integer multiple
// of the target size and filters down.
type Config struct {
	Width       int
	Height      int
	Supersample int
}

// Renderer rasterizes scene frames. It holds no per-frame state, so Render
// may be called from several goroutines at once with different frames.
type Renderer struct {
	cfg  Config
	quad *geom.Mesh
}

// New returns a renderer for the given output size. Values below 1 clamp
// to 1.
func New(cfg Config) *Renderer {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	return &Renderer{cfg: cfg, quad: geom.PhotoQuad()}
}

// Render draws one frame snapshot: background fill, environment meshes,
// then the photo planes, all through a shared z-buffer.
func (r *Renderer) Render(frame *scene.Frame) *image.NRGBA {
	rw := r.cfg.Width * r.cfg.Supersample
	rh := r.cfg.Height * r.cfg.Supersample

	fb := newFrameBuffer(rw, rh)
	fillBackground(fb, frame.Background)

	proj := newProjector(frame.Camera, rw, rh)
	sh := newShader(frame.Lights)

	for _, m := range frame.Meshes {
		r.drawMesh(fb, proj, sh, m, nil, r.lookup(frame, m.TextureKey), m.Emissive)
	}

	emissive := mathx.Clamp(photoEmissive*frame.PhotoBrightness, 0, 1)
	for i := range frame.Slots {
		s := &frame.Slots[i]
		orient := s.Orient
		if frame.Billboard {
			orient = billboardQuat(s.Pos, frame.Camera.Position)
		}
		model := mgl64.Translate3D(s.Pos.X(), s.Pos.Y(), s.Pos.Z()).
			Mul4(orient.Mat4()).
			Mul4(mgl64.Scale3D(s.Width, s.Height, 1))

		var tex *image.NRGBA
		if s.Photo != nil {
			tex = r.lookup(frame, s.Photo.URL)
		}
		if tex == nil {
			tex = r.lookup(frame, frame.PlaceholderKey)
		}
		r.drawMesh(fb, proj, sh, r.quad, &model, tex, emissive)
	}

	img := image.NewNRGBA(image.Rect(0, 0, rw, rh))
	copy(img.Pix, fb.Color)
	return downsample(img, r.cfg.Width, r.cfg.Height)
}

// drawMesh projects one mesh and rasterizes its triangles. model is nil for
// geometry already in world space.
func (r *Renderer) drawMesh(
	fb *frameBuffer,
	proj *projector,
	sh *shader,
	m *geom.Mesh,
	model *mgl64.Mat4,
	tex *image.NRGBA,
	emissive float64,
) {
	n := len(m.Verts)
	if n == 0 || len(m.Tris) == 0 {
		return
	}

	world := m.Verts
	if model != nil {
		world = make([]mgl64.Vec3, n)
		for i, v := range m.Verts {
			world[i] = mgl64.TransformCoordinate(v, *model)
		}
	}

	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)
	proj.project(world, px, py, pz)

	tintR, tintG, tintB := m.Tint.Clamped().RGB255()

	for _, tri := range m.Tris {
		a, b, c := tri[0], tri[1], tri[2]
		if a < 0 || b < 0 || c < 0 || a >= n || b >= n || c >= n {
			continue
		}
		if pz[a] > -zNear || pz[b] > -zNear || pz[c] > -zNear {
			continue
		}

		normal := world[b].Sub(world[a]).Cross(world[c].Sub(world[a]))
		nl := normal.Len()
		if nl < 1e-12 {
			continue
		}
		centroid := world[a].Add(world[b]).Add(world[c]).Mul(1.0 / 3.0)
		sr, sg, sb := sh.face(normal.Mul(1/nl), centroid, emissive)

		rasterizeTriangle(fb, px, py, pz, m.UVs, [3]int{a, b, c}, tex, tintR, tintG, tintB, sr, sg, sb)
	}
}

func (r *Renderer) lookup(frame *scene.Frame, key string) *image.NRGBA {
	if key == "" || frame.Textures == nil {
		return nil
	}
	if t, ok := frame.Textures.Lookup(key); ok && t.Image != nil {
		return t.Image
	}
	return nil
}

// billboardQuat orients a quad's +Z normal at the camera position.
func billboardQuat(pos, cam mgl64.Vec3) mgl64.Quat {
	f := cam.Sub(pos)
	l := f.Len()
	if l < 1e-9 {
		return mgl64.QuatIdent()
	}
	f = f.Mul(1 / l)
	yaw := math.Atan2(f.X(), f.Z())
	pitch := -math.Asin(mathx.Clamp(f.Y(), -1, 1))
	return mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).
		Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}))
}
