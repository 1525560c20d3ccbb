// Package geom builds the triangle meshes the renderer draws: photo quads,
// the floor plane, and the enclosing environment shells. Meshes are plain
// indexed triangle lists; all surfaces render double-sided, so builders
// only pick a winding for the side lighting should favor.
package geom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Mesh is an indexed triangle list with per-vertex UVs. TextureKey names an
// entry in the texture cache; when it is empty the renderer flat-fills with
// Tint. Emissive in [0,1] blends shading toward self-lit: 0 is fully lit
// geometry, 1 ignores the lights entirely.
type Mesh struct {
	Name       string
	Verts      []mgl64.Vec3
	UVs        [][2]float64
	Tris       [][3]int
	TextureKey string
	Tint       colorful.Color
	Emissive   float64
}

// PhotoQuad returns a unit square centered at the origin facing +Z. Photos
// share this one geometry; per-slot size is a scale in the model matrix.
func PhotoQuad() *Mesh {
	return &Mesh{
		Name: "photoquad",
		Verts: []mgl64.Vec3{
			{-0.5, -0.5, 0},
			{0.5, -0.5, 0},
			{0.5, 0.5, 0},
			{-0.5, 0.5, 0},
		},
		UVs:  [][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Tris: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

// Plane returns a y=0 rectangle centered at the origin, tessellated into
// segs x segs cells. Tessellation keeps near-plane rejection local and
// gives flat shading enough faces to show light pools.
func Plane(width, depth float64, segs int) *Mesh {
	if segs < 1 {
		segs = 1
	}
	m := &Mesh{Name: "plane"}
	for iz := 0; iz <= segs; iz++ {
		for ix := 0; ix <= segs; ix++ {
			fx := float64(ix) / float64(segs)
			fz := float64(iz) / float64(segs)
			m.Verts = append(m.Verts, mgl64.Vec3{
				(fx - 0.5) * width,
				0,
				(fz - 0.5) * depth,
			})
			m.UVs = append(m.UVs, [2]float64{fx, fz})
		}
	}
	stride := segs + 1
	for iz := 0; iz < segs; iz++ {
		for ix := 0; ix < segs; ix++ {
			a := iz*stride + ix
			b := a + 1
			c := a + stride
			d := c + 1
			m.Tris = append(m.Tris, [3]int{a, c, b}, [3]int{b, c, d})
		}
	}
	return m
}

// wall appends a tessellated rectangle spanning from origin along du and dv
// to the mesh, with UVs tiled once across the rectangle.
func (m *Mesh) wall(origin, du, dv mgl64.Vec3, segs int) {
	base := len(m.Verts)
	for iv := 0; iv <= segs; iv++ {
		for iu := 0; iu <= segs; iu++ {
			fu := float64(iu) / float64(segs)
			fv := float64(iv) / float64(segs)
			m.Verts = append(m.Verts, origin.Add(du.Mul(fu)).Add(dv.Mul(fv)))
			m.UVs = append(m.UVs, [2]float64{fu, 1 - fv})
		}
	}
	stride := segs + 1
	for iv := 0; iv < segs; iv++ {
		for iu := 0; iu < segs; iu++ {
			a := base + iv*stride + iu
			b := a + 1
			c := a + stride
			d := c + 1
			m.Tris = append(m.Tris, [3]int{a, b, c}, [3]int{b, d, c})
		}
	}
}
