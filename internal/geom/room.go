package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// roomSegs is the wall tessellation used by every enclosing shell.
const roomSegs = 12

// CubeRoom returns four walls enclosing a size x size footprint, height
// units tall, with an optional ceiling. The floor plane is separate so its
// visibility toggles independently.
func CubeRoom(size, height float64, ceiling bool) *Mesh {
	m := &Mesh{Name: "cuberoom"}
	h := size / 2

	// Walls ordered -Z, +Z, -X, +X, each spanning the full footprint.
	m.wall(mgl64.Vec3{-h, 0, -h}, mgl64.Vec3{size, 0, 0}, mgl64.Vec3{0, height, 0}, roomSegs)
	m.wall(mgl64.Vec3{h, 0, h}, mgl64.Vec3{-size, 0, 0}, mgl64.Vec3{0, height, 0}, roomSegs)
	m.wall(mgl64.Vec3{-h, 0, h}, mgl64.Vec3{0, 0, -size}, mgl64.Vec3{0, height, 0}, roomSegs)
	m.wall(mgl64.Vec3{h, 0, -h}, mgl64.Vec3{0, 0, size}, mgl64.Vec3{0, height, 0}, roomSegs)
	if ceiling {
		m.wall(mgl64.Vec3{-h, height, -h}, mgl64.Vec3{size, 0, 0}, mgl64.Vec3{0, 0, size}, roomSegs)
	}
	return m
}

// SphereInterior returns a UV sphere to be viewed from inside, with the
// panorama texture wrapped once around the equator.
func SphereInterior(radius float64, wSegs, hSegs int) *Mesh {
	if wSegs < 3 {
		wSegs = 3
	}
	if hSegs < 2 {
		hSegs = 2
	}
	m := &Mesh{Name: "sphere"}
	for iy := 0; iy <= hSegs; iy++ {
		polar := math.Pi * float64(iy) / float64(hSegs)
		y := radius * math.Cos(polar)
		r := radius * math.Sin(polar)
		for ix := 0; ix <= wSegs; ix++ {
			az := 2 * math.Pi * float64(ix) / float64(wSegs)
			m.Verts = append(m.Verts, mgl64.Vec3{
				r * math.Sin(az),
				y,
				r * math.Cos(az),
			})
			m.UVs = append(m.UVs, [2]float64{
				float64(ix) / float64(wSegs),
				float64(iy) / float64(hSegs),
			})
		}
	}
	stride := wSegs + 1
	for iy := 0; iy < hSegs; iy++ {
		for ix := 0; ix < wSegs; ix++ {
			a := iy*stride + ix
			b := a + 1
			c := a + stride
			d := c + 1
			m.Tris = append(m.Tris, [3]int{a, b, c}, [3]int{b, d, c})
		}
	}
	return m
}

// GalleryRoom returns a rectangular exhibition room: walls, ceiling, and a
// picture-rail strip near the top of each wall. The rail is part of the
// same mesh; its darker look comes from the wall texture.
func GalleryRoom(size, height float64) *Mesh {
	m := CubeRoom(size, height, true)
	m.Name = "gallery"

	// Rail: a thin inward-protruding ledge ringing the room below the
	// ceiling, where the track spots mount.
	h := size / 2
	railY := height * 0.88
	railDrop := height * 0.03
	inset := size * 0.02
	ring := []mgl64.Vec3{
		{-h + inset, railY, -h + inset},
		{h - inset, railY, -h + inset},
		{h - inset, railY, h - inset},
		{-h + inset, railY, h - inset},
	}
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		m.wall(a, b.Sub(a), mgl64.Vec3{0, -railDrop, 0}, 1)
	}
	return m
}

// StudioBackdrop returns a cyclorama: a floor apron sweeping up through a
// quarter-cylinder into a vertical back wall, extruded across the width.
func StudioBackdrop(width, height, depth float64) *Mesh {
	const (
		curveSegs = 10
		flatSegs  = 4
	)
	curveR := math.Min(depth, height) * 0.5

	// Profile from the front edge toward the back wall top, in (z, y).
	type zy struct{ z, y float64 }
	var profile []zy
	for i := 0; i <= flatSegs; i++ {
		f := float64(i) / float64(flatSegs)
		profile = append(profile, zy{depth/2 - f*(depth-curveR), 0})
	}
	for i := 1; i <= curveSegs; i++ {
		a := math.Pi / 2 * float64(i) / float64(curveSegs)
		profile = append(profile, zy{
			-depth/2 + curveR - curveR*math.Sin(a),
			curveR - curveR*math.Cos(a),
		})
	}
	for i := 1; i <= flatSegs; i++ {
		f := float64(i) / float64(flatSegs)
		profile = append(profile, zy{-depth / 2, curveR + f*(height-curveR)})
	}

	m := &Mesh{Name: "studio"}
	const widthSegs = 12
	for pi, p := range profile {
		for ix := 0; ix <= widthSegs; ix++ {
			fx := float64(ix) / float64(widthSegs)
			m.Verts = append(m.Verts, mgl64.Vec3{(fx - 0.5) * width, p.y, p.z})
			m.UVs = append(m.UVs, [2]float64{fx, float64(pi) / float64(len(profile)-1)})
		}
	}
	stride := widthSegs + 1
	for pi := 0; pi < len(profile)-1; pi++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := pi*stride + ix
			b := a + 1
			c := a + stride
			d := c + 1
			m.Tris = append(m.Tris, [3]int{a, b, c}, [3]int{b, d, c})
		}
	}
	return m
}
