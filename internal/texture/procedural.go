package texture

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"photo-collage-engine/internal/mathx"
)

// Procedural texture generators. Every function is deterministic so the
// manager can memoize the output under a descriptor key.

// PlaceholderKey is the cache key for the empty-slot panel in the given
// base color.
func PlaceholderKey(base colorful.Color) string {
	return "placeholder:" + base.Hex()
}

// Placeholder draws the empty-slot panel: a flat tone with a faint inner
// grid, so unoccupied slots read as part of the layout instead of holes.
func Placeholder(size int, base colorful.Color) *image.NRGBA {
	dc := gg.NewContext(size, size)
	dc.SetRGB(base.R, base.G, base.B)
	dc.Clear()

	line := base.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.12)
	dc.SetRGB(line.R, line.G, line.B)
	dc.SetLineWidth(1)
	cells := 6
	for i := 1; i < cells; i++ {
		p := float64(i) * float64(size) / float64(cells)
		dc.DrawLine(p, 0, p, float64(size))
		dc.DrawLine(0, p, float64(size), p)
	}
	dc.Stroke()

	border := base.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.25)
	dc.SetRGB(border.R, border.G, border.B)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, float64(size)-2, float64(size)-2)
	dc.Stroke()

	return imaging.Clone(dc.Image())
}

// Floor draws the floor plane texture, either a line grid over a dark base
// or a plain fill.
func Floor(size int, style string, base colorful.Color) *image.NRGBA {
	dc := gg.NewContext(size, size)
	dc.SetRGB(base.R, base.G, base.B)
	dc.Clear()

	if style == "grid" {
		line := base.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.18)
		dc.SetRGB(line.R, line.G, line.B)
		dc.SetLineWidth(1.5)
		cells := 12
		for i := 0; i <= cells; i++ {
			p := float64(i) * float64(size) / float64(cells)
			dc.DrawLine(p, 0, p, float64(size))
			dc.DrawLine(0, p, float64(size), p)
		}
		dc.Stroke()
	}
	return imaging.Clone(dc.Image())
}

// Wall draws an environment wall: the base tint darkening toward the
// floor, which keeps big flat walls from reading as untextured.
func Wall(size int, base colorful.Color) *image.NRGBA {
	dark := base.BlendLuv(colorful.Color{}, 0.35)
	return verticalGradient(size, size, base, dark)
}

// Backdrop draws the studio cyclorama sweep: bright at the top fading to a
// soft mid tone where the curve meets the floor.
func Backdrop(size int, base colorful.Color) *image.NRGBA {
	lit := base.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.45)
	return verticalGradient(size, size, lit, base)
}

// Panorama draws the fallback sky sphere interior used when no panorama
// image is configured: a wide vertical gradient.
func Panorama(w, h int, top, bottom colorful.Color) *image.NRGBA {
	return verticalGradient(w, h, top, bottom)
}

// SyntheticPhoto renders a fake photograph for proc:// URLs: a seeded
// palette of soft overlapping shapes. Same seed, same picture.
func SyntheticPhoto(seed uint64, size int, aspect float64) *image.NRGBA {
	w := size
	h := size
	if aspect > 1 {
		h = int(float64(size) / aspect)
	} else if aspect > 0 && aspect < 1 {
		w = int(float64(size) * aspect)
	}
	if w < 8 {
		w = 8
	}
	if h < 8 {
		h = 8
	}

	hue := mathx.HashUnit(seed, 0) * 360
	bg := colorful.Hsv(hue, 0.35, 0.45)
	dc := gg.NewContext(w, h)
	dc.SetRGB(bg.R, bg.G, bg.B)
	dc.Clear()

	shapes := 5 + int(mathx.HashUnit(seed, 1)*6)
	for i := 0; i < shapes; i++ {
		salt := uint64(i + 2)
		c := colorful.Hsv(
			math.Mod(hue+mathx.HashUnit(seed, salt*3)*120, 360),
			0.4+0.5*mathx.HashUnit(seed, salt*5),
			0.5+0.5*mathx.HashUnit(seed, salt*7),
		)
		dc.SetRGBA(c.R, c.G, c.B, 0.75)
		cx := mathx.HashUnit(seed, salt*11) * float64(w)
		cy := mathx.HashUnit(seed, salt*13) * float64(h)
		r := (0.08 + 0.2*mathx.HashUnit(seed, salt*17)) * float64(w)
		if mathx.HashUnit(seed, salt*19) < 0.5 {
			dc.DrawCircle(cx, cy, r)
		} else {
			dc.DrawRectangle(cx-r, cy-r, 2*r, 2*r)
		}
		dc.Fill()
	}
	return imaging.Clone(dc.Image())
}

func verticalGradient(w, h int, top, bottom colorful.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := top.BlendLuv(bottom, t)
		r, g, b := c.Clamped().RGB255()
		off := y * img.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
	return img
}
