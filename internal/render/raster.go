package render

import (
	"image"
	"math"
)

// rasterizeTriangle draws one triangle with texture mapping, z-buffer,
// sRGB color space, per-face shading, and ACES tone mapping.
//
// This is the HOT PATH — designed for zero allocation in the inner loop.
// Vertex and UV slices share indices. sr, sg, sb come from shader.face;
// when tex is nil the tint color fills the face flat.
func rasterizeTriangle(
	fb *frameBuffer,
	px, py, pz []float64,
	uvs [][2]float64,
	vi [3]int,
	tex *image.NRGBA,
	tintR, tintG, tintB uint8,
	sr, sg, sb float64,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	hasUV := tex != nil
	nuv := len(uvs)
	for _, i := range vi {
		if i >= nuv {
			hasUV = false
			break
		}
	}

	var u0, v0uv, u1, v1uv, u2, v2uv float64
	if hasUV {
		u0, v0uv = uvs[vi[0]][0], uvs[vi[0]][1]
		u1, v1uv = uvs[vi[1]][0], uvs[vi[1]][1]
		u2, v2uv = uvs[vi[2]][0], uvs[vi[2]][1]
	}

	// Bounding box clamped to the buffer
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Pixel loop — zero allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if hasUV {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0uv + w1*v1uv + w2*v2uv
				cr, cg, cb, ca = sampleTexture(tex, u, v)
			} else {
				cr, cg, cb, ca = tintR, tintG, tintB, 255
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode (LUT) → shade → ACES → sRGB encode
			tr := acesTonemap(srgbToLinear[cr] * sr)
			tg := acesTonemap(srgbToLinear[cg] * sg)
			tb := acesTonemap(srgbToLinear[cb] * sb)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(tr, invGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(tg, invGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(tb, invGamma) * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}
