package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/scene"
)

// spotFalloff is the quadratic distance attenuation coefficient; at the
// default ring distance it roughly halves a spot's contribution.
const spotFalloff = 0.0025

type spot struct {
	pos      mgl64.Vec3
	axis     mgl64.Vec3 // unit, position toward target
	r, g, b  float64    // linear color premultiplied by intensity
	cosInner float64
	cosOuter float64
}

// shader evaluates the frame lights one face at a time. Colors stay in
// linear light; exposure is folded in so the rasterizer multiplies once.
type shader struct {
	ambR, ambG, ambB float64
	spots            []spot
}

func newShader(lights scene.Lights) *shader {
	ar, ag, ab := lights.AmbientColor.LinearRgb()
	sh := &shader{
		ambR: ar * lights.AmbientIntensity,
		ambG: ag * lights.AmbientIntensity,
		ambB: ab * lights.AmbientIntensity,
	}
	for _, s := range lights.Spots {
		axis := s.Target.Sub(s.Position)
		if axis.Len() < 1e-9 {
			continue
		}
		lr, lg, lb := s.Color.LinearRgb()
		sh.spots = append(sh.spots, spot{
			pos:      s.Position,
			axis:     axis.Normalize(),
			r:        lr * s.Intensity,
			g:        lg * s.Intensity,
			b:        lb * s.Intensity,
			cosInner: s.CosInner,
			cosOuter: s.CosOuter,
		})
	}
	return sh
}

// face returns RGB shade multipliers for a face from its unit normal,
// centroid, and emissive blend. Lighting is double-sided (abs dot), so both
// sides of a photo plane read the same.
func (sh *shader) face(normal, centroid mgl64.Vec3, emissive float64) (r, g, b float64) {
	r, g, b = sh.ambR, sh.ambG, sh.ambB
	for i := range sh.spots {
		s := &sh.spots[i]
		toLight := s.pos.Sub(centroid)
		d2 := toLight.Dot(toLight)
		if d2 < 1e-12 {
			continue
		}
		d := math.Sqrt(d2)
		l := toLight.Mul(1 / d)

		// Cone falloff, smoothstepped between the outer and inner cosines.
		cosAng := -l.Dot(s.axis)
		if cosAng <= s.cosOuter {
			continue
		}
		cone := 1.0
		if s.cosInner > s.cosOuter {
			t := (cosAng - s.cosOuter) / (s.cosInner - s.cosOuter)
			if t < 1 {
				cone = t * t * (3 - 2*t)
			}
		}

		w := math.Abs(normal.Dot(l)) * cone / (1 + spotFalloff*d2)
		r += w * s.r
		g += w * s.g
		b += w * s.b
	}
	if emissive > 0 {
		if emissive > 1 {
			emissive = 1
		}
		keep := 1 - emissive
		r = r*keep + emissive
		g = g*keep + emissive
		b = b*keep + emissive
	}
	return r * exposure, g * exposure, b * exposure
}
