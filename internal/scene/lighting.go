package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"photo-collage-engine/internal/settings"
)

// SpotLight is a cone light aimed at a target point. Inner and outer cone
// cosines are precomputed; intensity falls off quadratically with distance.
type SpotLight struct {
	Position  mgl64.Vec3
	Target    mgl64.Vec3
	Color     colorful.Color
	Intensity float64
	CosInner  float64
	CosOuter  float64
}

// Lights is the complete light set for one frame.
type Lights struct {
	AmbientColor     colorful.Color
	AmbientIntensity float64
	Spots            []SpotLight
}

// BuildLights arranges the configured number of spotlights in a ring around
// center, all aimed at it, plus the ambient term. radius scales the ring so
// larger photo sets keep their lights outside the photos.
func BuildLights(cfg settings.LightingConfig, center mgl64.Vec3, radius float64) Lights {
	lights := Lights{
		AmbientColor:     cfg.AmbientColor,
		AmbientIntensity: cfg.AmbientIntensity,
	}
	if cfg.SpotCount == 0 || cfg.SpotIntensity == 0 {
		return lights
	}

	ring := math.Max(radius*1.35, 8)
	outer := cfg.SpotAngle * math.Pi / 180
	inner := outer * (1 - cfg.SpotPenumbra)

	for i := 0; i < cfg.SpotCount; i++ {
		az := 2 * math.Pi * float64(i) / float64(cfg.SpotCount)
		lights.Spots = append(lights.Spots, SpotLight{
			Position: mgl64.Vec3{
				center.X() + ring*math.Sin(az),
				cfg.SpotHeight,
				center.Z() + ring*math.Cos(az),
			},
			Target:    center,
			Color:     cfg.SpotColor,
			Intensity: cfg.SpotIntensity,
			CosInner:  math.Cos(inner),
			CosOuter:  math.Cos(outer),
		})
	}
	return lights
}
