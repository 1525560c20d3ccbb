// Package settings holds the collage configuration in two shapes: the raw
// JSON form in which every field is optional, and the normalized form in
// which every field is present, clamped, and typed. Scene components only
// ever consume the normalized form; the raw form exists at the edges.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings is the raw configuration as supplied by the outside world
// (file, API payload). Absent fields mean "use the default"; out-of-range
// values are clamped during normalization, never rejected.
type Settings struct {
	PhotoCount      *int     `json:"photoCount,omitempty"`
	PhotoSize       *float64 `json:"photoSize,omitempty"`
	PhotoBrightness *float64 `json:"photoBrightness,omitempty"`
	AnimationSpeed  *float64 `json:"animationSpeed,omitempty"`
	Animate         *bool    `json:"animate,omitempty"`

	Pattern     *PatternSettings     `json:"pattern,omitempty"`
	Camera      *CameraSettings      `json:"camera,omitempty"`
	Environment *EnvironmentSettings `json:"environment,omitempty"`
	Lighting    *LightingSettings    `json:"lighting,omitempty"`
	Background  *BackgroundSettings  `json:"background,omitempty"`
	Floor       *FloorSettings       `json:"floor,omitempty"`
}

// PatternSettings selects and parameterizes the layout pattern.
type PatternSettings struct {
	Type *string `json:"type,omitempty"` // grid | float | wave | spiral

	GridAspect  *string  `json:"gridAspect,omitempty"` // 1:1 | 4:3 | 16:9 | 21:9 | custom w:h
	GridSpacing *float64 `json:"gridSpacing,omitempty"`
	GridRows    *int     `json:"gridRows,omitempty"`    // explicit override, 0 = derive
	GridColumns *int     `json:"gridColumns,omitempty"` // explicit override, 0 = derive
	WallHeight  *float64 `json:"wallHeight,omitempty"`

	FloatSpread *float64 `json:"floatSpread,omitempty"`
	FloatDrift  *float64 `json:"floatDrift,omitempty"`

	WaveAmplitude *float64 `json:"waveAmplitude,omitempty"`
	WaveFrequency *float64 `json:"waveFrequency,omitempty"`
	WaveRibbons   *int     `json:"waveRibbons,omitempty"`

	SpiralRadius     *float64 `json:"spiralRadius,omitempty"`
	SpiralHeightStep *float64 `json:"spiralHeightStep,omitempty"`

	MinSpacing    *float64 `json:"minSpacing,omitempty"`
	SpacingFactor *float64 `json:"spacingFactor,omitempty"`
}

// CameraSettings selects either the cinematic animator or simple auto-rotate.
type CameraSettings struct {
	Animation *string  `json:"animation,omitempty"` // none | orbit | figure8 | centerRotate | wave | spiral
	Speed     *float64 `json:"speed,omitempty"`
	Distance  *float64 `json:"distance,omitempty"` // multiplier on the photo bounding radius
	Height    *float64 `json:"height,omitempty"`   // multiplier on the bounding height

	AutoRotate      *bool    `json:"autoRotate,omitempty"`
	AutoRotateSpeed *float64 `json:"autoRotateSpeed,omitempty"`

	CooldownSeconds *float64 `json:"cooldownSeconds,omitempty"`
	MinDistance     *float64 `json:"minDistance,omitempty"`
	MaxDistance     *float64 `json:"maxDistance,omitempty"`
}

// EnvironmentSettings selects the enclosing environment.
type EnvironmentSettings struct {
	Type     *string `json:"type,omitempty"` // none | cube | sphere | gallery | studio
	Ceiling  *bool   `json:"ceiling,omitempty"`
	Panorama *string `json:"panorama,omitempty"` // texture URL for the sphere interior
	Color    *string `json:"color,omitempty"`    // hex wall tint
}

// LightingSettings parameterizes ambient light and the spotlight ring.
type LightingSettings struct {
	AmbientIntensity *float64 `json:"ambientIntensity,omitempty"`
	AmbientColor     *string  `json:"ambientColor,omitempty"`
	SpotCount        *int     `json:"spotCount,omitempty"`
	SpotIntensity    *float64 `json:"spotIntensity,omitempty"`
	SpotColor        *string  `json:"spotColor,omitempty"`
	SpotAngle        *float64 `json:"spotAngle,omitempty"` // cone angle, degrees
	SpotPenumbra     *float64 `json:"spotPenumbra,omitempty"`
	SpotHeight       *float64 `json:"spotHeight,omitempty"`
}

// BackgroundSettings parameterizes the clear color / gradient.
type BackgroundSettings struct {
	Type        *string `json:"type,omitempty"` // solid | gradient
	Color       *string `json:"color,omitempty"`
	TopColor    *string `json:"topColor,omitempty"`
	BottomColor *string `json:"bottomColor,omitempty"`
}

// FloorSettings parameterizes the floor plane that environments and wave
// clearance derive their scale from.
type FloorSettings struct {
	Visible *bool    `json:"visible,omitempty"`
	Size    *float64 `json:"size,omitempty"`
	Style   *string  `json:"style,omitempty"` // grid | solid
	Color   *string  `json:"color,omitempty"`
}

// Load reads raw settings from a JSON file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}
