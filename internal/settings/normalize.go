package settings

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"photo-collage-engine/internal/mathx"
)

// Pattern kinds.
const (
	PatternGrid   = "grid"
	PatternFloat  = "float"
	PatternWave   = "wave"
	PatternSpiral = "spiral"
)

// Camera animation modes.
const (
	CameraNone         = "none"
	CameraOrbit        = "orbit"
	CameraFigure8      = "figure8"
	CameraCenterRotate = "centerRotate"
	CameraWave         = "wave"
	CameraSpiral       = "spiral"
)

// Environment kinds.
const (
	EnvNone    = "none"
	EnvCube    = "cube"
	EnvSphere  = "sphere"
	EnvGallery = "gallery"
	EnvStudio  = "studio"
)

// Background kinds.
const (
	BackgroundSolid    = "solid"
	BackgroundGradient = "gradient"
)

// Floor styles.
const (
	FloorGrid  = "grid"
	FloorSolid = "solid"
)

// Normalized is the fully resolved configuration: every field populated,
// every number clamped to its documented range. Downstream components read
// only this struct, never raw Settings.
type Normalized struct {
	PhotoCount      int     // 1..500
	PhotoSize       float64 // 0.5..10 world units of the larger photo edge
	PhotoBrightness float64 // 0..2
	AnimationSpeed  float64 // 0.1..5, scales elapsed pattern time
	Animate         bool

	Pattern     PatternConfig
	Camera      CameraConfig
	Environment EnvironmentConfig
	Lighting    LightingConfig
	Background  BackgroundConfig
	Floor       FloorConfig
}

// PatternConfig holds the active pattern and every per-pattern parameter.
type PatternConfig struct {
	Type string

	GridAspect  float64 // width/height of the wall
	GridSpacing float64 // 0 = edge-to-edge, 1 = max gap
	GridRows    int     // 0 = derive from aspect
	GridColumns int     // 0 = derive from aspect
	WallHeight  float64

	FloatSpread float64 // half-extent of the scatter volume
	FloatDrift  float64 // breathing oscillation amplitude

	WaveAmplitude float64
	WaveFrequency float64
	WaveRibbons   int

	SpiralRadius     float64
	SpiralHeightStep float64

	MinSpacing    float64 // floor on inter-slot distance
	SpacingFactor float64 // multiplied by PhotoSize for the effective spacing
}

// CameraConfig holds the camera drive mode and its parameters.
type CameraConfig struct {
	Animation string
	Speed     float64
	Distance  float64 // bounding-radius multiplier
	Height    float64 // bounding-height multiplier

	AutoRotate      bool
	AutoRotateSpeed float64 // radians per second

	CooldownSeconds float64
	MinDistance     float64
	MaxDistance     float64
}

// EnvironmentConfig holds the enclosing-environment recipe inputs.
type EnvironmentConfig struct {
	Type     string
	Ceiling  bool
	Panorama string
	Color    colorful.Color
}

// LightingConfig holds ambient and spotlight-ring parameters.
type LightingConfig struct {
	AmbientIntensity float64
	AmbientColor     colorful.Color
	SpotCount        int
	SpotIntensity    float64
	SpotColor        colorful.Color
	SpotAngle        float64 // cone angle in degrees
	SpotPenumbra     float64 // 0..1 soft edge fraction
	SpotHeight       float64
}

// BackgroundConfig holds the resolved clear color or gradient.
type BackgroundConfig struct {
	Type        string
	Color       colorful.Color
	TopColor    colorful.Color
	BottomColor colorful.Color
}

// FloorConfig holds the floor plane parameters.
type FloorConfig struct {
	Visible bool
	Size    float64
	Style   string
	Color   colorful.Color
}

// Documented ranges and defaults.
const (
	MinPhotoCount = 1
	MaxPhotoCount = 500

	DefaultPhotoCount = 30
	DefaultPhotoSize  = 2.0
	DefaultFloorSize  = 60.0

	DefaultCooldownSeconds = 1.5
	DefaultMinSpacing      = 0.75
	DefaultSpacingFactor   = 1.25
)

// Normalize resolves raw settings into a complete configuration. It never
// fails: unknown enum values fall back to defaults, malformed colors fall
// back to defaults, numbers clamp to their documented ranges. Degradations
// log at Debug since they are expected during live editing.
func Normalize(raw Settings, logger *zap.Logger) *Normalized {
	if logger == nil {
		logger = zap.NewNop()
	}

	n := &Normalized{
		PhotoCount:      clampInt(intOr(raw.PhotoCount, DefaultPhotoCount), MinPhotoCount, MaxPhotoCount),
		PhotoSize:       mathx.Clamp(floatOr(raw.PhotoSize, DefaultPhotoSize), 0.5, 10),
		PhotoBrightness: mathx.Clamp(floatOr(raw.PhotoBrightness, 1.0), 0, 2),
		AnimationSpeed:  mathx.Clamp(floatOr(raw.AnimationSpeed, 1.0), 0.1, 5),
		Animate:         boolOr(raw.Animate, true),
	}

	n.Pattern = normalizePattern(raw.Pattern, logger)
	n.Camera = normalizeCamera(raw.Camera, logger)
	n.Environment = normalizeEnvironment(raw.Environment, logger)
	n.Lighting = normalizeLighting(raw.Lighting, logger)
	n.Background = normalizeBackground(raw.Background, logger)
	n.Floor = normalizeFloor(raw.Floor, logger)
	return n
}

func normalizePattern(p *PatternSettings, logger *zap.Logger) PatternConfig {
	if p == nil {
		p = &PatternSettings{}
	}
	cfg := PatternConfig{
		Type:             enumOr(p.Type, PatternGrid, logger, "pattern.type", PatternGrid, PatternFloat, PatternWave, PatternSpiral),
		GridAspect:       parseAspect(strOr(p.GridAspect, "16:9"), logger),
		GridSpacing:      mathx.Clamp(floatOr(p.GridSpacing, 0.15), 0, 1),
		GridRows:         clampInt(intOr(p.GridRows, 0), 0, MaxPhotoCount),
		GridColumns:      clampInt(intOr(p.GridColumns, 0), 0, MaxPhotoCount),
		WallHeight:       mathx.Clamp(floatOr(p.WallHeight, 0), -20, 50),
		FloatSpread:      mathx.Clamp(floatOr(p.FloatSpread, 10), 2, 100),
		FloatDrift:       mathx.Clamp(floatOr(p.FloatDrift, 0.4), 0, 5),
		WaveAmplitude:    mathx.Clamp(floatOr(p.WaveAmplitude, 2.5), 0, 30),
		WaveFrequency:    mathx.Clamp(floatOr(p.WaveFrequency, 0.45), 0.01, 10),
		WaveRibbons:      clampInt(intOr(p.WaveRibbons, 1), 1, 8),
		SpiralRadius:     mathx.Clamp(floatOr(p.SpiralRadius, 8), 1, 100),
		SpiralHeightStep: mathx.Clamp(floatOr(p.SpiralHeightStep, 0.35), 0.01, 10),
		MinSpacing:       mathx.Clamp(floatOr(p.MinSpacing, DefaultMinSpacing), 0.1, 20),
		SpacingFactor:    mathx.Clamp(floatOr(p.SpacingFactor, DefaultSpacingFactor), 0.5, 5),
	}
	return cfg
}

func normalizeCamera(c *CameraSettings, logger *zap.Logger) CameraConfig {
	if c == nil {
		c = &CameraSettings{}
	}
	cfg := CameraConfig{
		Animation: enumOr(c.Animation, CameraOrbit, logger, "camera.animation",
			CameraNone, CameraOrbit, CameraFigure8, CameraCenterRotate, CameraWave, CameraSpiral),
		Speed:           mathx.Clamp(floatOr(c.Speed, 1.0), 0.05, 10),
		Distance:        mathx.Clamp(floatOr(c.Distance, 1.6), 0.5, 6),
		Height:          mathx.Clamp(floatOr(c.Height, 0.6), 0, 4),
		AutoRotate:      boolOr(c.AutoRotate, false),
		AutoRotateSpeed: mathx.Clamp(floatOr(c.AutoRotateSpeed, 0.25), 0.01, 3),
		CooldownSeconds: mathx.Clamp(floatOr(c.CooldownSeconds, DefaultCooldownSeconds), 0, 10),
		MinDistance:     mathx.Clamp(floatOr(c.MinDistance, 2), 0.5, 1000),
		MaxDistance:     mathx.Clamp(floatOr(c.MaxDistance, 200), 1, 5000),
	}
	if cfg.MaxDistance < cfg.MinDistance {
		cfg.MaxDistance = cfg.MinDistance
	}
	// The cinematic animator and auto-rotate are mutually exclusive; the
	// cinematic mode wins when both are requested.
	if cfg.AutoRotate && cfg.Animation != CameraNone {
		logger.Debug("settings: autoRotate disabled while camera animation active",
			zap.String("animation", cfg.Animation))
		cfg.AutoRotate = false
	}
	return cfg
}

func normalizeEnvironment(e *EnvironmentSettings, logger *zap.Logger) EnvironmentConfig {
	if e == nil {
		e = &EnvironmentSettings{}
	}
	return EnvironmentConfig{
		Type:     enumOr(e.Type, EnvNone, logger, "environment.type", EnvNone, EnvCube, EnvSphere, EnvGallery, EnvStudio),
		Ceiling:  boolOr(e.Ceiling, false),
		Panorama: strOr(e.Panorama, ""),
		Color:    parseColor(strOr(e.Color, "#30343c"), "#30343c", logger, "environment.color"),
	}
}

func normalizeLighting(l *LightingSettings, logger *zap.Logger) LightingConfig {
	if l == nil {
		l = &LightingSettings{}
	}
	return LightingConfig{
		AmbientIntensity: mathx.Clamp(floatOr(l.AmbientIntensity, 0.55), 0, 2),
		AmbientColor:     parseColor(strOr(l.AmbientColor, "#ffffff"), "#ffffff", logger, "lighting.ambientColor"),
		SpotCount:        clampInt(intOr(l.SpotCount, 4), 0, 12),
		SpotIntensity:    mathx.Clamp(floatOr(l.SpotIntensity, 0.9), 0, 4),
		SpotColor:        parseColor(strOr(l.SpotColor, "#fff4e5"), "#fff4e5", logger, "lighting.spotColor"),
		SpotAngle:        mathx.Clamp(floatOr(l.SpotAngle, 38), 5, 90),
		SpotPenumbra:     mathx.Clamp(floatOr(l.SpotPenumbra, 0.35), 0, 1),
		SpotHeight:       mathx.Clamp(floatOr(l.SpotHeight, 12), 1, 100),
	}
}

func normalizeBackground(b *BackgroundSettings, logger *zap.Logger) BackgroundConfig {
	if b == nil {
		b = &BackgroundSettings{}
	}
	return BackgroundConfig{
		Type:        enumOr(b.Type, BackgroundGradient, logger, "background.type", BackgroundSolid, BackgroundGradient),
		Color:       parseColor(strOr(b.Color, "#101318"), "#101318", logger, "background.color"),
		TopColor:    parseColor(strOr(b.TopColor, "#1b2030"), "#1b2030", logger, "background.topColor"),
		BottomColor: parseColor(strOr(b.BottomColor, "#05060a"), "#05060a", logger, "background.bottomColor"),
	}
}

func normalizeFloor(f *FloorSettings, logger *zap.Logger) FloorConfig {
	if f == nil {
		f = &FloorSettings{}
	}
	return FloorConfig{
		Visible: boolOr(f.Visible, true),
		Size:    mathx.Clamp(floatOr(f.Size, DefaultFloorSize), 10, 500),
		Style:   enumOr(f.Style, FloorGrid, logger, "floor.style", FloorGrid, FloorSolid),
		Color:   parseColor(strOr(f.Color, "#23262e"), "#23262e", logger, "floor.color"),
	}
}

// parseAspect accepts the preset names and free-form "w:h" strings.
func parseAspect(s string, logger *zap.Logger) float64 {
	switch s {
	case "1:1":
		return 1
	case "4:3":
		return 4.0 / 3.0
	case "16:9":
		return 16.0 / 9.0
	case "21:9":
		return 21.0 / 9.0
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return mathx.Clamp(w/h, 0.2, 8)
		}
	}
	logger.Debug("settings: unrecognized grid aspect, using 16:9", zap.String("value", s))
	return 16.0 / 9.0
}

func parseColor(s, fallback string, logger *zap.Logger, field string) colorful.Color {
	c, err := colorful.Hex(s)
	if err == nil {
		return c
	}
	logger.Debug("settings: bad color, using default",
		zap.String("field", field), zap.String("value", s))
	c, _ = colorful.Hex(fallback)
	return c
}

func enumOr(v *string, def string, logger *zap.Logger, field string, allowed ...string) string {
	if v == nil || *v == "" {
		return def
	}
	for _, a := range allowed {
		if *v == a {
			return *v
		}
	}
	logger.Debug("settings: unknown value, using default",
		zap.String("field", field), zap.String("value", *v), zap.String("default", def))
	return def
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func strOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
