package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"photo-collage-engine/internal/geom"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/settings"
	"photo-collage-engine/internal/texture"
)

// panoramaID tags the async load of a configured panorama image so the
// stale-load filter does not discard it with the photo loads.
const panoramaID = "__panorama__"

// Environment is the static shell around the collage: the enclosing
// geometry plus any lights the variant brings with it.
type Environment struct {
	Meshes      []*geom.Mesh
	ExtraLights []SpotLight
}

// BuildEnvironment realizes the configured environment at the scale implied
// by the floor size. Geometry and procedural textures are memoized in the
// texture manager, so calling this every frame is cheap.
func BuildEnvironment(cfg settings.EnvironmentConfig, floor settings.FloorConfig, tex *texture.Manager) Environment {
	base := floor.Size
	switch cfg.Type {
	case settings.EnvCube:
		return buildCube(cfg, base, tex)
	case settings.EnvSphere:
		return buildSphere(cfg, base, tex)
	case settings.EnvGallery:
		return buildGallery(cfg, base, tex)
	case settings.EnvStudio:
		return buildStudio(cfg, base, tex)
	default:
		return Environment{}
	}
}

// BuildFloor returns the floor plane, or nil when hidden.
func BuildFloor(cfg settings.FloorConfig, tex *texture.Manager) *geom.Mesh {
	if !cfg.Visible {
		return nil
	}
	key := fmt.Sprintf("floor:%s:%s", cfg.Style, cfg.Color.Hex())
	tex.Texture(key, func() *image.NRGBA { return texture.Floor(512, cfg.Style, cfg.Color) })

	m := tex.Geometry(fmt.Sprintf("floorplane:%.1f", cfg.Size), func() *geom.Mesh {
		return geom.Plane(cfg.Size, cfg.Size, 16)
	})
	return materialize(m, key, cfg.Color, 0.1)
}

// materialize returns a shallow copy of a cached mesh with the frame's
// material fields set. The vertex slices stay shared; they are never
// mutated after build, so concurrent render workers can keep reading them.
func materialize(m *geom.Mesh, key string, tint colorful.Color, emissive float64) *geom.Mesh {
	inst := *m
	inst.TextureKey = key
	inst.Tint = tint
	inst.Emissive = emissive
	return &inst
}

func buildCube(cfg settings.EnvironmentConfig, base float64, tex *texture.Manager) Environment {
	height := base * 0.45
	key := wallTextureKey(cfg.Color, tex)
	m := tex.Geometry(fmt.Sprintf("cube:%.1f:%.1f:%t", base, height, cfg.Ceiling), func() *geom.Mesh {
		return geom.CubeRoom(base, height, cfg.Ceiling)
	})
	return Environment{Meshes: []*geom.Mesh{materialize(m, key, cfg.Color, 0.1)}}
}

func buildSphere(cfg settings.EnvironmentConfig, base float64, tex *texture.Manager) Environment {
	radius := base * 0.55
	key := "env:panorama:" + cfg.Color.Hex()
	tex.Texture(key, func() *image.NRGBA {
		top := cfg.Color.BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, 0.25)
		bottom := cfg.Color.BlendLuv(colorful.Color{}, 0.55)
		return texture.Panorama(1024, 512, top, bottom)
	})
	// A configured panorama image replaces the gradient once its async
	// decode lands in the cache.
	if cfg.Panorama != "" {
		if _, ok := tex.Lookup(cfg.Panorama); ok {
			key = cfg.Panorama
		} else {
			tex.RequestPhoto(photo.Photo{ID: panoramaID, URL: cfg.Panorama})
		}
	}

	m := tex.Geometry(fmt.Sprintf("sphere:%.1f", radius), func() *geom.Mesh {
		return geom.SphereInterior(radius, 48, 24)
	})
	return Environment{Meshes: []*geom.Mesh{materialize(m, key, cfg.Color, 0.85)}}
}

func buildGallery(cfg settings.EnvironmentConfig, base float64, tex *texture.Manager) Environment {
	height := base * 0.4
	key := wallTextureKey(cfg.Color, tex)
	m := tex.Geometry(fmt.Sprintf("gallery:%.1f:%.1f", base, height), func() *geom.Mesh {
		return geom.GalleryRoom(base, height)
	})
	inst := materialize(m, key, cfg.Color, 0.1)

	// Track spots hang from the rail ring and wash the walls.
	var spots []SpotLight
	railY := height * 0.86
	ring := base * 0.34
	warm := colorful.Color{R: 1, G: 0.95, B: 0.86}
	for i := 0; i < 4; i++ {
		az := 2*math.Pi*float64(i)/4 + math.Pi/4
		sin, cos := math.Sincos(az)
		spots = append(spots, SpotLight{
			Position:  mgl64.Vec3{ring * sin, railY, ring * cos},
			Target:    mgl64.Vec3{base * 0.46 * sin, height * 0.3, base * 0.46 * cos},
			Color:     warm,
			Intensity: 0.7,
			CosInner:  math.Cos(0.3),
			CosOuter:  math.Cos(0.5),
		})
	}
	return Environment{Meshes: []*geom.Mesh{inst}, ExtraLights: spots}
}

func buildStudio(cfg settings.EnvironmentConfig, base float64, tex *texture.Manager) Environment {
	width := base
	height := base * 0.35
	depth := base * 0.4
	key := "env:backdrop:" + cfg.Color.Hex()
	tex.Texture(key, func() *image.NRGBA { return texture.Backdrop(512, cfg.Color) })

	m := tex.Geometry(fmt.Sprintf("studio:%.1f:%.1f:%.1f", width, height, depth), func() *geom.Mesh {
		return geom.StudioBackdrop(width, height, depth)
	})
	inst := materialize(m, key, cfg.Color, 0.25)

	// Fixed three-point rig: key, fill, back.
	focus := mgl64.Vec3{0, 2, 0}
	rig := []SpotLight{
		{
			Position:  mgl64.Vec3{-width * 0.3, height * 0.8, depth * 0.9},
			Target:    focus,
			Color:     colorful.Color{R: 1, G: 1, B: 1},
			Intensity: 1.1,
			CosInner:  math.Cos(0.35),
			CosOuter:  math.Cos(0.6),
		},
		{
			Position:  mgl64.Vec3{width * 0.35, height * 0.5, depth * 0.8},
			Target:    focus,
			Color:     colorful.Color{R: 0.9, G: 0.93, B: 1},
			Intensity: 0.55,
			CosInner:  math.Cos(0.4),
			CosOuter:  math.Cos(0.7),
		},
		{
			Position:  mgl64.Vec3{0, height * 0.9, -depth * 0.45},
			Target:    focus,
			Color:     colorful.Color{R: 1, G: 0.97, B: 0.9},
			Intensity: 0.6,
			CosInner:  math.Cos(0.3),
			CosOuter:  math.Cos(0.55),
		},
	}
	return Environment{Meshes: []*geom.Mesh{inst}, ExtraLights: rig}
}

func wallTextureKey(c colorful.Color, tex *texture.Manager) string {
	key := "env:wall:" + c.Hex()
	tex.Texture(key, func() *image.NRGBA { return texture.Wall(512, c) })
	return key
}
