// Package scene composes the per-frame state of the collage: slot
// assignment, pattern positions, transform smoothing, camera drive,
// environment and lighting. Step runs a strict one-way pipeline and returns
// an immutable Frame for the renderer; the only state carried across frames
// is the slot assignment, the smoothed transforms, and the camera rig.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/camera"
	"photo-collage-engine/internal/geom"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/settings"
	"photo-collage-engine/internal/texture"
)

// PositionedSlot is one photo plane placed by the active pattern. Photo is
// nil for a slot with no assignment; it renders the placeholder texture.
type PositionedSlot struct {
	Slot   int
	Photo  *photo.Photo
	Pos    mgl64.Vec3
	Orient mgl64.Quat
	Width  float64
	Height float64
}

// Frame is the scene snapshot a renderer consumes. Slices are rebuilt every
// Step; the texture manager is shared and safe for concurrent reads.
type Frame struct {
	Slots     []PositionedSlot
	Billboard bool // orient photo planes toward the camera at draw time

	Camera camera.Rig

	// Static geometry: floor plane and environment shell, world space.
	Meshes []*geom.Mesh

	Lights Lights

	Background      settings.BackgroundConfig
	PhotoBrightness float64

	// PlaceholderKey is the texture drawn on slots with no photo or whose
	// photo has not resolved yet.
	PlaceholderKey string

	Textures *texture.Manager
}
