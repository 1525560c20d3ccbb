package scene

import (
	"image"

	"github.com/benbjohnson/clock"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"photo-collage-engine/internal/camera"
	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/pattern"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/settings"
	"photo-collage-engine/internal/slot"
	"photo-collage-engine/internal/texture"
)

// Cache bounds for a long session cycling through many photo URLs.
const (
	maxTextures   = 256
	maxGeometries = 32
)

// Scene owns every frame-loop component and steps them in dependency order.
// It is single-threaded: Step must be called from one goroutine, and nothing
// in it blocks.
type Scene struct {
	logger *zap.Logger
	clk    clock.Clock

	raw   settings.Settings
	cfg   *settings.Normalized
	dirty bool

	slots    *slot.Manager
	gen      pattern.Generator
	resolver *Resolver
	smoother *Smoother

	rig      *camera.Rig
	controls *camera.Controls
	animator *camera.Animator
	rotate   *camera.AutoRotate

	textures *texture.Manager

	elapsed    float64 // pattern animation clock, scaled by AnimationSpeed
	photosByID map[string]*photo.Photo
}

// New builds a scene from raw settings. update receives the scene's settings
// proposals (photo count from pinned grid dims); the embedding app applies
// them and calls ApplySettings. update may be nil.
func New(raw settings.Settings, update settings.UpdateFunc, clk clock.Clock, logger *zap.Logger) *Scene {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}

	s := &Scene{
		logger:     logger,
		clk:        clk,
		raw:        raw,
		smoother:   NewSmoother(),
		rig:        camera.NewRig(),
		textures:   texture.NewManager(maxTextures, maxGeometries, logger),
		photosByID: make(map[string]*photo.Photo),
	}
	s.resolver = NewResolver(update, logger)
	s.controls = camera.NewControls(s.rig)
	s.animator = camera.NewAnimator(s.rig, clk, logger)
	s.rotate = camera.NewAutoRotate(s.rig, clk)
	s.controls.AddListener(s.animator)
	s.controls.AddListener(s.rotate)

	s.slots = slot.New(settings.DefaultPhotoCount)
	s.reconfigure()
	return s
}

// ApplySettings stages new raw settings; they take effect at the top of the
// next Step. Callable between frames only (same goroutine as Step).
func (s *Scene) ApplySettings(raw settings.Settings) {
	s.raw = raw
	s.dirty = true
}

// Controls exposes the manual camera input surface.
func (s *Scene) Controls() *camera.Controls { return s.controls }

// Rig exposes the live camera state.
func (s *Scene) Rig() *camera.Rig { return s.rig }

// Settings returns the active normalized configuration.
func (s *Scene) Settings() *settings.Normalized { return s.cfg }

// Textures exposes the resource cache (for stats and teardown).
func (s *Scene) Textures() *texture.Manager { return s.textures }

// Dispose releases cached resources. The scene must not be stepped after.
func (s *Scene) Dispose() {
	s.textures.Dispose()
}

// reconfigure renormalizes raw settings and pushes the result into every
// component that caches configuration.
func (s *Scene) reconfigure() {
	s.cfg = settings.Normalize(s.raw, s.logger)
	s.gen = pattern.FromSettings(s.cfg, s.logger)
	s.slots.SetTotalSlots(s.cfg.PhotoCount)
	s.animator.ApplySettings(s.cfg.Camera)
	s.rotate.ApplySettings(s.cfg.Camera)
	s.controls.SetDistanceLimits(s.cfg.Camera.MinDistance, s.cfg.Camera.MaxDistance)
	s.dirty = false
}

// Step advances the scene one frame: drain resolved textures, renormalize
// settings if dirty, assign slots, generate pattern targets, resolve photo
// planes, smooth transforms, drive the camera, rebuild environment and
// lights. Returns the frame snapshot for the renderer.
func (s *Scene) Step(photos []photo.Photo, dt float64) *Frame {
	installed := s.textures.InstallPending(s.stillWanted)
	if installed > 0 {
		s.logger.Debug("scene: textures installed", zap.Int("count", installed))
	}

	if s.dirty {
		s.reconfigure()
	}

	clean := photo.Sanitize(photos)
	s.rebuildIndex(clean)
	s.slots.Assign(clean)
	s.requestAssigned()

	if s.cfg.Animate {
		s.elapsed += dt * s.cfg.AnimationSpeed
	}
	out := s.gen.Generate(s.elapsed)

	resolved := s.resolver.Resolve(s.slots, s.photosByID, out, s.cfg, s.textures.AspectFor)
	s.smoother.Step(resolved, dt)

	bounds, occupied := occupiedBounds(resolved)
	if s.cfg.Camera.AutoRotate {
		s.rotate.Update(dt, centroidOf(occupied), len(occupied) > 0)
	} else {
		s.animator.Update(dt, bounds, occupied)
	}

	env := BuildEnvironment(s.cfg.Environment, s.cfg.Floor, s.textures)
	lights := BuildLights(s.cfg.Lighting, lightFocus(bounds), lightRadius(bounds, s.cfg.Floor.Size))
	lights.Spots = append(lights.Spots, env.ExtraLights...)

	meshes := env.Meshes
	if floor := BuildFloor(s.cfg.Floor, s.textures); floor != nil {
		meshes = append(meshes, floor)
	}

	// Keep the placeholder resident; photo slots without a texture use it.
	placeholderKey := texture.PlaceholderKey(s.cfg.Floor.Color)
	s.textures.Texture(placeholderKey, func() *image.NRGBA {
		return texture.Placeholder(256, s.cfg.Floor.Color)
	})

	return &Frame{
		Slots:           resolved,
		Billboard:       out.Billboard,
		Camera:          *s.rig,
		Meshes:          meshes,
		Lights:          lights,
		Background:      s.cfg.Background,
		PhotoBrightness: s.cfg.PhotoBrightness,
		PlaceholderKey:  placeholderKey,
		Textures:        s.textures,
	}
}

// stillWanted keeps a finished texture load if its photo is still assigned.
// The panorama load is not slot-bound and is always kept.
func (s *Scene) stillWanted(photoID string) bool {
	if photoID == panoramaID {
		return true
	}
	_, ok := s.slots.SlotFor(photoID)
	return ok
}

func (s *Scene) rebuildIndex(clean []photo.Photo) {
	for k := range s.photosByID {
		delete(s.photosByID, k)
	}
	for i := range clean {
		s.photosByID[clean[i].ID] = &clean[i]
	}
}

// requestAssigned starts async loads for assigned photos that are not yet
// cached. The manager skips cached, in-flight, and failed URLs.
func (s *Scene) requestAssigned() {
	for id := range s.slots.Assignment() {
		if p, ok := s.photosByID[id]; ok {
			s.textures.RequestPhoto(*p)
		}
	}
}

func occupiedBounds(slots []PositionedSlot) (mathx.Box3, []mgl64.Vec3) {
	box := mathx.EmptyBox3()
	var positions []mgl64.Vec3
	for i := range slots {
		if slots[i].Photo == nil {
			continue
		}
		box = box.ExpandByPoint(slots[i].Pos)
		positions = append(positions, slots[i].Pos)
	}
	return box, positions
}

func centroidOf(positions []mgl64.Vec3) mgl64.Vec3 {
	if len(positions) == 0 {
		return mgl64.Vec3{}
	}
	sum := mgl64.Vec3{}
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(positions)))
}

func lightFocus(bounds mathx.Box3) mgl64.Vec3 {
	if bounds.IsEmpty() {
		return mgl64.Vec3{0, 2, 0}
	}
	return bounds.Center()
}

func lightRadius(bounds mathx.Box3, floorSize float64) float64 {
	r := floorSize * 0.2
	if !bounds.IsEmpty() && bounds.Radius() > r {
		r = bounds.Radius()
	}
	return r
}
