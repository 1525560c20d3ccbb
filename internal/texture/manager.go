// Package texture owns every loaded or generated image and cached geometry
// in the scene. The cache is bounded: long sessions that cycle through many
// distinct photo URLs evict the oldest entries instead of growing without
// limit. Photo decoding runs on goroutines and lands in the frame loop
// through InstallPending, so the frame callback never blocks on IO.
package texture

import (
	"image"
	"sync"

	"go.uber.org/zap"

	"photo-collage-engine/internal/geom"
	"photo-collage-engine/internal/photo"
)

// Texture is a decoded image plus the aspect ratio the resolver sizes
// photo quads with.
type Texture struct {
	Key    string
	Image  *image.NRGBA
	Aspect float64 // width/height
}

type loadResult struct {
	photoID string
	url     string
	tex     *Texture
	err     error
}

// Manager is the scene's resource cache. All methods are safe for
// concurrent use; the render workers read while the frame loop writes.
type Manager struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	maxTex    int
	maxGeom   int
	textures  map[string]*Texture
	texOrder  []string // FIFO insertion order
	geoms     map[string]*geom.Mesh
	geomOrder []string
	inflight  map[string]string // url -> requesting photo ID
	failed    map[string]struct{}
	results   chan loadResult
	disposed  bool
}

// NewManager returns a Manager bounded to the given entry counts. Counts
// below 1 clamp to 1.
func NewManager(maxTextures, maxGeometries int, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTextures < 1 {
		maxTextures = 1
	}
	if maxGeometries < 1 {
		maxGeometries = 1
	}
	return &Manager{
		logger:   logger,
		maxTex:   maxTextures,
		maxGeom:  maxGeometries,
		textures: make(map[string]*Texture),
		geoms:    make(map[string]*geom.Mesh),
		inflight: make(map[string]string),
		failed:   make(map[string]struct{}),
		results:  make(chan loadResult, 64),
	}
}

// Lookup returns the cached texture for key, if present.
func (m *Manager) Lookup(key string) (*Texture, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.textures[key]
	return t, ok
}

// AspectFor returns the decoded aspect ratio for a photo URL, if its
// texture has resolved.
func (m *Manager) AspectFor(url string) (float64, bool) {
	t, ok := m.Lookup(url)
	if !ok || t.Aspect <= 0 {
		return 0, false
	}
	return t.Aspect, true
}

// Texture memoizes a synchronously built image (procedural placeholder,
// floor, walls) under key. The build function runs at most once per
// residency in the cache.
func (m *Manager) Texture(key string, build func() *image.NRGBA) *Texture {
	if t, ok := m.Lookup(key); ok {
		return t
	}
	img := build()
	t := &Texture{Key: key, Image: img, Aspect: aspectOf(img)}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return t
	}
	if prior, ok := m.textures[key]; ok {
		return prior
	}
	m.insertTexture(t)
	return t
}

// Geometry memoizes a built mesh under a shape-descriptor key.
func (m *Manager) Geometry(key string, build func() *geom.Mesh) *geom.Mesh {
	m.mu.RLock()
	g, ok := m.geoms[key]
	m.mu.RUnlock()
	if ok {
		return g
	}

	g = build()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return g
	}
	if prior, ok := m.geoms[key]; ok {
		return prior
	}
	m.geoms[key] = g
	m.geomOrder = append(m.geomOrder, key)
	if len(m.geomOrder) > m.maxGeom {
		oldest := m.geomOrder[0]
		m.geomOrder = m.geomOrder[1:]
		delete(m.geoms, oldest)
		m.logger.Debug("texture: evicted geometry", zap.String("key", oldest))
	}
	return g
}

// RequestPhoto starts an asynchronous decode of the photo's image unless it
// is already cached, already loading, or known to fail. The load is tagged
// with the requesting photo ID; InstallPending discards the result if that
// photo has gone by the time it resolves.
func (m *Manager) RequestPhoto(p photo.Photo) {
	if p.URL == "" || p.ID == "" {
		return
	}

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	if _, bad := m.failed[p.URL]; bad {
		m.mu.Unlock()
		return
	}
	if _, cached := m.textures[p.URL]; cached {
		m.mu.Unlock()
		return
	}
	if _, loading := m.inflight[p.URL]; loading {
		m.mu.Unlock()
		return
	}
	m.inflight[p.URL] = p.ID
	m.mu.Unlock()

	go func(id, url string) {
		tex, err := DecodePhoto(url)
		select {
		case m.results <- loadResult{photoID: id, url: url, tex: tex, err: err}:
		default:
			// Nobody draining (teardown mid-load): drop the result rather
			// than park the goroutine. The slot keeps its placeholder.
		}
	}(p.ID, p.URL)
}

// InstallPending drains completed loads into the cache and returns how many
// textures were installed. Results whose photo is no longer assigned are
// discarded; failed loads are remembered so the URL is not retried.
func (m *Manager) InstallPending(stillAssigned func(photoID string) bool) int {
	installed := 0
	for {
		select {
		case res := <-m.results:
			m.mu.Lock()
			if m.disposed {
				m.mu.Unlock()
				return installed
			}
			delete(m.inflight, res.url)
			switch {
			case res.err != nil:
				m.failed[res.url] = struct{}{}
				m.logger.Warn("texture: photo load failed",
					zap.String("url", res.url), zap.Error(res.err))
			case stillAssigned != nil && !stillAssigned(res.photoID):
				m.logger.Debug("texture: dropping stale load",
					zap.String("photo", res.photoID), zap.String("url", res.url))
			default:
				m.insertTexture(res.tex)
				installed++
			}
			m.mu.Unlock()
		default:
			return installed
		}
	}
}

// InflightCount reports loads started but not yet drained.
func (m *Manager) InflightCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inflight)
}

// Len returns the number of cached textures.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.textures)
}

// Dispose releases everything. Safe to call more than once; requests after
// disposal are ignored.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
	m.textures = make(map[string]*Texture)
	m.texOrder = nil
	m.geoms = make(map[string]*geom.Mesh)
	m.geomOrder = nil
	m.inflight = make(map[string]string)
	m.failed = make(map[string]struct{})
}

// insertTexture adds t and evicts the oldest entry past capacity. Caller
// holds the write lock.
func (m *Manager) insertTexture(t *Texture) {
	m.textures[t.Key] = t
	m.texOrder = append(m.texOrder, t.Key)
	if len(m.texOrder) > m.maxTex {
		oldest := m.texOrder[0]
		m.texOrder = m.texOrder[1:]
		delete(m.textures, oldest)
		m.logger.Debug("texture: evicted", zap.String("key", oldest))
	}
}

func aspectOf(img *image.NRGBA) float64 {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	if b.Dy() == 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}
