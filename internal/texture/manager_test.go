package texture

import (
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"photo-collage-engine/internal/geom"
	"photo-collage-engine/internal/photo"
)

func testManager(maxTex int) *Manager {
	return NewManager(maxTex, 8, zap.NewNop())
}

// drain polls InstallPending until every started load has resolved.
func drain(t *testing.T, m *Manager, stillAssigned func(string) bool) int {
	t.Helper()
	installed := 0
	require.Eventually(t, func() bool {
		installed += m.InstallPending(stillAssigned)
		return m.InflightCount() == 0
	}, 5*time.Second, 5*time.Millisecond)
	return installed
}

func TestTextureMemoizesBuild(t *testing.T) {
	m := testManager(16)
	defer m.Dispose()

	builds := 0
	build := func() *Texture {
		builds++
		return m.Texture("placeholder", func() *image.NRGBA {
			return Placeholder(32, colorful.Color{R: 0.2, G: 0.2, B: 0.25})
		})
	}
	first := build()
	second := build()
	require.Same(t, first, second)
	assert.Equal(t, 2, builds) // outer closure ran twice, inner build once
	assert.Equal(t, 1, m.Len())
	assert.InDelta(t, 1.0, first.Aspect, 1e-9)
}

func TestTextureEvictionIsFIFO(t *testing.T) {
	m := testManager(3)
	defer m.Dispose()

	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("tex-%d", i)
		m.Texture(key, func() *image.NRGBA { return Placeholder(8, colorful.Color{}) })
	}
	assert.Equal(t, 3, m.Len())
	_, ok := m.Lookup("tex-0")
	assert.False(t, ok, "oldest entry should have been evicted")
	for i := 1; i < 4; i++ {
		_, ok := m.Lookup(fmt.Sprintf("tex-%d", i))
		assert.True(t, ok)
	}
}

func TestRequestPhotoInstallsSynthetic(t *testing.T) {
	m := testManager(16)
	defer m.Dispose()

	p := photo.Photo{ID: "p1", URL: "proc://photo/42?aspect=1.5"}
	m.RequestPhoto(p)
	installed := drain(t, m, func(id string) bool { return id == "p1" })
	require.Equal(t, 1, installed)

	tex, ok := m.Lookup(p.URL)
	require.True(t, ok)
	assert.InDelta(t, 1.5, tex.Aspect, 0.05)

	aspect, ok := m.AspectFor(p.URL)
	require.True(t, ok)
	assert.InDelta(t, 1.5, aspect, 0.05)
}

func TestInstallDiscardsStaleLoads(t *testing.T) {
	m := testManager(16)
	defer m.Dispose()

	m.RequestPhoto(photo.Photo{ID: "gone", URL: "proc://photo/7"})
	installed := drain(t, m, func(string) bool { return false })
	assert.Zero(t, installed)
	assert.Zero(t, m.Len())
	_, ok := m.Lookup("proc://photo/7")
	assert.False(t, ok)
}

func TestFailedURLIsNotRetried(t *testing.T) {
	m := testManager(16)
	defer m.Dispose()

	p := photo.Photo{ID: "p1", URL: "/nonexistent/path/photo.png"}
	m.RequestPhoto(p)
	installed := drain(t, m, nil)
	assert.Zero(t, installed)

	m.RequestPhoto(p)
	assert.Zero(t, m.InflightCount(), "failed URL must not start another load")
}

func TestRequestPhotoSkipsCachedAndLoading(t *testing.T) {
	m := testManager(16)
	defer m.Dispose()

	p := photo.Photo{ID: "p1", URL: "proc://photo/9"}
	m.RequestPhoto(p)
	m.RequestPhoto(p)
	assert.LessOrEqual(t, m.InflightCount(), 1)

	drain(t, m, nil)
	require.Equal(t, 1, m.Len())

	m.RequestPhoto(p)
	assert.Zero(t, m.InflightCount(), "cached URL must not reload")
}

func TestGeometryMemoizes(t *testing.T) {
	m := testManager(16)
	defer m.Dispose()

	builds := 0
	build := func() *geom.Mesh {
		builds++
		return geom.PhotoQuad()
	}
	first := m.Geometry("quad", build)
	second := m.Geometry("quad", build)
	require.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestDisposeIsIdempotent(t *testing.T) {
	m := testManager(16)
	m.Texture("x", func() *image.NRGBA { return Placeholder(8, colorful.Color{}) })
	m.Dispose()
	m.Dispose()
	assert.Zero(t, m.Len())

	m.RequestPhoto(photo.Photo{ID: "p1", URL: "proc://photo/1"})
	assert.Zero(t, m.InflightCount())
}

func TestSyntheticPhotoDeterministic(t *testing.T) {
	a := SyntheticPhoto(99, 64, 1)
	b := SyntheticPhoto(99, 64, 1)
	c := SyntheticPhoto(100, 64, 1)
	require.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)

	wide := SyntheticPhoto(5, 64, 2)
	assert.Equal(t, 64, wide.Bounds().Dx())
	assert.Equal(t, 32, wide.Bounds().Dy())

	tall := SyntheticPhoto(5, 64, 0.5)
	assert.Equal(t, 32, tall.Bounds().Dx())
	assert.Equal(t, 64, tall.Bounds().Dy())
}

func TestDecodeSyntheticURL(t *testing.T) {
	tex, err := DecodePhoto("proc://photo/314?aspect=0.75")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, tex.Aspect, 0.05)

	_, err = DecodePhoto("proc://photo/not-a-seed")
	assert.Error(t, err)
}
