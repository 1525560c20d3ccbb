package sequence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/render"
	"photo-collage-engine/internal/scene"
	"photo-collage-engine/internal/settings"
)

func ptr[T any](v T) *T { return &v }

func smallScene(t *testing.T) *scene.Scene {
	t.Helper()
	raw := settings.Settings{
		PhotoCount: ptr(4),
		Lighting:   &settings.LightingSettings{SpotCount: ptr(0)},
		Floor:      &settings.FloorSettings{Visible: ptr(false)},
	}
	sc := scene.New(raw, nil, nil, nil)
	t.Cleanup(sc.Dispose)
	return sc
}

func syntheticPhotos(n int) []photo.Photo {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]photo.Photo, n)
	for i := range out {
		out[i] = photo.Photo{
			ID:        string(rune('a' + i)),
			URL:       "proc://photo/" + string(rune('1'+i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	return out
}

func TestRunExportsNumberedFrames(t *testing.T) {
	sc := smallScene(t)
	photos := syntheticPhotos(3)
	WaitForTextures(sc, photos, 5*time.Second)

	dir := t.TempDir()
	results, err := Run(Config{
		OutDir:  dir,
		Render:  render.Config{Width: 24, Height: 16, Supersample: 1},
		FPS:     30,
		Frames:  4,
		Workers: 2,
	}, sc, photos)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, i, r.Frame)
		require.NoError(t, r.Err)
		info, err := os.Stat(r.Path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	first, err := os.Stat(filepath.Join(dir, "frame_00000.webp"))
	require.NoError(t, err)
	assert.False(t, first.IsDir())
}

func TestRunWithZeroFramesIsNoOp(t *testing.T) {
	sc := smallScene(t)
	results, err := Run(Config{OutDir: t.TempDir(), Frames: 0}, sc, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWaitForTexturesResolvesAspect(t *testing.T) {
	sc := smallScene(t)
	photos := []photo.Photo{{
		ID:        "wide",
		URL:       "proc://photo/9?aspect=2.0",
		CreatedAt: time.Now(),
	}}
	WaitForTextures(sc, photos, 5*time.Second)

	aspect, ok := sc.Textures().AspectFor("proc://photo/9?aspect=2.0")
	require.True(t, ok, "texture load should have drained during the wait")
	assert.InDelta(t, 2.0, aspect, 0.05)
}
