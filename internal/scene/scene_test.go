package scene

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/settings"
)

func newTestScene(t *testing.T, raw settings.Settings) (*Scene, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	sc := New(raw, nil, mock, zap.NewNop())
	t.Cleanup(sc.Dispose)
	return sc, mock
}

func feedPhotos(n int) []photo.Photo {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	photos := make([]photo.Photo, n)
	for i := range photos {
		photos[i] = photo.Photo{
			ID:        fmt.Sprintf("p%02d", i),
			URL:       fmt.Sprintf("proc://photo/%d", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	return photos
}

func TestStepProducesCompleteFrame(t *testing.T) {
	sc, _ := newTestScene(t, settings.Settings{})
	photos := feedPhotos(10)

	frame := sc.Step(photos, dt60)
	require.NotNil(t, frame)

	// Default photo count is 30; the grid covers all of them.
	require.Len(t, frame.Slots, settings.DefaultPhotoCount)

	occupied := 0
	for _, s := range frame.Slots {
		if s.Photo != nil {
			occupied++
		}
	}
	assert.Equal(t, 10, occupied)

	// Insertion order fills slots from index 0.
	for i := 0; i < 10; i++ {
		require.NotNil(t, frame.Slots[i].Photo, "slot %d", i)
		assert.Equal(t, fmt.Sprintf("p%02d", i), frame.Slots[i].Photo.ID)
	}

	assert.NotEmpty(t, frame.PlaceholderKey)
	_, ok := frame.Textures.Lookup(frame.PlaceholderKey)
	assert.True(t, ok, "placeholder texture must be resident")

	// Default environment is none; the floor is the only static mesh.
	assert.Len(t, frame.Meshes, 1)
	assert.NotEmpty(t, frame.Lights.Spots)

	for _, v := range []float64{frame.Camera.Position.X(), frame.Camera.Position.Y(), frame.Camera.Position.Z()} {
		assert.False(t, math.IsNaN(v))
	}
}

func TestStepChurnReassignsLowestFreeSlot(t *testing.T) {
	sc, _ := newTestScene(t, settings.Settings{})
	photos := feedPhotos(10)
	sc.Step(photos, dt60)

	// Drop the photo in slot 3.
	gone := photos[3].ID
	photos = append(photos[:3], photos[4:]...)
	frame := sc.Step(photos, dt60)
	assert.Nil(t, frame.Slots[3].Photo, "removed photo frees its slot")

	// A new arrival takes the lowest free slot, not a fresh one.
	newcomer := photo.Photo{ID: "zz-new", URL: "proc://photo/99",
		CreatedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)}
	photos = append(photos, newcomer)
	frame = sc.Step(photos, dt60)
	require.NotNil(t, frame.Slots[3].Photo)
	assert.Equal(t, "zz-new", frame.Slots[3].Photo.ID)
	assert.NotEqual(t, gone, frame.Slots[3].Photo.ID)

	// Everyone else kept their slot.
	for i := 0; i < 10; i++ {
		if i == 3 {
			continue
		}
		require.NotNil(t, frame.Slots[i].Photo)
		assert.Equal(t, fmt.Sprintf("p%02d", i), frame.Slots[i].Photo.ID)
	}
}

func TestStepAppliesStagedSettings(t *testing.T) {
	sc, _ := newTestScene(t, settings.Settings{})
	photos := feedPhotos(5)

	frame := sc.Step(photos, dt60)
	assert.False(t, frame.Billboard)
	require.Len(t, frame.Slots, settings.DefaultPhotoCount)

	floatType := settings.PatternFloat
	count := 12
	sc.ApplySettings(settings.Settings{
		PhotoCount: &count,
		Pattern:    &settings.PatternSettings{Type: &floatType},
	})

	frame = sc.Step(photos, dt60)
	assert.True(t, frame.Billboard, "float pattern renders billboards")
	assert.Len(t, frame.Slots, 12)
}

func TestStepResolvesTextureAspect(t *testing.T) {
	sc, _ := newTestScene(t, settings.Settings{})
	photos := []photo.Photo{{ID: "wide", URL: "proc://photo/7?aspect=2"}}

	var frame *Frame
	require.Eventually(t, func() bool {
		frame = sc.Step(photos, dt60)
		_, ok := frame.Textures.AspectFor("proc://photo/7?aspect=2")
		return ok
	}, 5*time.Second, 2*time.Millisecond, "synthetic decode should land")

	frame = sc.Step(photos, dt60)
	require.NotNil(t, frame.Slots[0].Photo)
	assert.InDelta(t, frame.Slots[0].Width/frame.Slots[0].Height, 2.0, 0.1,
		"plane shape follows the decoded aspect")
}

func TestStepDiscardsStaleTextureLoads(t *testing.T) {
	sc, _ := newTestScene(t, settings.Settings{})

	// Request a load, then remove the photo before the decode lands.
	sc.Step([]photo.Photo{{ID: "gone", URL: "proc://photo/5"}}, dt60)
	require.Eventually(t, func() bool {
		sc.Step(nil, dt60)
		return sc.Textures().InflightCount() == 0
	}, 5*time.Second, 2*time.Millisecond)

	_, cached := sc.Textures().Lookup("proc://photo/5")
	assert.False(t, cached, "resolved load for an unassigned photo is dropped")
}

func TestCameraFreezesDuringInteraction(t *testing.T) {
	sc, mock := newTestScene(t, settings.Settings{})
	photos := feedPhotos(8)

	for i := 0; i < 30; i++ {
		sc.Step(photos, dt60)
	}

	sc.Controls().Begin()
	frozen := *sc.Rig()
	for i := 0; i < 30; i++ {
		sc.Step(photos, dt60)
	}
	assert.Equal(t, frozen, *sc.Rig(), "animation must not move the camera mid-gesture")

	sc.Controls().End()
	for i := 0; i < 10; i++ {
		sc.Step(photos, dt60)
	}
	assert.Equal(t, frozen, *sc.Rig(), "cool-down holds the camera still")

	mock.Add(2 * time.Second)
	for i := 0; i < 30; i++ {
		sc.Step(photos, dt60)
	}
	assert.NotEqual(t, frozen.Position, sc.Rig().Position)
}

func TestStepToleratesMalformedPhotos(t *testing.T) {
	sc, _ := newTestScene(t, settings.Settings{})
	photos := []photo.Photo{
		{ID: "", URL: "proc://photo/1"}, // no ID, dropped
		{ID: "a", URL: "proc://photo/2"},
		{ID: "a", URL: "proc://photo/3"}, // duplicate, dropped
		{ID: "b", URL: ""},               // empty URL renders placeholder
	}

	frame := sc.Step(photos, dt60)
	occupied := 0
	for _, s := range frame.Slots {
		if s.Photo != nil {
			occupied++
		}
	}
	assert.Equal(t, 2, occupied)
}

func TestAutoRotateDrivesCameraWhenSelected(t *testing.T) {
	none := settings.CameraNone
	enabled := true
	sc, _ := newTestScene(t, settings.Settings{
		Camera: &settings.CameraSettings{Animation: &none, AutoRotate: &enabled},
	})
	photos := feedPhotos(6)

	sc.Step(photos, dt60)
	before := sc.Rig().Position
	for i := 0; i < 60; i++ {
		sc.Step(photos, dt60)
	}
	assert.NotEqual(t, before, sc.Rig().Position, "auto-rotate must orbit the camera")
}
