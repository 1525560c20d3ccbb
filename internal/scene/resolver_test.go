package scene

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"photo-collage-engine/internal/pattern"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/settings"
	"photo-collage-engine/internal/slot"
)

func noAspect(string) (float64, bool) { return 0, false }

func resolverFixture(nPhotos, nSlots int) (*slot.Manager, map[string]*photo.Photo, pattern.Output) {
	photos := make([]photo.Photo, nPhotos)
	byID := make(map[string]*photo.Photo, nPhotos)
	for i := range photos {
		photos[i] = photo.Photo{ID: fmt.Sprintf("p%d", i), URL: fmt.Sprintf("proc://photo/%d", i)}
	}
	for i := range photos {
		byID[photos[i].ID] = &photos[i]
	}

	mgr := slot.New(nSlots)
	mgr.Assign(photos)

	out := pattern.Output{
		Positions:    make([]mgl64.Vec3, nSlots),
		Orientations: make([]mgl64.Quat, nSlots),
	}
	for i := range out.Positions {
		out.Positions[i] = mgl64.Vec3{float64(i), 1, 0}
		out.Orientations[i] = mgl64.QuatIdent()
	}
	return mgr, byID, out
}

func baseCfg() *settings.Normalized {
	return &settings.Normalized{
		PhotoCount: 4,
		PhotoSize:  2,
		Pattern:    settings.PatternConfig{Type: settings.PatternFloat},
	}
}

func TestResolveCoversPatternOutput(t *testing.T) {
	mgr, byID, out := resolverFixture(2, 4)
	r := NewResolver(nil, zap.NewNop())

	resolved := r.Resolve(mgr, byID, out, baseCfg(), noAspect)
	require.Len(t, resolved, 4)

	assert.NotNil(t, resolved[0].Photo)
	assert.NotNil(t, resolved[1].Photo)
	assert.Nil(t, resolved[2].Photo, "unassigned slot keeps the placeholder")
	assert.Nil(t, resolved[3].Photo)

	for i, ps := range resolved {
		assert.Equal(t, i, ps.Slot)
		assert.Equal(t, out.Positions[i], ps.Pos)
	}
	// Placeholder slots are square at the configured size.
	assert.Equal(t, 2.0, resolved[2].Width)
	assert.Equal(t, 2.0, resolved[2].Height)
}

func TestResolveAspectSizing(t *testing.T) {
	mgr, byID, out := resolverFixture(4, 4)
	r := NewResolver(nil, zap.NewNop())

	decoded := map[string]float64{
		"proc://photo/0": 2.0, // landscape
		"proc://photo/1": 0.5, // portrait
		"proc://photo/3": 100, // absurd, clamps to 4
	}
	aspectFor := func(url string) (float64, bool) {
		a, ok := decoded[url]
		return a, ok
	}

	resolved := r.Resolve(mgr, byID, out, baseCfg(), aspectFor)

	// Landscape: larger edge is the width.
	assert.InDelta(t, 2.0, resolved[0].Width, 1e-9)
	assert.InDelta(t, 1.0, resolved[0].Height, 1e-9)
	// Portrait: larger edge is the height.
	assert.InDelta(t, 1.0, resolved[1].Width, 1e-9)
	assert.InDelta(t, 2.0, resolved[1].Height, 1e-9)
	// Unknown aspect falls back to square.
	assert.InDelta(t, 2.0, resolved[2].Width, 1e-9)
	assert.InDelta(t, 2.0, resolved[2].Height, 1e-9)
	// Clamped panorama.
	assert.InDelta(t, 2.0, resolved[3].Width, 1e-9)
	assert.InDelta(t, 0.5, resolved[3].Height, 1e-9)
}

func TestResolveUsesFeedMetadataBeforeDecode(t *testing.T) {
	mgr, byID, out := resolverFixture(1, 1)
	byID["p0"].Width = 400
	byID["p0"].Height = 800
	r := NewResolver(nil, zap.NewNop())

	resolved := r.Resolve(mgr, byID, out, baseCfg(), noAspect)
	assert.InDelta(t, 1.0, resolved[0].Width, 1e-9)
	assert.InDelta(t, 2.0, resolved[0].Height, 1e-9)
}

func TestResolverProposesGridPhotoCountOnce(t *testing.T) {
	var proposals []int
	update := func(p settings.Partial) {
		if p.PhotoCount != nil {
			proposals = append(proposals, *p.PhotoCount)
		}
	}
	r := NewResolver(update, zap.NewNop())
	mgr, byID, out := resolverFixture(2, 4)

	cfg := baseCfg()
	cfg.Pattern = settings.PatternConfig{
		Type:        settings.PatternGrid,
		GridRows:    3,
		GridColumns: 5,
	}
	r.Resolve(mgr, byID, out, cfg, noAspect)
	r.Resolve(mgr, byID, out, cfg, noAspect)
	assert.Equal(t, []int{15}, proposals, "same dims must propose once")

	cfg.Pattern.GridRows = 4
	r.Resolve(mgr, byID, out, cfg, noAspect)
	assert.Equal(t, []int{15, 20}, proposals)

	// Once the setting matches, no further proposal.
	cfg.PhotoCount = 20
	r.Resolve(mgr, byID, out, cfg, noAspect)
	assert.Equal(t, []int{15, 20}, proposals)
}

func TestResolverNoProposalWithoutExplicitDims(t *testing.T) {
	calls := 0
	update := func(settings.Partial) { calls++ }
	r := NewResolver(update, zap.NewNop())
	mgr, byID, out := resolverFixture(2, 4)

	cfg := baseCfg()
	cfg.Pattern = settings.PatternConfig{Type: settings.PatternGrid}
	r.Resolve(mgr, byID, out, cfg, noAspect)

	cfg.Pattern = settings.PatternConfig{Type: settings.PatternWave, GridRows: 3, GridColumns: 5}
	r.Resolve(mgr, byID, out, cfg, noAspect)
	assert.Zero(t, calls)
}
