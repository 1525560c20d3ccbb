package scene

import (
	"go.uber.org/zap"

	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/pattern"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/settings"
	"photo-collage-engine/internal/slot"
)

// Aspect bounds for photo planes. Extreme panoramas and strips clamp here
// rather than degenerate into slivers.
const (
	minAspect = 0.25
	maxAspect = 4.0
)

// Resolver joins the slot assignment with the pattern output into positioned
// photo planes. It owns the one settings write path: when the grid pattern
// pins rows x columns, it proposes the implied photo count through the
// update callback instead of writing settings itself.
type Resolver struct {
	logger *zap.Logger
	update settings.UpdateFunc

	lastProposed int
}

// NewResolver wires the settings-update callback. update may be nil when the
// embedding app does not accept proposals.
func NewResolver(update settings.UpdateFunc, logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger, update: update}
}

// Resolve produces one PositionedSlot per pattern output slot. The pattern
// may emit fewer or more slots than the manager tracks; output length always
// follows the pattern. aspectFor reports the decoded aspect for a photo URL
// once its texture has resolved.
func (r *Resolver) Resolve(
	slots *slot.Manager,
	photosByID map[string]*photo.Photo,
	out pattern.Output,
	cfg *settings.Normalized,
	aspectFor func(url string) (float64, bool),
) []PositionedSlot {
	r.proposePhotoCount(cfg)

	resolved := make([]PositionedSlot, len(out.Positions))
	for i := range out.Positions {
		ps := PositionedSlot{
			Slot:   i,
			Pos:    out.Positions[i],
			Orient: out.Orientations[i],
			Width:  cfg.PhotoSize,
			Height: cfg.PhotoSize,
		}
		if id, ok := slots.PhotoAt(i); ok {
			if p, known := photosByID[id]; known {
				ps.Photo = p
				ps.Width, ps.Height = photoPlaneSize(p, cfg.PhotoSize, aspectFor)
			}
		}
		resolved[i] = ps
	}
	return resolved
}

// photoPlaneSize maps a photo's aspect ratio onto plane dimensions with the
// larger edge equal to the configured photo size. The decoded texture aspect
// wins over feed metadata; neither known falls back to square.
func photoPlaneSize(p *photo.Photo, size float64, aspectFor func(string) (float64, bool)) (w, h float64) {
	aspect := 1.0
	if a, ok := aspectFor(p.URL); ok {
		aspect = a
	} else if a, ok := p.Aspect(); ok {
		aspect = a
	}
	aspect = mathx.Clamp(aspect, minAspect, maxAspect)

	if aspect >= 1 {
		return size, size / aspect
	}
	return size * aspect, size
}

// proposePhotoCount asks for the grid's pinned rows x columns count when it
// differs from the live setting, once per distinct value.
func (r *Resolver) proposePhotoCount(cfg *settings.Normalized) {
	if r.update == nil || cfg.Pattern.Type != settings.PatternGrid {
		return
	}
	rows, cols := cfg.Pattern.GridRows, cfg.Pattern.GridColumns
	if rows <= 0 || cols <= 0 {
		return
	}
	want := rows * cols
	if want > settings.MaxPhotoCount {
		want = settings.MaxPhotoCount
	}
	if want == cfg.PhotoCount || want == r.lastProposed {
		return
	}
	r.lastProposed = want
	r.logger.Debug("scene: proposing photo count from grid dims",
		zap.Int("rows", rows), zap.Int("columns", cols), zap.Int("count", want))
	r.update(settings.Partial{PhotoCount: &want})
}
