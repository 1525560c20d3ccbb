package pattern

import (
	"math"

	"go.uber.org/zap"

	"photo-collage-engine/internal/settings"
)

// FromSettings selects and configures the generator named by the normalized
// settings. The result is wrapped in a guard that recovers panics and
// rejects non-finite output by substituting the fallback grid, so a bad
// parameter combination degrades the layout instead of killing the frame.
func FromSettings(cfg *settings.Normalized, logger *zap.Logger) Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	count := cfg.PhotoCount
	size := cfg.PhotoSize
	spacing := Spacing(cfg.Pattern, size)

	var gen Generator
	switch cfg.Pattern.Type {
	case settings.PatternFloat:
		gen = NewFloat(count, size, cfg.Pattern.FloatSpread, cfg.Pattern.FloatDrift, spacing)
	case settings.PatternWave:
		gen = NewWave(count, cfg.Pattern, size, spacing)
	case settings.PatternSpiral:
		gen = NewSpiral(count, cfg.Pattern, size, spacing)
	default:
		gen = NewGrid(count, cfg.Pattern, size)
	}

	return &guard{
		inner:    gen,
		fallback: NewFallback(count, size),
		logger:   logger,
	}
}

// guard shields the frame loop from a misbehaving generator. While the
// inner generator keeps failing, only the first failure logs.
type guard struct {
	inner    Generator
	fallback *Fallback
	logger   *zap.Logger
	failing  bool
}

func (g *guard) Name() string { return g.inner.Name() }

func (g *guard) Generate(elapsed float64) (out Output) {
	defer func() {
		if r := recover(); r != nil {
			g.fail("panic", r)
			out = g.fallback.Generate(elapsed)
		}
	}()

	out = g.inner.Generate(elapsed)
	if !finite(out) {
		g.fail("non-finite output", nil)
		return g.fallback.Generate(elapsed)
	}
	if g.failing {
		g.failing = false
		g.logger.Info("pattern: generator recovered", zap.String("pattern", g.inner.Name()))
	}
	return out
}

func (g *guard) fail(reason string, detail any) {
	if g.failing {
		return
	}
	g.failing = true
	g.logger.Warn("pattern: generator failed, using fallback grid",
		zap.String("pattern", g.inner.Name()),
		zap.String("reason", reason),
		zap.Any("detail", detail))
}

func finite(out Output) bool {
	for _, p := range out.Positions {
		for k := 0; k < 3; k++ {
			if math.IsNaN(p[k]) || math.IsInf(p[k], 0) {
				return false
			}
		}
	}
	for _, q := range out.Orientations {
		if math.IsNaN(q.W) || math.IsInf(q.W, 0) {
			return false
		}
		for k := 0; k < 3; k++ {
			if math.IsNaN(q.V[k]) || math.IsInf(q.V[k], 0) {
				return false
			}
		}
	}
	return true
}
