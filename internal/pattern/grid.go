package pattern

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/settings"
)

// Grid arranges slots into a flat wall of rows and columns facing +Z.
// Layout is time-independent: Generate ignores elapsed.
type Grid struct {
	count     int
	photoSize float64
	aspect    float64 // wall width/height ratio used to derive rows/cols
	spacing   float64 // 0 = edge-to-edge, 1 = one photo of gap
	rows      int     // explicit override, 0 = derive
	cols      int     // explicit override, 0 = derive
	offsetY   float64 // wall height offset above the clearance line
}

// NewGrid builds a grid generator for count slots.
func NewGrid(count int, cfg settings.PatternConfig, photoSize float64) *Grid {
	return &Grid{
		count:     count,
		photoSize: photoSize,
		aspect:    cfg.GridAspect,
		spacing:   cfg.GridSpacing,
		rows:      cfg.GridRows,
		cols:      cfg.GridColumns,
		offsetY:   cfg.WallHeight,
	}
}

func (g *Grid) Name() string { return settings.PatternGrid }

// Dims returns the effective (rows, columns) of the wall.
func (g *Grid) Dims() (rows, cols int) {
	if g.rows > 0 && g.cols > 0 {
		return g.rows, g.cols
	}
	n := g.count
	if n < 1 {
		n = 1
	}
	cols = int(math.Round(math.Sqrt(float64(n) * g.aspect)))
	if cols < 1 {
		cols = 1
	}
	rows = (n + cols - 1) / cols
	return rows, cols
}

// Step returns the center-to-center cell step. At spacing 0 square photos
// touch edge to edge; at spacing 1 the gap equals one photo width.
func (g *Grid) Step() float64 {
	return g.photoSize * (1 + g.spacing)
}

// Generate lays out slots in reading order: left to right, top row first.
// The bottom row rests at the floor clearance line plus the wall offset.
func (g *Grid) Generate(elapsed float64) Output {
	rows, cols := g.Dims()
	n := g.count
	if g.rows > 0 && g.cols > 0 {
		// Explicit dims pin the slot count to the wall shape.
		n = rows * cols
	}

	step := g.Step()
	bottom := baseHeight(g.photoSize) + g.offsetY

	positions := make([]mgl64.Vec3, n)
	for i := 0; i < n; i++ {
		row := i / cols
		col := i % cols
		positions[i] = mgl64.Vec3{
			(float64(col) - float64(cols-1)/2) * step,
			bottom + float64(rows-1-row)*step,
			0,
		}
	}
	return Output{
		Positions:    positions,
		Orientations: identityOrients(n),
	}
}
