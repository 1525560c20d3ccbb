package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 is an axis-aligned bounding box. A freshly declared Box3 is not
// valid; use EmptyBox3 so that the first ExpandByPoint works.
type Box3 struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox3 returns a box that contains nothing: Min at +inf, Max at -inf.
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// ExpandByPoint grows the box to include p.
func (b Box3) ExpandByPoint(p mgl64.Vec3) Box3 {
	return Box3{
		Min: mgl64.Vec3{math.Min(b.Min.X(), p.X()), math.Min(b.Min.Y(), p.Y()), math.Min(b.Min.Z(), p.Z())},
		Max: mgl64.Vec3{math.Max(b.Max.X(), p.X()), math.Max(b.Max.Y(), p.Y()), math.Max(b.Max.Z(), p.Z())},
	}
}

// Center returns the midpoint of the box, or the zero vector for an empty box.
func (b Box3) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis, or zero for an empty box.
func (b Box3) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Radius returns half the diagonal length, the radius of the bounding
// sphere around the box center.
func (b Box3) Radius() float64 {
	return b.Size().Len() * 0.5
}
