package mathx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDampFactorIsFrameRateIndependent(t *testing.T) {
	// Two small steps must land exactly where one double step does.
	const rate, dt = 4.0, 1.0 / 60
	f := DampFactor(rate, dt)
	two := 1 - (1-f)*(1-f)
	one := DampFactor(rate, 2*dt)
	assert.InDelta(t, one, two, 1e-15)
}

func TestDampFactorDegenerateInputs(t *testing.T) {
	assert.Zero(t, DampFactor(0, 0.016))
	assert.Zero(t, DampFactor(-1, 0.016))
	assert.Zero(t, DampFactor(4, 0))
}

func TestDampMovesTowardTarget(t *testing.T) {
	got := Damp(mgl64.Vec3{}, mgl64.Vec3{1, 2, 3}, 2, 0.5)
	f := 1 - math.Exp(-1)
	assert.InDelta(t, 1*f, got.X(), 1e-12)
	assert.InDelta(t, 2*f, got.Y(), 1e-12)
	assert.InDelta(t, 3*f, got.Z(), 1e-12)
}

func TestDampScalarMatchesVectorForm(t *testing.T) {
	v := Damp(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{9, 0, 0}, 3, 0.1)
	s := DampScalar(5, 9, 3, 0.1)
	assert.InDelta(t, v.X(), s, 1e-15)
}

func TestEmptyBox3(t *testing.T) {
	b := EmptyBox3()
	require.True(t, b.IsEmpty())
	assert.Equal(t, mgl64.Vec3{}, b.Center())
	assert.Equal(t, mgl64.Vec3{}, b.Size())
}

func TestBox3ExpandByPoint(t *testing.T) {
	b := EmptyBox3().ExpandByPoint(mgl64.Vec3{1, 2, 3})
	require.False(t, b.IsEmpty())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Center())
	assert.Equal(t, mgl64.Vec3{}, b.Size())

	b = b.ExpandByPoint(mgl64.Vec3{5, 6, 11})
	assert.Equal(t, mgl64.Vec3{3, 4, 7}, b.Center())
	assert.Equal(t, mgl64.Vec3{4, 4, 8}, b.Size())
	assert.InDelta(t, math.Sqrt(96)/2, b.Radius(), 1e-12)
}

func TestSphericalRoundTrip(t *testing.T) {
	off := mgl64.Vec3{3, 4, 12}
	s := SphericalFromOffset(off)
	require.InDelta(t, 13, s.Radius, 1e-12)

	back := s.Offset()
	assert.InDelta(t, off.X(), back.X(), 1e-12)
	assert.InDelta(t, off.Y(), back.Y(), 1e-12)
	assert.InDelta(t, off.Z(), back.Z(), 1e-12)
}

func TestSphericalConventions(t *testing.T) {
	// +Z is azimuth zero; straight up is elevation pi/2.
	s := SphericalFromOffset(mgl64.Vec3{0, 0, 5})
	assert.InDelta(t, 0, s.Azimuth, 1e-12)
	assert.InDelta(t, 0, s.Elevation, 1e-12)

	s = SphericalFromOffset(mgl64.Vec3{5, 0, 0})
	assert.InDelta(t, math.Pi/2, s.Azimuth, 1e-12)

	s = SphericalFromOffset(mgl64.Vec3{0, 5, 0})
	assert.InDelta(t, math.Pi/2, s.Elevation, 1e-12)
}

func TestSphericalZeroOffset(t *testing.T) {
	s := SphericalFromOffset(mgl64.Vec3{})
	assert.Zero(t, s.Radius)
	assert.Equal(t, mgl64.Vec3{}, s.Offset())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(1, 2, 5))
	assert.Equal(t, 5.0, Clamp(9, 2, 5))
	assert.Equal(t, 3.5, Clamp(3.5, 2, 5))
}

func TestHashUnitIsDeterministicAndBounded(t *testing.T) {
	for salt := uint64(0); salt < 64; salt++ {
		v := HashUnit(42, salt)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
		assert.Equal(t, v, HashUnit(42, salt))
	}
	assert.NotEqual(t, HashUnit(1, 0), HashUnit(1, 1))
	assert.NotEqual(t, HashUnit(1, 0), HashUnit(2, 0))
}
