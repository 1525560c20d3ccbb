package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt60 = 1.0 / 60

func slotAt(idx int, pos mgl64.Vec3) PositionedSlot {
	return PositionedSlot{Slot: idx, Pos: pos, Orient: mgl64.QuatIdent()}
}

func TestSmootherSnapsBeyondTeleportThreshold(t *testing.T) {
	sm := NewSmoother()
	slots := []PositionedSlot{slotAt(0, mgl64.Vec3{0, 0, 0})}
	sm.Step(slots, dt60)

	target := mgl64.Vec3{teleportThreshold + 4, 0, 0}
	wantOrient := mgl64.QuatRotate(1.1, mgl64.Vec3{0, 1, 0})
	slots[0].Pos = target
	slots[0].Orient = wantOrient
	sm.Step(slots, dt60)

	assert.Equal(t, target, slots[0].Pos, "teleport must snap the position exactly")
	assert.Equal(t, wantOrient, slots[0].Orient, "teleport must snap the orientation too")
}

func TestSmootherInterpolatesBelowThreshold(t *testing.T) {
	sm := NewSmoother()
	slots := []PositionedSlot{slotAt(0, mgl64.Vec3{0, 0, 0})}
	sm.Step(slots, dt60)

	slots[0].Pos = mgl64.Vec3{3, 0, 0}
	sm.Step(slots, dt60)

	x := slots[0].Pos.X()
	assert.Greater(t, x, 0.0, "must move toward the target")
	assert.Less(t, x, 3.0, "must not reach or overshoot the target")

	alpha := 1 - math.Exp(-smoothRate*dt60)
	assert.InDelta(t, 3*alpha, x, 1e-12)
}

func TestSmootherIsFrameRateIndependent(t *testing.T) {
	a, b := NewSmoother(), NewSmoother()
	sa := []PositionedSlot{slotAt(0, mgl64.Vec3{0, 0, 0})}
	sb := []PositionedSlot{slotAt(0, mgl64.Vec3{0, 0, 0})}
	a.Step(sa, dt60)
	b.Step(sb, dt60)

	// One 1/30 step must land where two 1/60 steps do.
	sa[0].Pos = mgl64.Vec3{3, 1, -2}
	b1 := []PositionedSlot{slotAt(0, mgl64.Vec3{3, 1, -2})}
	a.Step(sa, 1.0/30)

	b.Step(b1, dt60)
	b2 := []PositionedSlot{slotAt(0, mgl64.Vec3{3, 1, -2})}
	b.Step(b2, dt60)

	assert.InDelta(t, sa[0].Pos.X(), b2[0].Pos.X(), 1e-12)
	assert.InDelta(t, sa[0].Pos.Y(), b2[0].Pos.Y(), 1e-12)
	assert.InDelta(t, sa[0].Pos.Z(), b2[0].Pos.Z(), 1e-12)
}

func TestSmootherDropsVanishedSlots(t *testing.T) {
	sm := NewSmoother()
	sm.Step([]PositionedSlot{slotAt(0, mgl64.Vec3{}), slotAt(1, mgl64.Vec3{})}, dt60)

	// Slot 1 disappears for a frame.
	sm.Step([]PositionedSlot{slotAt(0, mgl64.Vec3{})}, dt60)

	// When it comes back it is a first sighting: snap, not a slide from the
	// stale state.
	back := []PositionedSlot{slotAt(0, mgl64.Vec3{}), slotAt(1, mgl64.Vec3{3, 0, 0})}
	sm.Step(back, dt60)
	require.Equal(t, mgl64.Vec3{3, 0, 0}, back[1].Pos)
}

func TestSmootherFirstSightingSnaps(t *testing.T) {
	sm := NewSmoother()
	slots := []PositionedSlot{slotAt(7, mgl64.Vec3{1, 2, 3})}
	sm.Step(slots, dt60)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, slots[0].Pos)
}
