package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"photo-collage-engine/internal/mathx"
)

const (
	// smoothRate is the exponential damping rate toward the pattern target.
	smoothRate = 5.0
	// teleportThreshold snaps a slot that moved farther than this in one
	// frame (pattern switch, big layout jump) instead of sliding it across
	// the scene.
	teleportThreshold = 6.0
)

// smoothed is the persistent per-slot transform state.
type smoothed struct {
	pos    mgl64.Vec3
	orient mgl64.Quat
}

// Smoother eases slot transforms toward their pattern targets with
// frame-rate independent damping. State lives per slot index; slots the
// pattern stops producing are forgotten.
type Smoother struct {
	state map[int]smoothed
}

// NewSmoother returns an empty smoother.
func NewSmoother() *Smoother {
	return &Smoother{state: make(map[int]smoothed)}
}

// Step eases every slot toward its target in place. A slot seen for the
// first time, or one farther than the teleport threshold from its target,
// snaps to the target exactly.
func (s *Smoother) Step(slots []PositionedSlot, dt float64) {
	alpha := mathx.DampFactor(smoothRate, dt)
	next := make(map[int]smoothed, len(slots))

	for i := range slots {
		target := &slots[i]
		cur, ok := s.state[target.Slot]
		if !ok || cur.pos.Sub(target.Pos).Len() > teleportThreshold {
			next[target.Slot] = smoothed{pos: target.Pos, orient: target.Orient}
			continue
		}

		pos := cur.pos.Add(target.Pos.Sub(cur.pos).Mul(alpha))
		orient := mgl64.QuatSlerp(cur.orient, target.Orient, alpha)
		next[target.Slot] = smoothed{pos: pos, orient: orient}
		target.Pos = pos
		target.Orient = orient
	}
	s.state = next
}

// Reset drops all persistent state; every slot snaps on the next Step.
func (s *Smoother) Reset() {
	s.state = make(map[int]smoothed)
}
