package camera

import (
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/settings"
)

// State is the animator's drive mode.
type State int

const (
	// Idle means the cinematic animation is disabled.
	Idle State = iota
	// UserInteracting means manual input owns the rig.
	UserInteracting
	// CoolingDown means input ended and the resume timer is running.
	CoolingDown
	// Animating means the trajectory owns the rig.
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case UserInteracting:
		return "userInteracting"
	case CoolingDown:
		return "coolingDown"
	case Animating:
		return "animating"
	}
	return "unknown"
}

const (
	// resumeDampRate eases the camera back onto the trajectory after an
	// interruption instead of jumping to it.
	resumeDampRate = 3.0
	// lookDampRate keeps the look-at target continuous when the featured
	// photo changes.
	lookDampRate = 2.0
	// featuredWeight blends the look-at between scene centroid (0) and the
	// featured photo (1).
	featuredWeight = 0.6
	// featuredOscRate drives the slow index oscillation that picks the
	// featured photo.
	featuredOscRate = 0.07
	// featuredRange limits featured candidates to photos within this many
	// framing radii of the center.
	featuredRange = 2.2
)

// Animator owns the rig while its state is Animating. Manual input
// interrupts it immediately (via the InteractionListener events) and it
// resumes, jump-free, after a cool-down on the injected clock.
type Animator struct {
	rig    *Rig
	clk    clock.Clock
	logger *zap.Logger

	cfg  settings.CameraConfig
	traj trajectory

	state         State
	animTime      float64 // advances only while Animating
	cooldownUntil time.Time
	easing        bool
}

// NewAnimator builds a disabled animator; ApplySettings arms it.
func NewAnimator(rig *Rig, clk clock.Clock, logger *zap.Logger) *Animator {
	return &Animator{
		rig:    rig,
		clk:    clk,
		logger: logger,
		cfg:    settings.CameraConfig{Animation: settings.CameraNone},
		traj:   orbitPath{},
	}
}

// ApplySettings switches animation mode and parameters. Changing the
// trajectory restarts the drive cycle so the new path is entered by the
// usual phase-solve + ease, not a cut.
func (a *Animator) ApplySettings(cfg settings.CameraConfig) {
	prev := a.cfg.Animation
	a.cfg = cfg
	if cfg.Animation == prev {
		return
	}
	a.traj = trajectoryFor(cfg.Animation)
	if a.state == Animating || a.state == Idle {
		a.setState(Idle)
	}
}

// State reports the current drive mode.
func (a *Animator) State() State {
	return a.state
}

// InteractionStarted implements InteractionListener. Manual input takes the
// rig immediately, whatever the animator was doing.
func (a *Animator) InteractionStarted() {
	if a.disabled() {
		return
	}
	a.setState(UserInteracting)
}

// InteractionEnded implements InteractionListener and arms the cool-down.
func (a *Animator) InteractionEnded() {
	if a.state != UserInteracting {
		return
	}
	a.cooldownUntil = a.clk.Now().Add(time.Duration(a.cfg.CooldownSeconds * float64(time.Second)))
	a.setState(CoolingDown)
}

// Update advances the state machine and, while Animating, writes the rig.
// bounds is the box of occupied smoothed slot positions; photoPositions are
// those same positions, used for featured-photo selection.
func (a *Animator) Update(dt float64, bounds mathx.Box3, photoPositions []mgl64.Vec3) {
	if a.disabled() {
		a.setState(Idle)
		return
	}

	switch a.state {
	case UserInteracting:
		return
	case CoolingDown:
		if a.clk.Now().Before(a.cooldownUntil) {
			return
		}
		a.beginAnimating(bounds)
	case Idle:
		a.beginAnimating(bounds)
	}

	a.animTime += dt * a.cfg.Speed
	f := FramingFor(bounds, a.cfg)
	want := f.Center.Add(a.traj.Offset(a.animTime, f))

	if a.easing {
		a.rig.Position = mathx.Damp(a.rig.Position, want, resumeDampRate, dt)
		if a.rig.Position.Sub(want).Len() < 0.02*math.Max(f.Radius, 1) {
			a.easing = false
		}
	} else {
		a.rig.Position = want
	}

	a.rig.Target = mathx.Damp(a.rig.Target, a.lookTarget(f, photoPositions), lookDampRate, dt)
}

func (a *Animator) disabled() bool {
	return a.cfg.Animation == "" || a.cfg.Animation == settings.CameraNone
}

// beginAnimating re-enters the trajectory from wherever manual input left
// the camera: solve the animation clock for the current azimuth when the
// path allows it, then ease the remaining offset away.
func (a *Animator) beginAnimating(bounds mathx.Box3) {
	f := FramingFor(bounds, a.cfg)
	sph := mathx.SphericalFromOffset(a.rig.Position.Sub(f.Center))
	if t, ok := a.traj.PhaseFor(sph); ok {
		a.animTime = t
	}
	a.easing = true
	a.setState(Animating)
}

// lookTarget blends the centroid of the placed photos with a slowly
// oscillating featured photo among those in camera range.
func (a *Animator) lookTarget(f Framing, positions []mgl64.Vec3) mgl64.Vec3 {
	if len(positions) == 0 {
		return f.Center
	}
	centroid := mgl64.Vec3{}
	for _, p := range positions {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(positions)))

	maxDist := featuredRange * f.Radius
	inRange := positions[:0:0]
	for _, p := range positions {
		if p.Sub(f.Center).Len() <= maxDist {
			inRange = append(inRange, p)
		}
	}
	if len(inRange) == 0 {
		return centroid
	}

	osc := 0.5 + 0.5*math.Sin(a.animTime*featuredOscRate)
	idx := int(osc * float64(len(inRange)))
	if idx >= len(inRange) {
		idx = len(inRange) - 1
	}
	featured := inRange[idx]
	return centroid.Mul(1 - featuredWeight).Add(featured.Mul(featuredWeight))
}

func (a *Animator) setState(s State) {
	if a.state == s {
		return
	}
	a.logger.Debug("camera: animator state change",
		zap.Stringer("from", a.state), zap.Stringer("to", s))
	a.state = s
}
