package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/motion"
)

// ButtonTracker turns a held/released signal into action phases: Started and
// Performed on press, Canceled on release.
type ButtonTracker struct {
	down bool
}

func (b *ButtonTracker) Update(pressed bool, emit func(motion.Phase)) {
	switch {
	case pressed && !b.down:
		b.down = true
		emit(motion.PhaseStarted)
		emit(motion.PhasePerformed)
	case !pressed && b.down:
		b.down = false
		emit(motion.PhaseCanceled)
	}
}

func (b *ButtonTracker) Down() bool {
	return b.down
}

// AxisTracker turns a stick or key composite into value phases. Values inside
// the deadzone count as released.
type AxisTracker struct {
	Deadzone float64

	active bool
	last   mgl64.Vec2
}

func (a *AxisTracker) Update(v mgl64.Vec2, emit func(mgl64.Vec2, motion.Phase)) {
	actuated := v.Len() > a.Deadzone
	switch {
	case actuated && !a.active:
		a.active = true
		a.last = v
		emit(v, motion.PhaseStarted)
		emit(v, motion.PhasePerformed)
	case actuated && v != a.last:
		a.last = v
		emit(v, motion.PhasePerformed)
	case !actuated && a.active:
		a.active = false
		a.last = mgl64.Vec2{}
		emit(mgl64.Vec2{}, motion.PhaseCanceled)
	}
}

func (a *AxisTracker) Active() bool {
	return a.active
}
