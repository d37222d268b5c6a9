package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/motion"
)

// Handler receives phase-tagged actions. *motion.Controller implements it.
type Handler interface {
	OnMoveInput(v mgl64.Vec2, phase motion.Phase)
	OnLookInput(delta mgl64.Vec2)
	OnJumpInput(phase motion.Phase)
	OnFireInput(phase motion.Phase)
	OnReloadInput(phase motion.Phase)
	OnMeleeInput(phase motion.Phase)
}

var _ Handler = (*motion.Controller)(nil)

// Frame is one poll of every bound device. Look is a per-frame delta with
// +Y meaning up.
type Frame struct {
	Move   mgl64.Vec2
	Look   mgl64.Vec2
	Jump   bool
	Fire   bool
	Reload bool
	Melee  bool

	// Scheme is the device that showed activity this frame; Idle frames keep
	// the previous classification.
	Scheme motion.ControlScheme
	Idle   bool
}

// Dispatcher converts successive frames into action events.
type Dispatcher struct {
	move   AxisTracker
	jump   ButtonTracker
	fire   ButtonTracker
	reload ButtonTracker
	melee  ButtonTracker

	scheme motion.ControlScheme
}

func NewDispatcher(deadzone float64) *Dispatcher {
	return &Dispatcher{move: AxisTracker{Deadzone: deadzone}}
}

// Dispatch delivers this frame's events. Look is delivered every frame so the
// handler never holds a stale delta.
func (d *Dispatcher) Dispatch(f Frame, h Handler) {
	if !f.Idle {
		d.scheme = f.Scheme
	}

	d.move.Update(f.Move, h.OnMoveInput)
	h.OnLookInput(f.Look)
	d.jump.Update(f.Jump, h.OnJumpInput)
	d.fire.Update(f.Fire, h.OnFireInput)
	d.reload.Update(f.Reload, h.OnReloadInput)
	d.melee.Update(f.Melee, h.OnMeleeInput)
}

func (d *Dispatcher) ControlScheme() motion.ControlScheme {
	return d.scheme
}
