package motion

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/timer"
)

// Controller turns input events and host ticks into body velocity,
// orientation and animation/audio cues. It is not safe for concurrent use;
// the host calls it from its single game loop.
type Controller struct {
	cfg   Config
	deps  Deps
	log   *slog.Logger
	state State

	footsteps   timer.Handle
	initialized bool
}

// New validates cfg and deps and returns a ready controller.
func New(cfg Config, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		cfg:  cfg,
		deps: deps,
		log:  logger.With("component", "motion"),
	}, nil
}

func (d Deps) validate() error {
	switch {
	case d.Body == nil:
		return configError("physics body is required")
	case d.Collider == nil:
		return configError("collider shape is required")
	case d.Space == nil:
		return configError("spatial query is required")
	case d.Transform == nil:
		return configError("transform is required")
	case d.Pivot == nil:
		return configError("camera pivot is required")
	case d.Animator == nil:
		return configError("animation sink is required")
	case d.Audio == nil:
		return configError("audio sink is required")
	case d.Schemes == nil:
		return configError("control scheme source is required")
	case d.Timers == nil:
		return configError("timer service is required")
	}

	if r := d.Collider.Radius(); !finite(r) || r <= 0 {
		return configError("collider radius %v must be positive", r)
	}
	if h, r := d.Collider.Height(), d.Collider.Radius(); !finite(h) || h < 2*r {
		return configError("collider height %v shorter than its diameter %v", h, 2*r)
	}

	if checker, ok := d.Audio.(ClipChecker); ok {
		for _, id := range RequiredClips {
			if !checker.HasClip(id) {
				return configError("audio clip set %q is empty", id)
			}
		}
	}
	return nil
}

// Initialize performs one-time platform setup. Further calls do nothing.
func (c *Controller) Initialize() {
	if c.initialized {
		return
	}
	c.initialized = true
	if c.deps.Capture != nil {
		c.deps.Capture.SetInputCapture(CaptureLocked)
	}
	c.state.Grounded = c.IsGrounded()
	c.deps.Animator.SetBool(AnimGrounded, c.state.Grounded)
	c.log.Debug("controller initialized", "grounded", c.state.Grounded)
}

// Config returns the active tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps tuning at runtime. Invalid tuning is rejected and the
// previous values stay active.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	intervalChanged := cfg.FootstepInterval != c.cfg.FootstepInterval || cfg.FootstepDelay != c.cfg.FootstepDelay
	c.cfg = cfg
	c.state.Pitch = mgl64.Clamp(c.state.Pitch, cfg.PitchMin, cfg.PitchMax)
	if intervalChanged && c.footsteps != 0 {
		c.stopFootsteps()
		c.startFootsteps()
	}
	c.log.Debug("config updated", "move_speed", cfg.MoveSpeed, "jump_impulse", cfg.JumpImpulse)
	return nil
}

// State returns a copy of the motion state.
func (c *Controller) State() State {
	return c.state
}

// FootstepsActive reports whether the footstep timer is armed.
func (c *Controller) FootstepsActive() bool {
	return c.footsteps != 0
}

func (c *Controller) OnMoveInput(v mgl64.Vec2, phase Phase) {
	switch phase {
	case PhasePerformed:
		wasWalking := c.state.Walking
		c.state.Input = v
		c.state.Walking = true
		c.deps.Animator.SetBool(AnimWalking, true)
		if !wasWalking && c.IsGrounded() {
			c.startFootsteps()
		}
	case PhaseCanceled:
		c.state.Input = mgl64.Vec2{}
		c.state.Walking = false
		c.deps.Animator.SetBool(AnimWalking, false)
		c.stopFootsteps()
	}
}

// OnLookInput stores the look delta used by the next UpdateLook. Non-finite
// components are treated as zero.
func (c *Controller) OnLookInput(delta mgl64.Vec2) {
	for i := range delta {
		if !finite(delta[i]) {
			delta[i] = 0
		}
	}
	c.state.LookDelta = delta
}

func (c *Controller) OnJumpInput(phase Phase) {
	if phase != PhaseStarted {
		return
	}
	// jumps while airborne are dropped, not buffered
	if !c.IsGrounded() {
		return
	}

	c.deps.Body.ApplyImpulse(up.Mul(c.cfg.JumpImpulse))
	c.deps.Audio.PlayOneShot(ClipJump)
	c.deps.Animator.SetTrigger(AnimJump)
	if c.state.Walking {
		c.stopFootsteps()
	}
}

func (c *Controller) OnFireInput(phase Phase) {
	switch phase {
	case PhaseStarted:
		c.state.Firing = true
	case PhaseCanceled:
		c.state.Firing = false
	default:
		return
	}
	c.deps.Animator.SetBool(AnimFiring, c.state.Firing)
}

func (c *Controller) OnReloadInput(phase Phase) {
	if phase == PhasePerformed {
		c.deps.Animator.SetTrigger(AnimReload)
	}
}

func (c *Controller) OnMeleeInput(phase Phase) {
	if phase == PhasePerformed {
		c.deps.Animator.SetTrigger(AnimMelee)
	}
}

// Contact describes a new collision reported by the physics layer.
type Contact struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

func (c *Controller) OnGroundContact(contact Contact) {
	if !c.IsGrounded() {
		return
	}
	c.deps.Audio.PlayOneShot(ClipLand)
	if c.state.Walking {
		c.startFootsteps()
	}
	c.log.Debug("landed", "normal_y", contact.Normal.Y(), "walking", c.state.Walking)
}

// OnPhysicsTick runs once per fixed physics step.
func (c *Controller) OnPhysicsTick() {
	c.UpdateMotion()
}

// OnFrameTick runs once per rendered frame, after the physics step.
func (c *Controller) OnFrameTick() {
	c.UpdateLook()
}

// UpdateMotion overrides horizontal velocity from the planar input and
// passes the body's vertical velocity through unchanged.
func (c *Controller) UpdateMotion() {
	rot := c.deps.Transform.Rotation()
	fwd := rot.Rotate(forward)
	rgt := rot.Rotate(right)

	dir := fwd.Mul(c.state.Input.Y()).Add(rgt.Mul(c.state.Input.X())).Mul(c.cfg.MoveSpeed)
	vy := c.deps.Body.Velocity().Y()
	dir[1] = vy
	c.deps.Body.SetVelocity(dir)

	c.state.VerticalVelocity = vy
	c.syncGrounded()
}

func (c *Controller) syncGrounded() {
	grounded := c.IsGrounded()
	c.state.Grounded = grounded
	if c.deps.Animator.Bool(AnimGrounded) != grounded {
		c.deps.Animator.SetBool(AnimGrounded, grounded)
	}
}

// startFootsteps arms the footstep timer, or resets its phase when it is
// already running.
func (c *Controller) startFootsteps() {
	if c.footsteps != 0 && c.deps.Timers.Restart(c.footsteps) {
		return
	}
	c.footsteps = c.deps.Timers.ScheduleRepeating(c.footstep, c.cfg.FootstepDelay, c.cfg.FootstepInterval)
}

func (c *Controller) stopFootsteps() {
	if c.footsteps == 0 {
		return
	}
	c.deps.Timers.Cancel(c.footsteps)
	c.footsteps = 0
}

func (c *Controller) footstep() {
	if !c.state.Walking || !c.IsGrounded() {
		return
	}
	c.deps.Audio.PlayOneShot(ClipFootstep)
}
