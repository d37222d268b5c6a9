package character

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/anim"
	"github.com/milk9111/fpscontroller/motion"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/timer"
)

const (
	DefaultRadius = 0.5
	DefaultHeight = 2.0
	DefaultMass   = 1.0
)

// Options describes one character. Zero collider values take the defaults.
type Options struct {
	Config  motion.Config
	Spawn   mgl64.Vec3
	Radius  float64
	Height  float64
	Mass    float64
	Audio   motion.AudioSink
	Schemes motion.SchemeSource
	Capture motion.CaptureSetter
	Logger  *slog.Logger
}

// Character is a controller wired to a Chipmunk body, a timer service, an
// animator and a camera pivot.
type Character struct {
	World      *physics.World
	Body       *physics.Body
	Controller *motion.Controller
	Animator   *anim.Animator
	Timers     *timer.Service
	Pivot      *motion.CameraPivot

	ticks int
}

func New(world *physics.World, opts Options) (*Character, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: physics world is required", motion.ErrConfiguration)
	}
	if opts.Radius == 0 {
		opts.Radius = DefaultRadius
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.Mass <= 0 {
		opts.Mass = DefaultMass
	}
	if opts.Schemes == nil {
		opts.Schemes = fixedScheme(motion.SchemeMouse)
	}

	c := &Character{
		World:    world,
		Animator: anim.NewAnimator(),
		Timers:   timer.NewService(),
		Pivot:    &motion.CameraPivot{LocalRotation: mgl64.QuatIdent()},
	}
	c.Body = world.NewCharacter(opts.Spawn, opts.Radius, opts.Height, opts.Mass)

	ctrl, err := motion.New(opts.Config, motion.Deps{
		Body:      c.Body,
		Collider:  c.Body,
		Space:     world,
		Transform: c.Body,
		Pivot:     c.Pivot,
		Animator:  c.Animator,
		Audio:     opts.Audio,
		Schemes:   opts.Schemes,
		Timers:    c.Timers,
		Capture:   opts.Capture,
		Logger:    opts.Logger,
	})
	if err != nil {
		world.RemoveCharacter(c.Body)
		return nil, err
	}
	c.Controller = ctrl
	c.Body.OnContact(ctrl.OnGroundContact)
	ctrl.Initialize()
	return c, nil
}

// Tick runs one fixed step: the controller sets velocity, the world
// integrates and reports contacts, then due timers fire.
func (c *Character) Tick(dt float64) {
	c.Controller.OnPhysicsTick()
	c.World.Step(dt)
	c.Timers.Advance(dt)
	c.ticks++
}

// Respawn moves the character to pos and stops it. Look and input state are
// kept.
func (c *Character) Respawn(pos mgl64.Vec3) {
	c.Body.SetPosition(pos)
	c.Body.SetVelocity(mgl64.Vec3{})
}

// Frame applies the per-frame look update.
func (c *Character) Frame() {
	c.Controller.OnFrameTick()
}

func (c *Character) Ticks() int {
	return c.ticks
}

// Eye is the camera position: the top of the capsule less one radius.
func (c *Character) Eye() mgl64.Vec3 {
	p := c.Body.Position()
	p[1] += c.Body.Height()/2 - c.Body.Radius()
	return p
}

// ViewRotation combines body yaw with pivot pitch.
func (c *Character) ViewRotation() mgl64.Quat {
	return c.Body.Rotation().Mul(c.Pivot.LocalRotation).Normalize()
}

// Facing is the horizontal forward direction of the body.
func (c *Character) Facing() mgl64.Vec3 {
	return c.Body.Rotation().Rotate(mgl64.Vec3{0, 0, 1})
}

type fixedScheme motion.ControlScheme

func (s fixedScheme) ControlScheme() motion.ControlScheme {
	return motion.ControlScheme(s)
}
