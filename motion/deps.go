package motion

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/timer"
)

// PhysicsBody is the simulated rigid body the controller drives.
type PhysicsBody interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	ApplyImpulse(impulse mgl64.Vec3)
	Position() mgl64.Vec3
}

// ColliderShape describes the capsule used for ground probing.
type ColliderShape interface {
	Radius() float64
	Height() float64
}

// SpatialQuery answers ground probes against the physics scene.
type SpatialQuery interface {
	SphereCastDown(origin mgl64.Vec3, radius, maxDistance float64, mask LayerMask) bool
}

// Transform is the character's world rotation.
type Transform interface {
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
}

// Pivot is the camera mount whose local rotation carries pitch.
type Pivot interface {
	SetLocalRotation(q mgl64.Quat)
}

type AnimationSink interface {
	SetBool(p AnimParam, v bool)
	SetTrigger(p AnimParam)
	Bool(p AnimParam) bool
}

type AudioSink interface {
	PlayOneShot(id ClipID)
}

// ClipChecker is implemented by audio sinks that can report missing clips.
type ClipChecker interface {
	HasClip(id ClipID) bool
}

type SchemeSource interface {
	ControlScheme() ControlScheme
}

// Timers schedules cooperative repeating callbacks driven by the host loop.
type Timers interface {
	ScheduleRepeating(fn func(), initialDelay, interval float64) timer.Handle
	// Restart resets an active timer to its initial delay and reports
	// whether h was active.
	Restart(h timer.Handle) bool
	Cancel(h timer.Handle)
}

type CaptureSetter interface {
	SetInputCapture(mode CaptureMode)
}

// Deps bundles the collaborators a Controller needs. Capture and Logger are
// optional.
type Deps struct {
	Body      PhysicsBody
	Collider  ColliderShape
	Space     SpatialQuery
	Transform Transform
	Pivot     Pivot
	Animator  AnimationSink
	Audio     AudioSink
	Schemes   SchemeSource
	Timers    Timers
	Capture   CaptureSetter
	Logger    *slog.Logger
}

// CameraPivot is a plain Pivot that records the last rotation set.
type CameraPivot struct {
	LocalRotation mgl64.Quat
}

func (p *CameraPivot) SetLocalRotation(q mgl64.Quat) {
	p.LocalRotation = q
}
