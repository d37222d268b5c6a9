package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// UpdateLook applies the stored look delta. The delta is not cleared; the
// input layer supplies a fresh one every frame.
func (c *Controller) UpdateLook() {
	scheme := c.deps.Schemes.ControlScheme()
	c.state.Scheme = scheme

	sens := c.cfg.MouseSensitivity
	if scheme == SchemeGamepad {
		sens = c.cfg.GamepadSensitivity
	}

	d := c.state.LookDelta
	c.state.Pitch = mgl64.Clamp(c.state.Pitch+d.Y()*sens, c.cfg.PitchMin, c.cfg.PitchMax)

	pitch := c.state.Pitch
	if c.cfg.InvertLook {
		pitch = -pitch
	}
	c.deps.Pivot.SetLocalRotation(mgl64.QuatRotate(mgl64.DegToRad(pitch), right))

	yaw := d.X() * sens
	if yaw == 0 {
		return
	}
	c.state.Yaw = wrapDegrees(c.state.Yaw + yaw)
	rot := mgl64.QuatRotate(mgl64.DegToRad(yaw), up).Mul(c.deps.Transform.Rotation()).Normalize()
	c.deps.Transform.SetRotation(rot)
}

// wrapDegrees maps a onto (-180, 180].
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
