package motion

import (
	"errors"
	"fmt"
	"math"
)

var ErrConfiguration = errors.New("motion: configuration error")

const (
	DefaultFootstepInterval = 0.4
	DefaultGroundClearance  = 0.1

	pitchLimit     = 90.0
	maxSensitivity = 100.0
)

// Config holds controller tuning. Pitch limits are in degrees; sensitivities
// are degrees per unit of look delta.
type Config struct {
	MoveSpeed          float64
	JumpImpulse        float64
	GroundMask         LayerMask
	PitchMin           float64
	PitchMax           float64
	InvertLook         bool
	MouseSensitivity   float64
	GamepadSensitivity float64

	FootstepInterval float64
	FootstepDelay    float64
	GroundClearance  float64
}

// DefaultConfig returns tuning suitable for a 1.8 unit tall character.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:          5,
		JumpImpulse:        5,
		GroundMask:         1,
		PitchMin:           -80,
		PitchMax:           80,
		MouseSensitivity:   0.1,
		GamepadSensitivity: 2,
		FootstepInterval:   DefaultFootstepInterval,
		GroundClearance:    DefaultGroundClearance,
	}
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"move speed", c.MoveSpeed},
		{"jump impulse", c.JumpImpulse},
		{"pitch min", c.PitchMin},
		{"pitch max", c.PitchMax},
		{"mouse sensitivity", c.MouseSensitivity},
		{"gamepad sensitivity", c.GamepadSensitivity},
		{"footstep interval", c.FootstepInterval},
		{"footstep delay", c.FootstepDelay},
		{"ground clearance", c.GroundClearance},
	}
	for _, ch := range checks {
		if !finite(ch.v) {
			return configError("%s is not finite", ch.name)
		}
	}

	if c.MoveSpeed < 0 {
		return configError("move speed %v is negative", c.MoveSpeed)
	}
	if c.JumpImpulse < 0 {
		return configError("jump impulse %v is negative", c.JumpImpulse)
	}
	if c.GroundMask == 0 {
		return configError("ground mask is empty")
	}
	if c.PitchMin < -pitchLimit || c.PitchMax > pitchLimit {
		return configError("pitch range [%v, %v] exceeds ±%v", c.PitchMin, c.PitchMax, pitchLimit)
	}
	if c.PitchMin > c.PitchMax {
		return configError("pitch min %v above pitch max %v", c.PitchMin, c.PitchMax)
	}
	if c.MouseSensitivity <= 0 || c.MouseSensitivity > maxSensitivity {
		return configError("mouse sensitivity %v outside (0, %v]", c.MouseSensitivity, maxSensitivity)
	}
	if c.GamepadSensitivity <= 0 || c.GamepadSensitivity > maxSensitivity {
		return configError("gamepad sensitivity %v outside (0, %v]", c.GamepadSensitivity, maxSensitivity)
	}
	if c.FootstepInterval <= 0 {
		return configError("footstep interval %v must be positive", c.FootstepInterval)
	}
	if c.FootstepDelay < 0 {
		return configError("footstep delay %v is negative", c.FootstepDelay)
	}
	if c.GroundClearance < 0 {
		return configError("ground clearance %v is negative", c.GroundClearance)
	}
	return nil
}
