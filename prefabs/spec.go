package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/motion"
	"gopkg.in/yaml.v3"
)

const ControllerFile = "controller.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ControllerSpec is the character tuning prefab. Omitted tuning fields keep
// motion.DefaultConfig values.
type ControllerSpec struct {
	Name               string       `yaml:"name"`
	MoveSpeed          *float64     `yaml:"move_speed"`
	JumpImpulse        *float64     `yaml:"jump_impulse"`
	GroundLayers       []uint       `yaml:"ground_layers"`
	PitchMin           *float64     `yaml:"pitch_min"`
	PitchMax           *float64     `yaml:"pitch_max"`
	InvertLook         *bool        `yaml:"invert_look"`
	MouseSensitivity   *float64     `yaml:"mouse_sensitivity"`
	GamepadSensitivity *float64     `yaml:"gamepad_sensitivity"`
	FootstepInterval   *float64     `yaml:"footstep_interval"`
	FootstepDelay      *float64     `yaml:"footstep_delay"`
	GroundClearance    *float64     `yaml:"ground_clearance"`
	Collider           ColliderSpec `yaml:"collider"`
	Spawn              []float64    `yaml:"spawn"`
	Gravity            float64      `yaml:"gravity"`
	Audio              []AudioSpec  `yaml:"audio"`
	Script             string       `yaml:"script"`
}

type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

// AudioSpec names a clip set. Variants come from wav files, or from
// generated tones when no files are listed.
type AudioSpec struct {
	Name   string     `yaml:"name"`
	Files  []string   `yaml:"files"`
	Tones  []ToneSpec `yaml:"tones"`
	Volume float64    `yaml:"volume"`
}

type ToneSpec struct {
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
}

// Config builds and validates controller tuning from the spec.
func (s *ControllerSpec) Config() (motion.Config, error) {
	cfg := motion.DefaultConfig()
	if s == nil {
		return cfg, nil
	}

	floats := []struct {
		src *float64
		dst *float64
	}{
		{s.MoveSpeed, &cfg.MoveSpeed},
		{s.JumpImpulse, &cfg.JumpImpulse},
		{s.PitchMin, &cfg.PitchMin},
		{s.PitchMax, &cfg.PitchMax},
		{s.MouseSensitivity, &cfg.MouseSensitivity},
		{s.GamepadSensitivity, &cfg.GamepadSensitivity},
		{s.FootstepInterval, &cfg.FootstepInterval},
		{s.FootstepDelay, &cfg.FootstepDelay},
		{s.GroundClearance, &cfg.GroundClearance},
	}
	for _, f := range floats {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if s.InvertLook != nil {
		cfg.InvertLook = *s.InvertLook
	}

	if len(s.GroundLayers) > 0 {
		var mask motion.LayerMask
		for _, layer := range s.GroundLayers {
			if layer > 30 {
				return cfg, fmt.Errorf("%w: ground layer %d out of range", motion.ErrConfiguration, layer)
			}
			mask |= 1 << layer
		}
		cfg.GroundMask = mask
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

// SpawnPoint returns the spawn position, defaulting to the origin.
func (s *ControllerSpec) SpawnPoint() mgl64.Vec3 {
	var p mgl64.Vec3
	if s == nil {
		return p
	}
	copy(p[:], s.Spawn)
	return p
}

// Clip resolves the spec's clip name to its ID.
func (a AudioSpec) Clip() (motion.ClipID, error) {
	id, ok := motion.ParseClipID(a.Name)
	if !ok {
		return 0, fmt.Errorf("%w: unknown audio clip %q", motion.ErrConfiguration, a.Name)
	}
	return id, nil
}
