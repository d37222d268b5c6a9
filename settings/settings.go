package settings

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/fpscontroller/motion"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "fpscontroller"

	lookObject   = "settings"
	lookProperty = "look.yaml"

	minSensitivity = 0.01
	maxSensitivity = 100
)

// Look holds the player's look preferences. They override the prefab tuning.
type Look struct {
	MouseSensitivity   float64 `yaml:"mouse_sensitivity"`
	GamepadSensitivity float64 `yaml:"gamepad_sensitivity"`
	InvertLook         bool    `yaml:"invert_look"`
}

// FromConfig seeds preferences from controller tuning.
func FromConfig(cfg motion.Config) Look {
	return Look{
		MouseSensitivity:   cfg.MouseSensitivity,
		GamepadSensitivity: cfg.GamepadSensitivity,
		InvertLook:         cfg.InvertLook,
	}
}

// Apply overlays the preferences onto cfg.
func (l Look) Apply(cfg motion.Config) motion.Config {
	cfg.MouseSensitivity = clampSensitivity(l.MouseSensitivity)
	cfg.GamepadSensitivity = clampSensitivity(l.GamepadSensitivity)
	cfg.InvertLook = l.InvertLook
	return cfg
}

// Manager loads and saves Look through gdata. A nil gdata manager keeps
// preferences in memory only.
type Manager struct {
	store *gdata.Manager
	look  Look
	log   *slog.Logger
}

// Open connects to the per-user data directory. Failure is not fatal; the
// returned Manager runs in memory.
func Open(defaults Look) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	m := NewManager(store, defaults)
	if err != nil {
		m.log.Warn("settings storage unavailable", "error", err)
	}
	return m
}

func NewManager(store *gdata.Manager, defaults Look) *Manager {
	m := &Manager{
		store: store,
		look:  defaults,
		log:   slog.Default().With("component", "settings"),
	}
	if err := m.Load(); err != nil {
		m.log.Warn("load look settings", "error", err)
	}
	return m
}

// Load replaces the current preferences with the stored ones. Missing or
// unreadable data leaves them unchanged.
func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(lookObject, lookProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(lookObject, lookProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}

	look := m.look
	if err := yaml.Unmarshal(data, &look); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	look.MouseSensitivity = clampSensitivity(look.MouseSensitivity)
	look.GamepadSensitivity = clampSensitivity(look.GamepadSensitivity)
	m.look = look
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.look)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(lookObject, lookProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

func (m *Manager) Look() Look {
	return m.look
}

func (m *Manager) Persistent() bool {
	return m.store != nil
}

func (m *Manager) SetMouseSensitivity(v float64) {
	m.look.MouseSensitivity = clampSensitivity(v)
}

func (m *Manager) SetGamepadSensitivity(v float64) {
	m.look.GamepadSensitivity = clampSensitivity(v)
}

func (m *Manager) SetInvertLook(invert bool) {
	m.look.InvertLook = invert
}

// Apply overlays the current preferences onto cfg.
func (m *Manager) Apply(cfg motion.Config) motion.Config {
	return m.look.Apply(cfg)
}

func clampSensitivity(v float64) float64 {
	if v != v || v < minSensitivity {
		return minSensitivity
	}
	if v > maxSensitivity {
		return maxSensitivity
	}
	return v
}
