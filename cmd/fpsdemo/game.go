package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/input"
	"github.com/milk9111/fpscontroller/levels"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/motion"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/script"
	"github.com/milk9111/fpscontroller/settings"
	"github.com/milk9111/fpscontroller/sound"
)

const (
	baseWidth      = 1280
	baseHeight     = 720
	ticksPerSecond = 60
	sampleRate     = 44100

	sensitivityStep = 1.25

	// below this height the character is returned to spawn
	killPlane = -20.0
)

type Options struct {
	Config string
	Level  string
	Script string
	Debug  bool
}

type Game struct {
	frames int
	debug  bool
	log    *slog.Logger

	configName string
	level      *levels.Level
	char       *character.Character
	spawn      mgl64.Vec3
	poller     *input.Poller
	driver     *script.Driver
	schemes    *input.SchemeSwitch
	prefs      *settings.Manager
	watcher    *prefabs.Watcher

	paused bool
	menu   *pauseMenu
	view   *views
}

func NewGame(opts Options) (*Game, error) {
	log := logger.L().With("component", "fpsdemo")

	spec, err := prefabs.LoadSpec[prefabs.ControllerSpec](opts.Config)
	if err != nil {
		return nil, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}

	lvl, err := levels.LoadLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", opts.Level, err)
	}

	prefs := settings.Open(settings.FromConfig(cfg))
	cfg = prefs.Apply(cfg)

	bank, err := sound.BankFromSpec(audio.NewContext(sampleRate), spec.Audio, nil)
	if err != nil {
		return nil, err
	}

	gravity := spec.Gravity
	if gravity <= 0 {
		gravity = physics.DefaultGravity
	}
	world := physics.NewWorld(gravity)
	lvl.Build(world)

	spawn := spec.SpawnPoint()
	if p, ok := lvl.SpawnPoint(); ok {
		spawn = p
	}

	g := &Game{
		debug:      opts.Debug,
		log:        log,
		configName: opts.Config,
		level:      lvl,
		spawn:      spawn,
		poller:     input.NewPoller(),
		prefs:      prefs,
	}

	g.schemes = input.NewSchemeSwitch(g.poller)
	if opts.Script != "" {
		g.driver, err = script.Load(opts.Script, g.grounded)
		if err != nil {
			return nil, err
		}
		g.schemes.Set(g.driver)
	}

	g.char, err = character.New(world, character.Options{
		Config:  cfg,
		Spawn:   spawn,
		Radius:  spec.Collider.Radius,
		Height:  spec.Collider.Height,
		Mass:    spec.Collider.Mass,
		Audio:   bank,
		Schemes: g.schemes,
		Capture: g.poller,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	g.view = newViews(g.char.Body.Position())
	g.menu = newPauseMenu(g)

	if w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts")); err != nil {
		log.Warn("hot reload disabled", "error", err)
	} else {
		g.watcher = w
	}

	log.Info("game started",
		"level", lvl.Name,
		"config", opts.Config,
		"script", opts.Script,
		"persistent_settings", prefs.Persistent())
	return g, nil
}

func (g *Game) grounded() bool {
	if g.char == nil {
		return false
	}
	return g.char.Controller.State().Grounded
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if err := g.prefs.Save(); err != nil {
		g.log.Error("save settings", "error", err)
	}
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()
	g.handleHotkeys()
	if g.paused {
		g.menu.refresh(g.prefs.Look())
		g.menu.ui.Update()
		return nil
	}

	ctrl := g.char.Controller
	if g.driver != nil {
		if err := g.driver.Step(ctrl); err != nil {
			g.log.Error("script step, falling back to devices", "script", g.driver.Name(), "error", err)
			g.driver = nil
			g.schemes.Set(g.poller)
		}
	} else {
		g.poller.Update(ctrl)
	}

	g.char.Tick(1.0 / ticksPerSecond)
	g.char.Frame()
	if g.char.Body.Position().Y() < killPlane {
		g.log.Info("fell out of the level, respawning")
		g.char.Respawn(g.spawn)
	}

	for _, p := range []motion.AnimParam{motion.AnimJump, motion.AnimReload, motion.AnimMelee} {
		if g.char.Animator.ConsumeTrigger(p) {
			g.log.Debug("animation trigger", "param", p.String())
		}
	}

	g.view.follow(g.char.Body.Position())
	return nil
}

func (g *Game) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if g.paused {
			g.resume()
		} else {
			g.pause()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.prefs.SetInvertLook(!g.prefs.Look().InvertLook)
		g.applyPrefs()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.scaleSensitivity(sensitivityStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.scaleSensitivity(1 / sensitivityStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.debug = !g.debug
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.char.Respawn(g.spawn)
	}
}

// pause releases the pointer and freezes the simulation behind the menu.
func (g *Game) pause() {
	g.paused = true
	g.poller.SetInputCapture(motion.CaptureNone)
}

func (g *Game) resume() {
	g.paused = false
	g.poller.SetInputCapture(motion.CaptureLocked)
}

func (g *Game) scaleSensitivity(factor float64) {
	look := g.prefs.Look()
	g.prefs.SetMouseSensitivity(look.MouseSensitivity * factor)
	g.prefs.SetGamepadSensitivity(look.GamepadSensitivity * factor)
	g.applyPrefs()
}

func (g *Game) applyPrefs() {
	cfg := g.prefs.Apply(g.char.Controller.Config())
	if err := g.char.Controller.SetConfig(cfg); err != nil {
		g.log.Warn("apply look settings", "error", err)
		return
	}
	if err := g.prefs.Save(); err != nil {
		g.log.Warn("save settings", "error", err)
	}
	g.log.Info("look settings", "mouse", cfg.MouseSensitivity, "gamepad", cfg.GamepadSensitivity, "invert", cfg.InvertLook)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(ch)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("watch", "error", err)
		default:
			return
		}
	}
}

func (g *Game) reload(ch prefabs.Change) {
	switch ch.Kind {
	case prefabs.ChangeSpec:
		if ch.Name() != filepath.Base(g.configName) {
			return
		}
		spec, err := prefabs.LoadSpec[prefabs.ControllerSpec](g.configName)
		if err != nil {
			g.log.Warn("reload tuning", "error", err)
			return
		}
		cfg, err := spec.Config()
		if err != nil {
			g.log.Warn("reload tuning", "error", err)
			return
		}
		if err := g.char.Controller.SetConfig(g.prefs.Apply(cfg)); err != nil {
			g.log.Warn("reload tuning", "error", err)
			return
		}
		g.log.Info("tuning reloaded", "file", ch.Name(), "speed", cfg.MoveSpeed, "jump", cfg.JumpImpulse)
	case prefabs.ChangeScript:
		if g.driver == nil || prefabs.ScriptFile(g.driver.Name()) != ch.Name() {
			return
		}
		src, err := prefabs.LoadScript(g.driver.Name())
		if err != nil {
			g.log.Warn("reload script", "error", err)
			return
		}
		if err := g.driver.Reload(src); err != nil {
			g.log.Warn("reload script", "error", err)
			return
		}
		g.log.Info("script reloaded", "script", g.driver.Name())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.view.draw(screen, g.level, g.char)

	st := g.char.Controller.State()
	pos := g.char.Body.Position()
	vel := g.char.Body.Velocity()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  scheme: %v  anim: %s\npos: %.2f %.2f %.2f  vel: %.2f %.2f %.2f\nyaw: %.1f  pitch: %.1f  grounded: %v  walking: %v  firing: %v",
		ebiten.ActualFPS(), st.Scheme, g.char.Animator.State(),
		pos.X(), pos.Y(), pos.Z(), vel.X(), vel.Y(), vel.Z(),
		st.Yaw, st.Pitch, st.Grounded, st.Walking, st.Firing,
	))

	if g.paused {
		g.menu.ui.Draw(screen)
		return
	}

	if g.debug {
		look := g.prefs.Look()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"frames: %d  ticks: %d  footsteps: %v\nmouse sens: %.3f  gamepad sens: %.3f  invert: %v\nEsc pause  F1 invert  -/= sensitivity  F3 overlay  F5 respawn",
			g.frames, g.char.Ticks(), g.char.Controller.FootstepsActive(),
			look.MouseSensitivity, look.GamepadSensitivity, look.InvertLook,
		), 0, baseHeight-48)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
