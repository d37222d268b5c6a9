package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/levels"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/motion"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/script"
	"github.com/milk9111/fpscontroller/sound"
)

type options struct {
	config    string
	level     string
	script    string
	ticks     int
	tps       int
	every     int
	gamepad   bool
	logLevel  string
	logFormat string
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", prefabs.ControllerFile, "controller prefab in prefabs/")
	flag.StringVar(&opts.level, "level", "", "level in levels/; empty uses a flat floor")
	flag.StringVar(&opts.script, "script", "", "input script in prefabs/scripts; defaults to the prefab's script")
	flag.IntVar(&opts.ticks, "ticks", 600, "fixed steps to simulate")
	flag.IntVar(&opts.tps, "tps", 60, "fixed steps per second")
	flag.IntVar(&opts.every, "every", 30, "log state every n ticks; 0 logs only the summary")
	flag.BoolVar(&opts.gamepad, "gamepad", false, "report script input as gamepad")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.logFormat, "log-format", "console", "console, text or json")
	flag.Parse()

	logger.Init(logger.Config{Level: opts.logLevel, Format: opts.logFormat})
	if err := run(opts); err != nil {
		logger.L().Error("motionsim failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// every line carries the run id
	log := logger.L().With("component", "motionsim", "run", uuid.NewString())
	if opts.ticks <= 0 || opts.tps <= 0 {
		return fmt.Errorf("ticks and tps must be positive")
	}

	spec, err := prefabs.LoadSpec[prefabs.ControllerSpec](opts.config)
	if err != nil {
		return err
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}

	gravity := spec.Gravity
	if gravity <= 0 {
		gravity = physics.DefaultGravity
	}
	world := physics.NewWorld(gravity)
	spawn := spec.SpawnPoint()
	if opts.level != "" {
		lvl, err := levels.LoadLevel(opts.level)
		if err != nil {
			return err
		}
		lvl.Build(world)
		if p, ok := lvl.SpawnPoint(); ok {
			spawn = p
		}
	} else {
		world.AddGround(mgl64.Vec2{-1000, 0}, mgl64.Vec2{1000, 0}, 0, cfg.GroundMask)
	}

	name := opts.script
	if name == "" {
		name = spec.Script
	}
	if name == "" {
		return fmt.Errorf("no input script given and %s names none", opts.config)
	}

	var ch *character.Character
	driver, err := script.Load(name, func() bool { return ch != nil && ch.Controller.State().Grounded })
	if err != nil {
		return err
	}
	if opts.gamepad {
		driver.SetScheme(motion.SchemeGamepad)
	}

	cues := sound.NewLogSink(log)
	ch, err = character.New(world, character.Options{
		Config:  cfg,
		Spawn:   spawn,
		Radius:  spec.Collider.Radius,
		Height:  spec.Collider.Height,
		Mass:    spec.Collider.Mass,
		Audio:   cues,
		Schemes: driver,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	log.Info("simulating", "script", name, "ticks", opts.ticks, "tps", opts.tps, "spawn", spawn)
	dt := 1.0 / float64(opts.tps)
	for i := 0; i < opts.ticks; i++ {
		if err := driver.Step(ch.Controller); err != nil {
			return err
		}
		ch.Tick(dt)
		ch.Frame()
		for _, p := range []motion.AnimParam{motion.AnimJump, motion.AnimReload, motion.AnimMelee} {
			if ch.Animator.ConsumeTrigger(p) {
				log.Debug("animation trigger", "tick", ch.Ticks(), "param", p.String())
			}
		}

		if opts.every > 0 && (i+1)%opts.every == 0 {
			logState(log, ch)
		}
	}

	pos := ch.Body.Position()
	log.Info("done",
		"ticks", ch.Ticks(),
		"pos", fmt.Sprintf("%.2f,%.2f,%.2f", pos.X(), pos.Y(), pos.Z()),
		"footsteps", cues.Counts[motion.ClipFootstep],
		"jumps", cues.Counts[motion.ClipJump],
		"landings", cues.Counts[motion.ClipLand])
	return nil
}

func logState(log *slog.Logger, ch *character.Character) {
	st := ch.Controller.State()
	pos := ch.Body.Position()
	log.Info("state",
		"tick", ch.Ticks(),
		"pos", fmt.Sprintf("%.2f,%.2f,%.2f", pos.X(), pos.Y(), pos.Z()),
		"yaw", fmt.Sprintf("%.1f", st.Yaw),
		"pitch", fmt.Sprintf("%.1f", st.Pitch),
		"grounded", st.Grounded,
		"walking", st.Walking,
		"anim", ch.Animator.State())
}
