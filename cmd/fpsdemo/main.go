package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpscontroller/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	configName := flag.String("config", "controller.yaml", "controller prefab in prefabs/")
	levelName := flag.String("level", "training", "level name in levels/ (basename, .json optional)")
	scriptName := flag.String("script", "", "drive the character from a script in prefabs/scripts instead of devices")
	logFormat := flag.String("log-format", "console", "log format: console, text or json")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: *logFormat})
	log := logger.L()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("fpscontroller")
	ebiten.SetTPS(ticksPerSecond)

	opts := Options{
		Config: *configName,
		Level:  *levelName,
		Script: *scriptName,
		Debug:  *debug,
	}
	if err := run(opts); err != nil {
		log.Error("fpsdemo exited", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	game, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer game.Close()
	return ebiten.RunGame(game)
}
