package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dreamless/config"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml)")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	level := flag.Int("level", 0, "level number to start on")
	watch := flag.Bool("watch", false, "reload the current level when its file changes on disk")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *level > 0 {
		cfg.Game.StartLevel = *level
	}
	cfg.Game.Debug = cfg.Game.Debug || *debug
	cfg.Game.Watch = cfg.Game.Watch || *watch
	cfg.Window.BaseMonitor = cfg.Window.BaseMonitor || *baseMonitor

	if cfg.Window.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatalf("dreamless: %v", err)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
