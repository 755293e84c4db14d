package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/dreamless/analytics"
	"github.com/milk9111/dreamless/assets"
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/config"
	"github.com/milk9111/dreamless/graphics"
	"github.com/milk9111/dreamless/levels"
	"github.com/milk9111/dreamless/obj"
	"github.com/milk9111/dreamless/prefabs"
	"github.com/milk9111/dreamless/sound"
)

type Game struct {
	cfg   config.Config
	start time.Time
	clock common.Clock

	control obj.ControlState
	input   *obj.Input
	ctx     *obj.Context

	gfx      *graphics.System
	mixer    *sound.Mixer
	reporter *analytics.Reporter
	levels   levels.Source
	watcher  *levels.Watcher
	changes  *levels.ChangeTracker
	// statsMod is the modification time of the walker stats in use.
	statsMod time.Time

	screen *obj.GameScreen
	// pending is the level to start before the next tick, 0 for none.
	pending    int
	transition *Transition

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg config.Config) (*Game, error) {
	gfx, err := graphics.NewSystem()
	if err != nil {
		return nil, err
	}
	stats, err := prefabs.LoadStats()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		start:      time.Now(),
		gfx:        gfx,
		statsMod:   prefabs.StatsModTime(),
		levels:     levels.Source{Dir: cfg.Game.LevelDir},
		pending:    cfg.Game.StartLevel,
		transition: NewTransition(),
	}
	g.input = obj.NewInput(&g.control)
	g.mixer = sound.NewMixer(assets.AudioContext(), cfg.Audio.Volume, cfg.Audio.Mute)
	if cfg.Audio.Music {
		g.mixer.Music(sound.MusicVolume)
	}

	g.ctx = &obj.Context{
		Control:  &g.control,
		Sound:    g.mixer,
		Levels:   g.levels,
		Director: g,
		Stats:    stats,
		Debug:    cfg.Game.Debug,
	}
	if cfg.Analytics.Enabled {
		g.reporter = analytics.NewReporter(analytics.Options{
			Endpoint: cfg.Analytics.Endpoint,
			Start:    analytics.NewStart(),
		})
		g.ctx.Analytics = g.reporter
	}

	if cfg.Game.Watch {
		w, err := levels.NewWatcher(filepath.Join(cfg.Game.LevelDir, "level"))
		if err != nil {
			log.Printf("level watch disabled: %v", err)
		} else {
			g.watcher = w
			g.changes = levels.NewChangeTracker(g.levels)
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// LoadLevel asks for level n to start before the next tick.
func (g *Game) LoadLevel(n int) {
	g.pending = n
}

func (g *Game) now() uint32 {
	return uint32(time.Since(g.start).Milliseconds())
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollWatcher()
	g.input.Update()

	if g.paused {
		g.pauseUI.Update()
		if g.control.ButtonInstant(obj.ButtonEscape) {
			g.resume()
		}
		g.control.Update()
		return nil
	}
	if g.control.ButtonInstant(obj.ButtonEscape) && g.screen != nil {
		g.paused = true
		g.control.Update()
		return nil
	}

	n := g.clock.Advance(g.now())
	if n == 0 && g.pending != 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		t := g.clock.TickTime(i, n)
		if g.pending != 0 {
			if err := g.startLevel(t); err != nil {
				return err
			}
		}
		g.screen.Update(t)
		g.transition.Update()
		g.control.Update()
	}
	g.mixer.Commit()
	return nil
}

func (g *Game) resume() {
	g.paused = false
	g.clock.Reset()
}

func (g *Game) startLevel(t uint32) error {
	n := g.pending
	g.pending = 0
	if !g.levels.Exists(n) && n != 1 {
		log.Printf("no level %d, starting over", n)
		n = 1
	}
	if g.changes != nil {
		g.reloadStats()
	}
	scr, err := obj.LoadGameScreen(g.ctx, n, t)
	if err != nil {
		return err
	}
	if g.changes != nil {
		g.changes.Mark(n)
	}
	if g.screen != nil {
		g.screen.Close()
	}
	g.screen = scr
	g.transition.Start()
	return nil
}

// reloadStats picks up walker stats edited on disk since they were loaded.
func (g *Game) reloadStats() {
	mod := prefabs.StatsModTime()
	if !mod.After(g.statsMod) {
		return
	}
	stats, err := prefabs.LoadStats()
	if err != nil {
		log.Printf("keeping previous walker stats: %v", err)
		return
	}
	log.Printf("walker stats changed on disk, reloading")
	g.ctx.Stats = stats
	g.statsMod = mod
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			n, ok := levels.LevelNum(name)
			if ok && g.screen != nil && n == g.screen.LevelNum() && g.changes.Changed(n) {
				log.Printf("level %d changed on disk, reloading", n)
				g.pending = n
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("level watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	g.gfx.SetSize(b.Dx(), b.Dy())
	g.gfx.Finalize()

	delta := g.clock.Delta(g.now())
	if g.paused {
		delta = 0
	}
	if g.screen != nil {
		g.screen.Draw(g.gfx, delta)
	}
	g.gfx.Draw(screen)
	g.transition.Draw(screen, delta)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.cfg.Game.Debug && g.screen != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Level: %d    Minions: %d    TPS: %.2f    FPS: %.2f",
			g.screen.LevelNum(), g.screen.MinionsLeft(), ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	s := ebiten.Monitor().DeviceScaleFactor()
	return outsideWidth * s, outsideHeight * s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close records the level in progress and shuts down audio, analytics and
// the level watcher.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
	g.reporter.Close()
	g.mixer.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
