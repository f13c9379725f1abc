package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"

	"github.com/illdynamics/qommandah-qeen/common"
	"github.com/illdynamics/qommandah-qeen/input"
	"github.com/illdynamics/qommandah-qeen/levels"
	"github.com/illdynamics/qommandah-qeen/prefabs"
	"github.com/illdynamics/qommandah-qeen/render"
	"github.com/illdynamics/qommandah-qeen/sim"
)

type Options struct {
	Level  string
	Debug  bool
	Record string
	Watch  bool
	Logger *logrus.Logger
}

type Game struct {
	opts Options
	log  *logrus.Logger

	sim      *sim.Simulation
	recorder *sim.Recorder
	decoder  *input.Decoder
	stepper  *sim.Stepper
	camera   *render.Camera
	watcher  *prefabs.Watcher

	panel     *ebitenui.UI
	panelKey  string
	showPanel bool

	clipboardReady bool
	status         string
	statusFrames   int
}

func NewGame(opts Options) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}

	cfg, err := sim.LoadConfig(log)
	if err != nil {
		return nil, err
	}
	stage, err := levels.LoadStage(opts.Level)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(stage, cfg, log)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:      opts,
		log:       log,
		sim:       s,
		decoder:   input.NewDecoder(),
		stepper:   sim.NewStepper(0),
		showPanel: true,
	}
	g.resetCamera()
	if opts.Record != "" {
		g.recorder = sim.NewRecorder(s)
	}

	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("clipboard unavailable")
	} else {
		g.clipboardReady = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"), "levels")
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showPanel = !g.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.sim.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reloadLevel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}
	g.drainWatcher()

	if g.showPanel {
		g.refreshPanel()
		g.panel.Update()
	}

	g.decoder.Poll()
	for n := g.stepper.Frame(g.sim.Effects().TimeScale); n > 0; n-- {
		in := g.decoder.Next()
		if g.recorder != nil {
			g.recorder.Tick(in)
		} else {
			g.sim.Tick(in)
		}
	}

	snap := g.sim.Last()
	box := render.Interpolate(snap.Player.Prev.Snapshot(), snap.Player.Body.Snapshot(), g.stepper.Alpha())
	g.camera.Follow(box.Center())

	if g.statusFrames > 0 {
		g.statusFrames--
	}
	return nil
}

func (g *Game) refreshPanel() {
	active := g.sim.Last().Hooks
	key := panelKey(active)
	if g.panel != nil && key == g.panelKey {
		return
	}
	g.panel = NewHookPanel(g.sim.Hooks(), active, func(id string) {
		if err := g.sim.ToggleHook(id); err != nil {
			g.log.WithError(err).Warn("toggle hook")
		}
	})
	g.panelKey = key
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x12, G: 0x12, B: 0x1c, A: 0xff})

	snap := g.sim.Last()
	flip := snap.Effects.FlipRender
	g.drawTiles(screen, flip)
	g.drawEntities(screen, snap, flip)
	g.drawHUD(screen, snap)

	if g.showPanel && g.panel != nil {
		g.panel.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) resetCamera() {
	grid := g.sim.Stage().Grid
	tile := render.Pixels(grid.TileSize())
	g.camera = render.NewCamera(common.BaseWidth, common.BaseHeight, float64(grid.Width())*tile, float64(grid.Height())*tile)
	g.stepper.Reset()
}

func (g *Game) reloadLevel() {
	stage, err := levels.LoadStage(g.opts.Level)
	if err != nil {
		g.log.WithError(err).Error("reload level")
		g.flash("level reload failed")
		return
	}
	g.stopRecording()
	if err := g.sim.LoadLevel(stage); err != nil {
		g.log.WithError(err).Error("reload level")
		g.flash("level reload failed")
		return
	}
	g.resetCamera()
	g.panel = nil
	g.flash("level reloaded")
}

func (g *Game) drainWatcher() {
	for g.watcher != nil {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(ch)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(ch prefabs.Change) {
	log := g.log.WithField("file", ch.Name())
	switch ch.Kind {
	case prefabs.ChangeScript:
		if rt := g.sim.Scripts(); rt != nil {
			rt.Invalidate(ch.Name())
		}
		log.Info("script changed")
		g.reloadLevel()
	case prefabs.ChangeSpec:
		cfg, err := sim.LoadConfig(g.log)
		if err != nil {
			log.WithError(err).Warn("spec rejected, keeping the running one")
			g.flash("spec rejected: " + ch.Name())
			return
		}
		if err := g.sim.Reconfigure(cfg); err != nil {
			log.WithError(err).Warn("spec rejected, keeping the running one")
			return
		}
		log.Info("spec reloaded")
		switch ch.Name() {
		case prefabs.HooksFile, prefabs.EnemiesFile:
			g.reloadLevel()
		default:
			g.flash("reloaded " + ch.Name())
		}
	case prefabs.ChangeLevel:
		if ch.Name() == filepath.Base(g.opts.Level) {
			g.reloadLevel()
		}
	}
}

func (g *Game) copySnapshot() {
	if !g.clipboardReady {
		g.flash("clipboard unavailable")
		return
	}
	out, err := g.sim.Last().YAML()
	if err != nil {
		g.log.WithError(err).Error("encode snapshot")
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.flash("snapshot copied")
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusFrames = 2 * common.TPS
}

func (g *Game) stopRecording() {
	if g.recorder == nil {
		return
	}
	g.saveRecording()
	g.recorder = nil
	g.log.Warn("recording stopped at level reload")
}

func (g *Game) saveRecording() {
	if g.recorder == nil {
		return
	}
	data, err := g.recorder.Recording().Marshal()
	if err != nil {
		g.log.WithError(err).Error("encode recording")
		return
	}
	if err := os.WriteFile(g.opts.Record, data, 0o644); err != nil {
		g.log.WithError(err).Error("write recording")
		return
	}
	g.log.WithFields(logrus.Fields{"file": g.opts.Record, "frames": len(g.recorder.Recording().Frames)}).Info("recording saved")
}

// Close flushes the recording and stops the watcher.
func (g *Game) Close() {
	g.saveRecording()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) statusLine() string {
	if g.statusFrames == 0 {
		return ""
	}
	return fmt.Sprintf("> %s", g.status)
}
