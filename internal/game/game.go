// Package game is the ebiten shell around the raycasting core: it owns the
// window loop, the menu flow, input polling, drawing and sound dispatch.
package game

import (
	"errors"
	"fmt"
	"time"

	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/gamestate"
	"raycaster/internal/logger"
	"raycaster/internal/minimap"
	"raycaster/internal/projection"
	"raycaster/internal/raycast"
	"raycaster/internal/threading"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// ErrExit is returned from the game loop to request a clean exit
var ErrExit = errors.New("exit game")

// GameState is the top-level screen being shown.
type GameState int

const (
	StateMenu GameState = iota
	StateLevelSelect
	StatePlaying
	StateWin
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateLevelSelect:
		return "level_select"
	case StatePlaying:
		return "playing"
	case StateWin:
		return "win"
	}
	return "unknown"
}

// SoundPlayer consumes the per-frame session events. *audio.SoundManager
// implements it.
type SoundPlayer interface {
	Handle(ev gamestate.Events)
}

type Game struct {
	config   *config.Config
	levels   *world.Levels
	settings gamestate.Settings
	session  *gamestate.Session
	state    GameState

	threading *threading.ThreadingComponents
	projector *projection.Projector
	minimap   *minimap.Projector
	sound     SoundPlayer
	input     *InputHandler
	renderer  *Renderer
	log       *logrus.Entry

	slices      []projection.WallSlice
	showHUD     bool
	levelCursor int

	// Low frame rate logging
	perfLowFpsSince time.Time
	perfLastPerfLog time.Time
}

// SettingsFromConfig converts the loaded configuration into session settings.
func SettingsFromConfig(cfg *config.Config) (gamestate.Settings, error) {
	mode, err := collision.ParseLOSMode(cfg.Screamer.LOSMode)
	if err != nil {
		return gamestate.Settings{}, fmt.Errorf("screamer: %w", err)
	}
	return gamestate.Settings{
		MoveSpeed:         cfg.GetMoveSpeed(),
		PlayerRadius:      cfg.Movement.PlayerRadius,
		FOV:               cfg.GetCameraFOV(),
		StartAngle:        cfg.GetStartAngle(),
		DefaultSpawnX:     cfg.World.DefaultSpawnX,
		DefaultSpawnY:     cfg.World.DefaultSpawnY,
		StepInterval:      cfg.Movement.StepInterval,
		ScreamRadiusTiles: cfg.Screamer.RadiusTiles,
		ScreamDuration:    cfg.Screamer.Duration,
		LOSMode:           mode,
	}, nil
}

// ProjectionOptions converts the loaded configuration into projector options.
func ProjectionOptions(cfg *config.Config) projection.Options {
	return projection.Options{
		ScreenWidth:    cfg.GetScreenWidth(),
		ScreenHeight:   cfg.GetScreenHeight(),
		MaxHeightScale: cfg.Raycast.MaxHeightScale,
		MinBrightness:  cfg.Graphics.BrightnessMin,
		Falloff:        cfg.Graphics.ShadeFalloff,
		SideShade:      cfg.Graphics.SideShade,
	}
}

// NewGame creates the game shell. sound may be nil to run silently.
func NewGame(cfg *config.Config, levels *world.Levels, sound SoundPlayer) (*Game, error) {
	if levels == nil || levels.Len() == 0 {
		return nil, world.ErrNoLevels
	}
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	tc := threading.NewThreadingComponents(cfg.Raycast.Workers)
	if cfg.Display.TPS > 0 {
		tc.PerformanceMonitor.SetLowFPSLimit(float64(cfg.Display.TPS) / 2)
	}
	caster := raycast.NewCaster(cfg.Raycast.MaxSteps, cfg.Raycast.MinDistance)

	g := &Game{
		config:    cfg,
		levels:    levels,
		settings:  settings,
		state:     StateMenu,
		threading: tc,
		projector: projection.NewProjector(ProjectionOptions(cfg), caster, tc.Pool),
		minimap: minimap.NewProjector(minimap.Options{
			TilePx: cfg.Minimap.TilePx,
			Margin: cfg.Minimap.Margin,
		}),
		sound:   sound,
		showHUD: true,
		log:     logger.For("game"),
	}
	g.input = NewInputHandler(g)
	g.renderer = NewRenderer(g)

	workers := 1
	if tc.Pool != nil {
		workers = tc.Pool.GetNumWorkers()
	}
	g.log.WithFields(logrus.Fields{"levels": levels.Len(), "workers": workers}).Info("game ready")
	return g, nil
}

// State returns the screen being shown.
func (g *Game) State() GameState { return g.state }

// Session returns the level in play, or nil before the first level starts.
func (g *Game) Session() *gamestate.Session { return g.session }

// startLevel begins play on the level at idx.
func (g *Game) startLevel(idx int) {
	g.levels.SetCurrent(idx)
	grid := g.levels.Active()
	if gaps := grid.EnclosureGaps(); len(gaps) > 0 {
		g.log.WithFields(logrus.Fields{
			"level": g.levels.Name(g.levels.Index()),
			"gaps":  gaps,
		}).Warn("level border is not closed")
	}
	g.session = gamestate.NewSession(grid, g.settings)
	g.threading.PerformanceMonitor.ResetColumns()
	g.input.ReleaseMouse()
	g.state = StatePlaying
	g.log.WithFields(logrus.Fields{
		"level":  g.levels.Name(g.levels.Index()),
		"width":  grid.Width(),
		"height": grid.Height(),
	}).Info("level started")
}

// nextLevel advances to the following level, or returns to the menu after
// the last one.
func (g *Game) nextLevel() {
	if !g.levels.Next() {
		g.setState(StateMenu)
		return
	}
	g.startLevel(g.levels.Index())
}

func (g *Game) setState(s GameState) {
	if s != StatePlaying {
		g.input.ReleaseMouse()
	}
	g.log.WithFields(logrus.Fields{"from": g.state, "to": s}).Debug("state change")
	g.state = s
}

// Update advances one tick.
func (g *Game) Update() error {
	switch g.state {
	case StateMenu:
		return g.updateMenu()
	case StateLevelSelect:
		g.updateLevelSelect()
	case StatePlaying:
		g.updatePlaying()
	case StateWin:
		g.updateWin()
	}
	g.maybeLogPerfDrop()
	return nil
}

func (g *Game) updatePlaying() {
	if g.input.Back() {
		g.setState(StateMenu)
		return
	}
	g.input.HandleToggles()

	dt := 1 / float64(g.config.GetTPS())
	g.applyEvents(g.session.Tick(g.input.Intent(dt), dt))
}

// applyEvents forwards one tick's events to the sound player and moves to
// the win screen when the goal is reached.
func (g *Game) applyEvents(ev gamestate.Events) {
	if g.sound != nil {
		g.sound.Handle(ev)
	}
	if ev.Screamed {
		g.log.WithField("level", g.levels.Name(g.levels.Index())).Info("screamer triggered")
	}
	if ev.Won {
		g.log.WithField("level", g.levels.Name(g.levels.Index())).Info("level complete")
		g.setState(StateWin)
	}
}

// Draw renders the current screen.
func (g *Game) Draw(screen *ebiten.Image) {
	frameTimer := g.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	switch g.state {
	case StateMenu:
		g.renderer.DrawMenu(screen)
	case StateLevelSelect:
		g.renderer.DrawLevelSelect(screen)
	case StatePlaying:
		g.renderer.RenderFrame(screen)
	case StateWin:
		g.renderer.RenderFrame(screen)
		g.renderer.DrawWin(screen)
	}
}

// Layout returns the screen dimensions. A resizable window follows the
// outside size and the projector is resized with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	d := &g.config.Display
	if d.Resizable && outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != d.ScreenWidth || outsideHeight != d.ScreenHeight) {
		d.ScreenWidth, d.ScreenHeight = outsideWidth, outsideHeight
		g.projector.Resize(outsideWidth, outsideHeight)
	}
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// Close stops the worker pool.
func (g *Game) Close() {
	g.threading.Shutdown()
}
