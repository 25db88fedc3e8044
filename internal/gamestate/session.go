// Package gamestate owns the mutable per-level state: the player, the
// screamer trigger and the win condition. It is advanced once per frame.
package gamestate

import (
	"math"

	"raycaster/internal/collision"
	"raycaster/internal/projection"
	"raycaster/internal/world"
)

// Settings are the per-level tunables, usually taken from config.
type Settings struct {
	MoveSpeed         float64 // world units per second
	PlayerRadius      float64 // world units
	FOV               float64 // radians
	StartAngle        float64 // radians
	DefaultSpawnX     float64 // world units, used when the map has no spawn marker
	DefaultSpawnY     float64
	StepInterval      float64 // minimum seconds between step events
	ScreamRadiusTiles float64
	ScreamDuration    float64 // seconds
	LOSMode           collision.LOSMode
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:         256,
		PlayerRadius:      12,
		FOV:               math.Pi / 3,
		DefaultSpawnX:     96,
		DefaultSpawnY:     96,
		StepInterval:      0.35,
		ScreamRadiusTiles: 1.5,
		ScreamDuration:    1.5,
		LOSMode:           collision.LOSSampled,
	}
}

// Events reports what happened during one Tick.
type Events struct {
	Stepped  bool
	Screamed bool
	Won      bool
}

// Session is the state of one level being played.
type Session struct {
	grid     *world.Grid
	settings Settings
	resolver *collision.Resolver
	los      *collision.LineOfSight

	player    Player
	screamer  Screamer
	stepTimer float64
	won       bool
}

// NewSession starts play on g.
func NewSession(g *world.Grid, settings Settings) *Session {
	tileSize := float64(g.TileSize())
	los := collision.NewLineOfSight(g, tileSize)
	los.SetMode(settings.LOSMode)

	s := &Session{
		grid:     g,
		settings: settings,
		resolver: collision.NewResolver(g, tileSize, settings.PlayerRadius),
		los:      los,
		screamer: NewScreamer(g, settings.ScreamRadiusTiles*tileSize, settings.ScreamDuration),
	}
	s.Restart()
	return s
}

// Restart puts the player back on the spawn and re-arms the trigger.
func (s *Session) Restart() {
	x, y := s.spawn()
	s.player = Player{
		X:      x,
		Y:      y,
		Angle:  s.settings.StartAngle,
		FOV:    s.settings.FOV,
		Speed:  s.settings.MoveSpeed,
		Radius: s.settings.PlayerRadius,
	}
	s.player = s.player.WithPose(s.player.Pose())
	s.screamer.Reset()
	s.stepTimer = 0
	s.won = false
}

func (s *Session) spawn() (x, y float64) {
	if i, j, ok := s.grid.FirstOccurrenceOfType(world.TileSpawn); ok {
		return s.grid.CellCenterWorld(i, j)
	}
	return s.settings.DefaultSpawnX, s.settings.DefaultSpawnY
}

// Tick advances the level by dt seconds with the given movement intent.
// Once the level is won further ticks do nothing.
func (s *Session) Tick(in collision.Intent, dt float64) Events {
	var ev Events
	if s.won {
		return ev
	}

	pose, moved := s.resolver.Move(s.player.Pose(), in, s.player.Speed, dt)
	s.player = s.player.WithPose(pose)

	s.stepTimer -= dt
	if moved && s.stepTimer <= 0 {
		ev.Stepped = true
		s.stepTimer = s.settings.StepInterval
	}

	ev.Screamed = s.screamer.Update(s.player.X, s.player.Y, dt, s.los)

	i, j := s.grid.WorldToCell(s.player.X, s.player.Y)
	if s.grid.TileAt(i, j).IsGoal() {
		s.won = true
		ev.Won = true
	}
	return ev
}

// Player returns the current player.
func (s *Session) Player() Player { return s.player }

// Camera returns the current view.
func (s *Session) Camera() projection.Camera { return s.player.Camera() }

// Screamer returns the trigger state.
func (s *Session) Screamer() Screamer { return s.screamer }

// Grid returns the level map.
func (s *Session) Grid() *world.Grid { return s.grid }

// Won reports whether the goal has been reached.
func (s *Session) Won() bool { return s.won }

// LineOfSight returns the checker used for the trigger.
func (s *Session) LineOfSight() *collision.LineOfSight { return s.los }
