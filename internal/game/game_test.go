package game

import (
	"errors"
	"math"
	"testing"

	"raycaster/internal/collision"
	"raycaster/internal/config"
	"raycaster/internal/gamestate"
	"raycaster/internal/world"
)

type recordingSound struct {
	events []gamestate.Events
}

func (r *recordingSound) Handle(ev gamestate.Events) {
	r.events = append(r.events, ev)
}

func testGrid(t *testing.T, rows ...string) *world.Grid {
	t.Helper()
	runes := make([][]rune, len(rows))
	for j, r := range rows {
		runes[j] = []rune(r)
	}
	g, err := world.NewGrid(runes, 64)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func testGame(t *testing.T, sound SoundPlayer) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Raycast.Workers = 1

	levels := world.NewLevels(
		[]string{"01", "02", "03"},
		[]*world.Grid{
			testGrid(t, "#####", "#P g#", "#####"),
			testGrid(t, "####", "#Pg#", "####"),
			testGrid(t, "######", "#P  g#", "######"),
		},
	)
	g, err := NewGame(cfg, levels, sound)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestNewGameRequiresLevels(t *testing.T) {
	cfg := config.Default()
	if _, err := NewGame(cfg, world.NewLevels(nil, nil), nil); !errors.Is(err, world.ErrNoLevels) {
		t.Errorf("got %v, want ErrNoLevels", err)
	}
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.FieldOfView = 90
	cfg.Camera.StartAngle = 180
	cfg.Screamer.LOSMode = "exact"

	s, err := SettingsFromConfig(cfg)
	if err != nil {
		t.Fatalf("SettingsFromConfig: %v", err)
	}
	if math.Abs(s.FOV-math.Pi/2) > 1e-12 {
		t.Errorf("FOV = %v, want Pi/2", s.FOV)
	}
	if math.Abs(s.StartAngle-math.Pi) > 1e-12 {
		t.Errorf("StartAngle = %v, want Pi", s.StartAngle)
	}
	if s.LOSMode != collision.LOSExact {
		t.Errorf("LOSMode = %v, want exact", s.LOSMode)
	}

	cfg.Screamer.LOSMode = "psychic"
	if _, err := SettingsFromConfig(cfg); err == nil {
		t.Errorf("expected an error for an unknown line of sight mode")
	}
}

func TestMenuFlow(t *testing.T) {
	g := testGame(t, nil)

	if g.State() != StateMenu {
		t.Fatalf("initial state = %v, want menu", g.State())
	}
	if err := g.applyMenu(menuInput{levelSelect: true}); err != nil {
		t.Fatalf("applyMenu: %v", err)
	}
	if g.State() != StateLevelSelect {
		t.Fatalf("state = %v, want level_select", g.State())
	}

	g.applyLevelSelect(menuInput{back: true})
	if g.State() != StateMenu {
		t.Fatalf("ESC from level select: state = %v, want menu", g.State())
	}

	if err := g.applyMenu(menuInput{confirm: true}); err != nil {
		t.Fatalf("applyMenu: %v", err)
	}
	if g.State() != StatePlaying || g.Session() == nil {
		t.Fatalf("ENTER should start play, state = %v", g.State())
	}
	if g.Session().Grid() != g.levels.Active() {
		t.Errorf("session is not on the active level")
	}

	g.setState(StateMenu)
	if err := g.applyMenu(menuInput{back: true}); !errors.Is(err, ErrExit) {
		t.Errorf("ESC on the menu returned %v, want ErrExit", err)
	}
}

func TestLevelSelect(t *testing.T) {
	g := testGame(t, nil)
	g.openLevelSelect()

	g.applyLevelSelect(menuInput{digit: 9})
	if g.State() != StateLevelSelect {
		t.Fatalf("digit beyond the level count should be ignored")
	}

	g.applyLevelSelect(menuInput{up: true})
	if g.levelCursor != 2 {
		t.Errorf("cursor should wrap to the last level, got %d", g.levelCursor)
	}
	g.applyLevelSelect(menuInput{down: true})
	if g.levelCursor != 0 {
		t.Errorf("cursor should wrap to the first level, got %d", g.levelCursor)
	}

	g.applyLevelSelect(menuInput{digit: 2})
	if g.State() != StatePlaying || g.levels.Index() != 1 {
		t.Fatalf("digit 2 should start level index 1, state %v index %d", g.State(), g.levels.Index())
	}

	g.openLevelSelect()
	if g.levelCursor != 1 {
		t.Errorf("level select should open on the current level, got %d", g.levelCursor)
	}
	g.applyLevelSelect(menuInput{down: true})
	g.applyLevelSelect(menuInput{confirm: true})
	if g.levels.Index() != 2 {
		t.Errorf("ENTER should start the cursor level, got %d", g.levels.Index())
	}
}

func TestPlayToWinAndNext(t *testing.T) {
	sound := &recordingSound{}
	g := testGame(t, sound)
	g.startLevel(0)

	dt := 1 / float64(g.config.GetTPS())
	for i := 0; i < 600 && g.State() == StatePlaying; i++ {
		g.applyEvents(g.session.Tick(collision.Intent{Forward: 1}, dt))
	}
	if g.State() != StateWin {
		t.Fatalf("walking east should reach the goal, state = %v at %+v", g.State(), g.session.Player())
	}

	stepped, won := false, false
	for _, ev := range sound.events {
		stepped = stepped || ev.Stepped
		won = won || ev.Won
	}
	if !stepped || !won {
		t.Errorf("sound player saw stepped=%v won=%v, want both", stepped, won)
	}

	g.applyWin(menuInput{next: true})
	if g.State() != StatePlaying || g.levels.Index() != 1 {
		t.Fatalf("N should start the next level, state %v index %d", g.State(), g.levels.Index())
	}

	g.setState(StateWin)
	g.applyWin(menuInput{confirm: true})
	if g.State() != StatePlaying || g.levels.Index() != 1 {
		t.Errorf("ENTER should replay the same level, index %d", g.levels.Index())
	}
	x, y := g.levels.Active().CellCenterWorld(1, 1)
	if p := g.session.Player(); p.X != x || p.Y != y {
		t.Errorf("replay should start on the spawn, got (%v, %v)", p.X, p.Y)
	}
}

func TestWinOnLastLevelReturnsToMenu(t *testing.T) {
	g := testGame(t, nil)
	g.startLevel(2)
	g.setState(StateWin)

	g.applyWin(menuInput{next: true})
	if g.State() != StateMenu {
		t.Errorf("N after the last level: state = %v, want menu", g.State())
	}

	g.setState(StateWin)
	g.applyWin(menuInput{levelSelect: true})
	if g.State() != StateLevelSelect {
		t.Errorf("L on the win screen: state = %v, want level_select", g.State())
	}
	g.setState(StateWin)
	g.applyWin(menuInput{back: true})
	if g.State() != StateMenu {
		t.Errorf("ESC on the win screen: state = %v, want menu", g.State())
	}
}

func TestStartLevelClearsColumnCounts(t *testing.T) {
	g := testGame(t, nil)
	g.startLevel(0)

	pm := g.threading.PerformanceMonitor
	pm.StartRaycast().EndRaycast(0, 640)
	g.startLevel(1)

	if m := pm.GetCurrentMetrics(); m.ColumnsHit != 0 || m.ColumnsMissed != 0 {
		t.Errorf("columns carried over the level change: %d hit / %d missed", m.ColumnsHit, m.ColumnsMissed)
	}
	for _, a := range pm.CheckPerformanceAlerts() {
		if a.Type == "open_map" {
			t.Errorf("open_map from the previous level after switching")
		}
	}
}

func TestLayoutUsesConfiguredSize(t *testing.T) {
	g := testGame(t, nil)
	w, h := g.Layout(1, 1)
	if w != g.config.GetScreenWidth() || h != g.config.GetScreenHeight() {
		t.Errorf("Layout = %dx%d", w, h)
	}
	if g.projector.Options().ScreenWidth != w {
		t.Errorf("projector width %d, want %d", g.projector.Options().ScreenWidth, w)
	}
}

func TestLayoutFollowsResizableWindow(t *testing.T) {
	g := testGame(t, nil)
	g.config.Display.Resizable = true

	w, h := g.Layout(320, 200)
	if w != 320 || h != 200 {
		t.Fatalf("Layout = %dx%d, want 320x200", w, h)
	}
	if opts := g.projector.Options(); opts.ScreenWidth != 320 || opts.ScreenHeight != 200 {
		t.Errorf("projector is %dx%d, want 320x200", opts.ScreenWidth, opts.ScreenHeight)
	}
}

func TestGameStateString(t *testing.T) {
	want := map[GameState]string{
		StateMenu:        "menu",
		StateLevelSelect: "level_select",
		StatePlaying:     "playing",
		StateWin:         "win",
		GameState(42):    "unknown",
	}
	for s, name := range want {
		if s.String() != name {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), name)
		}
	}
}
