package game

import (
	"raycaster/internal/mathutil"

	"github.com/hajimehoshi/ebiten/v2"
)

// menuInput is one frame of menu presses.
type menuInput struct {
	confirm     bool
	back        bool
	next        bool
	levelSelect bool
	up          bool
	down        bool
	digit       int // 1-9, 0 for none
}

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// MenuInput polls the menu keys once.
func (ih *InputHandler) MenuInput() menuInput {
	in := menuInput{
		confirm:     ih.Confirm(),
		back:        ih.Back(),
		next:        ih.Next(),
		levelSelect: ih.JustPressed(ebiten.KeyL),
		up:          ih.JustPressed(ebiten.KeyUp) || ih.JustPressed(ebiten.KeyW),
		down:        ih.JustPressed(ebiten.KeyDown) || ih.JustPressed(ebiten.KeyS),
	}
	for i, k := range digitKeys {
		if ih.JustPressed(k) {
			in.digit = i + 1
			break
		}
	}
	return in
}

func (g *Game) updateMenu() error {
	return g.applyMenu(g.input.MenuInput())
}

func (g *Game) updateLevelSelect() {
	g.applyLevelSelect(g.input.MenuInput())
}

func (g *Game) updateWin() {
	g.applyWin(g.input.MenuInput())
}

// applyMenu handles the title screen: ENTER plays, L opens level select,
// ESC quits.
func (g *Game) applyMenu(in menuInput) error {
	switch {
	case in.confirm:
		g.startLevel(g.levels.Index())
	case in.levelSelect:
		g.openLevelSelect()
	case in.back:
		g.log.Info("exit requested")
		return ErrExit
	}
	return nil
}

func (g *Game) openLevelSelect() {
	g.levelCursor = g.levels.Index()
	g.setState(StateLevelSelect)
}

// applyLevelSelect handles the level list: a digit or ENTER starts a level,
// arrows move the cursor, ESC goes back.
func (g *Game) applyLevelSelect(in menuInput) {
	switch {
	case in.digit > 0:
		if in.digit <= g.levels.Len() {
			g.startLevel(in.digit - 1)
		}
	case in.confirm:
		g.startLevel(g.levelCursor)
	case in.up:
		g.levelCursor = mathutil.Wrap(g.levelCursor-1, g.levels.Len())
	case in.down:
		g.levelCursor = mathutil.Wrap(g.levelCursor+1, g.levels.Len())
	case in.back:
		g.setState(StateMenu)
	}
}

// applyWin handles the level complete screen: ENTER replays, N moves on,
// L opens level select, ESC returns to the menu.
func (g *Game) applyWin(in menuInput) {
	switch {
	case in.confirm:
		g.startLevel(g.levels.Index())
	case in.next:
		g.nextLevel()
	case in.levelSelect:
		g.openLevelSelect()
	case in.back:
		g.setState(StateMenu)
	}
}
