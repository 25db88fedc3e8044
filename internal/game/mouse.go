package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// mouseLook turns horizontal cursor motion into heading changes while the
// cursor is captured.
type mouseLook struct {
	captured    bool
	lastX       int
	primed      bool
	sensitivity float64 // radians per pixel
}

// toggle captures or releases the cursor.
func (m *mouseLook) toggle() {
	if m.captured {
		m.release()
		return
	}
	m.captured = true
	m.primed = false
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (m *mouseLook) release() {
	if !m.captured {
		return
	}
	m.captured = false
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

// turn returns the heading change since the previous frame.
func (m *mouseLook) turn() float64 {
	if !m.captured {
		return 0
	}
	x, _ := ebiten.CursorPosition()
	return m.delta(x)
}

// delta feeds one cursor sample. The first sample after capture only sets the
// reference so the jump to the captured position is ignored.
func (m *mouseLook) delta(x int) float64 {
	if !m.primed {
		m.lastX = x
		m.primed = true
		return 0
	}
	dx := x - m.lastX
	m.lastX = x
	return float64(dx) * m.sensitivity
}
