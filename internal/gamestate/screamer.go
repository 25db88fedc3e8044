package gamestate

import (
	"math"

	"raycaster/internal/world"
)

// VisibilityChecker reports whether nothing blocks the segment from a to b.
// *collision.LineOfSight implements it.
type VisibilityChecker interface {
	Check(ax, ay, bx, by float64) bool
}

// Screamer is the one-shot proximity trigger placed by the first screamer
// marker on a map.
type Screamer struct {
	X        float64
	Y        float64
	Enabled  bool
	Active   bool
	Fired    bool
	Timer    float64 // seconds left while active
	Radius   float64 // world units
	Duration float64 // seconds
}

// NewScreamer places the trigger at the center of the first marker cell. A map
// without a marker yields a disabled trigger.
func NewScreamer(g *world.Grid, radius, duration float64) Screamer {
	s := Screamer{Radius: radius, Duration: duration}
	if i, j, ok := g.FirstOccurrenceOfType(world.TileScreamer); ok {
		s.X, s.Y = g.CellCenterWorld(i, j)
		s.Enabled = true
	}
	return s
}

// Update advances the timer and checks the trigger condition. It returns true
// on the frame the trigger fires.
func (s *Screamer) Update(px, py, dt float64, vis VisibilityChecker) bool {
	if s.Active {
		s.Timer -= dt
		if s.Timer <= 0 {
			s.Timer = 0
			s.Active = false
		}
	}

	if !s.Enabled || s.Fired {
		return false
	}
	if math.Hypot(px-s.X, py-s.Y) > s.Radius {
		return false
	}
	if vis != nil && !vis.Check(px, py, s.X, s.Y) {
		return false
	}

	s.Fired = true
	s.Active = true
	s.Timer = s.Duration
	return true
}

// Reset re-arms the trigger for a level restart.
func (s *Screamer) Reset() {
	s.Active = false
	s.Fired = false
	s.Timer = 0
}
