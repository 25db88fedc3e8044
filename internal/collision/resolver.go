package collision

import (
	"math"

	"raycaster/internal/mathutil"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// Intent is the movement requested for one frame. Forward and Strafe are
// directions (positive = forward, right); Turn is the heading change in radians.
type Intent struct {
	Forward float64
	Strafe  float64
	Turn    float64
}

// Add sums two intents, so keyboard, mouse and gamepad can be combined.
func (in Intent) Add(other Intent) Intent {
	return Intent{
		Forward: in.Forward + other.Forward,
		Strafe:  in.Strafe + other.Strafe,
		Turn:    in.Turn + other.Turn,
	}
}

// IsZero reports whether the intent requests nothing.
func (in Intent) IsZero() bool {
	return in.Forward == 0 && in.Strafe == 0 && in.Turn == 0
}

// Pose is a world position and heading.
type Pose struct {
	X     float64
	Y     float64
	Angle float64
}

// Resolver moves a square body through the tile grid with sliding collision.
type Resolver struct {
	tileChecker TileChecker
	tileSize    float64
	radius      float64
}

// NewResolver creates a resolver for a body with the given half extent.
func NewResolver(tileChecker TileChecker, tileSize, radius float64) *Resolver {
	return &Resolver{
		tileChecker: tileChecker,
		tileSize:    tileSize,
		radius:      radius,
	}
}

// Radius returns the body's half extent.
func (r *Resolver) Radius() float64 { return r.radius }

// CanOccupy reports whether the body fits at (x, y): none of its four
// corners may lie in a blocking or out-of-bounds tile.
func (r *Resolver) CanOccupy(x, y float64) bool {
	return r.fits(NewSquareBox(x, y, r.radius))
}

func (r *Resolver) fits(box BoundingBox) bool {
	for _, corner := range box.GetCorners() {
		if r.blocked(corner) {
			return false
		}
	}
	return true
}

func (r *Resolver) blocked(p Point) bool {
	return tileBlocked(r.tileChecker, r.tileSize, p.X, p.Y)
}

// tileBlocked checks the tile containing a world point. Tiles outside the
// world bounds block.
func tileBlocked(checker TileChecker, tileSize, x, y float64) bool {
	tileX := int(math.Floor(x / tileSize))
	tileY := int(math.Floor(y / tileSize))

	width, height := checker.GetWorldBounds()
	if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
		return true
	}
	return checker.IsTileBlocking(tileX, tileY)
}

// Move applies one frame of intent. The turn is applied first; the
// translation is then normalized to speed*dt and committed one axis at a
// time, X before Y, so a blocked axis does not stop the other. The returned
// flag reports whether the position changed.
func (r *Resolver) Move(p Pose, in Intent, speed, dt float64) (Pose, bool) {
	next := p
	next.Angle = mathutil.NormalizeAngle(p.Angle + in.Turn)

	cos, sin := math.Cos(next.Angle), math.Sin(next.Angle)
	// Right is heading + Pi/2 with y growing down
	dx := in.Forward*cos - in.Strafe*sin
	dy := in.Forward*sin + in.Strafe*cos

	length := math.Hypot(dx, dy)
	if length == 0 || math.IsNaN(length) || speed*dt <= 0 {
		return next, false
	}
	distance := speed * dt
	dx *= distance / length
	dy *= distance / length

	// Long frames are split so no sub-step can skip over a wall tile
	steps := max(1, int(math.Ceil(distance/r.maxStep())))
	dx /= float64(steps)
	dy /= float64(steps)

	box := NewSquareBox(next.X, next.Y, r.radius)
	for i := 0; i < steps; i++ {
		if moved := box.Translated(dx, 0); dx != 0 && r.fits(moved) {
			box = moved
		}
		if moved := box.Translated(0, dy); dy != 0 && r.fits(moved) {
			box = moved
		}
	}
	next.X, next.Y = box.X, box.Y

	return next, next.X != p.X || next.Y != p.Y
}

// maxStep is the longest displacement tested in one go.
func (r *Resolver) maxStep() float64 {
	if r.radius > 0 {
		return math.Min(r.radius, r.tileSize/2)
	}
	return r.tileSize / 2
}
