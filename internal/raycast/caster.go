// Package raycast walks rays across a tile grid with the DDA algorithm and
// reports the first blocking cell they strike.
package raycast

import (
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

const (
	// DefaultMaxSteps bounds a single cast on maps without a closed border.
	DefaultMaxSteps = 4096
	// DefaultMinDistance keeps hit distances strictly positive (world units).
	DefaultMinDistance = 1e-4
)

// Side is the grid axis crossed last before a hit.
type Side int

const (
	// SideVertical is a face crossed while stepping in X (an east or west wall).
	SideVertical Side = iota
	// SideHorizontal is a face crossed while stepping in Y (a north or south wall).
	SideHorizontal
)

func (s Side) String() string {
	if s == SideHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// TileMap is the read-only view of a grid the caster needs. *world.Grid
// implements it; out-of-range cells must report blocking.
type TileMap interface {
	TileSize() int
	SymbolAt(i, j int) rune
	IsBlocking(i, j int) bool
}

// Hit describes where a ray struck a wall.
type Hit struct {
	Distance float64 // along the unit ray, world units; the projector applies the fisheye cosine
	Symbol   rune
	Tile     world.TileType
	Side     Side
	TextureU float64 // position along the struck face, in [0, 1)
	DirX     float64
	DirY     float64
	CellX    int
	CellY    int
}

// Caster performs DDA traversal with a bounded step budget.
type Caster struct {
	maxSteps    int
	minDistance float64
}

// NewCaster creates a caster. Non-positive arguments fall back to the defaults.
func NewCaster(maxSteps int, minDistance float64) *Caster {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	return &Caster{maxSteps: maxSteps, minDistance: minDistance}
}

// DefaultCaster returns a caster with the default budget and minimum distance.
func DefaultCaster() *Caster {
	return NewCaster(DefaultMaxSteps, DefaultMinDistance)
}

// MaxSteps returns the step budget per cast.
func (c *Caster) MaxSteps() int { return c.maxSteps }

// MinDistance returns the distance floor applied to every hit.
func (c *Caster) MinDistance() float64 { return c.minDistance }

// Cast fires a ray from a world position at the given angle (radians, 0 = east,
// y grows down). It returns false when no blocking cell is reached within the
// step budget.
func (c *Caster) Cast(m TileMap, originX, originY, angle float64) (Hit, bool) {
	return c.CastDir(m, originX, originY, math.Cos(angle), math.Sin(angle))
}

// CastDir is Cast with a precomputed direction. The direction is normalized
// before use; a zero vector never hits.
func (c *Caster) CastDir(m TileMap, originX, originY, dirX, dirY float64) (Hit, bool) {
	length := math.Hypot(dirX, dirY)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Hit{}, false
	}
	dirX /= length
	dirY /= length

	tileSize := float64(m.TileSize())
	if tileSize <= 0 {
		return Hit{}, false
	}

	// Work in cell units
	posX := originX / tileSize
	posY := originY / tileSize
	mapX := int(math.Floor(posX))
	mapY := int(math.Floor(posY))

	stepX, sideDistX, deltaDistX := axisSetup(posX, mapX, dirX)
	stepY, sideDistY, deltaDistY := axisSetup(posY, mapY, dirY)

	side := SideVertical
	hit := false
	for steps := 0; steps < c.maxSteps; steps++ {
		// Ties step Y
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = SideVertical
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = SideHorizontal
		}

		if m.IsBlocking(mapX, mapY) {
			hit = true
			break
		}
	}
	if !hit {
		return Hit{}, false
	}

	var perpDist, textureU float64
	if side == SideVertical {
		perpDist = math.Abs((float64(mapX) - posX + float64(1-stepX)/2) / dirX)
		textureU = mathutil.Fract(posY + perpDist*dirY)
		if dirX > 0 {
			textureU = 1 - textureU
		}
	} else {
		perpDist = math.Abs((float64(mapY) - posY + float64(1-stepY)/2) / dirY)
		textureU = mathutil.Fract(posX + perpDist*dirX)
		if dirY > 0 {
			textureU = 1 - textureU
		}
	}
	// 1-0 would leave the half-open range
	if textureU >= 1 {
		textureU = 0
	}

	symbol := m.SymbolAt(mapX, mapY)
	return Hit{
		Distance: math.Max(perpDist*tileSize, c.minDistance),
		Symbol:   symbol,
		Tile:     world.Classify(symbol),
		Side:     side,
		TextureU: textureU,
		DirX:     dirX,
		DirY:     dirY,
		CellX:    mapX,
		CellY:    mapY,
	}, true
}

// axisSetup returns the step direction, the distance to the first grid line
// and the distance between grid lines along one axis. A zero direction
// component never crosses a line on that axis.
func axisSetup(pos float64, cell int, dir float64) (step int, sideDist, deltaDist float64) {
	if dir == 0 {
		return 1, math.Inf(1), math.Inf(1)
	}
	deltaDist = math.Abs(1 / dir)
	if dir < 0 {
		return -1, (pos - float64(cell)) * deltaDist, deltaDist
	}
	return 1, (float64(cell) + 1 - pos) * deltaDist, deltaDist
}
