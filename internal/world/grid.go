package world

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyMap    = errors.New("map contains no tiles")
	ErrRaggedRows  = errors.New("map rows have unequal length")
	ErrBadTileSize = errors.New("tile size must be positive")
)

// Grid is an immutable, row-major tile map. Any coordinate outside the array is
// reported as a wall, so rays and movement can never leave the map.
type Grid struct {
	tiles    [][]rune
	width    int
	height   int
	tileSize int
}

// NewGrid copies rows into a new grid. Rows must already have equal length;
// the map loader pads ragged input before calling this.
func NewGrid(rows [][]rune, tileSize int) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadTileSize, tileSize)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(rows[0])
	tiles := make([][]rune, len(rows))
	for j, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrRaggedRows, j, len(row), width)
		}
		tiles[j] = append([]rune(nil), row...)
	}

	return &Grid{
		tiles:    tiles,
		width:    width,
		height:   len(rows),
		tileSize: tileSize,
	}, nil
}

// TileSize returns the number of world units per cell.
func (g *Grid) TileSize() int { return g.tileSize }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (i, j) lies inside the tile array.
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.width && j >= 0 && j < g.height
}

// SymbolAt returns the symbol at column i, row j, or a wall outside the map.
func (g *Grid) SymbolAt(i, j int) rune {
	if !g.InBounds(i, j) {
		return SymbolWall
	}
	return g.tiles[j][i]
}

// TileAt returns the classified tile at column i, row j.
func (g *Grid) TileAt(i, j int) TileType {
	return Classify(g.SymbolAt(i, j))
}

// IsBlocking reports whether the cell stops movement and rays (walls and doors).
func (g *Grid) IsBlocking(i, j int) bool {
	return g.TileAt(i, j).IsBlocking()
}

// IsOpaque reports whether the cell blocks line of sight.
func (g *Grid) IsOpaque(i, j int) bool {
	return g.TileAt(i, j).IsOpaque()
}

// IsDoor reports whether the cell holds a door.
func (g *Grid) IsDoor(i, j int) bool {
	return g.TileAt(i, j) == TileDoor
}

// IsTileBlocking and GetWorldBounds let a Grid serve as a collision.TileChecker.
func (g *Grid) IsTileBlocking(tileX, tileY int) bool { return g.IsBlocking(tileX, tileY) }

func (g *Grid) GetWorldBounds() (width, height int) { return g.width, g.height }

// FirstOccurrenceOf scans rows top to bottom, columns left to right, and
// returns the first cell holding symbol.
func (g *Grid) FirstOccurrenceOf(symbol rune) (i, j int, ok bool) {
	for j, row := range g.tiles {
		for i, s := range row {
			if s == symbol {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// FirstOccurrenceOfType is FirstOccurrenceOf matched by tile type, so every
// symbol variant of a marker is found.
func (g *Grid) FirstOccurrenceOfType(t TileType) (i, j int, ok bool) {
	for j, row := range g.tiles {
		for i, s := range row {
			if Classify(s) == t {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// CellCenterWorld returns the world position of the center of cell (i, j).
func (g *Grid) CellCenterWorld(i, j int) (x, y float64) {
	ts := float64(g.tileSize)
	return (float64(i) + 0.5) * ts, (float64(j) + 0.5) * ts
}

// WorldToCell floors a world position to its containing cell.
func (g *Grid) WorldToCell(x, y float64) (i, j int) {
	ts := float64(g.tileSize)
	return int(math.Floor(x / ts)), int(math.Floor(y / ts))
}

// EnclosureGaps lists the border cells that are not blocking. A map with gaps
// lets rays escape into the implicit outer wall instead of hitting a real one.
func (g *Grid) EnclosureGaps() [][2]int {
	var gaps [][2]int
	for j := 0; j < g.height; j++ {
		for i := 0; i < g.width; i++ {
			onBorder := i == 0 || j == 0 || i == g.width-1 || j == g.height-1
			if onBorder && !g.IsBlocking(i, j) {
				gaps = append(gaps, [2]int{i, j})
			}
		}
	}
	return gaps
}

// IsEnclosed reports whether the map border is entirely blocking.
func (g *Grid) IsEnclosed() bool {
	return len(g.EnclosureGaps()) == 0
}

// Rows returns a copy of the symbol rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for j, row := range g.tiles {
		rows[j] = string(row)
	}
	return rows
}
