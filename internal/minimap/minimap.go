// Package minimap converts a grid and camera into screen-space overlay
// primitives. It does no drawing itself.
package minimap

import (
	"image/color"
	"math"

	"raycaster/internal/projection"
	"raycaster/internal/world"
)

const (
	framePad      = 4
	playerScale   = 0.35
	fovLineLength = 1.5
)

// Palette assigns a color to each kind of cell and to the overlay chrome.
type Palette struct {
	Backdrop   color.RGBA
	Frame      color.RGBA
	Wall       color.RGBA
	Door       color.RGBA
	Spawn      color.RGBA
	Trigger    color.RGBA
	Goal       color.RGBA
	Background color.RGBA
	Player     color.RGBA
	FOV        color.RGBA
}

// DefaultPalette returns the standard minimap colors.
func DefaultPalette() Palette {
	return Palette{
		Backdrop:   color.RGBA{0, 0, 0, 160},
		Frame:      color.RGBA{255, 255, 255, 255},
		Wall:       color.RGBA{80, 80, 80, 255},
		Door:       color.RGBA{255, 203, 0, 255},
		Spawn:      color.RGBA{0, 82, 172, 255},
		Trigger:    color.RGBA{190, 33, 55, 255},
		Goal:       color.RGBA{0, 158, 47, 255},
		Background: color.RGBA{0, 0, 0, 255},
		Player:     color.RGBA{102, 191, 255, 255},
		FOV:        color.RGBA{245, 245, 245, 255},
	}
}

// Colorize returns the cell color for a tile type.
func (p Palette) Colorize(t world.TileType) color.RGBA {
	switch t {
	case world.TileWall:
		return p.Wall
	case world.TileDoor:
		return p.Door
	case world.TileSpawn:
		return p.Spawn
	case world.TileScreamer:
		return p.Trigger
	case world.TileGoal:
		return p.Goal
	default:
		return p.Background
	}
}

// Options place and scale the overlay.
type Options struct {
	TilePx  int // pixels per cell
	Margin  int // offset from the screen's top-left corner
	Palette Palette
}

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// Circle is a filled circle in screen pixels.
type Circle struct {
	X, Y, R float64
	Color   color.RGBA
}

// Line is a segment in screen pixels.
type Line struct {
	X0, Y0, X1, Y1 float64
	Color          color.RGBA
}

// Overlay holds everything needed to draw one minimap frame, back to front.
type Overlay struct {
	Backdrop Rect
	Frame    Rect // outline only
	Cells    []Rect
	Player   Circle
	FOV      [2]Line
}

// Projector builds overlays with fixed options.
type Projector struct {
	opts Options
}

// NewProjector creates a minimap projector. TilePx defaults to 6.
func NewProjector(opts Options) *Projector {
	if opts.TilePx <= 0 {
		opts.TilePx = 6
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette()
	}
	return &Projector{opts: opts}
}

// Size returns the overlay's outer width and height including the frame.
func (p *Projector) Size(g *world.Grid) (w, h int) {
	return g.Width()*p.opts.TilePx + 2*framePad, g.Height()*p.opts.TilePx + 2*framePad
}

// Project maps the grid and camera into overlay primitives.
func (p *Projector) Project(g *world.Grid, cam projection.Camera) Overlay {
	tile := float64(p.opts.TilePx)
	margin := float64(p.opts.Margin)
	pal := p.opts.Palette
	outerW, outerH := p.Size(g)

	ov := Overlay{
		Backdrop: Rect{X: margin - framePad, Y: margin - framePad, W: float64(outerW), H: float64(outerH), Color: pal.Backdrop},
		Frame:    Rect{X: margin - framePad, Y: margin - framePad, W: float64(outerW), H: float64(outerH), Color: pal.Frame},
		Cells:    make([]Rect, 0, g.Width()*g.Height()),
	}

	for j := 0; j < g.Height(); j++ {
		for i := 0; i < g.Width(); i++ {
			ov.Cells = append(ov.Cells, Rect{
				X:     margin + float64(i)*tile,
				Y:     margin + float64(j)*tile,
				W:     tile,
				H:     tile,
				Color: pal.Colorize(g.TileAt(i, j)),
			})
		}
	}

	ts := float64(g.TileSize())
	px := margin + cam.X/ts*tile
	py := margin + cam.Y/ts*tile
	ov.Player = Circle{X: px, Y: py, R: tile * playerScale, Color: pal.Player}

	length := tile * fovLineLength
	for k, sign := range [2]float64{-1, 1} {
		a := cam.Angle + sign*cam.FOV/4
		ov.FOV[k] = Line{
			X0: px, Y0: py,
			X1: px + length*math.Cos(a), Y1: py + length*math.Sin(a),
			Color: pal.FOV,
		}
	}

	return ov
}
