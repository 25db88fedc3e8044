package minimap

import (
	"math"
	"testing"

	"raycaster/internal/projection"
	"raycaster/internal/world"
)

func testGrid(t *testing.T) *world.Grid {
	t.Helper()
	rows := []string{
		"#####",
		"#P sD",
		"#  g#",
		"#####",
	}
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

func TestProjectCells(t *testing.T) {
	g := testGrid(t)
	pal := DefaultPalette()
	p := NewProjector(Options{TilePx: 8, Margin: 10})

	ov := p.Project(g, projection.Camera{X: 96, Y: 96})
	if len(ov.Cells) != 20 {
		t.Fatalf("got %d cells, want 20", len(ov.Cells))
	}

	tests := []struct {
		i, j int
		want world.TileType
	}{
		{0, 0, world.TileWall},
		{1, 1, world.TileSpawn},
		{2, 1, world.TileEmpty},
		{3, 1, world.TileScreamer},
		{4, 1, world.TileDoor},
		{3, 2, world.TileGoal},
	}
	for _, tt := range tests {
		cell := ov.Cells[tt.j*g.Width()+tt.i]
		if cell.X != float64(10+tt.i*8) || cell.Y != float64(10+tt.j*8) {
			t.Errorf("cell (%d, %d) at (%v, %v)", tt.i, tt.j, cell.X, cell.Y)
		}
		if cell.W != 8 || cell.H != 8 {
			t.Errorf("cell (%d, %d) size %vx%v, want 8x8", tt.i, tt.j, cell.W, cell.H)
		}
		if cell.Color != pal.Colorize(tt.want) {
			t.Errorf("cell (%d, %d) color %v, want %v", tt.i, tt.j, cell.Color, pal.Colorize(tt.want))
		}
	}
}

func TestProjectFrame(t *testing.T) {
	g := testGrid(t)
	p := NewProjector(Options{TilePx: 8, Margin: 10})

	ov := p.Project(g, projection.Camera{})
	want := Rect{X: 6, Y: 6, W: 5*8 + 8, H: 4*8 + 8}
	for _, r := range []Rect{ov.Backdrop, ov.Frame} {
		if r.X != want.X || r.Y != want.Y || r.W != want.W || r.H != want.H {
			t.Errorf("frame rect = %+v, want %+v", r, want)
		}
	}
	w, h := p.Size(g)
	if w != 48 || h != 40 {
		t.Errorf("Size() = %dx%d, want 48x40", w, h)
	}
}

func TestProjectPlayerAndFOV(t *testing.T) {
	g := testGrid(t)
	p := NewProjector(Options{TilePx: 8, Margin: 10})
	cam := projection.Camera{X: 96, Y: 160, Angle: 0, FOV: math.Pi / 2}

	ov := p.Project(g, cam)
	if ov.Player.X != 22 || ov.Player.Y != 30 {
		t.Errorf("player at (%v, %v), want (22, 30)", ov.Player.X, ov.Player.Y)
	}
	if math.Abs(ov.Player.R-2.8) > 1e-9 {
		t.Errorf("player radius = %v, want 2.8", ov.Player.R)
	}

	for k, sign := range []float64{-1, 1} {
		line := ov.FOV[k]
		if line.X0 != 22 || line.Y0 != 30 {
			t.Errorf("FOV line %d starts at (%v, %v)", k, line.X0, line.Y0)
		}
		length := math.Hypot(line.X1-line.X0, line.Y1-line.Y0)
		if math.Abs(length-12) > 1e-9 {
			t.Errorf("FOV line %d length = %v, want 12", k, length)
		}
		angle := math.Atan2(line.Y1-line.Y0, line.X1-line.X0)
		if math.Abs(angle-sign*math.Pi/8) > 1e-9 {
			t.Errorf("FOV line %d angle = %v, want %v", k, angle, sign*math.Pi/8)
		}
	}
}

func TestNewProjectorDefaults(t *testing.T) {
	p := NewProjector(Options{})
	if p.opts.TilePx != 6 {
		t.Errorf("TilePx = %d, want 6", p.opts.TilePx)
	}
	if p.opts.Palette != DefaultPalette() {
		t.Errorf("empty palette should fall back to the default")
	}
}
