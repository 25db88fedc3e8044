package projection

import (
	"math"
	"testing"

	"raycaster/internal/raycast"
	"raycaster/internal/threading/core"
	"raycaster/internal/world"
)

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

func roomGrid(t *testing.T) *world.Grid {
	return testGrid(t,
		"#####",
		"#   #",
		"#   #",
		"#   #",
		"#####",
	)
}

type emptyMap struct{}

func (emptyMap) TileSize() int { return 64 }

func (emptyMap) SymbolAt(i, j int) rune { return ' ' }

func (emptyMap) IsBlocking(i, j int) bool { return false }

var centerCamera = Camera{X: 160, Y: 160, Angle: 0, FOV: math.Pi / 3}

func TestProjectCenterColumn(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)
	slices := p.Project(roomGrid(t), centerCamera)

	s := slices[320]
	if !s.Hit {
		t.Fatalf("center column should hit")
	}
	if math.Abs(s.Distance-96) > 1e-9 {
		t.Errorf("Distance = %v, want 96", s.Distance)
	}
	if s.Top != 80 || s.Bottom != 400 {
		t.Errorf("extent = [%d, %d), want [80, 400)", s.Top, s.Bottom)
	}
	if math.Abs(s.Height-320) > 1e-9 {
		t.Errorf("Height = %v, want 320", s.Height)
	}
	wantShade := 0.25 + 0.75/(1+0.15*1.5)
	if math.Abs(s.Brightness-wantShade) > 1e-9 {
		t.Errorf("Brightness = %v, want %v", s.Brightness, wantShade)
	}
}

func TestProjectNoFisheyeOnFlatWall(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)
	slices := p.Project(roomGrid(t), centerCamera)

	// Every column sees the same flat east wall, so corrected distances agree.
	for _, s := range slices {
		if !s.Hit {
			t.Fatalf("column %d missed", s.ScreenX)
		}
		if math.Abs(s.Distance-96) > 1e-6 {
			t.Fatalf("column %d distance = %v, want 96", s.ScreenX, s.Distance)
		}
	}
}

func TestProjectBoundsAndOrder(t *testing.T) {
	opts := DefaultOptions()
	p := NewProjector(opts, nil, nil)
	g := roomGrid(t)

	cams := []Camera{
		centerCamera,
		{X: 70, Y: 70, Angle: 2.1, FOV: math.Pi / 2},
		{X: 250, Y: 250, Angle: -3, FOV: math.Pi / 3},
		{X: 65, Y: 250, Angle: math.Pi, FOV: math.Pi / 3},
	}
	for _, cam := range cams {
		slices := p.Project(g, cam)
		if len(slices) != opts.ScreenWidth {
			t.Fatalf("got %d slices, want %d", len(slices), opts.ScreenWidth)
		}
		for x, s := range slices {
			if s.ScreenX != x {
				t.Errorf("slice %d has ScreenX %d", x, s.ScreenX)
			}
			if s.Top < 0 || s.Bottom > opts.ScreenHeight || s.Top > s.Bottom {
				t.Errorf("slice %d extent [%d, %d) out of bounds", x, s.Top, s.Bottom)
			}
			if s.TextureU < 0 || s.TextureU >= 1 {
				t.Errorf("slice %d TextureU = %v", x, s.TextureU)
			}
			if s.Height > opts.MaxHeightScale*float64(opts.ScreenHeight) {
				t.Errorf("slice %d Height = %v above the clamp", x, s.Height)
			}
		}
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)
	g := roomGrid(t)
	cam := Camera{X: 100, Y: 200, Angle: 0.7, FOV: math.Pi / 3}

	first := p.Project(g, cam)
	second := p.Project(g, cam)
	for x := range first {
		if first[x] != second[x] {
			t.Fatalf("column %d differs between runs: %+v vs %+v", x, first[x], second[x])
		}
	}
}

func TestProjectPooledMatchesSequential(t *testing.T) {
	pool := core.NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	g := roomGrid(t)
	cam := Camera{X: 90, Y: 230, Angle: -0.4, FOV: math.Pi / 2}

	seq := NewProjector(DefaultOptions(), nil, nil).Project(g, cam)
	par := NewProjector(DefaultOptions(), nil, pool).Project(g, cam)
	for x := range seq {
		if seq[x] != par[x] {
			t.Fatalf("column %d differs: sequential %+v, pooled %+v", x, seq[x], par[x])
		}
	}
}

func TestProjectIntoReusesBuffer(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)
	buf := make([]WallSlice, 0, 1024)

	out := p.ProjectInto(buf, roomGrid(t), centerCamera)
	if len(out) != 640 {
		t.Fatalf("len = %d, want 640", len(out))
	}
	if &out[0] != &buf[:1][0] {
		t.Errorf("ProjectInto allocated a new buffer despite enough capacity")
	}
}

func TestProjectNoHitColumns(t *testing.T) {
	p := NewProjector(DefaultOptions(), raycast.NewCaster(16, 0), nil)
	for _, s := range p.Project(emptyMap{}, centerCamera) {
		if s.Hit {
			t.Fatalf("column %d hit on an empty map", s.ScreenX)
		}
		if s.Top != 0 || s.Bottom != 0 {
			t.Fatalf("column %d missed but has extent [%d, %d)", s.ScreenX, s.Top, s.Bottom)
		}
	}
}

func TestProjectHorizontalFaceShade(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)
	cam := Camera{X: 160, Y: 160, Angle: math.Pi / 2, FOV: math.Pi / 3}
	s := p.Project(roomGrid(t), cam)[320]

	if s.Side != raycast.SideHorizontal {
		t.Fatalf("Side = %v, want horizontal", s.Side)
	}
	want := p.Shade(1.5) * 0.75
	if math.Abs(s.Brightness-want) > 1e-9 {
		t.Errorf("Brightness = %v, want %v", s.Brightness, want)
	}
}

func TestShadeIsMonotonic(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)

	if p.Shade(0) != 1 {
		t.Errorf("Shade(0) = %v, want 1", p.Shade(0))
	}
	prev := p.Shade(0)
	for d := 0.25; d < 100; d += 0.25 {
		s := p.Shade(d)
		if s > prev {
			t.Fatalf("Shade(%v) = %v brighter than at a shorter distance", d, s)
		}
		if s < 0.25 {
			t.Fatalf("Shade(%v) = %v below the minimum", d, s)
		}
		prev = s
	}
}

func TestWallExtentClamp(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)

	tests := []struct {
		name       string
		dist       float64
		top        int
		bottom     int
		wantHeight float64
	}{
		{"touching", 1e-4, 0, 480, 960},
		{"zero", 0, 0, 480, 960},
		{"one tile", 64, 0, 480, 480},
		{"four tiles", 256, 180, 300, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, bottom, h := p.WallExtent(tt.dist, 64)
			if top != tt.top || bottom != tt.bottom {
				t.Errorf("extent = [%d, %d), want [%d, %d)", top, bottom, tt.top, tt.bottom)
			}
			if math.Abs(h-tt.wantHeight) > 1e-9 {
				t.Errorf("height = %v, want %v", h, tt.wantHeight)
			}
		})
	}
}

func TestResize(t *testing.T) {
	p := NewProjector(DefaultOptions(), nil, nil)
	p.Resize(320, 200)
	slices := p.Project(roomGrid(t), centerCamera)
	if len(slices) != 320 {
		t.Fatalf("len = %d after resize, want 320", len(slices))
	}
	for _, s := range slices {
		if s.Bottom > 200 {
			t.Fatalf("column %d bottom %d past new height", s.ScreenX, s.Bottom)
		}
	}
}
