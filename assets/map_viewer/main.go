// Command map_viewer browses the level files and reports markers, border gaps
// and screamer visibility for each one.
package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"raycaster/internal/config"
	"raycaster/internal/logger"
	"raycaster/internal/mathutil"
	"raycaster/internal/minimap"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 340
)

const (
	tabInfo = iota
	tabLegend
)

type viewer struct {
	cfg         *config.Config
	levels      *world.Levels
	summaries   []levelSummary
	legendLines []string
	sidebarTab  int
	palette     minimap.Palette
}

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")
	log := logger.For("map_viewer")

	levels, err := world.LoadLevels(cfg.World.LevelsDir, cfg.World.TileSize)
	if err != nil {
		log.WithError(err).Fatal("failed to load levels")
	}

	v := &viewer{
		cfg:         cfg,
		levels:      levels,
		legendLines: legendLines(),
		sidebarTab:  tabInfo,
		palette:     minimap.DefaultPalette(),
	}
	for i := 0; i < levels.Len(); i++ {
		levels.SetCurrent(i)
		v.summaries = append(v.summaries, summarize(levels.Active()))
	}
	levels.SetCurrent(0)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.WithError(err).Fatal("viewer stopped")
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}

	n := v.levels.Len()
	idx := v.levels.Index()
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.levels.SetCurrent(mathutil.Wrap(idx+1, n))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.levels.SetCurrent(mathutil.Wrap(idx-1, n))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	idx := v.levels.Index()
	v.drawMapPanel(screen, v.levels.Active(), v.summaries[idx], padding, padding, mapAreaW, mapAreaH)
	v.drawSidebar(screen, v.summaries[idx], sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, g *world.Grid, s levelSummary, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	header := 40
	tileSize := min(w/g.Width(), (h-header)/g.Height())
	tileSize = max(tileSize, 2)
	originX := x + (w-g.Width()*tileSize)/2
	originY := y + header + (h-header-g.Height()*tileSize)/2

	floor := config.RGB(v.cfg.Graphics.Colors.Floor)
	for ty := 0; ty < g.Height(); ty++ {
		for tx := 0; tx < g.Width(); tx++ {
			cellColor := v.tileColor(g, tx, ty, floor)
			vector.DrawFilledRect(screen, float32(originX+tx*tileSize), float32(originY+ty*tileSize),
				float32(tileSize), float32(tileSize), cellColor, false)
			if tileSize >= 10 && g.TileAt(tx, ty) == world.TileUnknown {
				ebitenutil.DebugPrintAt(screen, string(g.SymbolAt(tx, ty)), originX+tx*tileSize+2, originY+ty*tileSize+1)
			}
		}
	}

	for _, gap := range s.Gaps {
		vector.StrokeRect(screen, float32(originX+gap[0]*tileSize), float32(originY+gap[1]*tileSize),
			float32(tileSize), float32(tileSize), 2, color.RGBA{255, 0, 255, 255}, false)
	}
	if s.HasSpawn {
		drawTileMarkerCircle(screen, originX, originY, tileSize, s.Spawn[0], s.Spawn[1], v.palette.Player)
	}
	if s.HasScreamer {
		drawTileMarkerCircle(screen, originX, originY, tileSize, s.Screamer[0], s.Screamer[1], v.palette.Trigger)
	}

	title := fmt.Sprintf("%s (%d/%d)", v.levels.Name(v.levels.Index()), v.levels.Index()+1, v.levels.Len())
	ebitenutil.DebugPrintAt(screen, title, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch levels, Tab for legend, Esc to quit", x+12, y+24)
}

// tileColor uses the configured wall colors for walls and the minimap
// palette for markers.
func (v *viewer) tileColor(g *world.Grid, i, j int, floor color.RGBA) color.RGBA {
	switch t := g.TileAt(i, j); t {
	case world.TileWall, world.TileDoor:
		return v.cfg.GetWallColor(g.SymbolAt(i, j))
	case world.TileEmpty, world.TileSpawn:
		return floor
	case world.TileUnknown:
		return color.RGBA{90, 40, 90, 255}
	default:
		return v.palette.Colorize(t)
	}
}

func (v *viewer) drawSidebar(screen *ebiten.Image, s levelSummary, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, v.sidebarTab)
	row := y + tabHeight + 12

	lines := s.Lines()
	if v.sidebarTab == tabLegend {
		lines = v.legendLines
	}
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend", x+tabW+10, y+6)
}

func drawTileMarkerCircle(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA) {
	if tileSize < 2 {
		return
	}
	centerX := float32(originX + tx*tileSize + tileSize/2)
	centerY := float32(originY + ty*tileSize + tileSize/2)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, clr, true)
	vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(thickness), clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
