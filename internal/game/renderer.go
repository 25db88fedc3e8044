package game

import (
	"fmt"
	"image"
	"image/color"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/minimap"
	"raycaster/internal/projection"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	colorTitle    = color.RGBA{245, 245, 245, 255}
	colorText     = color.RGBA{200, 200, 200, 255}
	colorSelected = color.RGBA{255, 220, 0, 255}
	colorWinBg    = color.RGBA{0, 90, 40, 255}
	colorDim      = color.RGBA{0, 0, 0, 150}
)

// Renderer draws the first-person view, the minimap, the HUD and the menu
// screens.
type Renderer struct {
	game        *Game
	textureSize int
	ceiling     color.RGBA
	floor       color.RGBA
	background  color.RGBA
	files       *graphics.TextureSet

	// Built on first draw so a Renderer can exist before the window does
	textures map[rune]*ebiten.Image
	screamer *ebiten.Image
}

// NewRenderer creates a new renderer
func NewRenderer(game *Game) *Renderer {
	colors := game.config.Graphics.Colors
	return &Renderer{
		game:        game,
		textureSize: game.config.Graphics.TextureSize,
		ceiling:     config.RGB(colors.Ceiling),
		floor:       config.RGB(colors.Floor),
		background:  config.RGB(colors.Background),
		files:       graphics.NewTextureSet(game.config.Graphics.TextureDir),
	}
}

// texture returns the wall texture for a symbol: a PNG from the texture
// directory when there is one, otherwise a generated pattern.
func (r *Renderer) texture(symbol rune) *ebiten.Image {
	if r.textures == nil {
		r.textures = make(map[rune]*ebiten.Image)
	}
	if tex, ok := r.textures[symbol]; ok {
		return tex
	}
	var tex *ebiten.Image
	if img, ok := r.files.LoadSymbol(symbol); ok {
		tex = ebiten.NewImageFromImage(img)
	} else {
		tex = ebiten.NewImageFromImage(generateWallTexture(symbol, r.game.config.GetWallColor(symbol), r.textureSize))
	}
	r.textures[symbol] = tex
	return tex
}

// RenderFrame draws the view of the level in play.
func (r *Renderer) RenderFrame(screen *ebiten.Image) {
	session := r.game.session
	if session == nil {
		screen.Fill(r.background)
		return
	}

	screen.Fill(r.background)
	r.drawCeilingFloor(screen)

	timer := r.game.threading.PerformanceMonitor.StartRaycast()
	r.game.slices = r.game.projector.ProjectInto(r.game.slices, session.Grid(), session.Camera())
	hit := 0
	for i := range r.game.slices {
		if r.game.slices[i].Hit {
			hit++
		}
	}
	timer.EndRaycast(hit, len(r.game.slices)-hit)

	for i := range r.game.slices {
		if r.game.slices[i].Hit {
			r.drawWallColumn(screen, &r.game.slices[i])
		}
	}

	if session.Screamer().Active {
		r.drawScreamer(screen)
	}
	if r.game.config.Minimap.Enabled {
		r.drawMinimap(screen)
	}
	if r.game.showHUD {
		r.drawHUD(screen)
	}
}

func (r *Renderer) drawCeilingFloor(screen *ebiten.Image) {
	w := float32(r.game.config.GetScreenWidth())
	h := float32(r.game.config.GetScreenHeight())
	vector.DrawFilledRect(screen, 0, 0, w, h/2, r.ceiling, false)
	vector.DrawFilledRect(screen, 0, h/2, w, h-h/2, r.floor, false)
}

// drawWallColumn stretches one texel column over the projected wall height
// and darkens it by the slice brightness. Rows outside the screen are clipped
// by the destination image.
func (r *Renderer) drawWallColumn(screen *ebiten.Image, s *projection.WallSlice) {
	tex := r.texture(s.Symbol)
	texW, texH := tex.Bounds().Dx(), tex.Bounds().Dy()
	texX := min(max(int(s.TextureU*float64(texW)), 0), texW-1)
	column := tex.SubImage(image.Rect(texX, 0, texX+1, texH)).(*ebiten.Image)

	screenH := float64(r.game.config.GetScreenHeight())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1, s.Height/float64(texH))
	op.GeoM.Translate(float64(s.ScreenX), (screenH-s.Height)/2)
	b := float32(s.Brightness)
	op.ColorScale.Scale(b, b, b, 1)
	screen.DrawImage(column, op)
}

func (r *Renderer) drawMinimap(screen *ebiten.Image) {
	session := r.game.session
	ov := r.game.minimap.Project(session.Grid(), session.Camera())
	drawOverlay(screen, ov)
}

// drawOverlay draws minimap primitives back to front.
func drawOverlay(screen *ebiten.Image, ov minimap.Overlay) {
	fillRect(screen, ov.Backdrop)
	for _, c := range ov.Cells {
		fillRect(screen, c)
	}
	f := ov.Frame
	vector.StrokeRect(screen, float32(f.X), float32(f.Y), float32(f.W), float32(f.H), 1, f.Color, false)
	p := ov.Player
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.R), p.Color, true)
	for _, l := range ov.FOV {
		vector.StrokeLine(screen, float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1), 1, l.Color, true)
	}
}

func fillRect(screen *ebiten.Image, rc minimap.Rect) {
	vector.DrawFilledRect(screen, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), rc.Color, false)
}

// drawScreamer flashes the screen red and shows the face, fading out as the
// trigger timer runs down.
func (r *Renderer) drawScreamer(screen *ebiten.Image) {
	sc := r.game.session.Screamer()
	fade := 1.0
	if sc.Duration > 0 {
		fade = sc.Timer / sc.Duration
	}

	w := r.game.config.GetScreenWidth()
	h := r.game.config.GetScreenHeight()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{uint8(120 * fade), 0, 0, uint8(120 * fade)}, false)

	if r.screamer == nil {
		if img, ok := r.files.Load("screamer"); ok {
			r.screamer = ebiten.NewImageFromImage(img)
		} else {
			r.screamer = ebiten.NewImageFromImage(generateScreamerFace(128))
		}
	}
	side := float64(min(w, h)) * 0.8
	faceW, faceH := r.screamer.Bounds().Dx(), r.screamer.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(side/float64(faceW), side/float64(faceH))
	op.GeoM.Translate((float64(w)-side)/2, (float64(h)-side)/2)
	op.ColorScale.ScaleAlpha(float32(fade))
	screen.DrawImage(r.screamer, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	m := r.game.threading.PerformanceMonitor.GetCurrentMetrics()
	p := r.game.session.Player()
	mouse := "off"
	if r.game.input.MouseCaptured() {
		mouse = "on"
	}
	msg := fmt.Sprintf("FPS: %0.1f  TPS: %0.1f\nraycast: %.2f ms (avg %.2f)\nlevel: %s\npos: %.0f, %.0f\nlos: %s\nmouse look: %s (M)",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		m.LastRaycastMs, m.AvgRaycastTimeMs,
		r.game.levels.Name(r.game.levels.Index()),
		p.X, p.Y, r.game.session.LineOfSight().Mode(), mouse)
	ebitenutil.DebugPrintAt(screen, msg, r.game.config.GetScreenWidth()-220, 8)
}

// drawText draws basicfont text scaled up with its top-left corner at x, y.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	face := basicfont.Face7x13
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(face.Ascent))
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebitext.DrawWithOptions(screen, s, face, op)
}

// drawCenteredText is drawText centered horizontally on the screen.
func (r *Renderer) drawCenteredText(screen *ebiten.Image, s string, y, scale float64, clr color.Color) {
	width := float64(font.MeasureString(basicfont.Face7x13, s).Round()) * scale
	x := (float64(r.game.config.GetScreenWidth()) - width) / 2
	drawText(screen, s, x, y, scale, clr)
}

// DrawMenu draws the title screen.
func (r *Renderer) DrawMenu(screen *ebiten.Image) {
	screen.Fill(r.background)
	h := float64(r.game.config.GetScreenHeight())
	r.drawCenteredText(screen, r.game.config.Display.WindowTitle, h*0.25, 5, colorTitle)
	r.drawCenteredText(screen, "ENTER: Play   L: Levels   ESC: Quit", h*0.55, 2, colorText)
	r.drawCenteredText(screen, "WASD / arrows to move, M toggles mouse look, Tab toggles HUD", h*0.65, 1, colorText)
}

// DrawLevelSelect draws the level list with the cursor highlighted.
func (r *Renderer) DrawLevelSelect(screen *ebiten.Image) {
	screen.Fill(r.background)
	drawText(screen, "Select level", 40, 40, 3, colorTitle)
	for i := 0; i < r.game.levels.Len(); i++ {
		clr := colorText
		if i == r.game.levelCursor {
			clr = colorSelected
		}
		label := fmt.Sprintf("%d - %s", i+1, r.game.levels.Name(i))
		drawText(screen, label, 60, 110+float64(i)*30, 2, clr)
	}
	h := float64(r.game.config.GetScreenHeight())
	drawText(screen, "1-9 or ENTER: Play   Up/Down: Move   ESC: Back", 40, h-40, 1, colorText)
}

// DrawWin draws the level complete banner over the last frame.
func (r *Renderer) DrawWin(screen *ebiten.Image) {
	w := float32(r.game.config.GetScreenWidth())
	h := float32(r.game.config.GetScreenHeight())
	vector.DrawFilledRect(screen, 0, 0, w, h, colorDim, false)
	vector.DrawFilledRect(screen, 0, h*0.2, w, h*0.45, colorWinBg, false)
	r.drawCenteredText(screen, "Level complete!", float64(h)*0.27, 5, colorTitle)
	r.drawCenteredText(screen, "ENTER: Replay   N: Next   L: Levels   ESC: Menu", float64(h)*0.5, 2, colorText)
}
