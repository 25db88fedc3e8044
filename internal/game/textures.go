package game

import (
	"image"
	"image/color"
	"math"

	"raycaster/internal/mathutil"
)

// Wall textures are generated rather than loaded, one per wall symbol. Each
// pattern is drawn from the symbol's base color so config can recolor them.

// texel hashes a texel position into [0, 1) for surface grain.
func texel(x, y int, seed uint32) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h&0xffff) / 0x10000
}

// scaleColor multiplies the color channels by f, clamped to [0, 255].
func scaleColor(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}

// generateWallTexture draws a size×size texture for a wall symbol.
func generateWallTexture(symbol rune, base color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	seed := uint32(symbol)
	unit := max(1, size/8)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			grain := 0.85 + 0.3*texel(x, y, seed)
			f := grain
			switch symbol {
			case '#':
				// Running bond bricks
				brickH := size / 4
				row := y / max(1, brickH)
				offset := 0
				if row%2 == 1 {
					offset = size / 4
				}
				if y%max(1, brickH) == 0 || (x+offset)%max(1, size/2) == 0 {
					f = 0.45
				}
			case '-':
				// Horizontal planks
				if y%max(1, size/4) == 0 {
					f = 0.4
				} else {
					f = grain * (0.9 + 0.1*math.Sin(float64(x)*0.7+float64(y/unit)))
				}
			case '|':
				// Riveted vertical plates
				if x%max(1, size/4) == 0 {
					f = 0.5
				} else if x%max(1, size/4) == unit && y%(2*unit) == unit {
					f = 1.4
				}
			case '+':
				// Inlaid cross
				mid := size / 2
				if mathutil.IntAbs(x-mid) < unit || mathutil.IntAbs(y-mid) < unit {
					f = 1.3
				}
			case 'D':
				// Door: frame, panels and a handle
				if x < unit || x >= size-unit || y < unit {
					f = 0.5
				} else if mathutil.IntAbs(x-3*size/4) < unit/2+1 && mathutil.IntAbs(y-size/2) < unit/2+1 {
					f = 1.6
				} else if x%max(1, size/3) == 0 {
					f = 0.7
				}
			default:
				// Bordered panel
				if x < unit/2+1 || y < unit/2+1 || x >= size-unit/2-1 || y >= size-unit/2-1 {
					f = 0.55
				}
			}
			img.SetRGBA(x, y, scaleColor(base, f))
		}
	}
	return img
}

// generateScreamerFace draws the jump scare: a pale face with hollow eyes
// and a gaping mouth.
func generateScreamerFace(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	cx, cy := s/2, s/2

	skin := color.RGBA{225, 220, 200, 255}
	hole := color.RGBA{10, 0, 0, 255}
	blood := color.RGBA{150, 0, 0, 255}

	inEllipse := func(x, y, ex, ey, rx, ry float64) bool {
		dx, dy := (x-ex)/rx, (y-ey)/ry
		return dx*dx+dy*dy <= 1
	}

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x, y := float64(px)+0.5, float64(py)+0.5
			switch {
			case !inEllipse(x, y, cx, cy, s*0.38, s*0.48):
				continue
			case inEllipse(x, y, cx-s*0.14, cy-s*0.12, s*0.08, s*0.11),
				inEllipse(x, y, cx+s*0.14, cy-s*0.12, s*0.08, s*0.11):
				img.SetRGBA(px, py, hole)
			case inEllipse(x, y, cx, cy+s*0.22, s*0.12, s*0.18):
				img.SetRGBA(px, py, hole)
			case y > cy-s*0.01 && y < cy+s*0.2 && math.Abs(x-cx+s*0.14) < s*0.015,
				y > cy-s*0.01 && y < cy+s*0.2 && math.Abs(x-cx-s*0.14) < s*0.015:
				img.SetRGBA(px, py, blood)
			default:
				img.SetRGBA(px, py, scaleColor(skin, 0.85+0.15*texel(px, py, 7)))
			}
		}
	}
	return img
}
