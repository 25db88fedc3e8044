package game

import (
	"image/color"
	"testing"
)

func TestGenerateWallTexture(t *testing.T) {
	base := color.RGBA{150, 150, 150, 255}
	symbols := []rune{'#', '1', '2', '3', '+', '-', '|', 'D', '?'}

	for _, s := range symbols {
		img := generateWallTexture(s, base, 64)
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
			t.Fatalf("%q: bounds %v, want 64x64", s, b)
		}
		again := generateWallTexture(s, base, 64)
		for i := range img.Pix {
			if img.Pix[i] != again.Pix[i] {
				t.Fatalf("%q: texture is not deterministic", s)
			}
		}
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 255 {
				t.Fatalf("%q: texel alpha %d, want opaque", s, img.Pix[i])
			}
		}
	}

	brick := generateWallTexture('#', base, 64)
	planks := generateWallTexture('-', base, 64)
	same := true
	for i := range brick.Pix {
		if brick.Pix[i] != planks.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("different symbols should produce different patterns")
	}
}

func TestGenerateWallTextureTinySize(t *testing.T) {
	img := generateWallTexture('#', color.RGBA{100, 100, 100, 255}, 2)
	if img.Bounds().Dx() != 2 {
		t.Errorf("bounds %v", img.Bounds())
	}
}

func TestScaleColorClamps(t *testing.T) {
	c := scaleColor(color.RGBA{200, 100, 0, 255}, 2)
	if c != (color.RGBA{255, 200, 0, 255}) {
		t.Errorf("scaleColor = %v", c)
	}
}

func TestGenerateScreamerFace(t *testing.T) {
	img := generateScreamerFace(128)
	if img.RGBAAt(0, 0).A != 0 {
		t.Errorf("corner should stay transparent")
	}
	if img.RGBAAt(64, 64).A != 255 {
		t.Errorf("face center should be opaque")
	}
	eye := img.RGBAAt(64-18, 64-15)
	if eye.R > 20 {
		t.Errorf("eye texel %v should be dark", eye)
	}
}
