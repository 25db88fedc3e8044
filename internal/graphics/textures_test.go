package graphics

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestTextureName(t *testing.T) {
	tests := map[rune]string{
		'#': "hash",
		'+': "plus",
		'-': "dash",
		'|': "pipe",
		'1': "1",
		'D': "D",
		'*': "u002a",
	}
	for symbol, want := range tests {
		if got := TextureName(symbol); got != want {
			t.Errorf("TextureName(%q) = %q, want %q", symbol, got, want)
		}
	}
}

func TestTextureSetLoad(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hash.png"), 16, 8)
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ts := NewTextureSet(dir)

	img, ok := ts.LoadSymbol('#')
	if !ok {
		t.Fatalf("expected hash.png to load")
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 16x8", b)
	}

	// Cached: removing the file must not matter
	if err := os.Remove(filepath.Join(dir, "hash.png")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if again, ok := ts.Load("hash"); !ok || again != img {
		t.Errorf("second load should return the cached image")
	}

	if _, ok := ts.Load("missing"); ok {
		t.Errorf("missing texture reported as loaded")
	}
	writePNG(t, filepath.Join(dir, "missing.png"), 4, 4)
	if _, ok := ts.Load("missing"); ok {
		t.Errorf("a miss should be remembered")
	}

	if _, ok := ts.Load("broken"); ok {
		t.Errorf("undecodable file reported as loaded")
	}
}

func TestTextureSetWithoutDir(t *testing.T) {
	if _, ok := NewTextureSet("").Load("hash"); ok {
		t.Errorf("an empty dir should load nothing")
	}
}
