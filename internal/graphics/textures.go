// Package graphics loads optional texture images from disk. Anything not
// found falls back to the renderer's generated textures.
package graphics

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// symbolNames gives file names to wall symbols that are awkward in paths.
var symbolNames = map[rune]string{
	'#': "hash",
	'+': "plus",
	'-': "dash",
	'|': "pipe",
	'.': "dot",
}

// TextureName returns the file stem used for a wall symbol's texture.
func TextureName(symbol rune) string {
	if name, ok := symbolNames[symbol]; ok {
		return name
	}
	if symbol >= 'a' && symbol <= 'z' || symbol >= 'A' && symbol <= 'Z' || symbol >= '0' && symbol <= '9' {
		return string(symbol)
	}
	return fmt.Sprintf("u%04x", symbol)
}

// TextureSet loads <dir>/<name>.png on first request and remembers both hits
// and misses, so a missing file is only looked up once.
type TextureSet struct {
	dir    string
	mu     sync.Mutex
	images map[string]image.Image
	log    *logrus.Entry
}

// NewTextureSet creates a set reading from dir. An empty dir disables loading.
func NewTextureSet(dir string) *TextureSet {
	return &TextureSet{
		dir:    dir,
		images: make(map[string]image.Image),
		log:    logger.For("graphics"),
	}
}

// Load returns the image stored under name, or false when there is none.
func (ts *TextureSet) Load(name string) (image.Image, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if img, seen := ts.images[name]; seen {
		return img, img != nil
	}

	img, err := ts.decode(name)
	if err != nil {
		if !os.IsNotExist(err) {
			ts.log.WithError(err).WithField("texture", name).Warn("texture ignored")
		}
		ts.images[name] = nil
		return nil, false
	}
	ts.images[name] = img
	ts.log.WithField("texture", name).Debug("texture loaded")
	return img, true
}

// LoadSymbol is Load for a wall symbol.
func (ts *TextureSet) LoadSymbol(symbol rune) (image.Image, bool) {
	return ts.Load(TextureName(symbol))
}

func (ts *TextureSet) decode(name string) (image.Image, error) {
	if ts.dir == "" {
		return nil, os.ErrNotExist
	}
	file, err := os.Open(filepath.Join(ts.dir, name+".png"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
