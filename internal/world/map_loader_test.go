package world

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMapPadsRaggedRows(t *testing.T) {
	src := "#####\n# P\n#   #\r\n#####\n\n\n"
	g, err := ParseMap(strings.NewReader(src), 64)
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if g.Width() != 5 || g.Height() != 4 {
		t.Fatalf("size = %dx%d, want 5x4", g.Width(), g.Height())
	}
	if got := g.SymbolAt(4, 1); got != SymbolEmpty {
		t.Errorf("padded cell = %q, want empty", got)
	}
	if got := g.SymbolAt(4, 2); got != '#' {
		t.Errorf("carriage return was not stripped, got %q", got)
	}
}

func TestParseMapEmpty(t *testing.T) {
	if _, err := ParseMap(strings.NewReader("\n\n"), 64); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("got %v, want ErrEmptyMap", err)
	}
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(mapPath, []byte("###\n#s#\n###\n"), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	g, err := LoadMap(mapPath, 32)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if g.TileSize() != 32 {
		t.Errorf("TileSize() = %d, want 32", g.TileSize())
	}
	if g.TileAt(1, 1) != TileScreamer {
		t.Errorf("expected screamer at (1, 1)")
	}

	if _, err := LoadMap(filepath.Join(dir, "missing.txt"), 32); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadLevels(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"02.txt":    "###\n# #\n###\n",
		"01.txt":    "####\n#  #\n####\n",
		"notes.md":  "not a level",
		"03.TXT":    "#####\n#   #\n#####\n",
		"empty.bin": "",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	levels, err := LoadLevels(dir, 64)
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}
	if levels.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", levels.Len())
	}
	if levels.Name(0) != "01" || levels.Name(1) != "02" || levels.Name(2) != "03" {
		t.Errorf("names = %q %q %q, want 01 02 03", levels.Name(0), levels.Name(1), levels.Name(2))
	}
	if levels.Active().Width() != 4 {
		t.Errorf("first level should be 01.txt")
	}

	if !levels.Next() || !levels.Next() {
		t.Fatalf("expected to advance twice")
	}
	if levels.Next() {
		t.Errorf("Next() on the last level should return false")
	}
	if levels.Index() != 2 {
		t.Errorf("Index() = %d, want 2", levels.Index())
	}

	levels.SetCurrent(10)
	if levels.Index() != 2 {
		t.Errorf("SetCurrent(10) should clamp to 2, got %d", levels.Index())
	}
	levels.SetCurrent(-3)
	if levels.Index() != 0 {
		t.Errorf("SetCurrent(-3) should clamp to 0, got %d", levels.Index())
	}
	if levels.Name(9) != "level" {
		t.Errorf("Name out of range = %q, want level", levels.Name(9))
	}
}

func TestLoadLevelsEmptyDir(t *testing.T) {
	if _, err := LoadLevels(t.TempDir(), 64); !errors.Is(err, ErrNoLevels) {
		t.Errorf("got %v, want ErrNoLevels", err)
	}
}
