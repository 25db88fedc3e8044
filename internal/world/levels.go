package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoLevels = errors.New("no level files found")

// Levels is an ordered set of maps loaded from a directory.
type Levels struct {
	maps    []*Grid
	names   []string
	current int
}

// LoadLevels loads every *.txt file in dir, ordered by file name
// (01.txt, 02.txt, ...).
func LoadLevels(dir string, tileSize int) (*Levels, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLevels, dir)
	}

	levels := &Levels{}
	for _, p := range paths {
		grid, err := LoadMap(p, tileSize)
		if err != nil {
			return nil, err
		}
		levels.maps = append(levels.maps, grid)
		levels.names = append(levels.names, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
	}
	return levels, nil
}

// NewLevels builds a level set from already constructed grids.
func NewLevels(names []string, maps []*Grid) *Levels {
	return &Levels{maps: maps, names: names}
}

// Active returns the current level's grid.
func (l *Levels) Active() *Grid {
	if len(l.maps) == 0 {
		return nil
	}
	return l.maps[l.current]
}

// Index returns the current level index.
func (l *Levels) Index() int { return l.current }

// Len returns the number of levels.
func (l *Levels) Len() int { return len(l.maps) }

// Next advances to the following level. It returns false on the last level.
func (l *Levels) Next() bool {
	if l.current+1 < len(l.maps) {
		l.current++
		return true
	}
	return false
}

// SetCurrent selects a level, clamped to the valid range.
func (l *Levels) SetCurrent(idx int) {
	if len(l.maps) == 0 || idx < 0 {
		l.current = 0
		return
	}
	l.current = min(idx, len(l.maps)-1)
}

// Name returns the display name of level idx (its file stem).
func (l *Levels) Name(idx int) string {
	if idx >= 0 && idx < len(l.names) {
		return l.names[idx]
	}
	return "level"
}
