package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// ParseMap reads a text map, one row per line. Ragged rows are right-padded
// with the empty symbol. Trailing blank lines are dropped; blank lines inside
// the map are kept as empty rows.
func ParseMap(r io.Reader, tileSize int) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}

	return NewGrid(padRows(lines), tileSize)
}

// padRows converts lines to rune rows of equal width.
func padRows(lines []string) [][]rune {
	width := 0
	rows := make([][]rune, len(lines))
	for j, line := range lines {
		rows[j] = []rune(line)
		width = max(width, len(rows[j]))
	}
	for j, row := range rows {
		for len(row) < width {
			row = append(row, SymbolEmpty)
		}
		rows[j] = row
	}
	return rows
}

// LoadMap loads a map file and logs a warning when its border is not closed.
func LoadMap(mapPath string, tileSize int) (*Grid, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	grid, err := ParseMap(file, tileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	log := logger.For("map_loader").WithFields(logrus.Fields{
		"path":   mapPath,
		"width":  grid.Width(),
		"height": grid.Height(),
	})
	if gaps := grid.EnclosureGaps(); len(gaps) > 0 {
		log.WithField("gaps", gaps).Warn("map border is not enclosed by walls")
	}
	log.Debug("map loaded")

	return grid, nil
}
