package main

import (
	"fmt"
	"sort"

	"raycaster/internal/collision"
	"raycaster/internal/world"
)

// levelSummary is what the sidebar reports about one level.
type levelSummary struct {
	Width, Height int
	Spawn         [2]int
	HasSpawn      bool
	Screamer      [2]int
	HasScreamer   bool
	Goals         int
	Doors         int
	Unknown       []rune
	Gaps          [][2]int

	// Whether the screamer can be seen from the spawn cell
	SeenSampled bool
	SeenExact   bool
}

func summarize(g *world.Grid) levelSummary {
	s := levelSummary{Width: g.Width(), Height: g.Height(), Gaps: g.EnclosureGaps()}

	if i, j, ok := g.FirstOccurrenceOfType(world.TileSpawn); ok {
		s.Spawn, s.HasSpawn = [2]int{i, j}, true
	}
	if i, j, ok := g.FirstOccurrenceOfType(world.TileScreamer); ok {
		s.Screamer, s.HasScreamer = [2]int{i, j}, true
	}

	unknown := make(map[rune]bool)
	for j := 0; j < g.Height(); j++ {
		for i := 0; i < g.Width(); i++ {
			switch g.TileAt(i, j) {
			case world.TileGoal:
				s.Goals++
			case world.TileDoor:
				s.Doors++
			case world.TileUnknown:
				unknown[g.SymbolAt(i, j)] = true
			}
		}
	}
	for r := range unknown {
		s.Unknown = append(s.Unknown, r)
	}
	sort.Slice(s.Unknown, func(a, b int) bool { return s.Unknown[a] < s.Unknown[b] })

	if s.HasSpawn && s.HasScreamer {
		los := collision.NewLineOfSight(g, float64(g.TileSize()))
		ax, ay := g.CellCenterWorld(s.Spawn[0], s.Spawn[1])
		bx, by := g.CellCenterWorld(s.Screamer[0], s.Screamer[1])
		s.SeenSampled = los.Clear(ax, ay, bx, by)
		s.SeenExact = los.ClearExact(ax, ay, bx, by)
	}
	return s
}

// Lines renders the summary for the info tab.
func (s levelSummary) Lines() []string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	lines := []string{fmt.Sprintf("Tiles: %dx%d", s.Width, s.Height)}
	if s.HasSpawn {
		lines = append(lines, fmt.Sprintf("Spawn: %d,%d", s.Spawn[0], s.Spawn[1]))
	} else {
		lines = append(lines, "Spawn: none (config default)")
	}
	if s.HasScreamer {
		lines = append(lines,
			fmt.Sprintf("Screamer: %d,%d", s.Screamer[0], s.Screamer[1]),
			fmt.Sprintf("  seen from spawn: sampled %s, exact %s", yesNo(s.SeenSampled), yesNo(s.SeenExact)))
	} else {
		lines = append(lines, "Screamer: none")
	}
	lines = append(lines,
		fmt.Sprintf("Goals: %d", s.Goals),
		fmt.Sprintf("Doors: %d", s.Doors),
	)
	if len(s.Gaps) == 0 {
		lines = append(lines, "Border: closed")
	} else {
		lines = append(lines, fmt.Sprintf("Border: %d gaps", len(s.Gaps)))
	}
	if len(s.Unknown) > 0 {
		lines = append(lines, fmt.Sprintf("Unknown symbols: %q", string(s.Unknown)))
	}
	return lines
}

// legendLines lists every recognized symbol with its tile type.
func legendLines() []string {
	symbols := []rune{' ', '.', '#', '1', '2', '3', '+', '-', '|', 'D', 'g', 'G', 'P', 's', 'S'}
	lines := make([]string, 0, len(symbols))
	for _, r := range symbols {
		t := world.Classify(r)
		lines = append(lines, fmt.Sprintf("%q  %-9s blocking=%v", r, t, t.IsBlocking()))
	}
	return lines
}
