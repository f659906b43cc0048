package patrol

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/core"
)

var sampleLayout = []string{
	"....#.....",
	".........#",
	"..........",
	"..#.......",
	".......#..",
	"..........",
	".#..^.....",
	"........#.",
	"#.........",
	"......#...",
}

// parseLayout builds a grid and guard from map rows.
func parseLayout(t *testing.T, rows ...string) (*core.Grid, Guard) {
	t.Helper()

	var walls []core.Position
	var guard Guard
	found := false
	for r, line := range rows {
		if len(line) != len(rows[0]) {
			t.Fatalf("row %d has length %d, expected %d", r, len(line), len(rows[0]))
		}
		for c, ch := range line {
			if ch == '#' {
				walls = append(walls, core.P(r, c))
				continue
			}
			if o, ok := core.OrientationFromGlyph(ch); ok {
				guard = NewGuard(core.P(r, c), o)
				found = true
			}
		}
	}
	if !found {
		t.Fatal("layout has no guard")
	}
	return core.NewGrid(len(rows), len(rows[0]), walls), guard
}

// naiveLoops is the cell-by-cell reference: it records every state and
// reports whether one repeats before the guard walks off the grid.
func naiveLoops(grid *core.Grid, extra core.Position, g Guard) bool {
	seen := make(map[Guard]struct{})
	for {
		if _, ok := seen[g]; ok {
			return true
		}
		seen[g] = struct{}{}

		next := g.PeekNext()
		if !grid.InBounds(next) {
			return false
		}
		if next == extra || grid.MarkerAt(next) == core.Obstructed {
			g.TurnRight()
		} else {
			g.Advance()
		}
	}
}

// randomLayout produces a reproducible h x w map with roughly density walls.
func randomLayout(rng *rand.Rand, h, w int, density float64) []string {
	rows := make([][]byte, h)
	for r := range rows {
		rows[r] = make([]byte, w)
		for c := range rows[r] {
			if rng.Float64() < density {
				rows[r][c] = '#'
			} else {
				rows[r][c] = '.'
			}
		}
	}
	gr, gc := rng.Intn(h), rng.Intn(w)
	rows[gr][gc] = "^>v<"[rng.Intn(4)]

	out := make([]string, h)
	for r := range rows {
		out[r] = string(rows[r])
	}
	return out
}
