package patrol

import (
	"sort"
	"time"

	"github.com/vovakirdan/guard-patrol/internal/core"
)

// FindLoopPlacements returns every cell where a single extra obstruction
// traps the guard in a cycle.
//
// It replays the original patrol. Each time the guard is about to step into
// a cell it has not stood on or tried yet, that cell is probed: it is added
// to the wall index, DetectCycle runs from the guard's current state, and the
// cell is removed again before the walk continues unmodified. Cells already
// passed through are skipped, since blocking them would have changed the path
// that led here. The starting cell is never a placement.
func FindLoopPlacements(grid *core.Grid, start Guard) map[core.Position]struct{} {
	idx := NewWallIndex(grid)
	placements := make(map[core.Position]struct{})
	tried := map[core.Position]struct{}{start.Pos: {}}

	w := NewWalker(grid, start)
	for !w.Done() {
		g := w.Guard()
		next := g.PeekNext()
		if grid.InBounds(next) && grid.MarkerAt(next) == core.Open {
			if _, done := tried[next]; !done {
				tried[next] = struct{}{}
				cyclic := idx.WithObstruction(next, func() bool {
					return DetectCycle(idx, g)
				})
				if cyclic {
					placements[next] = struct{}{}
				}
			}
		}
		w.Step()
	}

	delete(placements, start.Pos)
	return placements
}

// Result is the outcome of a full analysis of one map.
type Result struct {
	Visited        int             // distinct cells on the plain patrol
	Placements     int             // distinct trapping obstruction cells; 0 when Looped
	PlacementCells []core.Position // row-major sorted
	Looped         bool            // the plain patrol itself never exits
	Elapsed        time.Duration
}

// Analyze runs the plain patrol and the placement search.
func Analyze(grid *core.Grid, start Guard) Result {
	began := time.Now()

	w := NewWalker(grid, start)
	w.Run()

	// A guard that never leaves is trapped without help; no placement applies.
	var found map[core.Position]struct{}
	if !w.Looped() {
		found = FindLoopPlacements(grid, start)
	}
	cells := make([]core.Position, 0, len(found))
	for p := range found {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})

	return Result{
		Visited:        w.VisitedCount(),
		Placements:     len(cells),
		PlacementCells: cells,
		Looped:         w.Looped(),
		Elapsed:        time.Since(began),
	}
}
