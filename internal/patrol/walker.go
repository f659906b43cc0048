package patrol

import "github.com/vovakirdan/guard-patrol/internal/core"

// StepKind describes what a single walker step did.
type StepKind uint8

const (
	StepAdvanced StepKind = iota // moved one cell forward
	StepTurned                   // blocked, turned right in place
	StepExited                   // next cell is off the grid; the walk is over
	StepLooped                   // the guard is back in a state it already turned in
)

// String returns the string representation of a step kind.
func (k StepKind) String() string {
	switch k {
	case StepAdvanced:
		return "advanced"
	case StepTurned:
		return "turned"
	case StepExited:
		return "exited"
	case StepLooped:
		return "looped"
	default:
		return "unknown"
	}
}

// Walker moves the guard one cell at a time over a grid and records every
// cell it stands on. It is the reference rule: advance if the next cell is
// open, turn right if it is obstructed, stop once the next cell is off-grid.
type Walker struct {
	grid    *core.Grid
	guard   Guard
	visited map[core.Position]struct{}
	order   []core.Position
	turns   map[Guard]struct{}
	steps   int
	last    StepKind
	done    bool
}

// NewWalker starts a walk. The starting cell counts as visited.
func NewWalker(grid *core.Grid, start Guard) *Walker {
	w := &Walker{
		grid:    grid,
		guard:   start,
		visited: make(map[core.Position]struct{}),
		turns:   make(map[Guard]struct{}),
	}
	w.record(start.Pos)
	return w
}

func (w *Walker) record(p core.Position) {
	if _, seen := w.visited[p]; seen {
		return
	}
	w.visited[p] = struct{}{}
	w.order = append(w.order, p)
}

// Step performs one move. Once the walk is over it keeps returning the
// terminal kind.
func (w *Walker) Step() StepKind {
	if w.done {
		return w.last
	}
	w.steps++

	next := w.guard.PeekNext()
	switch {
	case !w.grid.InBounds(next):
		w.done = true
		w.last = StepExited
	case w.grid.MarkerAt(next) == core.Obstructed:
		w.guard.TurnRight()
		w.last = StepTurned
		// A repeated post-turn state means the patrol never leaves.
		if _, seen := w.turns[w.guard]; seen {
			w.done = true
			w.last = StepLooped
			break
		}
		w.turns[w.guard] = struct{}{}
	default:
		w.guard.Advance()
		w.record(w.guard.Pos)
		w.last = StepAdvanced
	}
	return w.last
}

// Run steps until the walk is over and returns the terminal kind.
func (w *Walker) Run() StepKind {
	for !w.done {
		w.Step()
	}
	return w.last
}

// Guard returns a copy of the current guard state.
func (w *Walker) Guard() Guard {
	return w.guard
}

// Grid returns the grid being walked.
func (w *Walker) Grid() *core.Grid {
	return w.grid
}

// Done reports whether the guard has exited or looped.
func (w *Walker) Done() bool {
	return w.done
}

// Looped reports whether the walk ended in a cycle instead of an exit.
func (w *Walker) Looped() bool {
	return w.done && w.last == StepLooped
}

// Steps returns the number of Step calls that did work.
func (w *Walker) Steps() int {
	return w.steps
}

// Visited reports whether the guard has stood on p.
func (w *Walker) Visited(p core.Position) bool {
	_, ok := w.visited[p]
	return ok
}

// VisitedCount returns the number of distinct cells stood on.
func (w *Walker) VisitedCount() int {
	return len(w.order)
}

// Path returns the distinct visited cells in first-visit order.
func (w *Walker) Path() []core.Position {
	out := make([]core.Position, len(w.order))
	copy(out, w.order)
	return out
}

// Walk runs a full patrol and returns the set of distinct cells visited.
func Walk(grid *core.Grid, start Guard) map[core.Position]struct{} {
	w := NewWalker(grid, start)
	w.Run()
	out := make(map[core.Position]struct{}, len(w.visited))
	for p := range w.visited {
		out[p] = struct{}{}
	}
	return out
}

// Path runs a full patrol and returns the distinct cells in visitation order.
func Path(grid *core.Grid, start Guard) []core.Position {
	w := NewWalker(grid, start)
	w.Run()
	return w.order
}
