package patrol

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/core"
)

func TestWalkSample(t *testing.T) {
	grid, guard := parseLayout(t, sampleLayout...)

	visited := Walk(grid, guard)
	if len(visited) != 41 {
		t.Errorf("expected 41 visited cells, got %d", len(visited))
	}
	if _, ok := visited[guard.Pos]; !ok {
		t.Error("starting cell should be visited")
	}
}

func TestWalkIdempotent(t *testing.T) {
	grid, guard := parseLayout(t, sampleLayout...)

	first := Walk(grid, guard)
	second := Walk(grid, guard)
	if !reflect.DeepEqual(first, second) {
		t.Error("two walks over the same grid should visit the same cells")
	}
	if !reflect.DeepEqual(Path(grid, guard), Path(grid, guard)) {
		t.Error("two walks over the same grid should produce the same path")
	}
}

func TestPathOrder(t *testing.T) {
	grid, guard := parseLayout(t,
		"#...",
		"...#",
		"^...",
	)

	// Up to (1,0), turn east at (0,0), run to (1,2), turn south at (1,3),
	// then down through (2,2) and off the bottom edge.
	want := []core.Position{
		core.P(2, 0), core.P(1, 0), core.P(1, 1), core.P(1, 2), core.P(2, 2),
	}
	if got := Path(grid, guard); !reflect.DeepEqual(got, want) {
		t.Errorf("Path() = %v, expected %v", got, want)
	}
}

func TestWalkerSingleCell(t *testing.T) {
	grid, guard := parseLayout(t, "^")

	w := NewWalker(grid, guard)
	if kind := w.Run(); kind != StepExited {
		t.Errorf("expected exit, got %v", kind)
	}
	if w.VisitedCount() != 1 {
		t.Errorf("expected 1 visited cell, got %d", w.VisitedCount())
	}
}

func TestWalkerFacingEdgeExitsImmediately(t *testing.T) {
	grid, guard := parseLayout(t,
		"..>",
		"...",
	)

	w := NewWalker(grid, guard)
	if kind := w.Step(); kind != StepExited {
		t.Errorf("first step = %v, expected exited", kind)
	}
	if !w.Done() || w.Looped() {
		t.Error("walker should be done without a loop")
	}
	if w.VisitedCount() != 1 {
		t.Errorf("expected 1 visited cell, got %d", w.VisitedCount())
	}
	if kind := w.Step(); kind != StepExited {
		t.Errorf("step after exit = %v, expected exited", kind)
	}
}

func TestWalkerDetectsLoopingPatrol(t *testing.T) {
	grid, guard := parseLayout(t,
		".#...",
		"....#",
		"#^...",
		"...#.",
	)

	w := NewWalker(grid, guard)
	if kind := w.Run(); kind != StepLooped {
		t.Fatalf("expected loop, got %v", kind)
	}
	if !w.Looped() {
		t.Error("Looped() should be true")
	}
	if w.VisitedCount() != 6 {
		t.Errorf("expected 6 visited cells, got %d", w.VisitedCount())
	}
}

func TestWalkerBoxedIn(t *testing.T) {
	grid, guard := parseLayout(t,
		".#.",
		"#^#",
		".#.",
	)

	w := NewWalker(grid, guard)
	if kind := w.Run(); kind != StepLooped {
		t.Fatalf("expected a boxed-in guard to loop, got %v", kind)
	}
	if w.Steps() != 5 {
		t.Errorf("expected 5 turns before the repeat, got %d", w.Steps())
	}
	if w.VisitedCount() != 1 {
		t.Errorf("expected only the start cell, got %d", w.VisitedCount())
	}
	if got := len(FindLoopPlacements(grid, guard)); got != 0 {
		t.Errorf("expected no placements, got %d", got)
	}
}

func TestWalkerStepKinds(t *testing.T) {
	grid, guard := parseLayout(t,
		"#.",
		"^.",
	)

	w := NewWalker(grid, guard)
	want := []StepKind{StepTurned, StepAdvanced, StepExited}
	for i, k := range want {
		if got := w.Step(); got != k {
			t.Errorf("step %d = %v, expected %v", i, got, k)
		}
	}
	if w.Guard().Pos != core.P(1, 1) || w.Guard().Facing != core.East {
		t.Errorf("final guard = %v, expected (1,1)>", w.Guard())
	}
}

func TestGuardMoves(t *testing.T) {
	g := NewGuard(core.P(1, 1), core.North)

	if g.PeekNext() != core.P(0, 1) {
		t.Errorf("PeekNext() = %v, expected (0,1)", g.PeekNext())
	}
	if g.Position() != core.P(1, 1) {
		t.Error("PeekNext must not move the guard")
	}

	g.TurnRight()
	g.Advance()
	if g.Pos != core.P(1, 2) || g.Facing != core.East {
		t.Errorf("guard = %v, expected (1,2)>", g)
	}

	clone := g
	clone.SetPosition(core.P(5, 5))
	if g.Pos != core.P(1, 2) {
		t.Error("moving a copy must not move the original")
	}
}
