// Package patrol simulates the guard: the plain cell-by-cell patrol, the
// jump-ahead cycle detector and the search for obstruction placements that
// trap the guard in a loop. All operations are deterministic and
// single-threaded.
package patrol

import "github.com/vovakirdan/guard-patrol/internal/core"

// Guard is the simulated agent. It is a comparable value: two guards are
// equal when position and orientation match, which makes it usable as a
// visited-state key, and copying it clones the state.
type Guard struct {
	Pos    core.Position
	Facing core.Orientation
}

// NewGuard creates a guard at pos facing o.
func NewGuard(pos core.Position, o core.Orientation) Guard {
	return Guard{Pos: pos, Facing: o}
}

// Position returns the guard's current cell.
func (g Guard) Position() core.Position {
	return g.Pos
}

// PeekNext returns the cell directly ahead without moving.
func (g Guard) PeekNext() core.Position {
	return g.Pos.Step(g.Facing)
}

// Advance moves one cell forward. No bounds check is done.
func (g *Guard) Advance() {
	g.Pos = g.Pos.Step(g.Facing)
}

// SetPosition relocates the guard, keeping its orientation.
func (g *Guard) SetPosition(p core.Position) {
	g.Pos = p
}

// TurnRight rotates the guard in place.
func (g *Guard) TurnRight() {
	g.Facing = g.Facing.TurnRight()
}

// String returns e.g. "(6,4)^".
func (g Guard) String() string {
	return g.Pos.String() + string(g.Facing.Glyph())
}
