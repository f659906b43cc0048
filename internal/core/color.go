package core

// Color is the foreground color of a screen cell.
// The TUI layer maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall          // obstructions
	ColorTrail         // cells already visited
	ColorGuard         // the guard glyph
	ColorPlacement     // cells where an extra obstruction traps the guard
	ColorText          // headers and status lines
	ColorDim           // unvisited open cells
)
