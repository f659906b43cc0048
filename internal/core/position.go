package core

import "fmt"

// Position is a grid coordinate. Row grows downward, Col grows to the right.
// It may be transiently out of bounds before a boundary check.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns a new Position offset by (dRow, dCol).
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Step returns the position one cell away in the given orientation.
func (p Position) Step(o Orientation) Position {
	dRow, dCol := o.Delta()
	return p.Add(dRow, dCol)
}

// Less orders positions row-major.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}
