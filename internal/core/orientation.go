// Package core provides the fundamental patrol types: orientations, positions
// and the immutable grid. It has no external dependencies so the simulation
// stays pure and testable.
package core

// Orientation is the direction a guard is facing.
type Orientation uint8

const (
	North Orientation = iota
	East
	South
	West
)

// Orientations lists every orientation in turn-right order.
var Orientations = [4]Orientation{North, East, South, West}

// turnRight is the total "turn right" table.
var turnRight = [4]Orientation{
	North: East,
	East:  South,
	South: West,
	West:  North,
}

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	switch o {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// TurnRight returns the orientation after a quarter turn clockwise.
func (o Orientation) TurnRight() Orientation {
	return turnRight[o&3]
}

// Delta returns the (dRow, dCol) offset for moving one cell.
// North decreases the row (screen coordinates).
func (o Orientation) Delta() (dRow, dCol int) {
	switch o {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Glyph returns the map character for a guard facing this way.
func (o Orientation) Glyph() rune {
	switch o {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	default:
		return '?'
	}
}

// OrientationFromGlyph parses a guard glyph.
func OrientationFromGlyph(r rune) (Orientation, bool) {
	switch r {
	case '^':
		return North, true
	case '>':
		return East, true
	case 'v':
		return South, true
	case '<':
		return West, true
	}
	return North, false
}
