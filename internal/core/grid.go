package core

import "fmt"

// Marker is the content of a single grid cell.
type Marker uint8

const (
	Open Marker = iota
	Obstructed
)

// String returns the map glyph for the marker.
func (m Marker) String() string {
	if m == Obstructed {
		return "#"
	}
	return "."
}

// Grid is an immutable rectangular lattice of cell markers.
// Cells are stored in row-major order: index = row*width + col.
type Grid struct {
	height int
	width  int
	cells  []Marker
}

// NewGrid creates a grid with the given dimensions. Obstructions outside the
// bounds are ignored.
func NewGrid(height, width int, obstructions []Position) *Grid {
	g := &Grid{
		height: height,
		width:  width,
		cells:  make([]Marker, height*width),
	}
	for _, p := range obstructions {
		if g.InBounds(p) {
			g.cells[g.index(p)] = Obstructed
		}
	}
	return g
}

func (g *Grid) index(p Position) int {
	return p.Row*g.width + p.Col
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Cells returns the total number of cells.
func (g *Grid) Cells() int {
	return len(g.cells)
}

// InBounds returns true if the position lies within [0,height) x [0,width).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// MarkerAt returns the marker at p. Callers must check InBounds first;
// an out-of-bounds query is an invariant breach and panics.
func (g *Grid) MarkerAt(p Position) Marker {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("core: MarkerAt%s outside %dx%d grid", p, g.height, g.width))
	}
	return g.cells[g.index(p)]
}

// Obstructions returns every obstructed position in row-major order.
func (g *Grid) Obstructions() []Position {
	out := make([]Position, 0)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if g.cells[row*g.width+col] == Obstructed {
				out = append(out, P(row, col))
			}
		}
	}
	return out
}
