package patrol

import (
	"sort"

	"github.com/google/btree"

	"github.com/vovakirdan/guard-patrol/internal/core"
)

// btreeDegree is small because each line holds only a handful of walls.
const btreeDegree = 8

// WallIndex mirrors the obstructed cells of a grid as two sparse maps of
// ordered sets: column -> obstructed rows, and row -> obstructed columns.
// It answers "nearest wall ahead of the guard" in O(log n).
type WallIndex struct {
	byCol map[int]*btree.BTreeG[int]
	byRow map[int]*btree.BTreeG[int]
	count int
}

// NewWallIndex builds an index of every obstruction in the grid.
func NewWallIndex(g *core.Grid) *WallIndex {
	w := &WallIndex{
		byCol: make(map[int]*btree.BTreeG[int]),
		byRow: make(map[int]*btree.BTreeG[int]),
	}
	for _, p := range g.Obstructions() {
		w.Insert(p)
	}
	return w
}

// Insert adds an obstruction. Inserting an existing one is a no-op.
func (w *WallIndex) Insert(p core.Position) {
	if _, existed := line(w.byCol, p.Col, true).ReplaceOrInsert(p.Row); existed {
		return
	}
	line(w.byRow, p.Row, true).ReplaceOrInsert(p.Col)
	w.count++
}

// Remove deletes an obstruction. Removing a missing one is a no-op.
func (w *WallIndex) Remove(p core.Position) {
	col := line(w.byCol, p.Col, false)
	if col == nil {
		return
	}
	if _, found := col.Delete(p.Row); !found {
		return
	}
	if col.Len() == 0 {
		delete(w.byCol, p.Col)
	}

	row := line(w.byRow, p.Row, false)
	row.Delete(p.Col)
	if row.Len() == 0 {
		delete(w.byRow, p.Row)
	}
	w.count--
}

// Contains reports whether p is obstructed in the index.
func (w *WallIndex) Contains(p core.Position) bool {
	col := line(w.byCol, p.Col, false)
	return col != nil && col.Has(p.Row)
}

// Len returns the number of indexed obstructions.
func (w *WallIndex) Len() int {
	return w.count
}

// Positions returns every indexed obstruction in row-major order.
func (w *WallIndex) Positions() []core.Position {
	out := make([]core.Position, 0, w.count)
	for row, cols := range w.byRow {
		cols.Ascend(func(col int) bool {
			out = append(out, core.P(row, col))
			return true
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

// NextStop returns the farthest cell the guard can reach on its current line
// before bumping into a wall, i.e. one cell short of the nearest obstruction
// strictly ahead. It returns false when nothing is ahead and the guard would
// leave the grid.
func (w *WallIndex) NextStop(g Guard) (core.Position, bool) {
	pos := g.Pos
	switch g.Facing {
	case core.North:
		if row, ok := below(line(w.byCol, pos.Col, false), pos.Row); ok {
			return core.P(row+1, pos.Col), true
		}
	case core.South:
		if row, ok := above(line(w.byCol, pos.Col, false), pos.Row); ok {
			return core.P(row-1, pos.Col), true
		}
	case core.East:
		if col, ok := above(line(w.byRow, pos.Row, false), pos.Col); ok {
			return core.P(pos.Row, col-1), true
		}
	case core.West:
		if col, ok := below(line(w.byRow, pos.Row, false), pos.Col); ok {
			return core.P(pos.Row, col+1), true
		}
	}
	return pos, false
}

// WithObstruction temporarily adds p to the index while fn runs and removes
// it afterwards on every exit path, panics included. If p is already
// obstructed the index is left untouched.
func (w *WallIndex) WithObstruction(p core.Position, fn func() bool) bool {
	if w.Contains(p) {
		return fn()
	}
	w.Insert(p)
	defer w.Remove(p)
	return fn()
}

// line returns the ordered set for key, creating it when create is set.
func line(m map[int]*btree.BTreeG[int], key int, create bool) *btree.BTreeG[int] {
	t, ok := m[key]
	if !ok && create {
		t = btree.NewOrderedG[int](btreeDegree)
		m[key] = t
	}
	return t
}

// above returns the smallest offset strictly greater than from.
func above(t *btree.BTreeG[int], from int) (int, bool) {
	if t == nil {
		return 0, false
	}
	var hit int
	found := false
	t.AscendGreaterOrEqual(from+1, func(v int) bool {
		hit, found = v, true
		return false
	})
	return hit, found
}

// below returns the largest offset strictly less than from.
func below(t *btree.BTreeG[int], from int) (int, bool) {
	if t == nil {
		return 0, false
	}
	var hit int
	found := false
	t.DescendLessOrEqual(from-1, func(v int) bool {
		hit, found = v, true
		return false
	})
	return hit, found
}
