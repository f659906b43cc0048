package patrol

// DetectCycle reports whether a guard starting from start loops forever on
// the walls in idx. Instead of walking cell by cell it jumps straight to the
// cell before the next wall and turns, recording the (position, orientation)
// state after every turn. A repeated state is a cycle; no wall ahead means
// the guard leaves the grid.
//
// The caller's guard is never modified and every call uses its own
// visited-state set.
func DetectCycle(idx *WallIndex, start Guard) bool {
	g := start
	seen := make(map[Guard]struct{})
	for {
		stop, ok := idx.NextStop(g)
		if !ok {
			return false
		}
		g.SetPosition(stop)
		g.TurnRight()
		if _, dup := seen[g]; dup {
			return true
		}
		seen[g] = struct{}{}
	}
}
