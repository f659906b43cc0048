package core

import "testing"

func TestOrientationTurnRightCycle(t *testing.T) {
	for _, start := range Orientations {
		o := start
		for i := 0; i < 4; i++ {
			o = o.TurnRight()
		}
		if o != start {
			t.Errorf("four right turns from %v ended at %v", start, o)
		}
	}
}

func TestOrientationTurnRightOrder(t *testing.T) {
	tests := []struct {
		from, to Orientation
	}{
		{North, East},
		{East, South},
		{South, West},
		{West, North},
	}
	for _, tc := range tests {
		if got := tc.from.TurnRight(); got != tc.to {
			t.Errorf("%v.TurnRight() = %v, expected %v", tc.from, got, tc.to)
		}
	}
}

func TestOrientationGlyphRoundTrip(t *testing.T) {
	for _, o := range Orientations {
		got, ok := OrientationFromGlyph(o.Glyph())
		if !ok || got != o {
			t.Errorf("glyph %q parsed to %v (ok=%v), expected %v", o.Glyph(), got, ok, o)
		}
	}
	if _, ok := OrientationFromGlyph('#'); ok {
		t.Error("'#' should not parse as an orientation")
	}
}

func TestPositionStep(t *testing.T) {
	p := P(3, 3)
	tests := []struct {
		o    Orientation
		want Position
	}{
		{North, P(2, 3)},
		{East, P(3, 4)},
		{South, P(4, 3)},
		{West, P(3, 2)},
	}
	for _, tc := range tests {
		if got := p.Step(tc.o); got != tc.want {
			t.Errorf("Step(%v) = %v, expected %v", tc.o, got, tc.want)
		}
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(3, 5, nil)

	tests := []struct {
		p    Position
		want bool
	}{
		{P(0, 0), true},
		{P(2, 4), true},
		{P(-1, 0), false},
		{P(0, -1), false},
		{P(3, 0), false},
		{P(0, 5), false},
	}
	for _, tc := range tests {
		if got := g.InBounds(tc.p); got != tc.want {
			t.Errorf("InBounds(%v) = %v, expected %v", tc.p, got, tc.want)
		}
	}
}

func TestGridMarkers(t *testing.T) {
	g := NewGrid(3, 3, []Position{P(0, 0), P(2, 1), P(9, 9)})

	if g.MarkerAt(P(0, 0)) != Obstructed || g.MarkerAt(P(2, 1)) != Obstructed {
		t.Error("expected obstructions at (0,0) and (2,1)")
	}
	if g.MarkerAt(P(1, 1)) != Open {
		t.Error("expected (1,1) to be open")
	}

	obs := g.Obstructions()
	if len(obs) != 2 || obs[0] != P(0, 0) || obs[1] != P(2, 1) {
		t.Errorf("Obstructions() = %v", obs)
	}
}

func TestGridMarkerAtOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(2, 2, nil)

	defer func() {
		if recover() == nil {
			t.Error("MarkerAt out of bounds should panic")
		}
	}()
	g.MarkerAt(P(2, 0))
}
