package formats_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/maps/formats"
)

const sample = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

func TestParseTextSample(t *testing.T) {
	m, err := formats.ParseText([]byte(sample))
	if err != nil {
		t.Fatalf("ParseText() failed: %v", err)
	}

	if m.Height != 10 || m.Width != 10 {
		t.Errorf("expected 10x10 map, got %dx%d", m.Height, m.Width)
	}
	if len(m.Walls) != 8 {
		t.Errorf("expected 8 walls, got %d", len(m.Walls))
	}
	if m.Start != core.P(6, 4) || m.Facing != core.North {
		t.Errorf("guard = %v %v, expected (6,4) North", m.Start, m.Facing)
	}

	grid := m.ToGrid()
	if grid.MarkerAt(m.Start) != core.Open {
		t.Error("guard cell must be open")
	}
	if grid.MarkerAt(core.P(0, 4)) != core.Obstructed {
		t.Error("expected wall at (0,4)")
	}
}

func TestParseTextCRLF(t *testing.T) {
	m, err := formats.ParseText([]byte("..\r\n.<\r\n\r\n"))
	if err != nil {
		t.Fatalf("ParseText() failed: %v", err)
	}
	if m.Height != 2 || m.Width != 2 || m.Facing != core.West {
		t.Errorf("unexpected map %+v", m)
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"empty", "", formats.CodeEmptyMap},
		{"ragged", "...\n.^\n...", formats.CodeRaggedRows},
		{"no guard", "...\n.#.", formats.CodeNoGuard},
		{"two guards", "^..\n..v", formats.CodeMultipleGuards},
		{"unknown glyph", "^.x", formats.CodeUnknownGlyph},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formats.ParseText([]byte(tc.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, formats.ErrMalformed) {
				t.Errorf("error %v should match ErrMalformed", err)
			}
			var perr formats.ParseError
			if !errors.As(err, &perr) || perr.Code != tc.code {
				t.Errorf("error = %v, expected code %s", err, tc.code)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	m, err := formats.ParseText([]byte(sample))
	if err != nil {
		t.Fatalf("ParseText() failed: %v", err)
	}

	got := strings.Join(m.Layout(), "\n") + "\n"
	if got != sample {
		t.Errorf("Layout() =\n%s\nexpected\n%s", got, sample)
	}
}

func TestHashStable(t *testing.T) {
	a, _ := formats.ParseText([]byte(sample))
	b, _ := formats.ParseText([]byte(strings.ReplaceAll(sample, "\n", "\r\n")))
	c, _ := formats.ParseText([]byte("^"))

	if a.Hash() != b.Hash() {
		t.Error("line endings should not change the hash")
	}
	if a.Hash() == c.Hash() {
		t.Error("different layouts should hash differently")
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`id: corner
name: Corner Case
layout:
  - "#.."
  - "..."
  - ".^."
metadata:
  source: handmade
`)

	m, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if m.ID != "corner" || m.Name != "Corner Case" {
		t.Errorf("unexpected id/name %q/%q", m.ID, m.Name)
	}
	if !reflect.DeepEqual(m.Walls, []core.Position{core.P(0, 0)}) {
		t.Errorf("Walls = %v", m.Walls)
	}
	if m.Metadata["source"] != "handmade" {
		t.Errorf("metadata not parsed: %v", m.Metadata)
	}
}

func TestParseYAMLBadLayout(t *testing.T) {
	_, err := formats.ParseYAML([]byte("id: x\nlayout: [\"...\"]\n"))
	if !errors.Is(err, formats.ErrMalformed) {
		t.Errorf("expected malformed error, got %v", err)
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	m, _ := formats.ParseText([]byte(sample))
	m.ID = "sample"
	m.Name = "Sample"

	data, err := formats.MarshalYAML(m)
	if err != nil {
		t.Fatalf("MarshalYAML() failed: %v", err)
	}
	back, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if back.Hash() != m.Hash() || back.ID != "sample" {
		t.Error("YAML round trip changed the map")
	}
}
