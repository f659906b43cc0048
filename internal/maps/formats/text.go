// Package formats provides the map file parsers: the plain glyph layout and
// a YAML wrapper around it.
package formats

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// ErrMalformed is matched by every ParseError via errors.Is.
var ErrMalformed = errors.New("malformed map")

// Parse error codes.
const (
	CodeEmptyMap       = "EMPTY_MAP"
	CodeRaggedRows     = "RAGGED_ROWS"
	CodeNoGuard        = "NO_GUARD"
	CodeMultipleGuards = "MULTIPLE_GUARDS"
	CodeUnknownGlyph   = "UNKNOWN_GLYPH"
)

// ParseError describes why a layout was rejected. Line is 1-based, 0 when
// the problem is not tied to a line.
type ParseError struct {
	Code    string
	Line    int
	Message string
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrMalformed) hold for every ParseError.
func (e ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// Map is a parsed map ready for simulation.
type Map struct {
	ID       string
	Name     string
	Height   int
	Width    int
	Walls    []core.Position
	Start    core.Position
	Facing   core.Orientation
	Metadata map[string]string
}

// ToGrid creates the immutable grid. The guard's cell is always open.
func (m *Map) ToGrid() *core.Grid {
	return core.NewGrid(m.Height, m.Width, m.Walls)
}

// Guard returns the initial guard state.
func (m *Map) Guard() patrol.Guard {
	return patrol.NewGuard(m.Start, m.Facing)
}

// Layout renders the map back to glyph rows.
func (m *Map) Layout() []string {
	rows := make([][]byte, m.Height)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(".", m.Width))
	}
	for _, p := range m.Walls {
		rows[p.Row][p.Col] = '#'
	}
	rows[m.Start.Row][m.Start.Col] = byte(m.Facing.Glyph())

	out := make([]string, m.Height)
	for r := range rows {
		out[r] = string(rows[r])
	}
	return out
}

// Hash identifies the layout independent of file name or format.
func (m *Map) Hash() string {
	sum := sha256.Sum256([]byte(strings.Join(m.Layout(), "\n")))
	return hex.EncodeToString(sum[:])
}

// ParseText parses a glyph layout: '.' open, '#' obstruction and exactly one
// of '^', '>', 'v', '<' for the guard. Carriage returns and trailing blank
// lines are ignored.
func ParseText(data []byte) (Map, error) {
	text := strings.ReplaceAll(string(data), "\r", "")
	return parseRows(strings.Split(strings.TrimRight(text, "\n"), "\n"))
}

func parseRows(rows []string) (Map, error) {
	if len(rows) == 0 || (len(rows) == 1 && rows[0] == "") {
		return Map{}, ParseError{Code: CodeEmptyMap, Message: "layout has no rows"}
	}

	m := Map{
		Height: len(rows),
		Width:  len(rows[0]),
		Walls:  make([]core.Position, 0),
	}
	guards := 0

	for r, row := range rows {
		if len(row) != m.Width {
			return Map{}, ParseError{
				Code:    CodeRaggedRows,
				Line:    r + 1,
				Message: fmt.Sprintf("row has %d cells, expected %d", len(row), m.Width),
			}
		}
		for c, ch := range []byte(row) {
			switch ch {
			case '.':
			case '#':
				m.Walls = append(m.Walls, core.P(r, c))
			default:
				o, ok := core.OrientationFromGlyph(rune(ch))
				if !ok {
					return Map{}, ParseError{
						Code:    CodeUnknownGlyph,
						Line:    r + 1,
						Message: fmt.Sprintf("unexpected %q at column %d", ch, c+1),
					}
				}
				guards++
				if guards > 1 {
					return Map{}, ParseError{
						Code:    CodeMultipleGuards,
						Line:    r + 1,
						Message: fmt.Sprintf("second guard at column %d", c+1),
					}
				}
				m.Start = core.P(r, c)
				m.Facing = o
			}
		}
	}

	if guards == 0 {
		return Map{}, ParseError{Code: CodeNoGuard, Message: "no guard glyph (^ > v <) found"}
	}
	return m, nil
}
