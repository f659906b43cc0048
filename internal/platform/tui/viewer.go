package tui

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// Viewer layout constants
const (
	headerRows      = 2 // title + status
	footerRows      = 1 // help line
	maxStepsPerTick = 4096
)

// Analyzer computes the full analysis of a map. It runs off the UI loop.
type Analyzer func(m maps.Map) patrol.Result

// AnalyzeDirect runs the analysis with no caching.
func AnalyzeDirect(m maps.Map) patrol.Result {
	return patrol.Analyze(m.ToGrid(), m.Guard())
}

// ViewerOptions configures a viewer.
type ViewerOptions struct {
	Width          int
	Height         int
	TickRate       int
	ShowPlacements bool
	Analyzer       Analyzer
	Embedded       bool // back returns to a parent model instead of quitting
}

// viewerSeq hands out viewer ids. Messages carry the id of the viewer that
// started them so a replaced viewer's late results are dropped.
var viewerSeq atomic.Uint64

// analysisMsg delivers a finished analysis.
type analysisMsg struct {
	viewer uint64
	result patrol.Result
}

// ViewerModel is the Bubble Tea model that animates a patrol.
type ViewerModel struct {
	id           uint64
	m            maps.Map
	grid         *core.Grid
	walker       *patrol.Walker
	screen       *core.Screen
	keys         ViewerKeyMap
	help         help.Model
	opts         ViewerOptions
	stepsPerTick int
	paused       bool
	overlay      bool
	analysis     *patrol.Result
	placements   map[core.Position]bool
	quitting     bool
	backToMenu   bool
}

// NewViewerModel creates a viewer for the given map.
func NewViewerModel(m maps.Map, opts ViewerOptions) ViewerModel {
	if opts.Analyzer == nil {
		opts.Analyzer = AnalyzeDirect
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	grid := m.ToGrid()
	h := help.New()
	h.Width = opts.Width

	return ViewerModel{
		id:           viewerSeq.Add(1),
		m:            m,
		grid:         grid,
		walker:       patrol.NewWalker(grid, m.Guard()),
		screen:       core.NewScreen(opts.Width, opts.Height-footerRows),
		keys:         DefaultViewerKeyMap(),
		help:         h,
		opts:         opts,
		stepsPerTick: 1,
		overlay:      opts.ShowPlacements,
	}
}

// Init starts the tick loop and the background analysis.
func (m ViewerModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.TickRate, m.id), m.analyzeCmd())
}

func (m ViewerModel) analyzeCmd() tea.Cmd {
	analyze, mp, id := m.opts.Analyzer, m.m, m.id
	return func() tea.Msg {
		return analysisMsg{viewer: id, result: analyze(mp)}
	}
}

// Update handles messages and updates the model state.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		m.opts.Height = msg.Height
		m.screen.Resize(msg.Width, msg.Height-footerRows)
		m.help.Width = msg.Width
		return m, nil

	case analysisMsg:
		if msg.viewer != m.id {
			return m, nil
		}
		res := msg.result
		m.analysis = &res
		m.placements = make(map[core.Position]bool, len(res.PlacementCells))
		for _, p := range res.PlacementCells {
			m.placements[p] = true
		}
		return m, nil

	case TickMsg:
		// A stale chain stops here by not rescheduling.
		if msg.Viewer != m.id {
			return m, nil
		}
		if !m.paused {
			m.advance(m.stepsPerTick)
		}
		return m, tickCmd(m.opts.TickRate, m.id)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.opts.Embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.advance(1)

	case key.Matches(msg, m.keys.Faster):
		m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)

	case key.Matches(msg, m.keys.Slower):
		m.stepsPerTick = max(m.stepsPerTick/2, 1)

	case key.Matches(msg, m.keys.Finish):
		m.walker.Run()

	case key.Matches(msg, m.keys.Restart):
		m.walker = patrol.NewWalker(m.grid, m.m.Guard())

	case key.Matches(msg, m.keys.Overlay):
		m.overlay = !m.overlay
	}

	return m, nil
}

// advance steps the walker up to n times.
func (m *ViewerModel) advance(n int) {
	for i := 0; i < n && !m.walker.Done(); i++ {
		m.walker.Step()
	}
}

// View renders the current state to a string for display.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// draw renders header, status and the visible part of the grid.
func (m ViewerModel) draw(s *core.Screen) {
	s.Clear()
	guard := m.walker.Guard()

	title := fmt.Sprintf("%s  %dx%d  steps %d  visited %d  x%d",
		m.m.Name, m.grid.Height(), m.grid.Width(),
		m.walker.Steps(), m.walker.VisitedCount(), m.stepsPerTick)
	if m.paused {
		title += "  [paused]"
	}
	s.DrawText(0, 0, title, core.ColorText)
	s.DrawText(0, 1, m.status(), core.ColorDim)

	// Box around the viewport
	boxW := min(m.grid.Width()+2, s.Width())
	boxH := min(m.grid.Height()+2, s.Height()-headerRows)
	if boxW < 3 || boxH < 3 {
		return
	}
	s.DrawBox(0, headerRows, boxW, boxH, core.ColorDim)

	viewW, viewH := boxW-2, boxH-2
	offRow := cameraOffset(guard.Pos.Row, viewH, m.grid.Height())
	offCol := cameraOffset(guard.Pos.Col, viewW, m.grid.Width())

	for vy := 0; vy < viewH; vy++ {
		for vx := 0; vx < viewW; vx++ {
			p := core.P(offRow+vy, offCol+vx)
			r, c := m.cellGlyph(p, guard)
			s.Set(vx+1, vy+headerRows+1, r, c)
		}
	}
}

// cellGlyph picks the rune and color for a grid cell.
func (m ViewerModel) cellGlyph(p core.Position, guard patrol.Guard) (rune, core.Color) {
	switch {
	case !m.grid.InBounds(p):
		return ' ', core.ColorDefault
	case p == guard.Pos && !m.walker.Done():
		return guard.Facing.Glyph(), core.ColorGuard
	case m.grid.MarkerAt(p) == core.Obstructed:
		return '#', core.ColorWall
	case m.overlay && m.placements[p]:
		return 'O', core.ColorPlacement
	case m.walker.Visited(p):
		return 'X', core.ColorTrail
	default:
		return '.', core.ColorDim
	}
}

// status describes the walk outcome and the analysis progress.
func (m ViewerModel) status() string {
	walk := "patrolling"
	switch {
	case m.walker.Looped():
		walk = "stuck in a loop"
	case m.walker.Done():
		walk = "left the grid"
	}

	if m.analysis == nil {
		return walk + "  |  analysing placements..."
	}
	if m.analysis.Looped {
		return fmt.Sprintf("%s  |  %d cells on full patrol, guard never leaves so no placements apply (%s)",
			walk, m.analysis.Visited, m.analysis.Elapsed.Round(time.Microsecond))
	}
	return fmt.Sprintf("%s  |  %d cells on full patrol, %d trapping placements (%s)",
		walk, m.analysis.Visited, m.analysis.Placements, m.analysis.Elapsed.Round(time.Microsecond))
}

// cameraOffset keeps pos inside a window of size view over a line of length total.
func cameraOffset(pos, view, total int) int {
	if total <= view {
		return 0
	}
	off := pos - view/2
	return max(0, min(off, total-view))
}

// IsQuitting returns true if user requested to quit entirely.
func (m ViewerModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the map picker.
func (m ViewerModel) BackToMenu() bool {
	return m.backToMenu
}

// Walker exposes the underlying walker.
func (m ViewerModel) Walker() *patrol.Walker {
	return m.walker
}

// ID returns the viewer's id, carried by its tick and analysis messages.
func (m ViewerModel) ID() uint64 {
	return m.id
}

// Analysis returns the finished analysis, or nil while it is running.
func (m ViewerModel) Analysis() *patrol.Result {
	return m.analysis
}

// RunViewer starts the Bubble Tea program with a viewer for the given map.
func RunViewer(m maps.Map, opts ViewerOptions) error {
	model := NewViewerModel(m, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
