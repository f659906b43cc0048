package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show map list sidebar
	sidebarWidth       = 22  // Width of map list sidebar
	maxRuns            = 200 // Max runs to load per map
)

// RunSource is the subset of the store the history screen reads from.
type RunSource interface {
	MapIDs() ([]string, error)
	RecentRuns(mapID string, limit int) ([]storage.RunRecord, error)
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	mapIDs      []string
	mapCursor   int
	source      RunSource
	runs        []storage.RunRecord
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ListKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history model. When mapID is not empty the
// cursor starts on that map.
func NewHistoryModel(source RunSource, mapID string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		keys:        DefaultListKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if source != nil {
		ids, err := source.MapIDs()
		if err != nil {
			m.loadErr = err
		}
		m.mapIDs = ids
	}
	for i, id := range m.mapIDs {
		if id == mapID {
			m.mapCursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Size", Width: 9},
		{Title: "Visited", Width: 8},
		{Title: "Loops", Width: 6},
		{Title: "Time", Width: 10},
		{Title: "Run", Width: 10},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Give any spare room to the run id column
	if spare := tableWidth - 69; spare > 0 {
		columns[5].Width += min(spare, 26)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentMap returns the selected map id, or "" when there are none.
func (m HistoryModel) currentMap() string {
	if len(m.mapIDs) == 0 {
		return ""
	}
	return m.mapIDs[m.mapCursor]
}

// loadRuns loads runs for the selected map.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.source != nil && m.currentMap() != "" {
		runs, err := m.source.RecentRuns(m.currentMap(), maxRuns)
		if err != nil {
			m.loadErr = err
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows refreshes the table from m.runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		loops := fmt.Sprintf("%d", r.Placements)
		if r.Looped {
			loops = "-" // guard never leaves
		}
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%dx%d", r.Height, r.Width),
			fmt.Sprintf("%d", r.Visited),
			loops,
			r.Elapsed.Round(time.Microsecond).String(),
			r.ID,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.mapIDs) > 0 {
				m.mapCursor = (m.mapCursor + 1) % len(m.mapIDs)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.mapIDs) > 0 {
				m.mapCursor = (m.mapCursor - 1 + len(m.mapIDs)) % len(m.mapIDs)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RUN HISTORY"
	if id := m.currentMap(); id != "" {
		title = "RUN HISTORY - " + id
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the map list next to the table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Maps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.mapIDs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.mapCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(id, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ",
		tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows the current map between arrows above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if id := m.currentMap(); id != "" {
		b.WriteString(centerText(fmt.Sprintf("< %s >", id), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read history:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nUse `patrol solve --save` to record one.")
	}
	return m.table.View()
}

// Runs returns the runs shown for the selected map.
func (m HistoryModel) Runs() []storage.RunRecord {
	return m.runs
}

// SelectedMap returns the id of the map being shown.
func (m HistoryModel) SelectedMap() string {
	return m.currentMap()
}

// IsGoingBack returns true if user wants to go back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// RunHistory runs the history screen.
func RunHistory(source RunSource, mapID string, width, height int) error {
	model := NewHistoryModel(source, mapID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
