// Package tui provides the Bubble Tea integration for the patrol tool:
// the animated patrol viewer, the run history table and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a viewer tick. Viewer identifies the viewer
// whose tick chain produced it; other viewers ignore it.
type TickMsg struct {
	Viewer uint64
	At     time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, viewer uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Viewer: viewer, At: t}
	})
}
