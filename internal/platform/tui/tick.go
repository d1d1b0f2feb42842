// Package tui provides the Bubble Tea integration for the simulator.
// It handles the terminal UI loop, input mapping, and run orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation generation.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// configured refresh rate.
func tickCmd(refreshRate int) tea.Cmd {
	interval := time.Second / time.Duration(refreshRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
