package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps app in a full-screen Bubble Tea program.
func NewProgram(app *App, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(app, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}
