package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Dialog represents a modal dialog component
type Dialog interface {
	Update(tea.Msg) tea.Cmd
	View() string

	SetSize(width, height int) tea.Cmd
	IsOpen() bool
	Open() tea.Cmd
	Close() tea.Cmd

	// Result handling
	GetResult() interface{}
	IsCancelled() bool
}
