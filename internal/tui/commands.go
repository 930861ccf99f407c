package tui

import (
	"github.com/billie-coop/slides/internal/permission"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// requestPermission waits for the user's answer off the update loop. The
// dialog itself opens when the request event arrives.
func (m *Model) requestPermission() tea.Cmd {
	if m.asking {
		return nil
	}
	m.asking = true
	answer := m.app.Permissions.RequestAsync(m.ctx, permission.ReadImages)
	return func() tea.Msg {
		return permissionResultMsg{granted: <-answer}
	}
}

// rescan walks the media roots in the background.
func (m *Model) rescan() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		result, err := m.app.Media.Rescan(ctx)
		return scanDoneMsg{result: result, err: err}
	}
}
