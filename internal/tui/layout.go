package tui

import (
	"github.com/billie-coop/slides/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// header, status bar and key help take one line each
const chromeHeight = 3

// updateSizes hands each component its share of the window.
func (m *Model) updateSizes() tea.Cmd {
	imageHeight := m.height - chromeHeight
	if imageHeight < 0 {
		imageHeight = 0
	}
	return tea.Batch(
		m.imageView.SetSize(m.width, imageHeight),
		m.statusBar.SetSize(m.width, 1),
		m.dialogs.SetSize(m.width, m.height),
	)
}

// View renders the screen. An open dialog covers the whole window.
func (m *Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("Loading…")
	}

	if m.dialogs.IsDialogOpen() {
		return tea.NewView(m.dialogs.View())
	}

	theme := styles.CurrentTheme()
	header := lipgloss.NewStyle().Width(m.width).Render(
		styles.ApplyGradient("slides", theme.Primary, theme.Accent))
	footer := theme.S().Subtle.Render(m.help.View(m.keys))

	return tea.NewView(lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.imageView.View(),
		m.statusBar.View(),
		footer,
	))
}
