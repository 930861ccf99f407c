package dialog

import (
	"github.com/billie-coop/slides/internal/tui/components/core"
	"github.com/billie-coop/slides/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// BaseDialog provides common dialog functionality
type BaseDialog struct {
	core.SizeableBase

	title     string
	isOpen    bool
	result    interface{}
	cancelled bool

	// Styling
	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
}

// NewBaseDialog creates a new base dialog
func NewBaseDialog(title string) *BaseDialog {
	theme := styles.CurrentTheme()
	return &BaseDialog{
		title: title,

		borderStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFocus).
			Padding(1, 2),

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			MarginBottom(1),
	}
}

// IsOpen returns whether the dialog is open
func (d *BaseDialog) IsOpen() bool {
	return d.isOpen
}

// Open opens the dialog
func (d *BaseDialog) Open() tea.Cmd {
	d.isOpen = true
	d.cancelled = false
	d.result = nil
	return nil
}

// Close closes the dialog
func (d *BaseDialog) Close() tea.Cmd {
	d.isOpen = false
	return nil
}

// Cancel closes the dialog as cancelled
func (d *BaseDialog) Cancel() tea.Cmd {
	d.cancelled = true
	return d.Close()
}

// GetResult returns the dialog result
func (d *BaseDialog) GetResult() interface{} {
	return d.result
}

// IsCancelled returns whether the dialog was cancelled
func (d *BaseDialog) IsCancelled() bool {
	return d.cancelled
}

// SetResult sets the dialog result
func (d *BaseDialog) SetResult(result interface{}) {
	d.result = result
}

// RenderDialog renders the dialog centered in its area
func (d *BaseDialog) RenderDialog(content string) string {
	if !d.isOpen {
		return ""
	}

	dialogContent := content
	if d.title != "" {
		dialogContent = lipgloss.JoinVertical(lipgloss.Left, d.titleStyle.Render(d.title), content)
	}

	box := d.borderStyle.Render(dialogContent)
	if d.Width <= 0 || d.Height <= 0 {
		return box
	}
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}
