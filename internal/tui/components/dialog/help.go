package dialog

import (
	"strings"

	"github.com/billie-coop/slides/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// HelpDialog shows Markdown help rendered with glamour.
type HelpDialog struct {
	*BaseDialog

	markdown string

	// rendered is cached per wrap width
	rendered      string
	renderedWidth int
}

// NewHelpDialog creates a help dialog for the given Markdown text.
func NewHelpDialog(markdown string) *HelpDialog {
	return &HelpDialog{
		BaseDialog: NewBaseDialog("Help"),
		markdown:   markdown,
	}
}

// Update handles messages
func (d *HelpDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc", "q", "?", "enter":
			return d.Close()
		}
	}
	return nil
}

// View renders the dialog
func (d *HelpDialog) View() string {
	if !d.isOpen {
		return ""
	}
	return d.RenderDialog(d.render())
}

func (d *HelpDialog) render() string {
	width := d.Width - 10
	if width < 20 {
		width = 60
	}
	if d.rendered != "" && d.renderedWidth == width {
		return d.rendered
	}

	out := d.markdown
	if r, err := styles.MarkdownRenderer(width); err == nil {
		if md, err := r.Render(d.markdown); err == nil {
			out = md
		}
	}
	d.rendered = strings.TrimRight(out, "\n")
	d.renderedWidth = width
	return d.rendered
}
