package styles

import (
	"github.com/charmbracelet/glamour/v2"
)

// MarkdownRenderer returns a glamour TermRenderer styled with the current theme
func MarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	t := CurrentTheme()
	return glamour.NewTermRenderer(
		glamour.WithStyles(t.S().Markdown),
		glamour.WithWordWrap(width),
	)
}
