package status

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/billie-coop/slides/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// ParseMessageType maps the broker's status type names.
func ParseMessageType(s string) MessageType {
	switch s {
	case "warning":
		return Warning
	case "error":
		return Error
	case "success":
		return Success
	default:
		return Info
	}
}

// StatusMessage represents a status bar message
type StatusMessage struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// Progress describes the frame on screen.
type Progress struct {
	Index int // zero-based
	Total int
	Path  string
	Size  int64
}

// Component is the one-line status bar: list size and run progress on the
// left, a transient message on the right.
type Component struct {
	message *StatusMessage
	width   int

	count    int
	progress *Progress
	activity string
	elapsed  string

	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		clearAfter: 5 * time.Second,
	}
}

// SetMessage sets a status message with the given type
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	msg := &StatusMessage{
		Content:   content,
		Type:      msgType,
		Timestamp: time.Now(),
	}
	c.message = msg

	return tea.Tick(c.clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: msg.Timestamp}
	})
}

// ShowInfo shows an info message
func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

// ShowWarning shows a warning message
func (c *Component) ShowWarning(message string) tea.Cmd {
	return c.SetMessage(message, Warning)
}

// ShowError shows an error message
func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

// ShowSuccess shows a success message
func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// Message returns the message on display, if any.
func (c *Component) Message() (StatusMessage, bool) {
	if c.message == nil {
		return StatusMessage{}, false
	}
	return *c.message, true
}

// SetCount sets the size of the image list.
func (c *Component) SetCount(n int) {
	c.count = n
}

// SetProgress sets the frame on screen. Nil clears it.
func (c *Component) SetProgress(p *Progress) {
	c.progress = p
}

// SetActivity sets the indicator shown while a run is active, usually a
// spinner frame and elapsed time. Empty strings hide them.
func (c *Component) SetActivity(indicator, elapsed string) {
	c.activity = indicator
	c.elapsed = elapsed
}

// SetSize implements core.Sizeable
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// Update clears expired messages.
func (c *Component) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(clearMessageMsg); ok {
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}
	return nil
}

// LeftContent returns the unstyled left side of the bar.
func (c *Component) LeftContent() string {
	parts := []string{fmt.Sprintf("%s indexed", humanize.Comma(int64(c.count)))}
	if c.activity != "" {
		parts = append(parts, strings.TrimSpace(c.activity+" "+c.elapsed))
	}
	if p := c.progress; p != nil {
		frame := fmt.Sprintf("%d/%d %s", p.Index+1, p.Total, filepath.Base(p.Path))
		if p.Size > 0 {
			frame += " (" + humanize.Bytes(uint64(p.Size)) + ")"
		}
		parts = append(parts, frame)
	}
	return strings.Join(parts, " │ ")
}

// View renders the bar
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()

	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	leftContent := c.LeftContent()
	rightContent := c.formatMessage()

	availableWidth := c.width - 2

	if lipgloss.Width(leftContent)+lipgloss.Width(rightContent)+1 > availableWidth {
		rightContent = ansi.Truncate(rightContent, 40, "…")
		remaining := availableWidth - lipgloss.Width(rightContent) - 1
		if remaining < 0 {
			remaining = 0
		}
		leftContent = ansi.Truncate(leftContent, remaining, "…")
	}

	content := leftContent
	if rightContent != "" {
		spacesNeeded := availableWidth - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
		if spacesNeeded < 1 {
			spacesNeeded = 1
		}
		content += strings.Repeat(" ", spacesNeeded) + c.styleMessage(rightContent)
	}

	return statusStyle.Render(content)
}

func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	switch c.message.Type {
	case Success:
		return "✓ " + c.message.Content
	case Warning:
		return "⚠ " + c.message.Content
	case Error:
		return "✗ " + c.message.Content
	default:
		return c.message.Content
	}
}

func (c *Component) styleMessage(s string) string {
	theme := styles.CurrentTheme()
	style := lipgloss.NewStyle().Background(theme.BgSubtle)
	switch c.message.Type {
	case Success:
		style = style.Foreground(theme.Success)
	case Warning:
		style = style.Foreground(theme.Warning)
	case Error:
		style = style.Foreground(theme.Error)
	default:
		style = style.Foreground(theme.Info)
	}
	return style.Render(s)
}
