package dialog

import (
	"fmt"
	"strings"

	"github.com/billie-coop/slides/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Answerer receives the user's decision on a permission request.
type Answerer interface {
	Grant(requestID string, remember bool)
	Deny(requestID string)
}

// Decision is the result of the permissions dialog.
type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionAlways Decision = "always"
	DecisionDeny   Decision = "deny"
)

var permissionOptions = []struct {
	decision Decision
	label    string
}{
	{DecisionAllow, " [Y] Allow this session "},
	{DecisionAlways, " [A] Always allow "},
	{DecisionDeny, " [N] Deny "},
}

// PermissionsDialog asks the user to grant a capability.
type PermissionsDialog struct {
	*BaseDialog

	answerer       Answerer
	requestID      string
	capability     string
	selectedOption int

	capabilityStyle lipgloss.Style
	optionStyle     lipgloss.Style
	selectedStyle   lipgloss.Style
}

// NewPermissionsDialog creates a new permissions dialog
func NewPermissionsDialog(answerer Answerer) *PermissionsDialog {
	theme := styles.CurrentTheme()

	return &PermissionsDialog{
		BaseDialog: NewBaseDialog("Permission Request"),
		answerer:   answerer,

		capabilityStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		optionStyle: lipgloss.NewStyle().
			PaddingLeft(2),

		selectedStyle: theme.S().Selected,
	}
}

// SetRequest sets the request the dialog answers.
func (d *PermissionsDialog) SetRequest(requestID, capability string) {
	d.requestID = requestID
	d.capability = capability
	d.selectedOption = 0
}

// RequestID returns the request being answered.
func (d *PermissionsDialog) RequestID() string {
	return d.requestID
}

// Update handles messages
func (d *PermissionsDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	n := len(permissionOptions)
	switch key.String() {
	case "up", "k", "shift+tab":
		d.selectedOption = (d.selectedOption + n - 1) % n
	case "down", "j", "tab":
		d.selectedOption = (d.selectedOption + 1) % n
	case "y", "Y":
		return d.decide(DecisionAllow)
	case "a", "A":
		return d.decide(DecisionAlways)
	case "n", "N", "esc":
		return d.decide(DecisionDeny)
	case "enter", "space", " ":
		return d.decide(permissionOptions[d.selectedOption].decision)
	}
	return nil
}

// View renders the dialog
func (d *PermissionsDialog) View() string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	var content strings.Builder

	content.WriteString("slides needs permission to:\n")
	content.WriteString(d.capabilityStyle.Render(fmt.Sprintf("  %s", describeCapability(d.capability))) + "\n\n")
	content.WriteString(theme.S().Muted.Render("Without it the image list stays empty.") + "\n\n")

	for i, opt := range permissionOptions {
		if i == d.selectedOption {
			content.WriteString(d.selectedStyle.Render("▶ " + opt.label))
		} else {
			content.WriteString(d.optionStyle.Render("  " + opt.label))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(theme.S().Subtle.Render("↵ Enter to select • Esc to deny"))

	return d.RenderDialog(content.String())
}

func (d *PermissionsDialog) decide(decision Decision) tea.Cmd {
	d.SetResult(decision)
	if d.answerer != nil && d.requestID != "" {
		switch decision {
		case DecisionAllow:
			d.answerer.Grant(d.requestID, false)
		case DecisionAlways:
			d.answerer.Grant(d.requestID, true)
		default:
			d.answerer.Deny(d.requestID)
		}
	}
	d.requestID = ""
	return d.Close()
}

func describeCapability(capability string) string {
	switch capability {
	case "read_images":
		return "read your images"
	default:
		return capability
	}
}
