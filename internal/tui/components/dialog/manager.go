package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// DialogType identifies the type of dialog
type DialogType string

const (
	PermissionsDialogType DialogType = "permissions"
	HelpDialogType        DialogType = "help"
)

// Manager manages all dialogs in the application
type Manager struct {
	dialogs      map[DialogType]Dialog
	activeDialog DialogType
	width        int
	height       int
}

// NewManager creates a dialog manager with the permissions and help
// dialogs.
func NewManager(answerer Answerer, helpMarkdown string) *Manager {
	return &Manager{
		dialogs: map[DialogType]Dialog{
			PermissionsDialogType: NewPermissionsDialog(answerer),
			HelpDialogType:        NewHelpDialog(helpMarkdown),
		},
	}
}

// Update routes a message to the active dialog and notices when it
// closes.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	if m.activeDialog == "" {
		return nil
	}
	d, ok := m.dialogs[m.activeDialog]
	if !ok {
		return nil
	}

	cmd := d.Update(msg)
	if !d.IsOpen() {
		m.activeDialog = ""
	}
	return cmd
}

// View renders the active dialog
func (m *Manager) View() string {
	if m.activeDialog == "" {
		return ""
	}
	if d, ok := m.dialogs[m.activeDialog]; ok {
		return d.View()
	}
	return ""
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	var cmds []tea.Cmd
	for _, d := range m.dialogs {
		cmds = append(cmds, d.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// OpenDialog opens a specific dialog, closing any other.
func (m *Manager) OpenDialog(dialogType DialogType) tea.Cmd {
	d, ok := m.dialogs[dialogType]
	if !ok {
		return nil
	}
	if m.activeDialog != "" && m.activeDialog != dialogType {
		m.dialogs[m.activeDialog].Close()
	}
	m.activeDialog = dialogType
	return d.Open()
}

// CloseActiveDialog closes the currently active dialog
func (m *Manager) CloseActiveDialog() tea.Cmd {
	if m.activeDialog == "" {
		return nil
	}
	d := m.dialogs[m.activeDialog]
	m.activeDialog = ""
	return d.Close()
}

// IsDialogOpen returns whether any dialog is open
func (m *Manager) IsDialogOpen() bool {
	return m.activeDialog != ""
}

// ActiveDialog returns the currently active dialog type
func (m *Manager) ActiveDialog() DialogType {
	return m.activeDialog
}

// AskPermission opens the permissions dialog for a request.
func (m *Manager) AskPermission(requestID, capability string) tea.Cmd {
	if d, ok := m.dialogs[PermissionsDialogType].(*PermissionsDialog); ok {
		d.SetRequest(requestID, capability)
	}
	return m.OpenDialog(PermissionsDialogType)
}

// PendingPermission returns the request ID the permissions dialog is
// waiting on, if it is open.
func (m *Manager) PendingPermission() (string, bool) {
	if m.activeDialog != PermissionsDialogType {
		return "", false
	}
	d, ok := m.dialogs[PermissionsDialogType].(*PermissionsDialog)
	if !ok || d.RequestID() == "" {
		return "", false
	}
	return d.RequestID(), true
}
