package dialog

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/require"
)

type answer struct {
	id       string
	granted  bool
	remember bool
}

type fakeAnswerer struct {
	answers []answer
}

func (f *fakeAnswerer) Grant(id string, remember bool) {
	f.answers = append(f.answers, answer{id: id, granted: true, remember: remember})
}

func (f *fakeAnswerer) Deny(id string) {
	f.answers = append(f.answers, answer{id: id})
}

func press(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(text[0]), Text: text}
}

func TestPermissionsDialog_Decisions(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want answer
	}{
		{"yes", []tea.KeyPressMsg{press("y")}, answer{id: "req", granted: true}},
		{"always", []tea.KeyPressMsg{press("a")}, answer{id: "req", granted: true, remember: true}},
		{"no", []tea.KeyPressMsg{press("n")}, answer{id: "req"}},
		{"escape", []tea.KeyPressMsg{{Code: tea.KeyEscape}}, answer{id: "req"}},
		{"enter on first option", []tea.KeyPressMsg{{Code: tea.KeyEnter}}, answer{id: "req", granted: true}},
		{"move then enter", []tea.KeyPressMsg{press("j"), {Code: tea.KeyEnter}}, answer{id: "req", granted: true, remember: true}},
		{"wrap up to deny", []tea.KeyPressMsg{press("k"), {Code: tea.KeyEnter}}, answer{id: "req"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &fakeAnswerer{}
			m := NewManager(answerer, "# Help")
			m.AskPermission("req", "read_images")

			id, ok := m.PendingPermission()
			require.True(t, ok)
			require.Equal(t, "req", id)

			for _, k := range tt.keys {
				m.Update(k)
			}

			require.False(t, m.IsDialogOpen())
			require.Equal(t, []answer{tt.want}, answerer.answers)
			_, ok = m.PendingPermission()
			require.False(t, ok)
		})
	}
}

func TestPermissionsDialog_View(t *testing.T) {
	m := NewManager(&fakeAnswerer{}, "")
	m.SetSize(80, 24)
	require.Empty(t, m.View())

	m.AskPermission("req", "read_images")
	view := m.View()
	require.Contains(t, view, "read your images")
	require.Contains(t, view, "Always allow")
}

func TestHelpDialog_OpenClose(t *testing.T) {
	m := NewManager(&fakeAnswerer{}, "# Keys\n\n- **s** start the slideshow")
	m.SetSize(80, 24)

	m.OpenDialog(HelpDialogType)
	require.Equal(t, HelpDialogType, m.ActiveDialog())
	require.Contains(t, m.View(), "slideshow")

	m.Update(press("?"))
	require.False(t, m.IsDialogOpen())
}

func TestManager_PermissionReplacesHelp(t *testing.T) {
	answerer := &fakeAnswerer{}
	m := NewManager(answerer, "help")
	m.OpenDialog(HelpDialogType)

	m.AskPermission("req", "read_images")
	require.Equal(t, PermissionsDialogType, m.ActiveDialog())

	m.CloseActiveDialog()
	require.False(t, m.IsDialogOpen())
	require.Empty(t, answerer.answers)
}
