package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/billie-coop/slides/internal/tui/components/status"
	"github.com/billie-coop/slides/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// listenForEvents listens for events from the event broker
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.eventSub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.PermissionRequestEvent:
		if payload, ok := event.Payload.(events.PermissionRequestPayload); ok {
			return m.dialogs.AskPermission(payload.ID, payload.Capability)
		}

	case events.DisplaySkippedEvent:
		if payload, ok := event.Payload.(events.DisplayPayload); ok {
			msg := fmt.Sprintf("Skipped %s", filepath.Base(payload.Path))
			if errors.Is(payload.Err, fs.ErrNotExist) {
				msg += " (missing)"
			}
			return m.statusBar.ShowWarning(msg)
		}

	case events.DisplayCompletedEvent, events.DisplayCancelledEvent, events.DisplayAbortedEvent:
		payload, ok := event.Payload.(events.DisplayPayload)
		if !ok || m.active == nil || payload.RunID != m.active.ID() {
			return nil
		}
		m.syncRun()
		switch event.Type {
		case events.DisplayCompletedEvent:
			return m.statusBar.ShowSuccess(fmt.Sprintf("Showed %d of %d", payload.Rendered, payload.Total))
		case events.DisplayAbortedEvent:
			return m.statusBar.ShowError(fmt.Sprintf("Stopped after %d of %d: an image failed to decode", payload.Rendered, payload.Total))
		}

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			return m.statusBar.SetMessage(payload.Message, status.ParseMessageType(payload.Type))
		}
	}

	return nil
}
