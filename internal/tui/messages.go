package tui

import (
	"github.com/billie-coop/slides/internal/tui/events"
)

// uiTaskMsg carries a function posted by the display pipeline. It runs
// inside Update, which makes the update loop the UI thread.
type uiTaskMsg struct {
	fn func()
}

// permissionResultMsg is the answer to the read-images request.
type permissionResultMsg struct {
	granted bool
}

// scanDoneMsg reports a finished rescan of the media roots.
type scanDoneMsg struct {
	result events.IndexScannedPayload
	err    error
}
