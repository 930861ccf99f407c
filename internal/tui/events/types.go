package events

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Permission events
	PermissionRequestEvent  EventType = "permission.request"
	PermissionResponseEvent EventType = "permission.response"

	// Index events
	IndexListedEvent  EventType = "index.listed"
	IndexScannedEvent EventType = "index.scanned"

	// Display pipeline events
	DisplayStartedEvent   EventType = "display.started"
	DisplayFrameEvent     EventType = "display.frame"
	DisplaySkippedEvent   EventType = "display.skipped"
	DisplayCompletedEvent EventType = "display.completed"
	DisplayCancelledEvent EventType = "display.cancelled"
	DisplayAbortedEvent   EventType = "display.aborted"

	// UI events
	StatusMessageEvent EventType = "ui.status"
)

// Wildcard subscribes to every event type.
const Wildcard EventType = "*"

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

type PermissionRequestPayload struct {
	ID         string
	Capability string
}

type PermissionResponsePayload struct {
	ID         string
	Capability string
	Granted    bool
}

type IndexListedPayload struct {
	Count int
}

type IndexScannedPayload struct {
	Added   int
	Removed int
	Elapsed time.Duration
}

// DisplayPayload describes one pipeline run or one of its frames.
type DisplayPayload struct {
	RunID    string
	Index    int
	Total    int
	Path     string
	Err      error
	Rendered int // set when a run stops
	Skipped  int
}

type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
