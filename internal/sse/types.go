// Package sse streams dashboard events (toasts, collection changes) to
// connected clients over Server-Sent Events.
package sse

import "time"

// Event types pushed to the dashboard.
const (
	EventTypeToastShown   = "toast:shown"
	EventTypeToastExpired = "toast:expired"
	EventTypeContentAdded = "content:added"
	EventTypeViewChanged  = "view:changed"

	eventTypeConnected = "connected"
)

// Event represents a Server-Sent Event.
// Wire format: event: <Type>\ndata: <JSON payload>\n\n
type Event struct {
	// Type is the event type (e.g. "toast:shown").
	Type string `json:"type"`
	// Data is the JSON payload.
	Data any `json:"data"`
}

// Default configuration values.
const (
	DefaultEventBufferSize  = 256
	DefaultClientBufferSize = 32
	DefaultShutdownTimeout  = 5 * time.Second
	DefaultMaxClients       = 64
)
