package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/metrics"
	"github.com/KUBYKA-DEV/content-scrape/internal/sse"
)

// EventsHandler streams dashboard events (toast lifecycle, new content,
// view changes) over Server-Sent Events.
type EventsHandler struct {
	broker *sse.Broker
	logger logger.Logger
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(broker *sse.Broker, log logger.Logger) *EventsHandler {
	return &EventsHandler{
		broker: broker,
		logger: log,
	}
}

// Stream subscribes the caller to the event broker and writes events until
// the client disconnects or the broker shuts down.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events, cleanup := h.broker.Subscribe(c.Request.Context())
	defer cleanup()

	metrics.EventStreamConnections.Inc()
	defer metrics.EventStreamConnections.Dec()

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(event.Type, event.Data)
		return true
	})

	h.logger.Debug("Event stream closed",
		logger.String("client_ip", c.ClientIP()),
	)
}
