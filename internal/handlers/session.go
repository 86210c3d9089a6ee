package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/config"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/session"
	"github.com/KUBYKA-DEV/content-scrape/internal/sse"
)

// SessionHandler exposes the session state and the view switch, plus the
// connection settings the settings view renders.
type SessionHandler struct {
	session *session.Controller
	scrape  config.ScrapeConfig
	broker  *sse.Broker
	logger  logger.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sess *session.Controller, scrape config.ScrapeConfig, broker *sse.Broker, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		session: sess,
		scrape:  scrape,
		broker:  broker,
		logger:  log,
	}
}

// Get returns a snapshot of the session state together with the workflow
// connection settings. The bearer token itself never leaves the server.
func (h *SessionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state": h.session.Snapshot(),
		"settings": gin.H{
			"endpoint":         h.scrape.Endpoint,
			"workflow":         h.scrape.Workflow,
			"token_configured": h.scrape.BearerToken != "",
		},
	})
}

type setViewRequest struct {
	View string `json:"view" binding:"required"`
}

// SetView switches the active dashboard view.
func (h *SessionHandler) SetView(c *gin.Context) {
	var req setViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view is required"})
		return
	}

	if err := h.session.SetActiveView(session.View(req.View)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view", "view": req.View})
		return
	}

	if pubErr := h.broker.Publish(sse.Event{
		Type: sse.EventTypeViewChanged,
		Data: map[string]string{"active_view": req.View},
	}); pubErr != nil {
		h.logger.Debug("View event dropped", logger.Error(pubErr))
	}

	c.JSON(http.StatusOK, gin.H{"active_view": h.session.ActiveView()})
}
