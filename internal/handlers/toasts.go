package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
	"github.com/KUBYKA-DEV/content-scrape/internal/notify"
)

// ToastsHandler serves the visible toast stack and lets the dashboard emit
// toasts for client-local actions (copy to clipboard and the like).
type ToastsHandler struct {
	toasts *notify.Center
	logger logger.Logger
}

// NewToastsHandler creates a ToastsHandler.
func NewToastsHandler(toasts *notify.Center, log logger.Logger) *ToastsHandler {
	return &ToastsHandler{
		toasts: toasts,
		logger: log,
	}
}

// List returns the currently visible toasts in arrival order.
func (h *ToastsHandler) List(c *gin.Context) {
	active := h.toasts.Active()
	c.JSON(http.StatusOK, gin.H{
		"toasts": active,
		"count":  len(active),
	})
}

type createToastRequest struct {
	Message string `json:"message" binding:"required"`
	Kind    string `json:"kind"`
}

// Create emits a toast on behalf of the dashboard. Kind defaults to success.
func (h *ToastsHandler) Create(c *gin.Context) {
	var req createToastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	kind := models.ToastKind(req.Kind)
	if req.Kind == "" {
		kind = models.ToastSuccess
	}
	if !models.ValidToastKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toast kind", "kind": req.Kind})
		return
	}

	toast := h.toasts.Notify(req.Message, kind)
	c.JSON(http.StatusCreated, toast)
}
