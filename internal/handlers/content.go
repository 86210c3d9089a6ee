// Package handlers wires the dashboard API surface to the repository, the
// external clients, the notification sink, and the session controller.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
	"github.com/KUBYKA-DEV/content-scrape/internal/notify"
	"github.com/KUBYKA-DEV/content-scrape/internal/store"
)

// ContentHandler serves the content collection views and the save toggle.
type ContentHandler struct {
	repo   *store.Repository
	toasts *notify.Center
	logger logger.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(repo *store.Repository, toasts *notify.Center, log logger.Logger) *ContentHandler {
	return &ContentHandler{
		repo:   repo,
		toasts: toasts,
		logger: log,
	}
}

// List returns the derived view of the collection for the given query,
// source filter, and view gate. Order is preserved from the collection.
func (h *ContentHandler) List(c *gin.Context) {
	source := c.DefaultQuery("source", store.SourceAll)
	if source != store.SourceAll && !models.ValidSource(models.Source(source)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source filter", "source": source})
		return
	}

	view := c.DefaultQuery("view", "feed")
	items := h.repo.Filter(store.Query{
		Text:      c.Query("q"),
		Source:    source,
		SavedOnly: view == "saved",
	})

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ToggleSave flips the saved flag for one item. Unknown ids are a no-op:
// 404 and no toast.
func (h *ContentHandler) ToggleSave(c *gin.Context) {
	id := c.Param("id")

	item, found := h.repo.ToggleSave(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		return
	}

	message := "Eliminado de guardados"
	if item.IsSaved {
		message = "Guardado en librería"
	}
	h.toasts.Notify(message, models.ToastSuccess)

	h.logger.Info("Save toggled",
		logger.String("item_id", id),
		logger.Bool("is_saved", item.IsSaved),
	)

	c.JSON(http.StatusOK, item)
}
