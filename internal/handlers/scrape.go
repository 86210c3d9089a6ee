package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/automation"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/metrics"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
	"github.com/KUBYKA-DEV/content-scrape/internal/notify"
	"github.com/KUBYKA-DEV/content-scrape/internal/session"
	"github.com/KUBYKA-DEV/content-scrape/internal/sse"
	"github.com/KUBYKA-DEV/content-scrape/internal/store"
)

// ScrapeHandler triggers the n8n workflow over MCP and folds the outcome
// into the collection and the toast stack.
type ScrapeHandler struct {
	client  *automation.Client
	repo    *store.Repository
	session *session.Controller
	toasts  *notify.Center
	broker  *sse.Broker
	logger  logger.Logger
}

// NewScrapeHandler creates a ScrapeHandler.
func NewScrapeHandler(
	client *automation.Client,
	repo *store.Repository,
	sess *session.Controller,
	toasts *notify.Center,
	broker *sse.Broker,
	log logger.Logger,
) *ScrapeHandler {
	return &ScrapeHandler{
		client:  client,
		repo:    repo,
		session: sess,
		toasts:  toasts,
		broker:  broker,
		logger:  log,
	}
}

// Trigger runs one workflow invocation. At most one scrape is in flight at
// a time; duplicates are rejected with 409. On failure the collection stays
// untouched and the failure is reported as an error toast only.
func (h *ScrapeHandler) Trigger(c *gin.Context) {
	if !h.session.BeginScrape() {
		c.JSON(http.StatusConflict, gin.H{"error": "Scrape already in progress"})
		return
	}
	defer h.session.EndScrape()

	h.toasts.Notify("Conectando con n8n MCP: "+h.client.Workflow()+"...", models.ToastSuccess)

	start := time.Now()
	item, err := h.client.TriggerScrape(c.Request.Context())
	metrics.ScrapeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()

		userMsg := automation.UserMessage(err)
		h.toasts.Notify("Fallo en Scrape: "+userMsg, models.ToastError)
		h.logger.Error("Scrape trigger failed",
			logger.String("workflow", h.client.Workflow()),
			logger.Error(err),
		)

		c.JSON(http.StatusBadGateway, gin.H{"error": userMsg})
		return
	}

	if err := h.repo.Insert(item); err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		h.logger.Error("Failed to store scraped item", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store scraped item"})
		return
	}

	metrics.ScrapesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	// New content lands in the feed, so switch back to it.
	_ = h.session.SetActiveView(session.ViewFeed)

	h.toasts.Notify("Scraping finalizado con éxito", models.ToastSuccess)
	if pubErr := h.broker.Publish(sse.Event{Type: sse.EventTypeContentAdded, Data: item}); pubErr != nil {
		h.logger.Debug("Content event dropped", logger.Error(pubErr))
	}

	h.logger.Info("Scrape completed",
		logger.String("workflow", h.client.Workflow()),
		logger.String("item_id", item.ID),
		logger.Duration("duration", time.Since(start)),
	)

	c.JSON(http.StatusCreated, gin.H{"item": item})
}
