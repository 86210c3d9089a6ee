package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/hookgen"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/metrics"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
	"github.com/KUBYKA-DEV/content-scrape/internal/notify"
	"github.com/KUBYKA-DEV/content-scrape/internal/session"
	"github.com/KUBYKA-DEV/content-scrape/internal/store"
)

// HooksHandler serves the hook generator: parameter config, item selection,
// and the generation call itself.
type HooksHandler struct {
	generator *hookgen.Generator
	repo      *store.Repository
	session   *session.Controller
	toasts    *notify.Center
	logger    logger.Logger
}

// NewHooksHandler creates a HooksHandler.
func NewHooksHandler(
	gen *hookgen.Generator,
	repo *store.Repository,
	sess *session.Controller,
	toasts *notify.Center,
	log logger.Logger,
) *HooksHandler {
	return &HooksHandler{
		generator: gen,
		repo:      repo,
		session:   sess,
		toasts:    toasts,
		logger:    log,
	}
}

// GetConfig returns the current generation parameters.
func (h *HooksHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.HookConfig())
}

// UpdateConfig replaces the generation parameters. All three fields must
// hold values from their closed sets.
func (h *HooksHandler) UpdateConfig(c *gin.Context) {
	var cfg models.HookConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.session.SetHookConfig(cfg); err != nil {
		var fieldErr *models.InvalidFieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error(), "field": fieldErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

type selectRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// Select loads a content item into the generator, clears previous results,
// and switches the session to the hooks view.
func (h *HooksHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	item, found := h.repo.Get(req.ItemID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		return
	}

	h.session.SelectForHooks(item)
	h.toasts.Notify("Contenido cargado en generador", models.ToastSuccess)

	h.logger.Info("Item loaded into hook generator",
		logger.String("item_id", item.ID),
	)

	c.JSON(http.StatusOK, gin.H{
		"selected":    item,
		"active_view": session.ViewHooks,
	})
}

// Generate runs the generation call against the selected item with the
// current parameters. At most one generation is in flight; duplicates get
// 409. A failed call still answers 200 with the fallback text so the
// dashboard always has something to render.
func (h *HooksHandler) Generate(c *gin.Context) {
	selected, ok := h.session.Selected()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No content item selected"})
		return
	}

	if !h.session.BeginGeneration() {
		c.JSON(http.StatusConflict, gin.H{"error": "Generation already in progress"})
		return
	}
	defer h.session.EndGeneration()

	hooks, err := h.generator.GenerateHooks(c.Request.Context(), selected.Content, h.session.HookConfig())
	if err != nil {
		metrics.HookGenerationsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()

		h.logger.Error("Hook generation failed",
			logger.String("item_id", selected.ID),
			logger.Error(err),
		)

		hooks = []string{hookgen.FallbackMessage}
		h.session.SetHooks(hooks)
		h.toasts.Notify("Error de IA: No se pudo generar los ganchos", models.ToastError)

		c.JSON(http.StatusOK, gin.H{"hooks": hooks, "generated": false})
		return
	}

	metrics.HookGenerationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	h.session.SetHooks(hooks)
	h.toasts.Notify("Variaciones listas para usar", models.ToastSuccess)

	h.logger.Info("Hooks generated",
		logger.String("item_id", selected.ID),
		logger.Int("count", len(hooks)),
	)

	c.JSON(http.StatusOK, gin.H{"hooks": hooks, "generated": true})
}
