// Package api assembles the HTTP surface: routes, handlers, and the server.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/handlers"
	"github.com/KUBYKA-DEV/content-scrape/internal/metrics"
)

// Handlers groups the route handlers the router mounts.
type Handlers struct {
	Content *handlers.ContentHandler
	Scrape  *handlers.ScrapeHandler
	Hooks   *handlers.HooksHandler
	Toasts  *handlers.ToastsHandler
	Session *handlers.SessionHandler
	Events  *handlers.EventsHandler
}

// SetupRoutes configures all API routes.
// Health routes are registered separately by the server builder.
func SetupRoutes(router *gin.Engine, h *Handlers) {
	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/content", h.Content.List)
		v1.POST("/content/:id/save", h.Content.ToggleSave)

		v1.POST("/scrape", h.Scrape.Trigger)

		v1.GET("/hooks/config", h.Hooks.GetConfig)
		v1.PUT("/hooks/config", h.Hooks.UpdateConfig)
		v1.POST("/hooks/select", h.Hooks.Select)
		v1.POST("/hooks/generate", h.Hooks.Generate)

		v1.GET("/toasts", h.Toasts.List)
		v1.POST("/toasts", h.Toasts.Create)

		v1.GET("/session", h.Session.Get)
		v1.PUT("/session/view", h.Session.SetView)

		v1.GET("/events", h.Events.Stream)
	}
}
