package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KUBYKA-DEV/content-scrape/internal/config"
	"github.com/KUBYKA-DEV/content-scrape/internal/httpclient"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/server"
)

const endpointPingTimeout = 3 * time.Second

// NewServer creates the HTTP server with all routes and health checks wired.
func NewServer(cfg *config.Config, h *Handlers, log logger.Logger) *server.Server {
	srvCfg := server.NewConfig(cfg.Service.Name, cfg.Service.Port)
	srvCfg.Debug = cfg.Service.Debug
	srvCfg.CORS.AllowedOrigins = cfg.Service.AllowedOrigins

	return server.New(srvCfg, log, func(router *gin.Engine) {
		SetupRoutes(router, h)
		server.RegisterHealthRoutes(router, cfg.Service.Name, cfg.Service.Version, map[string]server.HealthChecker{
			"automation_endpoint": server.EndpointHealthChecker("n8n MCP", endpointPing(cfg.Scrape.Endpoint)),
		})
	})
}

// endpointPing probes the workflow endpoint with a cheap HEAD request. The
// endpoint answering anything at all counts as reachable.
func endpointPing(endpoint string) func() error {
	client := httpclient.New(endpointPingTimeout)

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), endpointPingTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, http.NoBody)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		return nil
	}
}
