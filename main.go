// Command content-scrape serves the content curation dashboard API: a
// scraped-content collection with save and filter views, an n8n workflow
// trigger over MCP, and an AI hook generator, with toast notifications
// streamed to the dashboard over SSE.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/KUBYKA-DEV/content-scrape/internal/api"
	"github.com/KUBYKA-DEV/content-scrape/internal/automation"
	"github.com/KUBYKA-DEV/content-scrape/internal/config"
	"github.com/KUBYKA-DEV/content-scrape/internal/handlers"
	"github.com/KUBYKA-DEV/content-scrape/internal/hookgen"
	"github.com/KUBYKA-DEV/content-scrape/internal/httpclient"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/notify"
	"github.com/KUBYKA-DEV/content-scrape/internal/session"
	"github.com/KUBYKA-DEV/content-scrape/internal/sse"
	"github.com/KUBYKA-DEV/content-scrape/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	return runServer(cfg, log)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger) int {
	ctx := context.Background()

	broker := sse.NewBroker(log)
	broker.Start(ctx)
	defer broker.Stop()

	toasts := notify.NewCenter(cfg.Toasts.TTL, broker, log)
	defer toasts.Close()

	repo := store.NewRepository()
	sess := session.NewController()

	scrapeClient := automation.NewClient(cfg.Scrape, httpclient.New(cfg.Scrape.Timeout), log)

	llm, err := hookgen.NewAnthropicLLM(cfg.AI)
	if err != nil {
		log.Error("Failed to create AI client", logger.Error(err))
		return 1
	}
	generator := hookgen.NewGenerator(llm, cfg.AI.Variants, log)

	h := &api.Handlers{
		Content: handlers.NewContentHandler(repo, toasts, log),
		Scrape:  handlers.NewScrapeHandler(scrapeClient, repo, sess, toasts, broker, log),
		Hooks:   handlers.NewHooksHandler(generator, repo, sess, toasts, log),
		Toasts:  handlers.NewToastsHandler(toasts, log),
		Session: handlers.NewSessionHandler(sess, cfg.Scrape, broker, log),
		Events:  handlers.NewEventsHandler(broker, log),
	}

	srv := api.NewServer(cfg, h, log)

	log.Info("Starting content-scrape service",
		logger.Int("port", cfg.Service.Port),
		logger.String("workflow", cfg.Scrape.Workflow),
	)

	if err := srv.Run(ctx); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	return 0
}
