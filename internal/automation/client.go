// Package automation triggers the external workflow-automation endpoint that
// performs the actual content scraping. The endpoint speaks MCP-style
// JSON-RPC over HTTPS and is treated as an opaque collaborator.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/KUBYKA-DEV/content-scrape/internal/config"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// excerptLimit caps the body excerpt carried on generic HTTP errors.
// The limit counts characters, not bytes, so multi-byte text is never cut
// mid-rune.
const excerptLimit = 50

// fallbackContent is used when the workflow ran but returned no text payload.
const fallbackContent = "El workflow de n8n se ejecutó correctamente y los datos " +
	"han sido actualizados en la base de datos."

// request is the JSON-RPC 2.0 envelope for a tools/call invocation.
type request struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  reqParams `json:"params"`
	ID      int64     `json:"id"`
}

type reqParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// response is the JSON-RPC envelope the workflow answers with.
type response struct {
	Result *struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client issues scrape-trigger calls against the automation endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	workflow string
	token    string
	timeout  time.Duration
	logger   logger.Logger
}

// NewClient creates a scrape-trigger client.
func NewClient(cfg config.ScrapeConfig, httpClient *http.Client, log logger.Logger) *Client {
	return &Client{
		http:     httpClient,
		endpoint: cfg.Endpoint,
		workflow: cfg.Workflow,
		token:    cfg.BearerToken,
		timeout:  cfg.Timeout,
		logger:   log,
	}
}

// Workflow returns the configured workflow name.
func (c *Client) Workflow() string {
	return c.workflow
}

// TriggerScrape sends a single tools/call request and, on success, synthesizes
// the new content item. Every failure path is classified and produces no item;
// the caller is responsible for inserting the result into the repository.
func (c *Client) TriggerScrape(ctx context.Context) (models.ContentItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  "tools/call",
		Params: reqParams{
			Name:      c.workflow,
			Arguments: map[string]any{},
		},
		ID: time.Now().UnixMilli(),
	})
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// Only an expired deadline is a timeout; a caller cancelling its
		// context mid-call is not.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("Scrape trigger timed out",
				logger.Duration("elapsed", time.Since(start)),
				logger.String("workflow", c.workflow),
			)
			return models.ContentItem{}, fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}
		return models.ContentItem{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if classifyErr := classifyStatus(resp); classifyErr != nil {
		return models.ContentItem{}, classifyErr
	}

	var envelope response
	if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil {
		return models.ContentItem{}, fmt.Errorf("decode response: %w", decodeErr)
	}

	if envelope.Error != nil {
		msg := envelope.Error.Message
		if msg == "" {
			msg = "Error en el workflow"
		}
		return models.ContentItem{}, &ToolError{Message: msg}
	}

	c.logger.Info("Scrape trigger succeeded",
		logger.String("workflow", c.workflow),
		logger.Duration("elapsed", time.Since(start)),
	)

	return c.newItem(envelope), nil
}

// classifyStatus maps non-success statuses onto the failure taxonomy.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return ErrEndpointNotFound
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, excerptLimit*utf8.UTFMax))
		// The byte limit may split the final rune; drop any invalid remainder.
		excerpt := truncateRunes(strings.ToValidUTF8(string(raw), ""), excerptLimit)
		return &HTTPError{StatusCode: resp.StatusCode, Excerpt: excerpt}
	default:
		return nil
	}
}

// truncateRunes cuts s after at most n characters, on a rune boundary.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// newItem builds the curated item from the workflow result. If the result
// carries no text payload, a human-readable fallback is used instead.
func (c *Client) newItem(envelope response) models.ContentItem {
	content := fallbackContent
	if envelope.Result != nil && len(envelope.Result.Content) > 0 && envelope.Result.Content[0].Text != "" {
		content = envelope.Result.Content[0].Text
	}

	now := time.Now()
	return models.ContentItem{
		ID:        uuid.NewString(),
		Source:    models.SourceReddit,
		SourceURL: "#",
		Title:     "Nuevos hilos: " + now.Format("15:04:05"),
		Content:   content,
		Tags:      []string{"mcp", "reddit", "curated"},
		ScrapedAt: now.UTC(),
		Metadata:  map[string]any{"workflow": c.workflow},
	}
}
