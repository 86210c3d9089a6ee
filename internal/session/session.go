// Package session holds the per-session view-controller state: the active
// view, the item selected for hook generation, the generation parameters,
// and the last generated results.
package session

import (
	"errors"
	"sync"

	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// View identifies a dashboard view.
type View string

const (
	ViewFeed     View = "feed"
	ViewSaved    View = "saved"
	ViewHooks    View = "hooks"
	ViewSettings View = "settings"
)

// ErrInvalidView is returned for view values outside the closed set.
var ErrInvalidView = errors.New("invalid view")

// ValidView reports whether v is a known dashboard view.
func ValidView(v View) bool {
	switch v {
	case ViewFeed, ViewSaved, ViewHooks, ViewSettings:
		return true
	default:
		return false
	}
}

// State is a consistent snapshot of the controller.
type State struct {
	ActiveView View                `json:"active_view"`
	Selected   *models.ContentItem `json:"selected,omitempty"`
	HookConfig models.HookConfig   `json:"hook_config"`
	Hooks      []string            `json:"hooks"`
	Scraping   bool                `json:"scraping"`
	Generating bool                `json:"generating"`
}

// Controller owns the view state. All mutation goes through its methods;
// the scraping/generating flags model the one-outstanding-call-per-control
// rule the dashboard enforces by disabling buttons.
type Controller struct {
	mu         sync.RWMutex
	activeView View
	selected   *models.ContentItem
	hookConfig models.HookConfig
	hooks      []string
	scraping   bool
	generating bool
}

// NewController creates a controller with the initial dashboard state.
func NewController() *Controller {
	return &Controller{
		activeView: ViewFeed,
		hookConfig: models.DefaultHookConfig(),
		hooks:      []string{},
	}
}

// ActiveView returns the current view.
func (c *Controller) ActiveView() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeView
}

// SetActiveView switches the dashboard view.
func (c *Controller) SetActiveView(v View) error {
	if !ValidView(v) {
		return ErrInvalidView
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeView = v
	return nil
}

// HookConfig returns the current generation parameters.
func (c *Controller) HookConfig() models.HookConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hookConfig
}

// SetHookConfig replaces the generation parameters.
func (c *Controller) SetHookConfig(cfg models.HookConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hookConfig = cfg
	return nil
}

// Selected returns the item currently loaded into the generator.
func (c *Controller) Selected() (models.ContentItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.selected == nil {
		return models.ContentItem{}, false
	}
	return *c.selected, true
}

// SelectForHooks loads an item into the generator, clears any previous
// results, and switches to the hooks view.
func (c *Controller) SelectForHooks(item models.ContentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = &item
	c.hooks = []string{}
	c.activeView = ViewHooks
}

// Hooks returns the last generated hook sequence.
func (c *Controller) Hooks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.hooks))
	copy(out, c.hooks)
	return out
}

// SetHooks replaces the generated hook sequence wholesale.
func (c *Controller) SetHooks(hooks []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hooks == nil {
		hooks = []string{}
	}
	c.hooks = hooks
}

// BeginScrape marks a scrape call in flight. Returns false when one already
// is, so the caller can reject the duplicate submission.
func (c *Controller) BeginScrape() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scraping {
		return false
	}
	c.scraping = true
	return true
}

// EndScrape clears the in-flight scrape flag.
func (c *Controller) EndScrape() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scraping = false
}

// BeginGeneration marks a hook-generation call in flight. Independent of
// the scrape flag; both calls may run concurrently.
func (c *Controller) BeginGeneration() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generating {
		return false
	}
	c.generating = true
	return true
}

// EndGeneration clears the in-flight generation flag.
func (c *Controller) EndGeneration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generating = false
}

// Snapshot returns a consistent copy of the controller state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := State{
		ActiveView: c.activeView,
		HookConfig: c.hookConfig,
		Hooks:      make([]string, len(c.hooks)),
		Scraping:   c.scraping,
		Generating: c.generating,
	}
	copy(state.Hooks, c.hooks)

	if c.selected != nil {
		item := *c.selected
		state.Selected = &item
	}
	return state
}
