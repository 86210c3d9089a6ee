// Package store holds the in-memory content repository for the session.
// Nothing is persisted; the collection lives and dies with the process.
package store

import (
	"errors"
	"strings"
	"sync"

	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// ErrDuplicateID is returned when an inserted item reuses an existing id.
var ErrDuplicateID = errors.New("content item id already exists")

// SourceAll is the filter value that matches every source.
const SourceAll = "all"

// Query is the three-way predicate applied to the collection. All predicates
// are ANDed; none of them reorders the collection.
type Query struct {
	// Text is matched case-insensitively as a substring of title or content.
	Text string
	// Source is "all" (or empty) or a concrete models.Source value.
	Source string
	// SavedOnly gates the result on is_saved when viewing the saved library.
	SavedOnly bool
}

// Repository owns the content item collection and all mutation to it.
// Items are kept most-recent-first.
type Repository struct {
	mu    sync.RWMutex
	items []models.ContentItem
}

// NewRepository creates a repository seeded with the fixed sample data.
func NewRepository() *Repository {
	return &Repository{items: seedItems()}
}

// NewEmptyRepository creates a repository with no items.
func NewEmptyRepository() *Repository {
	return &Repository{}
}

// Items returns a copy of the full collection in most-recent-first order.
func (r *Repository) Items() []models.ContentItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ContentItem, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of items in the collection.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Get returns the item with the given id.
func (r *Repository) Get(id string) (models.ContentItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == id {
			return r.items[i], true
		}
	}
	return models.ContentItem{}, false
}

// Filter returns the derived view of the collection for the given query.
// The underlying collection is never mutated; the view is recomputed from
// scratch on every call, which is fine at session-scale volumes.
func (r *Repository) Filter(q Query) []models.ContentItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(q.Text)
	out := make([]models.ContentItem, 0, len(r.items))

	for i := range r.items {
		item := r.items[i]
		if !matchesText(item, needle) {
			continue
		}
		if !matchesSource(item, q.Source) {
			continue
		}
		if q.SavedOnly && !item.IsSaved {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesText(item models.ContentItem, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Content), needle)
}

func matchesSource(item models.ContentItem, source string) bool {
	if source == "" || source == SourceAll {
		return true
	}
	return item.Source == models.Source(source)
}

// Insert prepends a new item to the collection. Ids are unique within the
// collection; reusing one is rejected.
func (r *Repository) Insert(item models.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID {
			return ErrDuplicateID
		}
	}

	r.items = append([]models.ContentItem{item}, r.items...)
	return nil
}

// ToggleSave flips the saved flag for exactly one item. The returned item
// reflects the new state. A missing id is a no-op with found=false.
func (r *Repository) ToggleSave(id string) (models.ContentItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].IsSaved = !r.items[i].IsSaved
			return r.items[i], true
		}
	}
	return models.ContentItem{}, false
}
