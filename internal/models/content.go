// Package models defines the core entities of the content-scrape service.
package models

import "time"

// Source identifies where a content item was scraped from.
type Source string

const (
	// SourceReddit marks items ingested from Reddit threads.
	SourceReddit Source = "reddit"
	// SourceNewsletter marks items ingested from newsletter issues.
	SourceNewsletter Source = "newsletter"
)

// ValidSource reports whether s is a known content source.
func ValidSource(s Source) bool {
	return s == SourceReddit || s == SourceNewsletter
}

// ContentItem is a unit of curated content held in the session repository.
// Metadata is an open bag of source-specific fields (author, publication,
// workflow name); consumers must not assume any key exists.
type ContentItem struct {
	ID        string         `json:"id"`
	Source    Source         `json:"source"`
	SourceURL string         `json:"source_url"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Tags      []string       `json:"tags"`
	ScrapedAt time.Time      `json:"scraped_at"`
	Metadata  map[string]any `json:"metadata"`
	IsSaved   bool           `json:"is_saved,omitempty"`
}
