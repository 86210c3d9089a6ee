package store

import (
	"time"

	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// seedItems returns the fixed sample data the dashboard starts with.
func seedItems() []models.ContentItem {
	now := time.Now().UTC()
	return []models.ContentItem{
		{
			ID:        "1",
			Source:    models.SourceReddit,
			SourceURL: "https://reddit.com/r/saas/comments/1",
			Title:     "How we reached $10k MRR in 6 months with zero ad spend",
			Content: "Our strategy was entirely based on content distribution on niche " +
				"communities like Reddit and Indie Hackers. We focused on value-first " +
				"posts that didn't look like ads...",
			Tags:      []string{"saas", "marketing", "growth"},
			ScrapedAt: now,
			Metadata:  map[string]any{"author": "startup_guy"},
		},
		{
			ID:        "2",
			Source:    models.SourceNewsletter,
			SourceURL: "https://newsletter.com/growth/102",
			Title:     "The Psychology of High-Converting Landing Pages",
			Content: "Understanding cognitive biases is the key to conversion. From the " +
				"scarcity principle to social proof, here are the 7 triggers you should " +
				"be using...",
			Tags:      []string{"ux", "psychology", "conversion"},
			ScrapedAt: now,
			Metadata:  map[string]any{"publication": "Growth Bytes"},
		},
	}
}
