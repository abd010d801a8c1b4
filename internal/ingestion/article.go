package ingestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andres/news-radar/internal/types"
)

// RawArticle is one article exactly as the collector delivers it.
type RawArticle struct {
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	URL           string    `json:"url,omitempty"`
	Source        string    `json:"source,omitempty"`
	SourceSection string    `json:"source_section,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
}

// Normalize validates and cleans a raw article into the pipeline's Article.
// The body is sanitized; a missing title is tolerated, a missing body is not.
func Normalize(raw RawArticle) (*types.Article, error) {
	body := SanitizeBody(raw.Body)
	if body == "" {
		return nil, fmt.Errorf("failed to normalize article %q: empty body after sanitization", raw.Title)
	}
	publishedAt := raw.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}
	return &types.Article{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(raw.Title),
		Body:          body,
		URL:           strings.TrimSpace(raw.URL),
		Source:        strings.TrimSpace(raw.Source),
		SourceSection: strings.TrimSpace(raw.SourceSection),
		PublishedAt:   publishedAt,
	}, nil
}
