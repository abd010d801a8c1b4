package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent identifies the crawler to news sites.
const DefaultUserAgent = "Mozilla/5.0 (compatible; NewsRadarBot/1.0) News Crawler"

// maxFetchBytes bounds how much of a response body is read. News article
// pages beyond this are ads and scripts, not content.
const maxFetchBytes = 4 << 20

// FetchError represents an error while fetching an article URL.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchOptions configures article fetching.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultFetchOptions returns sensible defaults for news sites.
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FetchArticle retrieves one article page and extracts it into a RawArticle
// ready for Normalize. The source is derived from the host; title and
// publication date come from the page metadata when present.
func FetchArticle(ctx context.Context, urlStr string, opts *FetchOptions) (*RawArticle, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	raw, err := ParseArticleHTML(string(bodyBytes))
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to parse page", Cause: err}
	}
	raw.URL = urlStr
	if raw.Source == "" {
		raw.Source = strings.TrimPrefix(parsedURL.Host, "www.")
	}
	return raw, nil
}

// ParseArticleHTML extracts title, body and metadata from an article page.
// The body keeps the raw HTML of the page; Normalize sanitizes it.
func ParseArticleHTML(html string) (*RawArticle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	raw := &RawArticle{Body: html}

	// Prefer Open Graph metadata over the document title.
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		raw.Title = strings.TrimSpace(og)
	} else if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		raw.Title = h1
	} else {
		raw.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if site, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		raw.Source = strings.TrimSpace(site)
	}
	if section, ok := doc.Find(`meta[property="article:section"]`).Attr("content"); ok {
		raw.SourceSection = strings.TrimSpace(section)
	}
	if published, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(published)); err == nil {
			raw.PublishedAt = t
		}
	}

	return raw, nil
}
