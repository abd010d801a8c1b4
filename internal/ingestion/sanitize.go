// Package ingestion normalizes raw collector output into clean articles. The
// input contract makes no promise about language cleanliness: bodies can
// arrive with HTML remnants, navigation chrome or paywall stubs, and the
// pipeline expects plain prose.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagHint          = regexp.MustCompile(`<\s*(?:p|div|span|a|br|script|style|h[1-6]|article|section|img|ul|li)[\s>/]`)
	multiSpace       = regexp.MustCompile(`[ \t]+`)
	entityRemnants   = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&quot;", `"`, "&#39;", "'", "&lt;", "<", "&gt;", ">")
	strippedElements = []string{"script", "style", "nav", "header", "footer", "aside", "form", "iframe", "noscript"}
)

// SanitizeBody returns plain prose from a possibly HTML-contaminated body.
// Bodies with no markup pass through with only whitespace normalization.
func SanitizeBody(raw string) string {
	body := raw
	if tagHint.MatchString(raw) {
		if stripped, ok := stripHTML(raw); ok {
			body = stripped
		}
	}
	body = entityRemnants.Replace(body)
	return normalizeWhitespace(body)
}

// stripHTML parses the fragment and extracts visible text, dropping script,
// style and page-chrome elements.
func stripHTML(raw string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", false
	}
	for _, sel := range strippedElements {
		doc.Find(sel).Remove()
	}

	// Keep block boundaries as line breaks so sentences from adjacent
	// paragraphs don't fuse.
	var b strings.Builder
	blocks := doc.Find("p, h1, h2, h3, h4, h5, h6, li")
	if blocks.Length() == 0 {
		return doc.Text(), true
	}
	blocks.Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	})
	return b.String(), true
}

// normalizeWhitespace collapses runs of spaces and blank lines, trimming each
// line. Line structure is preserved so paragraph boundaries survive.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line == "" {
			if !blank && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		blank = false
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
