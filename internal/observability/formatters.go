// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/andres/news-radar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFeatures outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintFeatures(features *types.ArticleFeatures) {
	if features == nil {
		return
	}

	var sb strings.Builder

	eventType := features.EventType
	if eventType == "" {
		eventType = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Event:    %s", eventType))
	if features.EventSubtype != "" {
		sb.WriteString(fmt.Sprintf(" / %s", features.EventSubtype))
	}
	sb.WriteString("\n")

	if features.HasLocation() {
		location := features.PrimaryCity
		if features.Neighborhood != "" {
			location += ", " + features.Neighborhood
		}
		if features.EventCountry != "" {
			location += " (" + features.EventCountry + ")"
		}
		sb.WriteString(fmt.Sprintf("Where:    %s\n", location))
	}
	if features.VenueName != "" {
		sb.WriteString(fmt.Sprintf("Venue:    %s\n", features.VenueName))
	}
	if features.EventStart != nil {
		sb.WriteString(fmt.Sprintf("When:     %s\n", features.EventStart.Format("2006-01-02")))
	}
	if features.ExpectedAttendance != nil {
		sb.WriteString(fmt.Sprintf("Crowd:    %d (%s)\n", *features.ExpectedAttendance, features.EventScale))
	} else if features.EventScale != "" {
		sb.WriteString(fmt.Sprintf("Scale:    %s\n", features.EventScale))
	}

	if features.SuitabilityScore == types.SuitabilityNotComputed {
		sb.WriteString("Suitability: not computed\n")
	} else {
		sb.WriteString(fmt.Sprintf("Suitability: %.2f\n", features.SuitabilityScore))
	}
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f", features.ExtractionConfidence))
	if features.Enriched {
		sb.WriteString(" (enriched)")
	}
	sb.WriteString("\n")

	if len(features.Keywords) > 0 {
		keywords := strings.Join(features.Keywords, ", ")
		if len(keywords) > 45 {
			keywords = keywords[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", keywords))
	}
	if features.ExtractionError != "" {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", features.ExtractionError))
	}

	p.printBox("EXTRACTED FEATURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTypeScores outputs the per-type relevance scores for one article.
func (p *Printer) PrintTypeScores(scores []types.TypeRelevance) {
	if len(scores) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range scores {
		sb.WriteString(fmt.Sprintf("%-12s %.2f\n", s.TypeCode, s.RelevanceScore))
		sb.WriteString(fmt.Sprintf("  suit %.2f  kw %.2f  scale %.2f  barrio %.2f\n",
			s.SuitabilityComponent, s.KeywordComponent, s.EventScaleComponent, s.NeighborhoodComponent))
		if len(s.MatchedKeywords) > 0 {
			matched := strings.Join(s.MatchedKeywords, ", ")
			if len(matched) > 45 {
				matched = matched[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  [%s]\n", matched))
		}
		if i < len(scores)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TYPE RELEVANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs generated recommendations with their scores.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d recommendations:\n\n", len(recs)))

	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		title := rec.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", title))
		sb.WriteString(fmt.Sprintf("  %s/%s  priority=%s  score=%.2f\n",
			rec.Category, rec.ActionType, rec.Priority, rec.FinalScore()))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more recommendations", len(recs)-maxItemsToShow))
	}

	p.printBox("RECOMMENDATIONS", sb.String())
}

// BatchStats summarizes one pipeline batch for operator output.
type BatchStats struct {
	Processed  int
	Skipped    int
	Failed     int
	Paywalled  int
	Scored     int
	Recommends int
}

// PrintBatchStats outputs the batch summary.
func (p *Printer) PrintBatchStats(stats BatchStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed:       %d\n", stats.Processed))
	sb.WriteString(fmt.Sprintf("Scored:          %d\n", stats.Scored))
	sb.WriteString(fmt.Sprintf("Recommendations: %d\n", stats.Recommends))
	sb.WriteString(fmt.Sprintf("Paywalled:       %d\n", stats.Paywalled))
	sb.WriteString(fmt.Sprintf("Skipped:         %d\n", stats.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:          %d", stats.Failed))

	p.printBox("BATCH SUMMARY", sb.String())
}
