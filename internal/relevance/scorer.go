// Package relevance computes per-business-type relevance scores for articles
// that already passed the suitability pre-filter.
package relevance

import (
	"fmt"
	"strings"
	"time"

	"github.com/andres/news-radar/internal/types"
)

// ScoreType scores one article against one business type configuration.
// It returns nil with no error when the article does not clear the type's
// suitability threshold, and an error when the configuration itself is
// invalid; a bad config must never silently skew a whole type's scores.
func ScoreType(f *types.ArticleFeatures, lowerText string, cfg *types.BusinessTypeConfig, keywords []types.TypeKeyword) (*types.TypeRelevance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to score type %q: %w", cfg.Code, err)
	}
	if f.SuitabilityScore == types.SuitabilityNotComputed {
		return nil, fmt.Errorf("failed to score type %q: suitability not computed for article %s", cfg.Code, f.ArticleID)
	}
	if f.SuitabilityScore < cfg.MinSuitabilityThreshold {
		return nil, nil
	}

	suitabilityComponent := f.SuitabilityScore * cfg.SuitabilityWeight

	keywordSum, matched := matchKeywords(lowerText, keywords)
	keywordComponent := min(1.0, keywordSum) * cfg.KeywordWeight

	eventScaleComponent := f.EventScale.Bonus() * cfg.EventScaleWeight

	// Neighborhood stays zero at type level: there is no single location to
	// compare against. The weight is reserved for per-business scoring.
	neighborhoodComponent := 0.0

	total := suitabilityComponent + keywordComponent + eventScaleComponent + neighborhoodComponent
	if total > 1.0 {
		total = 1.0
	}

	return &types.TypeRelevance{
		ArticleID:             f.ArticleID,
		TypeCode:              cfg.Code,
		RelevanceScore:        total,
		SuitabilityComponent:  suitabilityComponent,
		KeywordComponent:      keywordComponent,
		EventScaleComponent:   eventScaleComponent,
		NeighborhoodComponent: neighborhoodComponent,
		MatchedKeywords:       matched,
		ComputedAt:            time.Now().UTC(),
	}, nil
}

// matchKeywords sums the weights of active type keywords present in the text
// and records which ones hit. Matching is substring-based on lowercased text,
// the same convention the keyword seed data is written for.
func matchKeywords(lowerText string, keywords []types.TypeKeyword) (float64, []string) {
	var sum float64
	var matched []string
	for _, kw := range keywords {
		if kw.Keyword == "" || !kw.Active {
			continue
		}
		if strings.Contains(lowerText, strings.ToLower(kw.Keyword)) {
			sum += kw.Weight
			matched = append(matched, kw.Keyword)
		}
	}
	return sum, matched
}
