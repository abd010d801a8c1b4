package types

import (
	"time"

	"github.com/google/uuid"
)

// TypeRelevance is the scored relationship between one article and one
// business type. A row only exists when the article passed the suitability
// threshold for that type; absence of a row means "never scored", which is
// deliberately distinct from a stored zero.
type TypeRelevance struct {
	ArticleID             uuid.UUID `json:"article_id"`
	TypeCode              string    `json:"type_code"`
	RelevanceScore        float64   `json:"relevance_score"`
	SuitabilityComponent  float64   `json:"suitability_component"`
	KeywordComponent      float64   `json:"keyword_component"`
	EventScaleComponent   float64   `json:"event_scale_component"`
	NeighborhoodComponent float64   `json:"neighborhood_component"`
	MatchedKeywords       []string  `json:"matched_keywords,omitempty"`
	ComputedAt            time.Time `json:"computed_at"`
}
