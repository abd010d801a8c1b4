// Package types provides type definitions for structured data used throughout the news-radar system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// SuitabilityNotComputed is the sentinel stored on features whose suitability
// pre-filter has not run yet. It is outside the valid [0, 1] range so callers
// can distinguish "not evaluated" from a genuine zero.
const SuitabilityNotComputed = -1.0

// Article is a single ingested news article. Body is expected to be plain
// text; ingestion strips any HTML remnants before the pipeline sees it.
type Article struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	URL           string     `json:"url,omitempty"`
	Source        string     `json:"source,omitempty"`
	SourceSection string     `json:"source_section,omitempty"`
	PublishedAt   time.Time  `json:"published_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// Text returns the title and body joined for pattern matching. Most of the
// extraction layer works over this concatenation rather than the body alone,
// since headlines often carry the only mention of the city or the crowd size.
func (a *Article) Text() string {
	if a.Title == "" {
		return a.Body
	}
	return a.Title + "\n" + a.Body
}

// EventScale buckets the expected size of an event.
type EventScale string

const (
	ScaleSmall   EventScale = "small"
	ScaleMedium  EventScale = "medium"
	ScaleLarge   EventScale = "large"
	ScaleMassive EventScale = "massive"
)

// Bonus returns the scale contribution used by both relevance scoring and
// recommendation impact estimation.
func (s EventScale) Bonus() float64 {
	switch s {
	case ScaleMassive:
		return 1.0
	case ScaleLarge:
		return 0.75
	case ScaleMedium:
		return 0.25
	default:
		return 0.0
	}
}

// Event type codes recognized by the classification taxonomy. An article whose
// text matches none of these keeps an empty EventType; EventUnclassified marks
// articles that clearly announce an event but of a kind outside the taxonomy,
// so they can be reviewed instead of silently treated as irrelevant.
const (
	EventSportsMatch   = "sports_match"
	EventMarathon      = "marathon"
	EventConcert       = "concert"
	EventFoodEvent     = "food_event"
	EventFestival      = "festival"
	EventCultural      = "cultural"
	EventNightlife     = "nightlife"
	EventConference    = "conference"
	EventExposition    = "exposition"
	EventPolitics      = "politics"
	EventInternational = "international"
	EventConflict      = "conflict"
	EventCrime         = "crime"
	EventUnclassified  = "unclassified"
)

// ArticleFeatures is the structured profile extracted from one article. Every
// field is optional except SuitabilityScore, which starts at the
// SuitabilityNotComputed sentinel and is only overwritten once the pre-filter
// has actually run.
type ArticleFeatures struct {
	ArticleID    uuid.UUID `json:"article_id"`
	EventType    string    `json:"event_type,omitempty"`
	EventSubtype string    `json:"event_subtype,omitempty"`

	PrimaryCity  string   `json:"primary_city,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	VenueName    string   `json:"venue_name,omitempty"`
	VenueAddress string   `json:"venue_address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`

	EventCountry    string `json:"event_country,omitempty"`
	HomeInvolvement bool   `json:"home_involvement"`

	EventStart    *time.Time `json:"event_start,omitempty"`
	EventEnd      *time.Time `json:"event_end,omitempty"`
	DurationHours *float64   `json:"duration_hours,omitempty"`

	ExpectedAttendance *int       `json:"expected_attendance,omitempty"`
	EventScale         EventScale `json:"event_scale,omitempty"`

	Keywords []string `json:"keywords,omitempty"`
	Entities []string `json:"entities,omitempty"`

	SuitabilityScore     float64 `json:"suitability_score"`
	ExtractionConfidence float64 `json:"extraction_confidence"`
	ExtractionError      string  `json:"extraction_error,omitempty"`
	Enriched             bool    `json:"enriched"`
}

// NewArticleFeatures returns a features record with the suitability sentinel
// set, ready to be filled by the extraction stages.
func NewArticleFeatures(articleID uuid.UUID) *ArticleFeatures {
	return &ArticleFeatures{
		ArticleID:        articleID,
		SuitabilityScore: SuitabilityNotComputed,
	}
}

// HasLocation reports whether any geographic signal was extracted.
func (f *ArticleFeatures) HasLocation() bool {
	return f.PrimaryCity != "" || f.EventCountry != ""
}

// HasCoordinates reports whether both latitude and longitude are present.
func (f *ArticleFeatures) HasCoordinates() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// DaysUntilEvent returns the whole days between now and the event start, or
// false when no start date was extracted. Events already past return negative
// values.
func (f *ArticleFeatures) DaysUntilEvent(now time.Time) (int, bool) {
	if f.EventStart == nil {
		return 0, false
	}
	return int(f.EventStart.Sub(now).Hours() / 24), true
}

// Completeness scores how much of the profile was actually filled, used as one
// input to recommendation confidence. Each signal group contributes equally.
func (f *ArticleFeatures) Completeness() float64 {
	var filled, total float64
	for _, ok := range []bool{
		f.EventType != "" && f.EventType != EventUnclassified,
		f.PrimaryCity != "",
		f.EventStart != nil,
		f.ExpectedAttendance != nil || f.EventScale != "",
		f.VenueName != "" || f.Neighborhood != "",
		len(f.Keywords) > 0,
	} {
		total++
		if ok {
			filled++
		}
	}
	return filled / total
}
