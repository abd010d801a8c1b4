package extraction

import (
	"context"
	"strings"

	"github.com/andres/news-radar/internal/geomatch"
	"github.com/andres/news-radar/internal/types"
)

// Extractor runs the deterministic feature extraction stages over one
// article. It holds no per-article state and is safe for concurrent use.
type Extractor struct {
	HomeCountry string
	TopKeywords int
}

// NewExtractor returns an extractor anchored to the given home country.
func NewExtractor(homeCountry string) *Extractor {
	return &Extractor{HomeCountry: homeCountry, TopKeywords: defaultTopKeywords}
}

// Extract builds the full feature record for an article. It never fails:
// fields that cannot be determined stay empty, and the suitability score
// keeps its sentinel until the pre-filter runs.
func (e *Extractor) Extract(article *types.Article) *types.ArticleFeatures {
	f := types.NewArticleFeatures(article.ID)

	text := article.Text()
	lower := strings.ToLower(text)
	folded := geomatch.Fold(text)

	f.EventType, f.EventSubtype = ClassifyEventType(lower)
	if f.EventType == "" && LooksLikeEvent(lower) {
		f.EventType = types.EventUnclassified
	}

	f.PrimaryCity = extractCity(folded)
	f.Neighborhood = extractNeighborhood(folded)
	f.VenueName = extractVenue(text)
	f.EventCountry = resolveCountry(folded, f.PrimaryCity, e.HomeCountry)
	f.HomeInvolvement = detectHomeInvolvement(lower)

	f.EventStart, f.EventEnd = extractEventDates(text, article.PublishedAt)
	f.DurationHours = durationHours(f.EventStart, f.EventEnd)

	f.ExpectedAttendance = extractAttendance(lower)
	hasEvent := f.EventType != "" && f.EventType != types.EventUnclassified
	f.EventScale = estimateScale(lower, f.ExpectedAttendance, hasEvent)

	f.Keywords = extractKeywords(lower, e.TopKeywords)
	f.Entities = extractEntities(text)

	f.ExtractionConfidence = deterministicConfidence(f)
	return f
}

// deterministicConfidence reflects how many independent signals the pattern
// stages actually produced. Purely rule-based extraction never claims more
// than 0.9.
func deterministicConfidence(f *types.ArticleFeatures) float64 {
	conf := 0.5
	if f.EventType != "" && f.EventType != types.EventUnclassified {
		conf += 0.1
	}
	if f.PrimaryCity != "" {
		conf += 0.1
	}
	if f.EventStart != nil {
		conf += 0.1
	}
	if f.ExpectedAttendance != nil {
		conf += 0.1
	}
	return conf
}

// Enrichment is the structured overlay an optional model-based extractor can
// contribute on top of the deterministic pass.
type Enrichment struct {
	EventType          string
	EventSubtype       string
	PrimaryCity        string
	Neighborhood       string
	VenueName          string
	VenueAddress       string
	EventCountry       string
	HomeInvolvement    *bool
	ExpectedAttendance *int
	EventScale         types.EventScale
	Keywords           []string
	Entities           []string
	Confidence         float64
}

// Enricher produces an enrichment for an article, typically via an LLM. A nil
// Enricher or a returned error leaves the deterministic features untouched.
type Enricher interface {
	Enrich(ctx context.Context, article *types.Article) (*Enrichment, error)
}

// ApplyEnrichment merges an enrichment into deterministically extracted
// features. The rules favor the deterministic pass: enrichment only fills
// fields the patterns could not determine, except the event type, where a
// concrete model answer replaces an unclassified guess. Keyword and entity
// lists are unioned preserving order.
func ApplyEnrichment(f *types.ArticleFeatures, enr *Enrichment) {
	if enr == nil {
		return
	}
	if enr.EventType != "" && (f.EventType == "" || f.EventType == types.EventUnclassified) {
		f.EventType = enr.EventType
		if enr.EventSubtype != "" {
			f.EventSubtype = enr.EventSubtype
		}
	}
	if f.PrimaryCity == "" {
		f.PrimaryCity = enr.PrimaryCity
	}
	if f.Neighborhood == "" {
		f.Neighborhood = enr.Neighborhood
	}
	if f.VenueName == "" {
		f.VenueName = enr.VenueName
	}
	if f.VenueAddress == "" {
		f.VenueAddress = enr.VenueAddress
	}
	if f.EventCountry == "" {
		f.EventCountry = enr.EventCountry
	}
	if !f.HomeInvolvement && enr.HomeInvolvement != nil {
		f.HomeInvolvement = *enr.HomeInvolvement
	}
	if f.ExpectedAttendance == nil && enr.ExpectedAttendance != nil {
		f.ExpectedAttendance = enr.ExpectedAttendance
		f.EventScale = scaleFromAttendance(*enr.ExpectedAttendance)
	} else if f.EventScale == "" && enr.EventScale != "" {
		f.EventScale = enr.EventScale
	}
	f.Keywords = unionStrings(f.Keywords, enr.Keywords)
	f.Entities = unionStrings(f.Entities, enr.Entities)
	if enr.Confidence > f.ExtractionConfidence {
		f.ExtractionConfidence = enr.Confidence
	}
	f.Enriched = true
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
