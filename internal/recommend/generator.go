package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andres/news-radar/internal/types"
)

// Config carries the generator's tunable time windows.
type Config struct {
	// EscalationDays: events starting within this many days get their
	// priority bumped one level.
	EscalationDays int
	// ImpactWindowDays: events within this many days receive the proximity
	// impact bonus.
	ImpactWindowDays int
}

// DefaultConfig matches the production tuning.
func DefaultConfig() Config {
	return Config{EscalationDays: 2, ImpactWindowDays: 7}
}

// Generator builds recommendations for article/business pairs. The now
// function is injectable for tests.
type Generator struct {
	cfg Config
	now func() time.Time
}

// NewGenerator returns a generator with the given config, filling unset
// fields from the defaults.
func NewGenerator(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.EscalationDays <= 0 {
		cfg.EscalationDays = def.EscalationDays
	}
	if cfg.ImpactWindowDays <= 0 {
		cfg.ImpactWindowDays = def.ImpactWindowDays
	}
	return &Generator{cfg: cfg, now: time.Now}
}

// WithClock overrides the generator's notion of now. Test hook.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces the recommendation set for one business from one scored
// article. The relevance score is the per-type score already computed for the
// business's type.
func (g *Generator) Generate(article *types.Article, f *types.ArticleFeatures, b *types.Business, relevance float64) []types.Recommendation {
	templates := templatesByEvent[f.EventType]
	if len(templates) == 0 {
		return nil
	}

	now := g.now()
	days, daysKnown := f.DaysUntilEvent(now)
	if daysKnown && days < 0 {
		// The event already happened.
		return nil
	}

	var recs []types.Recommendation
	for i := range templates {
		tpl := &templates[i]
		if !tpl.compatibleWith(b.TypeCode) {
			continue
		}
		if daysKnown && days > tpl.DaysThreshold {
			// Too far out: acting a month early on a one-week-lead action
			// is noise, not advice.
			continue
		}

		priority := tpl.priorityFor(f.EventScale)
		if daysKnown && days <= g.cfg.EscalationDays {
			priority = priority.Escalate()
		}

		recs = append(recs, types.Recommendation{
			ID:          recommendationID(article.ID, b.ID, tpl.Key),
			ArticleID:   article.ID,
			BusinessID:  b.ID,
			TemplateKey: tpl.Key,
			Title:       tpl.Title,
			Description: tpl.Description,
			ActionType:  tpl.ActionType,
			Category:    tpl.Category,
			Priority:    priority,
			Impact:      g.impactScore(relevance, f.EventScale, days, daysKnown),
			Effort:      effortScore(tpl.EffortHours),
			EffortHours: tpl.EffortHours,
			Confidence:  confidenceScore(f),
			Reasoning:   buildReasoning(article, f),
			EventDate:   f.EventStart,
			CreatedAt:   now.UTC(),
		})
	}
	return recs
}

// recommendationID derives a stable id from the triple that identifies a
// recommendation. Reprocessing an article regenerates the same ids, so a
// replace rewrites rows instead of minting an unrelated set.
func recommendationID(articleID, businessID uuid.UUID, templateKey string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(articleID.String()+"/"+businessID.String()+"/"+templateKey))
}

// impactScore blends relevance, event scale and proximity.
func (g *Generator) impactScore(relevance float64, scale types.EventScale, days int, daysKnown bool) float64 {
	impact := relevance*0.7 + scale.Bonus()*0.3
	if daysKnown && days <= g.cfg.ImpactWindowDays {
		impact += 0.1
	}
	if impact > 1.0 {
		impact = 1.0
	}
	return impact
}

func effortScore(hours int) float64 {
	e := float64(hours) / effortNormalizer
	if e > 1.0 {
		return 1.0
	}
	return e
}

// confidenceScore blends the extractor's own confidence with how complete
// the feature record actually is.
func confidenceScore(f *types.ArticleFeatures) float64 {
	c := f.ExtractionConfidence*0.6 + f.Completeness()*0.4
	if c > 1.0 {
		return 1.0
	}
	return c
}

// buildReasoning summarizes the signals that triggered the recommendation.
// This is user-facing output, not logging: it justifies the suggestion.
func buildReasoning(article *types.Article, f *types.ArticleFeatures) string {
	var parts []string
	if f.EventType != "" {
		parts = append(parts, fmt.Sprintf("tipo de evento: %s", f.EventType))
	}
	if f.VenueName != "" {
		parts = append(parts, fmt.Sprintf("lugar: %s", f.VenueName))
	}
	if f.PrimaryCity != "" {
		city := f.PrimaryCity
		if f.Neighborhood != "" {
			city = f.Neighborhood + ", " + city
		}
		parts = append(parts, fmt.Sprintf("ubicación: %s", city))
	}
	if f.EventStart != nil {
		parts = append(parts, fmt.Sprintf("fecha: %s", f.EventStart.Format("2006-01-02")))
	}
	if f.ExpectedAttendance != nil {
		parts = append(parts, fmt.Sprintf("asistencia esperada: %d", *f.ExpectedAttendance))
	}
	if f.EventScale != "" {
		parts = append(parts, fmt.Sprintf("escala: %s", f.EventScale))
	}

	title := article.Title
	if runes := []rune(title); len(runes) > 80 {
		title = string(runes[:80]) + "..."
	}
	return fmt.Sprintf("Basado en %q (%s)", title, strings.Join(parts, "; "))
}
