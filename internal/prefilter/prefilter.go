// Package prefilter gates articles before the per-type relevance scoring.
// It produces a single business-suitability score in [0, 1]: a cheap filter
// so the more expensive scoring never runs on paywalled stubs, international
// politics or crime reporting.
package prefilter

import (
	"regexp"

	"github.com/andres/news-radar/internal/geomatch"
	"github.com/andres/news-radar/internal/types"
)

// Base suitability per event type, three tiers. Types absent from every tier
// score 0.0, including unclassified.
var (
	highRelevance = map[string]float64{
		types.EventFoodEvent:   0.95,
		types.EventFestival:    0.90,
		types.EventNightlife:   0.90,
		types.EventConcert:     0.85,
		types.EventSportsMatch: 0.85,
		types.EventMarathon:    0.80,
		types.EventCultural:    0.75,
	}
	mediumRelevance = map[string]float64{
		types.EventConference: 0.60,
		types.EventExposition: 0.55,
	}
	lowRelevance = map[string]float64{
		types.EventPolitics:      0.15,
		types.EventInternational: 0.10,
		types.EventConflict:      0.05,
		types.EventCrime:         0.05,
	}
)

var hospitalityKeywords = compilePatterns(
	`restaurante`, `caf[eé]`, `\bbar\b`, `\bpub\b`, `cerveza`,
	`comida`, `gastronom[ií]a`, `reservas`, `\bmesa\b`,
	`m[uú]sica\s+en\s+vivo`, `happy\s+hour`, `brunch`,
)

var negativeKeywords = compilePatterns(
	`asesinato`, `homicidio`, `accidente`, `\bmuert[oa]s?\b`,
	`\brobo\b`, `atraco`, `incendio`, `tragedia`,
	`corrupci[oó]n`, `esc[aá]ndalo`,
)

var paywallPatterns = compilePatterns(
	`suscr[ií]bete`, `contenido\s+exclusivo\s+para\s+suscriptores`,
	`inicia\s+sesi[oó]n\s+para\s+(continuar|seguir\s+leyendo)`,
	`reg[ií]strate\s+(gratis\s+)?para\s+(continuar|seguir\s+leyendo)`,
	`aceptar?\s+(todas\s+las\s+)?cookies`, `pol[ií]tica\s+de\s+cookies`,
	`hazte\s+premium`, `planes\s+de\s+suscripci[oó]n`,
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

const (
	hospitalityBonusPerMatch = 0.1
	hospitalityBonusCap      = 0.3
	negativePenaltyPerMatch  = 0.2
)

// Config carries the tunable pieces of the pre-filter.
type Config struct {
	HomeCountry          string
	InternationalPenalty float64
}

// DefaultConfig matches the production tuning.
func DefaultConfig() Config {
	return Config{HomeCountry: "Colombia", InternationalPenalty: 0.4}
}

// Filter computes suitability scores. The zero value is not usable; construct
// with New.
type Filter struct {
	cfg Config
}

// New returns a filter with the given config, filling unset fields from the
// defaults.
func New(cfg Config) *Filter {
	def := DefaultConfig()
	if cfg.HomeCountry == "" {
		cfg.HomeCountry = def.HomeCountry
	}
	if cfg.InternationalPenalty <= 0 {
		cfg.InternationalPenalty = def.InternationalPenalty
	}
	return &Filter{cfg: cfg}
}

// Result reports the score and why it landed there.
type Result struct {
	Score         float64
	Paywalled     bool
	Unclassified  bool
	International bool
}

// IsPaywalled reports whether the text is a paywall, cookie-wall or
// login-wall stub rather than real article content.
func IsPaywalled(lowerText string) bool {
	for _, p := range paywallPatterns {
		if p.MatchString(lowerText) {
			return true
		}
	}
	return false
}

// baseScore looks the event type up in the tier tables. Unlisted types,
// including unclassified, fall back to zero.
func baseScore(eventType string) float64 {
	if s, ok := highRelevance[eventType]; ok {
		return s
	}
	if s, ok := mediumRelevance[eventType]; ok {
		return s
	}
	if s, ok := lowRelevance[eventType]; ok {
		return s
	}
	return 0.0
}

// Evaluate computes the suitability of one article. The reference business,
// when given, only supplies a business-model sanity check for spectator
// events abroad; it never contributes per-type weighting. The ordered rules
// short-circuit: paywalled stubs and uninvolved foreign events exit early.
func (pf *Filter) Evaluate(f *types.ArticleFeatures, lowerText string, ref *types.Business) Result {
	if IsPaywalled(lowerText) {
		return Result{Score: 0.0, Paywalled: true}
	}

	res := Result{Unclassified: f.EventType == types.EventUnclassified}
	score := baseScore(f.EventType)

	international := f.EventCountry != "" &&
		geomatch.NormalizeCity(f.EventCountry) != geomatch.NormalizeCity(pf.cfg.HomeCountry)
	res.International = international

	if international {
		if !f.HomeInvolvement {
			return res
		}
		score *= pf.cfg.InternationalPenalty
		if geomatch.IsSpectatorEvent(f.EventType) && ref != nil && !ref.HasGatheringCapability {
			return res
		}
	}

	var hospitality int
	for _, p := range hospitalityKeywords {
		if p.MatchString(lowerText) {
			hospitality++
		}
	}
	score += min(hospitalityBonusCap, float64(hospitality)*hospitalityBonusPerMatch)

	for _, p := range negativeKeywords {
		if p.MatchString(lowerText) {
			score -= negativePenaltyPerMatch
		}
	}

	res.Score = clamp01(score)
	return res
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
