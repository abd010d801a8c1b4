// Package extraction turns raw article text into a structured feature record:
// event classification, geography, dates, attendance and keyword lists. All of
// it is deterministic pattern matching; optional model-based enrichment layers
// on top without replacing it.
package extraction

import (
	"regexp"

	"github.com/andres/news-radar/internal/types"
)

// taxonomyEntry binds one event type to the patterns that signal it.
type taxonomyEntry struct {
	eventType string
	patterns  []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// eventTaxonomy is an ordered list: classification walks it top to bottom and
// the first entry with any matching pattern wins. Order is load-bearing.
// Specific hospitality categories come before broad ones (food_event before
// festival, so "festival gastronómico" classifies as food), and the
// low-relevance categories come last so a sports article mentioning the
// government still reads as sports.
var eventTaxonomy = []taxonomyEntry{
	{types.EventSportsMatch, compileAll(
		`partido\s+de\s+f[uú]tbol`, `partido\s+.{0,30}contra`, `\bvs\.?\s`, `enfrentar[áa]`,
		`liga\s+de\s+f[uú]tbol`, `campeonato`, `clasificar[áa]?\s+al?\b`, `final\s+de\s+(la\s+)?(copa|liga|torneo)`,
	)},
	{types.EventMarathon, compileAll(
		`marat[oó]n`, `carrera\s+atl[eé]tica`, `media\s+marat[oó]n`, `carrera\s+recreativa`,
		`\b(10|21|42)k\b`, `corredores`,
	)},
	{types.EventConcert, compileAll(
		`concierto`, `show\s+musical`, `presentaci[oó]n\s+musical`, `gira\s+musical`,
		`tocar[aá]\s+en`, `cantante`, `m[uú]sica\s+en\s+vivo`,
	)},
	{types.EventFoodEvent, compileAll(
		`gastron[oó]mic[oa]`, `culinari[oa]`, `\bchef\b`, `degustaci[oó]n`,
		`festival\s+de\s+comida`, `feria\s+de\s+comida`, `cocina\s+tradicional`,
	)},
	{types.EventFestival, compileAll(
		`festival`, `\bferia\b`, `festividad`, `carnaval`, `\bfest\b`,
	)},
	{types.EventCultural, compileAll(
		`\bcultural\b`, `\bteatro\b`, `\bdanza\b`, `[oó]pera`, `\bballet\b`,
		`obra\s+(de\s+teatro|teatral)`,
	)},
	{types.EventNightlife, compileAll(
		`\brumba\b`, `discoteca`, `club\s+nocturno`, `vida\s+nocturna`, `\bfiesta\b`,
	)},
	{types.EventConference, compileAll(
		`conferencia`, `simposio`, `seminario`, `\btaller\b`, `\bforo\b`,
		`encuentro\s+empresarial`, `congreso\s+(empresarial|internacional|de\s+\w+)`,
	)},
	{types.EventExposition, compileAll(
		`exposici[oó]n`, `exhibici[oó]n`, `galer[ií]a`, `arte\s+contempor[aá]neo`, `\bmuseo\b`,
	)},
	{types.EventCrime, compileAll(
		`homicidio`, `asesinato`, `\bcrimen\b`, `delincuencia`, `\brobo\b`,
		`atraco`, `\bhurto\b`, `secuestro`, `narcotr[aá]fico`,
	)},
	{types.EventConflict, compileAll(
		`bombardeo`, `\bguerra\b`, `conflicto\s+armado`, `operaci[oó]n\s+militar`,
		`ofensiva`, `\btropas\b`, `\bmisil\b`, `\bcombate\b`, `ej[eé]rcito`,
	)},
	{types.EventPolitics, compileAll(
		`pol[ií]tica`, `\bgobierno\b`, `\bsenado\b`, `\bcongreso\b`, `legislaci[oó]n`,
		`proyecto\s+de\s+ley`, `\bministro\b`, `\bpresidente\b`, `\balcalde\b`,
		`gobernador`, `elecciones`, `votaci[oó]n`, `partido\s+pol[ií]tico`,
	)},
	{types.EventInternational, compileAll(
		`internacional`, `extranjero`, `\bmundial\b`, `\botan\b`, `\bonu\b`,
		`diplomacia`, `embajada`,
	)},
}

// subtypes refine a few classifications when a secondary cue appears.
var subtypes = map[string][]struct {
	subtype string
	pattern *regexp.Regexp
}{
	types.EventFoodEvent: {
		{"food_festival", regexp.MustCompile(`festival|feria`)},
		{"tasting", regexp.MustCompile(`degustaci[oó]n|cata\b`)},
	},
	types.EventSportsMatch: {
		{"football", regexp.MustCompile(`f[uú]tbol|selecci[oó]n`)},
		{"cycling", regexp.MustCompile(`ciclismo|ciclista`)},
	},
	types.EventConcert: {
		{"stadium_show", regexp.MustCompile(`estadio`)},
	},
}

// ClassifyEventType walks the ordered taxonomy over lowercased text and
// returns the first matching event type with its optional subtype. An empty
// type means no category matched at all.
func ClassifyEventType(lowerText string) (eventType, subtype string) {
	for _, entry := range eventTaxonomy {
		for _, p := range entry.patterns {
			if p.MatchString(lowerText) {
				return entry.eventType, classifySubtype(entry.eventType, lowerText)
			}
		}
	}
	return "", ""
}

func classifySubtype(eventType, lowerText string) string {
	for _, s := range subtypes[eventType] {
		if s.pattern.MatchString(lowerText) {
			return s.subtype
		}
	}
	return ""
}

// announcementCues signal that the article is announcing some scheduled
// happening even when no taxonomy category matched. Used to flag articles as
// unclassified instead of simply non-events.
var announcementCues = compileAll(
	`se\s+(realizar[áa]|llevar[áa]\s+a\s+cabo|celebrar[áa])`,
	`tendr[áa]\s+lugar`, `abre\s+sus\s+puertas`, `\bevento\b`, `programaci[oó]n`,
)

// LooksLikeEvent reports whether the text announces a scheduled happening,
// independent of whether the taxonomy recognized its kind.
func LooksLikeEvent(lowerText string) bool {
	for _, p := range announcementCues {
		if p.MatchString(lowerText) {
			return true
		}
	}
	return false
}
