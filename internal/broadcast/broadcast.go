// Package broadcast estimates how screenable a sports event is for venues
// with TVs. A World Cup final fills a pub even when it happens on another
// continent; a second-division fixture does not. Non-sports events always
// score zero.
package broadcast

import (
	"regexp"
	"strings"

	"github.com/andres/news-radar/internal/types"
)

// Component weights of the broadcastability score.
const (
	sportAppealWeight      = 0.35
	competitionLevelWeight = 0.30
	hypeIndicatorsWeight   = 0.20
	attendanceWeight       = 0.15
)

// minBroadcastableScore is the threshold above which an event counts as
// worth screening.
const minBroadcastableScore = 0.60

// Attendance breakpoints for the attendance component.
const (
	attendanceSmall  = 5000
	attendanceMedium = 20000
	attendanceLarge  = 50000
)

// sportType carries the regional appeal of one sport and the keywords that
// detect it.
type sportType struct {
	code     string
	appeal   float64
	keywords []string
}

var sportTypes = []sportType{
	{"football", 0.95, []string{"fútbol", "futbol", "selección", "seleccion", "liga", "gol", "partido"}},
	{"cycling", 0.80, []string{"ciclismo", "ciclista", "etapa", "pelotón", "peloton", "contrarreloj"}},
	{"basketball", 0.55, []string{"baloncesto", "básquet", "basquet", "nba"}},
	{"tennis", 0.50, []string{"tenis", "tenista", "grand slam"}},
	{"boxing", 0.60, []string{"boxeo", "boxeador", "pelea por el título", "pelea por el titulo"}},
	{"athletics", 0.55, []string{"maratón", "maraton", "atletismo", "carrera atlética", "carrera atletica"}},
	{"skiing", 0.10, []string{"esquí", "esqui", "snowboard"}},
}

// competitionLevel scales broadcast interest by the stakes of the
// competition. Multipliers normalize against a 3.0 ceiling.
type competitionLevel struct {
	code       string
	sport      string // empty applies to any sport
	multiplier float64
	keywords   []string
}

var competitionLevels = []competitionLevel{
	{"world_cup", "football", 3.0, []string{"mundial", "copa del mundo", "eliminatorias"}},
	{"continental_cup", "football", 2.5, []string{"copa américa", "copa america", "copa libertadores", "champions league", "eurocopa"}},
	{"first_division", "football", 1.5, []string{"primera división", "primera division", "liga betplay"}},
	{"second_division", "football", 0.5, []string{"segunda división", "segunda division", "torneo de ascenso"}},
	{"grand_tour", "cycling", 2.5, []string{"tour de francia", "giro de italia", "vuelta a españa", "vuelta a espana"}},
	{"olympics", "", 3.0, []string{"juegos olímpicos", "juegos olimpicos", "olimpiadas"}},
	{"world_championship", "", 2.5, []string{"campeonato mundial", "campeonato del mundo"}},
}

const maxCompetitionMultiplier = 3.0

// hypeIndicator adds interest for finals, derbies and records.
type hypeIndicator struct {
	category string
	pattern  *regexp.Regexp
	boost    float64
}

var hypeIndicators = []hypeIndicator{
	{"final", regexp.MustCompile(`\bfinal\b|gran\s+final|semifinal`), 0.4},
	{"derby", regexp.MustCompile(`cl[aá]sico|derbi`), 0.3},
	{"historic", regexp.MustCompile(`hist[oó]ric[oa]|por\s+primera\s+vez|r[eé]cord`), 0.3},
	{"decisive", regexp.MustCompile(`decisivo|definitivo|clasificaci[oó]n\s+directa`), 0.2},
	{"star", regexp.MustCompile(`estrella|figura\s+mundial|superestrella`), 0.2},
}

// Result is the broadcastability breakdown for one article.
type Result struct {
	Score            float64
	HypeScore        float64
	Broadcastable    bool
	SportType        string
	CompetitionLevel string
}

// sportsEvents are the only event types the calculator applies to.
var sportsEvents = map[string]bool{
	types.EventSportsMatch: true,
	types.EventMarathon:    true,
}

// Score computes the broadcastability of an event from its features and
// lowercased article text.
func Score(f *types.ArticleFeatures, lowerText string) Result {
	if !sportsEvents[f.EventType] {
		return Result{}
	}

	appeal, sport := sportAppeal(lowerText)
	competition, level := competitionScore(lowerText, sport)
	hype := hypeScore(lowerText)
	attendance := attendanceScore(f.ExpectedAttendance)

	score := appeal*sportAppealWeight +
		competition*competitionLevelWeight +
		hype*hypeIndicatorsWeight +
		attendance*attendanceWeight
	if score > 1.0 {
		score = 1.0
	}

	return Result{
		Score:            score,
		HypeScore:        hype,
		Broadcastable:    score >= minBroadcastableScore,
		SportType:        sport,
		CompetitionLevel: level,
	}
}

// sportAppeal detects the sport with the most keyword hits and returns its
// regional appeal. Unrecognized sports default to medium appeal.
func sportAppeal(lowerText string) (float64, string) {
	bestHits := 0
	var best *sportType
	for i := range sportTypes {
		hits := 0
		for _, kw := range sportTypes[i].keywords {
			if strings.Contains(lowerText, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = &sportTypes[i]
		}
	}
	if best == nil {
		return 0.5, ""
	}
	return best.appeal, best.code
}

// competitionScore picks the highest-multiplier competition whose keywords
// appear, restricted to the detected sport when one is known.
func competitionScore(lowerText, sport string) (float64, string) {
	bestMultiplier := 0.0
	var bestCode string
	for _, cl := range competitionLevels {
		if sport != "" && cl.sport != "" && cl.sport != sport {
			continue
		}
		for _, kw := range cl.keywords {
			if strings.Contains(lowerText, kw) {
				if cl.multiplier > bestMultiplier {
					bestMultiplier = cl.multiplier
					bestCode = cl.code
				}
				break
			}
		}
	}
	if bestCode == "" {
		return 0.33, ""
	}
	score := bestMultiplier / maxCompetitionMultiplier
	if score > 1.0 {
		score = 1.0
	}
	return score, bestCode
}

func hypeScore(lowerText string) float64 {
	total := 0.0
	for _, h := range hypeIndicators {
		if h.pattern.MatchString(lowerText) {
			total += h.boost
		}
	}
	if total > 1.0 {
		return 1.0
	}
	return total
}

// attendanceScore scales a stated headcount into [0, 1] across the
// configured breakpoints.
func attendanceScore(attendance *int) float64 {
	if attendance == nil || *attendance <= 0 {
		return 0.0
	}
	a := float64(*attendance)
	switch {
	case a < attendanceSmall:
		return a / attendanceSmall * 0.2
	case a < attendanceMedium:
		return 0.2 + (a-attendanceSmall)/(attendanceMedium-attendanceSmall)*0.3
	case a < attendanceLarge:
		return 0.5 + (a-attendanceMedium)/(attendanceLarge-attendanceMedium)*0.3
	default:
		return 1.0
	}
}
