package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andres/news-radar/internal/types"
)

// Attendance breakpoints for scale bucketing.
const (
	scaleMediumFloor  = 500
	scaleLargeFloor   = 5000
	scaleMassiveFloor = 50000
)

// attendancePatterns are tried in order; the "mil" forms come first so
// "45 mil personas" is read as 45000, not 45.
var attendancePatterns = []struct {
	pattern  *regexp.Regexp
	thousand bool
}{
	{regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*mil\s+(?:personas|asistentes|espectadores|hinchas|visitantes)`), true},
	{regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})+)\s*(?:personas|asistentes|espectadores|hinchas|visitantes)`), false},
	{regexp.MustCompile(`m[aá]s\s+de\s+(\d{1,3}(?:[.,]\d{3})+|\d+)\s*(?:personas|asistentes|espectadores|hinchas|visitantes)`), false},
	{regexp.MustCompile(`(\d+)\s+(?:personas|asistentes|espectadores|hinchas|visitantes)`), false},
}

var massiveCues = []string{"masivo", "multitudinario", "miles de personas"}
var largeCues = []string{"gran ", "importante", "nacional"}

// extractAttendance parses an expected headcount from phrases like
// "45 mil personas" or "más de 30.000 asistentes". Returns nil when no
// figure is stated.
func extractAttendance(lowerText string) *int {
	for _, ap := range attendancePatterns {
		m := ap.pattern.FindStringSubmatch(lowerText)
		if m == nil {
			continue
		}
		raw := m[1]
		if ap.thousand {
			// "4,5 mil" style decimals.
			raw = strings.ReplaceAll(raw, ",", ".")
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			n := int(v * 1000)
			return &n
		}
		raw = strings.NewReplacer(".", "", ",", "").Replace(raw)
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

// scaleFromAttendance buckets a known headcount.
func scaleFromAttendance(attendance int) types.EventScale {
	switch {
	case attendance < scaleMediumFloor:
		return types.ScaleSmall
	case attendance < scaleLargeFloor:
		return types.ScaleMedium
	case attendance < scaleMassiveFloor:
		return types.ScaleLarge
	default:
		return types.ScaleMassive
	}
}

// estimateScale prefers a stated attendance figure, then qualitative cues.
// It returns empty when the article names no event at all, so scale never
// gets invented for non-event articles.
func estimateScale(lowerText string, attendance *int, hasEvent bool) types.EventScale {
	if attendance != nil {
		return scaleFromAttendance(*attendance)
	}
	if !hasEvent {
		return ""
	}
	for _, cue := range massiveCues {
		if strings.Contains(lowerText, cue) {
			return types.ScaleMassive
		}
	}
	for _, cue := range largeCues {
		if strings.Contains(lowerText, cue) {
			return types.ScaleLarge
		}
	}
	return types.ScaleMedium
}
