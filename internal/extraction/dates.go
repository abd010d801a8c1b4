package extraction

import (
	"regexp"
	"strconv"
	"time"
)

// spanishMonths maps lowercase month names to time.Month.
var spanishMonths = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"octubre": time.October, "noviembre": time.November, "diciembre": time.December,
}

var (
	// "del 10 al 12 de octubre"
	dateRangePattern = regexp.MustCompile(`(?i)del\s+(\d{1,2})\s+al\s+(\d{1,2})\s+de\s+(\p{L}+)`)
	// "el próximo 15 de noviembre", "el 15 de noviembre", "este 3 de mayo"
	singleDatePattern = regexp.MustCompile(`(?i)(?:el\s+pr[oó]ximo|el|este)\s+(\d{1,2})\s+de\s+(\p{L}+)`)
	// relative phrases
	relativePatterns = []struct {
		pattern *regexp.Regexp
		days    int
		weekend bool
		capture bool
	}{
		{pattern: regexp.MustCompile(`(?i)\ben\s+(\d{1,2})\s+d[ií]as`), capture: true},
		{pattern: regexp.MustCompile(`(?i)este\s+fin\s+de\s+semana`), weekend: true},
		{pattern: regexp.MustCompile(`(?i)\bma[ñn]ana\b`), days: 1},
		{pattern: regexp.MustCompile(`(?i)\bhoy\b`), days: 0},
	}
)

// extractEventDates parses the event start (and end, for ranges) from Spanish
// prose. Dates without a year resolve to the next future occurrence relative
// to the reference time, usually the article's publication date.
func extractEventDates(text string, ref time.Time) (start, end *time.Time) {
	if m := dateRangePattern.FindStringSubmatch(text); m != nil {
		month, ok := spanishMonths[foldMonth(m[3])]
		if ok {
			d1, _ := strconv.Atoi(m[1])
			d2, _ := strconv.Atoi(m[2])
			s := nextOccurrence(ref, month, d1)
			e := time.Date(s.Year(), month, d2, 23, 59, 0, 0, ref.Location())
			if e.Before(s) {
				e = e.AddDate(0, 1, 0)
			}
			return &s, &e
		}
	}

	if m := singleDatePattern.FindStringSubmatch(text); m != nil {
		if month, ok := spanishMonths[foldMonth(m[2])]; ok {
			d, _ := strconv.Atoi(m[1])
			s := nextOccurrence(ref, month, d)
			return &s, nil
		}
	}

	for _, rp := range relativePatterns {
		m := rp.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var s time.Time
		switch {
		case rp.capture:
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			s = ref.AddDate(0, 0, n)
		case rp.weekend:
			s = nextSaturday(ref)
		default:
			s = ref.AddDate(0, 0, rp.days)
		}
		return &s, nil
	}

	return nil, nil
}

// foldMonth strips the accents that appear in sloppy copy ("séptiembre").
func foldMonth(name string) string {
	replacer := map[rune]rune{'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u'}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if rep, ok := replacer[r]; ok {
			r = rep
		}
		out = append(out, r)
	}
	return string(out)
}

// nextOccurrence returns the given day/month in the reference year, rolling
// to the next year when the date already passed.
func nextOccurrence(ref time.Time, month time.Month, day int) time.Time {
	d := time.Date(ref.Year(), month, day, 0, 0, 0, 0, ref.Location())
	if d.Before(ref.Truncate(24 * time.Hour)) {
		d = d.AddDate(1, 0, 0)
	}
	return d
}

func nextSaturday(ref time.Time) time.Time {
	days := (int(time.Saturday) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
		if ref.Weekday() == time.Saturday {
			days = 0
		}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).AddDate(0, 0, days)
}

// durationHours derives an event duration when both endpoints are known.
func durationHours(start, end *time.Time) *float64 {
	if start == nil || end == nil {
		return nil
	}
	h := end.Sub(*start).Hours()
	if h <= 0 {
		return nil
	}
	return &h
}
