package geomatch

import (
	"math"

	"github.com/andres/news-radar/internal/types"
)

// defaultRadiusKm is used for coordinate proximity when a business has
// geocoded coordinates but no explicit radius configured.
const defaultRadiusKm = 5.0

// spectatorEvents are event types people gather to watch together. Only these
// can make a foreign event relevant to a business with gathering capability.
var spectatorEvents = map[string]bool{
	types.EventSportsMatch: true,
	types.EventMarathon:    true,
	types.EventFestival:    true,
	types.EventConcert:     true,
}

// IsSpectatorEvent reports whether the event type is one that draws a
// watching crowd, on site or on screens.
func IsSpectatorEvent(eventType string) bool {
	return spectatorEvents[eventType]
}

// Matcher applies the geographic relevance rules for one home country.
type Matcher struct {
	HomeCountry string
}

// NewMatcher returns a matcher anchored to the given home country.
func NewMatcher(homeCountry string) *Matcher {
	return &Matcher{HomeCountry: homeCountry}
}

// IsRelevant decides whether the event described by the features matters to
// the business. The rules are deliberately conservative: when the article
// gives no location at all, only massive events reach businesses that opted
// into national coverage.
func (m *Matcher) IsRelevant(f *types.ArticleFeatures, b *types.Business) bool {
	foreign := f.EventCountry != "" && !sameCountry(f.EventCountry, m.HomeCountry)

	if foreign {
		// A foreign event only matters when the home country is involved
		// and the business can host people watching it.
		return f.HomeInvolvement && b.HasGatheringCapability && IsSpectatorEvent(f.EventType)
	}

	if f.PrimaryCity != "" {
		if SameCity(f.PrimaryCity, b.City) {
			return true
		}
		if m.withinRadius(f, b) {
			return true
		}
		// Domestic event in a different city: only large enough events
		// reach businesses that asked for national coverage.
		if b.IncludeNationalEvents && (f.EventScale == types.ScaleLarge || f.EventScale == types.ScaleMassive) {
			return true
		}
		return false
	}

	if f.EventCountry != "" {
		// Domestic, country known but no city. Same national-coverage rule.
		return b.IncludeNationalEvents && (f.EventScale == types.ScaleLarge || f.EventScale == types.ScaleMassive)
	}

	// No location extracted at all. Assume irrelevant unless the event is
	// massive and the business wants national events anyway.
	return f.EventScale == types.ScaleMassive && b.IncludeNationalEvents
}

func (m *Matcher) withinRadius(f *types.ArticleFeatures, b *types.Business) bool {
	if !f.HasCoordinates() || !b.HasCoordinates() {
		return false
	}
	radius := b.RadiusKm
	if radius <= 0 {
		radius = defaultRadiusKm
	}
	return haversineKm(*f.Latitude, *f.Longitude, *b.Latitude, *b.Longitude) <= radius
}

func sameCountry(a, b string) bool {
	return NormalizeCity(a) == NormalizeCity(b)
}

// haversineKm returns the great-circle distance between two points in
// kilometers.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180.0 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
