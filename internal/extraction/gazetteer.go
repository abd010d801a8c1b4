package extraction

import (
	"regexp"
	"strings"

	"github.com/andres/news-radar/internal/geomatch"
)

// colombianCities is the priority list for city extraction. Earlier entries
// win when several cities appear in one article.
var colombianCities = []string{
	"Medellín", "Bogotá", "Cali", "Cartagena", "Barranquilla",
	"Bucaramanga", "Pereira", "Manizales", "Cúcuta", "Ibagué",
	"Santa Marta", "Pasto", "Villavicencio", "Montería", "Valledupar",
}

// internationalCities maps a country to the foreign cities that imply it.
var internationalCities = map[string][]string{
	"México":         {"Ciudad de México", "Guadalajara", "Monterrey", "Morelia", "Puebla", "Cancún", "Tijuana"},
	"Argentina":      {"Buenos Aires", "Córdoba", "Rosario", "Mendoza", "La Plata"},
	"Brasil":         {"São Paulo", "Río de Janeiro", "Brasilia", "Salvador", "Belo Horizonte"},
	"Estados Unidos": {"Nueva York", "Los Ángeles", "Miami", "Houston", "Chicago", "Las Vegas"},
	"España":         {"Madrid", "Barcelona", "Valencia", "Sevilla", "Bilbao"},
	"Chile":          {"Santiago", "Valparaíso", "Concepción"},
	"Perú":           {"Lima", "Cuzco", "Arequipa"},
	"Ecuador":        {"Quito", "Guayaquil", "Cuenca"},
	"Qatar":          {"Doha"},
	"Rusia":          {"Moscú", "San Petersburgo"},
	"Francia":        {"París", "Lyon", "Marsella"},
	"Inglaterra":     {"Londres", "Manchester", "Liverpool"},
}

// medellinNeighborhoods covers the metro area; neighborhood detection is
// currently Medellín-only.
var medellinNeighborhoods = []string{
	"El Poblado", "Laureles", "Envigado", "Belén", "Estadio",
	"La Candelaria", "Sabaneta", "Itagüí", "Bello", "Robledo",
}

// countryPhrases detect a country named directly in prose ("en México").
var countryPhrases = []struct {
	pattern *regexp.Regexp
	country string
}{
	{regexp.MustCompile(`\ben\s+m[eé]xico\b`), "México"},
	{regexp.MustCompile(`\ben\s+argentina\b`), "Argentina"},
	{regexp.MustCompile(`\ben\s+brasil\b`), "Brasil"},
	{regexp.MustCompile(`\ben\s+(los\s+)?estados\s+unidos\b`), "Estados Unidos"},
	{regexp.MustCompile(`\ben\s+espa[ñn]a\b`), "España"},
	{regexp.MustCompile(`\ben\s+chile\b`), "Chile"},
	{regexp.MustCompile(`\ben\s+per[uú]\b`), "Perú"},
	{regexp.MustCompile(`\ben\s+ecuador\b`), "Ecuador"},
	{regexp.MustCompile(`\ben\s+qatar\b`), "Qatar"},
	{regexp.MustCompile(`\ben\s+rusia\b`), "Rusia"},
	{regexp.MustCompile(`\ben\s+francia\b`), "Francia"},
	{regexp.MustCompile(`\ben\s+inglaterra\b`), "Inglaterra"},
}

var venuePattern = regexp.MustCompile(`(?i)en\s+el\s+((?:Estadio|Teatro|Centro|Auditorio|Coliseo|Arena|Parque|Plaza)\s+[A-ZÁÉÍÓÚÑ][\wáéíóúñÁÉÍÓÚÑ .]*)`)

func containsNormalized(lowerText, name string) bool {
	return strings.Contains(lowerText, geomatch.NormalizeCity(name))
}

// extractCity returns the first gazetteer city mentioned in the text, domestic
// list first. Matching is accent and case insensitive.
func extractCity(lowerFolded string) string {
	for _, city := range colombianCities {
		if containsNormalized(lowerFolded, city) {
			return city
		}
	}
	for _, cities := range internationalCities {
		for _, city := range cities {
			if containsNormalized(lowerFolded, city) {
				return city
			}
		}
	}
	return ""
}

func extractNeighborhood(lowerFolded string) string {
	for _, n := range medellinNeighborhoods {
		if containsNormalized(lowerFolded, n) {
			return n
		}
	}
	return ""
}

// extractVenue looks for a named venue introduced with "en el ...".
func extractVenue(text string) string {
	if m := venuePattern.FindStringSubmatch(text); m != nil {
		venue := strings.TrimSpace(m[1])
		// Cut trailing prose after the proper name.
		if idx := strings.IndexAny(venue, ".,;"); idx > 0 {
			venue = strings.TrimSpace(venue[:idx])
		}
		return venue
	}
	return ""
}

// resolveCountry determines the event country the way an editor would read
// the article: a known city pins the country, otherwise an explicit "en
// <país>" phrase decides. Empty means undetermined.
func resolveCountry(lowerFolded, primaryCity, homeCountry string) string {
	if primaryCity != "" {
		for _, c := range colombianCities {
			if geomatch.SameCity(c, primaryCity) {
				return homeCountry
			}
		}
		for country, cities := range internationalCities {
			for _, c := range cities {
				if geomatch.SameCity(c, primaryCity) {
					return country
				}
			}
		}
	}
	for _, cp := range countryPhrases {
		if cp.pattern.MatchString(lowerFolded) {
			return cp.country
		}
	}
	return ""
}
