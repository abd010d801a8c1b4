package extraction

// involvementPatterns detect the home country taking part in an event: the
// national team playing, a national athlete or artist competing, or the
// country being represented. They are matched against lowercased text.
var involvementPatterns = compileAll(
	`selecci[oó]n\s+colombia`,
	`colombia\s+(vs\.?|contra)\s+`,
	`colombian[oa]s?\s+(participa|compite|juega|dirige|act[uú]a|presenta)`,
	`(artista|director|directora|atleta|actor|actriz)\s+colombian[oa]`,
	`equipo\s+colombiano`,
	`representante\s+de\s+colombia`,
	`colombia\s+en\s+(la\s+)?(copa|mundial|olimpiadas|festival|ceremonia)`,
	`jugadora?\s+colombian[oa]`,
	`seleccionad[oa]\s+colombian[oa]`,
)

// detectHomeInvolvement reports whether the home country participates in the
// event the article describes. This matters for events abroad: a World Cup
// match with the national team still fills local pubs.
func detectHomeInvolvement(lowerText string) bool {
	for _, p := range involvementPatterns {
		if p.MatchString(lowerText) {
			return true
		}
	}
	return false
}
