package extraction

import (
	"sort"
	"strings"
	"unicode"
)

// defaultTopKeywords bounds how many keywords the deterministic extractor
// keeps per article.
const defaultTopKeywords = 10

// spanishStopwords filters function words before frequency counting.
var spanishStopwords = map[string]bool{
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
	"unos": true, "unas": true, "de": true, "del": true, "al": true, "a": true,
	"en": true, "y": true, "o": true, "que": true, "se": true, "su": true,
	"sus": true, "con": true, "por": true, "para": true, "como": true,
	"más": true, "mas": true, "este": true, "esta": true, "estos": true,
	"estas": true, "ese": true, "esa": true, "lo": true, "le": true,
	"les": true, "no": true, "sí": true, "si": true, "es": true, "son": true,
	"fue": true, "será": true, "sera": true, "ser": true, "hay": true,
	"pero": true, "también": true, "tambien": true, "entre": true,
	"sobre": true, "desde": true, "hasta": true, "cuando": true,
	"donde": true, "dónde": true, "durante": true, "según": true,
	"segun": true, "años": true, "año": true, "día": true, "días": true,
	"ciudad": true, "país": true, "ante": true, "tras": true, "han": true,
	"ha": true, "sin": true, "muy": true, "todo": true, "todos": true,
}

// extractKeywords returns the most frequent content words of the text,
// lowercased, ordered by count descending with first appearance breaking
// ties. Output is fully deterministic for identical input.
func extractKeywords(lowerText string, topN int) []string {
	if topN <= 0 {
		topN = defaultTopKeywords
	}
	counts := map[string]int{}
	firstSeen := map[string]int{}
	pos := 0
	for _, tok := range tokenize(lowerText) {
		if len([]rune(tok)) <= 3 || spanishStopwords[tok] {
			continue
		}
		if _, seen := counts[tok]; !seen {
			firstSeen[tok] = pos
		}
		counts[tok]++
		pos++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > topN {
		words = words[:topN]
	}
	return words
}

// extractEntities collects capitalized word runs from the original-case text,
// a cheap stand-in for named entity recognition. Sequences opening a sentence
// are kept only when longer than one word, which drops most false positives.
func extractEntities(text string) []string {
	var entities []string
	seen := map[string]bool{}

	words := strings.Fields(text)
	i := 0
	for i < len(words) {
		w := strings.Trim(words[i], ".,;:!?\"'()«»")
		if !isCapitalized(w) {
			i++
			continue
		}
		run := []string{w}
		j := i + 1
		for j < len(words) {
			next := strings.Trim(words[j], ".,;:!?\"'()«»")
			if !isCapitalized(next) {
				break
			}
			run = append(run, next)
			j++
			if strings.HasSuffix(words[j-1], ".") {
				break
			}
		}
		sentenceStart := i == 0 || strings.ContainsAny(words[i-1], ".!?")
		if len(run) > 1 || !sentenceStart {
			entity := strings.Join(run, " ")
			if !seen[entity] && !spanishStopwords[strings.ToLower(entity)] {
				seen[entity] = true
				entities = append(entities, entity)
			}
		}
		i = j
	}
	return entities
}

func isCapitalized(w string) bool {
	runes := []rune(w)
	if len(runes) < 2 {
		return false
	}
	return unicode.IsUpper(runes[0]) && !unicode.IsUpper(runes[1])
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
