package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andres/news-radar/internal/extraction"
	"github.com/andres/news-radar/internal/schemas"
	"github.com/andres/news-radar/internal/types"
)

// maxBodyRunes bounds how much article body goes into the prompt. Event
// announcements front-load the facts, so truncation rarely loses signal.
const maxBodyRunes = 6000

// Enricher implements extraction.Enricher on top of an LLM client. It asks
// the model for the same structured profile the deterministic extractor
// builds, validates the response against the enrichment schema, and discards
// anything that does not conform.
type Enricher struct {
	client Client
	tier   ModelTier
}

// NewEnricher returns an enricher using the lite tier by default.
func NewEnricher(client Client) *Enricher {
	return &Enricher{client: client, tier: TierLite}
}

// WithTier overrides the model tier used for enrichment.
func (e *Enricher) WithTier(tier ModelTier) *Enricher {
	e.tier = tier
	return e
}

// enrichmentResponse is the wire shape of the model's answer.
type enrichmentResponse struct {
	EventType          string   `json:"event_type"`
	EventSubtype       string   `json:"event_subtype"`
	PrimaryCity        string   `json:"primary_city"`
	Neighborhood       string   `json:"neighborhood"`
	VenueName          string   `json:"venue_name"`
	VenueAddress       string   `json:"venue_address"`
	EventCountry       string   `json:"event_country"`
	HomeInvolvement    *bool    `json:"home_involvement"`
	ExpectedAttendance *int     `json:"expected_attendance"`
	EventScale         string   `json:"event_scale"`
	Keywords           []string `json:"keywords"`
	Entities           []string `json:"entities"`
	Confidence         float64  `json:"confidence"`
}

// Enrich asks the model for a structured event profile of the article.
// Errors are returned for the caller to log and ignore; the pipeline always
// degrades to the deterministic extraction.
func (e *Enricher) Enrich(ctx context.Context, article *types.Article) (*extraction.Enrichment, error) {
	prompt := buildEnrichmentPrompt(article)

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return nil, fmt.Errorf("failed to enrich article %s: %w", article.ID, err)
	}

	if err := schemas.ValidateJSONString(schemas.ArticleFeaturesSchema, raw); err != nil {
		return nil, fmt.Errorf("failed to enrich article %s: response rejected: %w", article.ID, err)
	}

	var resp enrichmentResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to enrich article %s: %w", article.ID, err)
	}

	return &extraction.Enrichment{
		EventType:          resp.EventType,
		EventSubtype:       resp.EventSubtype,
		PrimaryCity:        resp.PrimaryCity,
		Neighborhood:       resp.Neighborhood,
		VenueName:          resp.VenueName,
		VenueAddress:       resp.VenueAddress,
		EventCountry:       resp.EventCountry,
		HomeInvolvement:    resp.HomeInvolvement,
		ExpectedAttendance: resp.ExpectedAttendance,
		EventScale:         types.EventScale(resp.EventScale),
		Keywords:           resp.Keywords,
		Entities:           resp.Entities,
		Confidence:         resp.Confidence,
	}, nil
}

// buildEnrichmentPrompt constructs the extraction prompt. The field list
// mirrors the enrichment schema; keeping the two in sync is the contract.
func buildEnrichmentPrompt(article *types.Article) string {
	body := article.Body
	if runes := []rune(body); len(runes) > maxBodyRunes {
		body = string(runes[:maxBodyRunes])
	}

	var sb strings.Builder
	sb.WriteString("You are an expert analyst of Colombian local news. ")
	sb.WriteString("Extract the event profile from the following Spanish-language article. ")
	sb.WriteString("Extract only what the text states; never invent values. ")
	sb.WriteString("Leave string fields empty and numeric fields null when the article does not say.\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	sb.WriteString("  \"event_type\": string (required) // one of: sports_match, marathon, concert, food_event, festival, cultural, nightlife, conference, exposition, politics, international, conflict, crime, or \"\" if no event\n")
	sb.WriteString("  \"event_subtype\": string // finer classification, e.g. food_festival\n")
	sb.WriteString("  \"primary_city\": string // city where the event happens\n")
	sb.WriteString("  \"neighborhood\": string\n")
	sb.WriteString("  \"venue_name\": string\n")
	sb.WriteString("  \"venue_address\": string\n")
	sb.WriteString("  \"event_country\": string // country of the event, in Spanish (Colombia, México, ...)\n")
	sb.WriteString("  \"home_involvement\": boolean // does Colombia or a Colombian participate\n")
	sb.WriteString("  \"expected_attendance\": integer or null\n")
	sb.WriteString("  \"event_scale\": string // small, medium, large, massive, or \"\"\n")
	sb.WriteString("  \"keywords\": [string] // up to 10 topical keywords, lowercase Spanish\n")
	sb.WriteString("  \"entities\": [string] // named people, venues, organizations\n")
	sb.WriteString("  \"confidence\": number (required) // 0.0-1.0, your confidence in this extraction\n")
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Title:\n\"\"\"\n")
	sb.WriteString(article.Title)
	sb.WriteString("\n\"\"\"\n\nBody:\n\"\"\"\n")
	sb.WriteString(body)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}
