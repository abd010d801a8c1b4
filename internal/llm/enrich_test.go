package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andres/news-radar/internal/schemas"
	"github.com/andres/news-radar/internal/types"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
	tier     ModelTier
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel(tier ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func sampleArticle() *types.Article {
	return &types.Article{
		ID:          uuid.New(),
		Title:       "Festival gastronómico en El Poblado",
		Body:        "Medellín recibe este fin de semana un festival gastronómico con más de 10.000 asistentes.",
		PublishedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEnrichParsesValidResponse(t *testing.T) {
	client := &fakeClient{response: `{
		"event_type": "food_event",
		"event_subtype": "food_festival",
		"primary_city": "Medellín",
		"neighborhood": "El Poblado",
		"venue_name": "Parque Lleras",
		"venue_address": "",
		"event_country": "Colombia",
		"home_involvement": true,
		"expected_attendance": 10000,
		"event_scale": "large",
		"keywords": ["festival", "gastronomía"],
		"entities": ["Parque Lleras"],
		"confidence": 0.85
	}`}

	enrichment, err := NewEnricher(client).Enrich(context.Background(), sampleArticle())
	require.NoError(t, err)
	require.NotNil(t, enrichment)

	assert.Equal(t, "food_event", enrichment.EventType)
	assert.Equal(t, "food_festival", enrichment.EventSubtype)
	assert.Equal(t, "Medellín", enrichment.PrimaryCity)
	assert.Equal(t, "El Poblado", enrichment.Neighborhood)
	assert.Equal(t, types.ScaleLarge, enrichment.EventScale)
	require.NotNil(t, enrichment.ExpectedAttendance)
	assert.Equal(t, 10000, *enrichment.ExpectedAttendance)
	require.NotNil(t, enrichment.HomeInvolvement)
	assert.True(t, *enrichment.HomeInvolvement)
	assert.Equal(t, 0.85, enrichment.Confidence)
	assert.Equal(t, TierLite, client.tier)
}

func TestEnrichPromptContainsArticle(t *testing.T) {
	client := &fakeClient{response: `{"event_type": "", "confidence": 0.2}`}

	_, err := NewEnricher(client).Enrich(context.Background(), sampleArticle())
	require.NoError(t, err)

	assert.Contains(t, client.prompt, "Festival gastronómico en El Poblado")
	assert.Contains(t, client.prompt, "ONLY valid JSON")
}

func TestEnrichRejectsNonconformingResponse(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"unknown event type", `{"event_type": "parade", "confidence": 0.9}`},
		{"missing confidence", `{"event_type": "concert"}`},
		{"extra field", `{"event_type": "concert", "confidence": 0.9, "mood": "great"}`},
		{"confidence out of range", `{"event_type": "concert", "confidence": 1.4}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{response: tc.response}

			enrichment, err := NewEnricher(client).Enrich(context.Background(), sampleArticle())
			require.Error(t, err)
			assert.Nil(t, enrichment)

			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestEnrichPropagatesClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}

	enrichment, err := NewEnricher(client).Enrich(context.Background(), sampleArticle())
	require.Error(t, err)
	assert.Nil(t, enrichment)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestEnrichWithTier(t *testing.T) {
	client := &fakeClient{response: `{"event_type": "", "confidence": 0.1}`}

	_, err := NewEnricher(client).WithTier(TierStandard).Enrich(context.Background(), sampleArticle())
	require.NoError(t, err)
	assert.Equal(t, TierStandard, client.tier)
}

func TestCleanJSONBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no language", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanJSONBlock(tc.in))
		})
	}
}
