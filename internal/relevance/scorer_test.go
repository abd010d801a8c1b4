package relevance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andres/news-radar/internal/types"
)

func restaurantConfig() *types.BusinessTypeConfig {
	return &types.BusinessTypeConfig{
		Code:                    types.TypeRestaurant,
		SuitabilityWeight:       0.30,
		KeywordWeight:           0.35,
		EventScaleWeight:        0.20,
		NeighborhoodWeight:      0.15,
		MinSuitabilityThreshold: 0.3,
		Active:                  true,
	}
}

func suitableFeatures(suitability float64, scale types.EventScale) *types.ArticleFeatures {
	return &types.ArticleFeatures{
		ArticleID:        uuid.New(),
		EventType:        types.EventFoodEvent,
		SuitabilityScore: suitability,
		EventScale:       scale,
	}
}

func TestScoreType_ComponentBreakdown(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(0.9, types.ScaleLarge)
	keywords := []types.TypeKeyword{
		{TypeCode: cfg.Code, Keyword: "gastronomía", Weight: 0.9, Active: true},
		{TypeCode: cfg.Code, Keyword: "chef", Weight: 0.7, Active: true},
		{TypeCode: cfg.Code, Keyword: "brunch", Weight: 0.5, Active: true},
	}

	rel, err := ScoreType(f, "festival de gastronomía con chefs invitados", cfg, keywords)
	require.NoError(t, err)
	require.NotNil(t, rel)

	assert.InDelta(t, 0.9*0.30, rel.SuitabilityComponent, 0.0001)
	// gastronomía (0.9) + chef (0.7) = 1.6, capped at 1.0 before weighting.
	assert.InDelta(t, 1.0*0.35, rel.KeywordComponent, 0.0001)
	assert.InDelta(t, 0.75*0.20, rel.EventScaleComponent, 0.0001)
	assert.Equal(t, 0.0, rel.NeighborhoodComponent)
	assert.ElementsMatch(t, []string{"gastronomía", "chef"}, rel.MatchedKeywords)

	wantTotal := 0.27 + 0.35 + 0.15
	assert.InDelta(t, wantTotal, rel.RelevanceScore, 0.0001)
}

func TestScoreType_ClampedToOne(t *testing.T) {
	cfg := restaurantConfig()
	// Weights at the top of the tolerance band, maximal inputs.
	cfg.SuitabilityWeight = 0.35
	cfg.KeywordWeight = 0.40
	cfg.EventScaleWeight = 0.25
	cfg.NeighborhoodWeight = 0.05

	f := suitableFeatures(1.0, types.ScaleMassive)
	keywords := []types.TypeKeyword{{Keyword: "comida", Weight: 2.5, Active: true}}

	rel, err := ScoreType(f, "comida para todos", cfg, keywords)
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.LessOrEqual(t, rel.RelevanceScore, 1.0)
}

func TestScoreType_BelowThresholdYieldsNoRecord(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(0.2, types.ScaleLarge)

	rel, err := ScoreType(f, "cualquier texto", cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, rel, "below threshold means no record, not a zero score")
}

func TestScoreType_ThresholdBoundaryInclusive(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(0.3, types.ScaleSmall)

	rel, err := ScoreType(f, "texto", cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, rel, "exactly at threshold still scores")
}

func TestScoreType_InvalidConfigErrors(t *testing.T) {
	cfg := restaurantConfig()
	cfg.KeywordWeight = 0.9 // weights no longer sum near 1.0

	f := suitableFeatures(0.9, types.ScaleLarge)
	rel, err := ScoreType(f, "texto", cfg, nil)
	assert.Error(t, err)
	assert.Nil(t, rel)
}

func TestScoreType_SuitabilitySentinelErrors(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(types.SuitabilityNotComputed, types.ScaleLarge)

	rel, err := ScoreType(f, "texto", cfg, nil)
	assert.Error(t, err, "scoring before the pre-filter ran is a programming error")
	assert.Nil(t, rel)
}

func TestScoreType_Deterministic(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(0.85, types.ScaleMedium)
	keywords := []types.TypeKeyword{
		{Keyword: "cerveza", Weight: 0.6, Active: true},
		{Keyword: "música en vivo", Weight: 0.8, Active: true},
	}
	text := "cerveza artesanal y música en vivo en el festival"

	first, err := ScoreType(f, text, cfg, keywords)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ScoreType(f, text, cfg, keywords)
		require.NoError(t, err)
		assert.Equal(t, first.RelevanceScore, again.RelevanceScore)
		assert.Equal(t, first.MatchedKeywords, again.MatchedKeywords)
	}
}

func TestScoreType_InactiveKeywordsDoNotScore(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(0.8, types.ScaleMedium)
	keywords := []types.TypeKeyword{
		{Keyword: "gastronomía", Weight: 0.9, Active: true},
		{Keyword: "chef", Weight: 0.7}, // deactivated, kept for history
	}

	rel, err := ScoreType(f, "festival de gastronomía con chefs invitados", cfg, keywords)
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.InDelta(t, 0.9*cfg.KeywordWeight, rel.KeywordComponent, 0.0001)
	assert.Equal(t, []string{"gastronomía"}, rel.MatchedKeywords)
}

func TestScoreType_NoKeywordsMatch(t *testing.T) {
	cfg := restaurantConfig()
	f := suitableFeatures(0.8, types.ScaleMedium)
	keywords := []types.TypeKeyword{{Keyword: "sushi", Weight: 0.9, Active: true}}

	rel, err := ScoreType(f, "un evento sin esas palabras", cfg, keywords)
	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, 0.0, rel.KeywordComponent)
	assert.Empty(t, rel.MatchedKeywords)
}
