package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andres/news-radar/internal/types"
)

func TestScore_NonSportsIsZero(t *testing.T) {
	f := &types.ArticleFeatures{EventType: types.EventConcert}
	res := Score(f, "la gran final del concurso musical")
	assert.Equal(t, 0.0, res.Score)
	assert.False(t, res.Broadcastable)
}

func TestScore_WorldCupFinal(t *testing.T) {
	attendance := 80000
	f := &types.ArticleFeatures{
		EventType:          types.EventSportsMatch,
		ExpectedAttendance: &attendance,
	}
	text := "la gran final del mundial de fútbol, un partido histórico con la selección"

	res := Score(f, text)
	assert.Equal(t, "football", res.SportType)
	assert.Equal(t, "world_cup", res.CompetitionLevel)
	assert.True(t, res.Broadcastable)
	assert.Greater(t, res.Score, 0.8)
	assert.LessOrEqual(t, res.Score, 1.0)
}

func TestScore_SecondDivisionNotBroadcastable(t *testing.T) {
	f := &types.ArticleFeatures{EventType: types.EventSportsMatch}
	text := "partido de fútbol de la segunda división este fin de semana"

	res := Score(f, text)
	assert.Equal(t, "football", res.SportType)
	assert.Equal(t, "second_division", res.CompetitionLevel)
	assert.False(t, res.Broadcastable)
	assert.Less(t, res.Score, minBroadcastableScore)
}

func TestScore_GrandTourCycling(t *testing.T) {
	f := &types.ArticleFeatures{EventType: types.EventSportsMatch}
	text := "el ciclista colombiano disputa la etapa reina del tour de francia"

	res := Score(f, text)
	assert.Equal(t, "cycling", res.SportType)
	assert.Equal(t, "grand_tour", res.CompetitionLevel)
	assert.Greater(t, res.Score, 0.5)
}

func TestScore_MarathonCounts(t *testing.T) {
	f := &types.ArticleFeatures{EventType: types.EventMarathon}
	res := Score(f, "la maratón de la ciudad reúne corredores")
	assert.Greater(t, res.Score, 0.0)
}

func TestHypeScore(t *testing.T) {
	assert.Equal(t, 0.0, hypeScore("un partido cualquiera"))
	assert.InDelta(t, 0.4, hypeScore("la gran final se acerca"), 0.0001)
	assert.InDelta(t, 0.7, hypeScore("la final del clásico paisa"), 0.0001)
	assert.Equal(t, 1.0, hypeScore("final histórica del clásico, duelo decisivo de la superestrella"))
}

func TestAttendanceScore(t *testing.T) {
	score := func(n int) float64 { return attendanceScore(&n) }

	assert.Equal(t, 0.0, attendanceScore(nil))
	assert.InDelta(t, 0.1, score(2500), 0.0001)
	assert.InDelta(t, 0.2, score(5000), 0.0001)
	assert.InDelta(t, 0.35, score(12500), 0.0001)
	assert.InDelta(t, 0.5, score(20000), 0.0001)
	assert.Equal(t, 1.0, score(50000))
	assert.Equal(t, 1.0, score(100000))
}

func TestCompetitionScore_SportFiltering(t *testing.T) {
	// A cycling article mentioning "mundial" should not pick the football
	// world cup entry once cycling is detected.
	score, code := competitionScore("el ciclista busca el campeonato mundial de ciclismo", "cycling")
	assert.Equal(t, "world_championship", code)
	assert.InDelta(t, 2.5/3.0, score, 0.0001)

	score, code = competitionScore("un partido sin contexto", "football")
	assert.Equal(t, "", code)
	assert.InDelta(t, 0.33, score, 0.0001)
}
