package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventScale_Bonus(t *testing.T) {
	tests := []struct {
		scale EventScale
		want  float64
	}{
		{ScaleMassive, 1.0},
		{ScaleLarge, 0.75},
		{ScaleMedium, 0.25},
		{ScaleSmall, 0.0},
		{EventScale(""), 0.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.scale), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.scale.Bonus(), 0.0001)
		})
	}
}

func TestPriority_Escalate(t *testing.T) {
	assert.Equal(t, PriorityMedium, PriorityLow.Escalate())
	assert.Equal(t, PriorityHigh, PriorityMedium.Escalate())
	assert.Equal(t, PriorityUrgent, PriorityHigh.Escalate())
	assert.Equal(t, PriorityUrgent, PriorityUrgent.Escalate(), "urgent should cap at urgent")
}

func TestPriority_Rank(t *testing.T) {
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 4, PriorityUrgent.Rank())
	assert.Equal(t, 2, Priority("unknown").Rank())
}

func TestBusinessTypeConfig_Validate(t *testing.T) {
	valid := BusinessTypeConfig{
		Code:                    TypeRestaurant,
		SuitabilityWeight:       0.30,
		KeywordWeight:           0.35,
		EventScaleWeight:        0.20,
		NeighborhoodWeight:      0.15,
		MinSuitabilityThreshold: 0.3,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*BusinessTypeConfig)
	}{
		{
			name:   "missing code",
			mutate: func(c *BusinessTypeConfig) { c.Code = "" },
		},
		{
			name:   "weights sum too low",
			mutate: func(c *BusinessTypeConfig) { c.KeywordWeight = 0.1 },
		},
		{
			name:   "weights sum too high",
			mutate: func(c *BusinessTypeConfig) { c.SuitabilityWeight = 0.9 },
		},
		{
			name:   "negative weight",
			mutate: func(c *BusinessTypeConfig) { c.NeighborhoodWeight = -0.1 },
		},
		{
			name:   "threshold out of range",
			mutate: func(c *BusinessTypeConfig) { c.MinSuitabilityThreshold = 1.5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBusinessTypeConfig_Validate_AllowsSmallDrift(t *testing.T) {
	cfg := BusinessTypeConfig{
		Code:                    TypePub,
		SuitabilityWeight:       0.31,
		KeywordWeight:           0.35,
		EventScaleWeight:        0.20,
		NeighborhoodWeight:      0.17,
		MinSuitabilityThreshold: 0.3,
	}
	assert.NoError(t, cfg.Validate(), "sum 1.03 is inside the tolerance")
}

func TestNewArticleFeatures_SuitabilitySentinel(t *testing.T) {
	f := NewArticleFeatures(uuid.New())
	assert.Equal(t, SuitabilityNotComputed, f.SuitabilityScore)
	assert.False(t, f.HasLocation())
	assert.False(t, f.HasCoordinates())
}

func TestArticleFeatures_DaysUntilEvent(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	f := &ArticleFeatures{}
	_, ok := f.DaysUntilEvent(now)
	assert.False(t, ok, "no start date means no countdown")

	start := now.Add(72 * time.Hour)
	f.EventStart = &start
	days, ok := f.DaysUntilEvent(now)
	require.True(t, ok)
	assert.Equal(t, 3, days)

	past := now.Add(-48 * time.Hour)
	f.EventStart = &past
	days, ok = f.DaysUntilEvent(now)
	require.True(t, ok)
	assert.Equal(t, -2, days)
}

func TestArticleFeatures_Completeness(t *testing.T) {
	empty := NewArticleFeatures(uuid.New())
	assert.Equal(t, 0.0, empty.Completeness())

	start := time.Now().Add(24 * time.Hour)
	attendance := 5000
	full := &ArticleFeatures{
		EventType:          EventConcert,
		PrimaryCity:        "Medellín",
		EventStart:         &start,
		ExpectedAttendance: &attendance,
		VenueName:          "Estadio Atanasio Girardot",
		Keywords:           []string{"concierto"},
	}
	assert.InDelta(t, 1.0, full.Completeness(), 0.0001)

	partial := &ArticleFeatures{EventType: EventConcert, PrimaryCity: "Medellín"}
	got := partial.Completeness()
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}

func TestRecommendation_FinalScore(t *testing.T) {
	rec := &Recommendation{
		Confidence: 1.0,
		Impact:     1.0,
		Effort:     0.0,
		Priority:   PriorityUrgent,
	}
	assert.InDelta(t, 1.0, rec.FinalScore(), 0.0001)

	weak := &Recommendation{
		Confidence: 0.5,
		Impact:     0.4,
		Effort:     0.8,
		Priority:   PriorityLow,
	}
	assert.InDelta(t, 0.5*0.4+0.4*0.3+0.2*0.2+0.25*0.1, weak.FinalScore(), 0.0001)
	assert.Greater(t, rec.FinalScore(), weak.FinalScore())
}

func TestArticle_Text(t *testing.T) {
	a := &Article{Title: "Gran concierto", Body: "Detalles del evento."}
	assert.Equal(t, "Gran concierto\nDetalles del evento.", a.Text())

	noTitle := &Article{Body: "Solo cuerpo."}
	assert.Equal(t, "Solo cuerpo.", noTitle.Text())
}
