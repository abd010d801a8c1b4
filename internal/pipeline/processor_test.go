package pipeline

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andres/news-radar/internal/extraction"
	"github.com/andres/news-radar/internal/types"
)

var testNow = time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu              sync.Mutex
	features        map[uuid.UUID]*types.ArticleFeatures
	relevance       map[uuid.UUID][]types.TypeRelevance
	recommendations map[uuid.UUID]map[uuid.UUID][]types.Recommendation
	processed       map[uuid.UUID]bool
	failSave        bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		features:        make(map[uuid.UUID]*types.ArticleFeatures),
		relevance:       make(map[uuid.UUID][]types.TypeRelevance),
		recommendations: make(map[uuid.UUID]map[uuid.UUID][]types.Recommendation),
		processed:       make(map[uuid.UUID]bool),
	}
}

func (s *fakeStore) SaveFeatures(_ context.Context, f *types.ArticleFeatures) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("connection refused")
	}
	s.features[f.ArticleID] = f
	return nil
}

func (s *fakeStore) ReplaceTypeRelevance(_ context.Context, articleID uuid.UUID, scores []types.TypeRelevance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relevance[articleID] = scores
	return nil
}

func (s *fakeStore) ReplaceRecommendations(_ context.Context, articleID, businessID uuid.UUID, recs []types.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recommendations[articleID] == nil {
		s.recommendations[articleID] = make(map[uuid.UUID][]types.Recommendation)
	}
	s.recommendations[articleID][businessID] = recs
	return nil
}

func (s *fakeStore) MarkArticleProcessed(_ context.Context, articleID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[articleID] = true
	return nil
}

type fakeEnricher struct {
	enrichment *extraction.Enrichment
	err        error
	calls      int
}

func (e *fakeEnricher) Enrich(_ context.Context, _ *types.Article) (*extraction.Enrichment, error) {
	e.calls++
	return e.enrichment, e.err
}

func defaultConfig(code string) types.BusinessTypeConfig {
	return types.BusinessTypeConfig{
		ID:                      uuid.New(),
		Code:                    code,
		SuitabilityWeight:       0.4,
		KeywordWeight:           0.3,
		EventScaleWeight:        0.2,
		NeighborhoodWeight:      0.1,
		MinSuitabilityThreshold: 0.3,
		MinRelevanceThreshold:   0.4,
		Active:                  true,
	}
}

func testPipeline(businesses []types.Business) (*Pipeline, *fakeStore) {
	configs := []types.BusinessTypeConfig{
		defaultConfig(types.TypeRestaurant),
		defaultConfig(types.TypeBookstore),
	}
	keywords := map[string][]types.TypeKeyword{
		types.TypeRestaurant: {
			{TypeCode: types.TypeRestaurant, Keyword: "gastronomía", Weight: 0.2, Active: true},
			{TypeCode: types.TypeRestaurant, Keyword: "festival gastronómico", Weight: 0.2, Active: true},
			{TypeCode: types.TypeRestaurant, Keyword: "chef", Weight: 0.15, Active: true},
		},
		types.TypeBookstore: {
			{TypeCode: types.TypeBookstore, Keyword: "libro", Weight: 0.25, Active: true},
			{TypeCode: types.TypeBookstore, Keyword: "autor", Weight: 0.2, Active: true},
		},
	}

	store := newFakeStore()
	p := New(DefaultOptions(), configs, keywords, businesses).
		WithStore(store).
		WithOutput(&bytes.Buffer{}).
		WithClock(func() time.Time { return testNow })
	return p, store
}

func restaurantInMedellin() types.Business {
	return types.Business{
		ID:       uuid.New(),
		Name:     "La Mesa",
		TypeCode: types.TypeRestaurant,
		City:     "Medellín",
		Country:  "Colombia",
		Active:   true,
	}
}

func bookstoreInMedellin() types.Business {
	return types.Business{
		ID:       uuid.New(),
		Name:     "Letras",
		TypeCode: types.TypeBookstore,
		City:     "Medellín",
		Country:  "Colombia",
		Active:   true,
	}
}

func festivalArticle() *types.Article {
	return &types.Article{
		ID:    uuid.New(),
		Title: "Festival gastronómico en Medellín",
		Body: "La ciudad de Medellín recibirá en 3 días un festival gastronómico con la participación " +
			"de chefs locales. Los organizadores esperan más de 60 mil personas durante el evento, " +
			"una celebración de la gastronomía de la región.",
		PublishedAt: testNow.AddDate(0, 0, -1),
	}
}

func TestProcessArticle_FestivalScenario(t *testing.T) {
	restaurant := restaurantInMedellin()
	bookstore := bookstoreInMedellin()
	p, store := testPipeline([]types.Business{restaurant, bookstore})

	article := festivalArticle()
	result, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	require.NotNil(t, result.Features)
	assert.Equal(t, types.EventFoodEvent, result.Features.EventType)
	assert.Equal(t, types.ScaleMassive, result.Features.EventScale)
	assert.Greater(t, result.Features.SuitabilityScore, 0.9)

	// The restaurant scores materially higher than the bookstore.
	var restaurantScore, bookstoreScore float64
	for _, s := range result.Scores {
		switch s.TypeCode {
		case types.TypeRestaurant:
			restaurantScore = s.RelevanceScore
		case types.TypeBookstore:
			bookstoreScore = s.RelevanceScore
		}
	}
	assert.Greater(t, restaurantScore, bookstoreScore)

	// The restaurant gets an urgent inventory recommendation; the bookstore
	// gets nothing for a food event.
	require.Len(t, result.PerBusiness, 1)
	assert.Equal(t, restaurant.ID, result.PerBusiness[0].Business.ID)
	urgent := false
	for _, rec := range result.PerBusiness[0].Recommendations {
		if rec.Priority == types.PriorityUrgent &&
			(rec.Category == types.CategoryInventory || rec.Category == types.CategoryMarketing) {
			urgent = true
		}
	}
	assert.True(t, urgent, "expected an urgent inventory or marketing recommendation")

	// Persistence covers features, relevance and the processed stamp.
	assert.NotNil(t, store.features[article.ID])
	assert.NotEmpty(t, store.relevance[article.ID])
	assert.NotEmpty(t, store.recommendations[article.ID][restaurant.ID])
	assert.Empty(t, store.recommendations[article.ID][bookstore.ID])
	assert.True(t, store.processed[article.ID])
}

func TestProcessArticle_PaywallShortCircuits(t *testing.T) {
	p, store := testPipeline([]types.Business{restaurantInMedellin()})

	article := &types.Article{
		ID:          uuid.New(),
		Title:       "Festival gastronómico en Medellín",
		Body:        "Suscríbete para continuar leyendo este contenido exclusivo para suscriptores.",
		PublishedAt: testNow,
	}

	result, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	assert.True(t, result.Suitability.Paywalled)
	assert.Equal(t, 0.0, result.Features.SuitabilityScore)
	assert.NotEmpty(t, result.Features.ExtractionError)
	assert.Empty(t, result.Features.EventType)
	assert.Empty(t, result.Scores)
	assert.True(t, store.processed[article.ID])
}

func TestProcessArticle_LowSuitabilitySkipsScoring(t *testing.T) {
	p, store := testPipeline([]types.Business{restaurantInMedellin()})

	article := &types.Article{
		ID:    uuid.New(),
		Title: "Robo en el centro de Medellín",
		Body: "Un robo a mano armada en el centro de Medellín dejó dos heridos. " +
			"Las autoridades investigan el atraco.",
		PublishedAt: testNow,
	}

	result, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	assert.Less(t, result.Features.SuitabilityScore, 0.3)
	assert.Empty(t, result.Scores)
	assert.Empty(t, result.PerBusiness)
	// The features record and processed stamp still land.
	assert.NotNil(t, store.features[article.ID])
	assert.True(t, store.processed[article.ID])
}

func TestProcessArticle_RelevanceThresholdGatesRecommendations(t *testing.T) {
	restaurant := restaurantInMedellin()

	strict := defaultConfig(types.TypeRestaurant)
	strict.MinRelevanceThreshold = 0.95

	store := newFakeStore()
	p := New(DefaultOptions(), []types.BusinessTypeConfig{strict}, nil, []types.Business{restaurant}).
		WithStore(store).
		WithOutput(&bytes.Buffer{}).
		WithClock(func() time.Time { return testNow })

	article := festivalArticle()
	result, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	// The relevance row persists but no business clears the bar.
	assert.NotEmpty(t, result.Scores)
	assert.Empty(t, result.PerBusiness)
	assert.Empty(t, store.recommendations[article.ID][restaurant.ID])
}

func TestProcessArticle_EnrichmentFailureDegrades(t *testing.T) {
	p, _ := testPipeline([]types.Business{restaurantInMedellin()})
	enricher := &fakeEnricher{err: errors.New("model unavailable")}
	p.WithEnricher(enricher)

	result, err := p.ProcessArticle(context.Background(), festivalArticle())
	require.NoError(t, err)

	assert.Equal(t, 1, enricher.calls)
	assert.False(t, result.Features.Enriched)
	assert.Equal(t, types.EventFoodEvent, result.Features.EventType)
	assert.NotEmpty(t, result.Scores)
}

func TestProcessArticle_EnrichmentFillsGaps(t *testing.T) {
	p, _ := testPipeline([]types.Business{restaurantInMedellin()})
	enricher := &fakeEnricher{enrichment: &extraction.Enrichment{
		VenueName:  "Plaza Mayor",
		Confidence: 0.9,
	}}
	p.WithEnricher(enricher)

	result, err := p.ProcessArticle(context.Background(), festivalArticle())
	require.NoError(t, err)

	assert.True(t, result.Features.Enriched)
	assert.Equal(t, "Plaza Mayor", result.Features.VenueName)
	// Deterministic classification stays in charge.
	assert.Equal(t, types.EventFoodEvent, result.Features.EventType)
}

func TestProcessArticle_InvalidConfigSkipsType(t *testing.T) {
	badConfig := defaultConfig(types.TypeRestaurant)
	badConfig.KeywordWeight = 0.9 // weights no longer sum near 1.0

	store := newFakeStore()
	var out bytes.Buffer
	p := New(DefaultOptions(), []types.BusinessTypeConfig{badConfig}, nil, []types.Business{restaurantInMedellin()}).
		WithStore(store).
		WithOutput(&out).
		WithClock(func() time.Time { return testNow })

	article := festivalArticle()
	result, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	assert.Empty(t, result.Scores)
	assert.Contains(t, out.String(), "Warning: skipping type restaurant")
	// The article itself still completes.
	assert.True(t, store.processed[article.ID])
}

func TestProcessArticle_ReprocessReplacesRows(t *testing.T) {
	restaurant := restaurantInMedellin()
	p, store := testPipeline([]types.Business{restaurant})

	article := festivalArticle()
	_, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)
	firstRecs := store.recommendations[article.ID][restaurant.ID]
	firstScores := withoutComputedAt(store.relevance[article.ID])
	require.NotEmpty(t, firstRecs)

	_, err = p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	// Same template keys, ids, priorities and scores: the replace rewrote the
	// rows, it did not grow a second generation of them.
	assert.Equal(t, firstRecs, store.recommendations[article.ID][restaurant.ID])
	assert.Equal(t, firstScores, withoutComputedAt(store.relevance[article.ID]))
}

// withoutComputedAt strips the scoring timestamp, the one field a re-run is
// allowed to change.
func withoutComputedAt(scores []types.TypeRelevance) []types.TypeRelevance {
	out := make([]types.TypeRelevance, len(scores))
	copy(out, scores)
	for i := range out {
		out[i].ComputedAt = time.Time{}
	}
	return out
}

func TestProcessArticle_BroadcastBoostForGatheringVenues(t *testing.T) {
	pubWithTV := types.Business{
		ID:                     uuid.New(),
		Name:                   "El Barril",
		TypeCode:               types.TypePub,
		City:                   "Medellín",
		Country:                "Colombia",
		HasGatheringCapability: true,
		Active:                 true,
	}
	pubWithoutTV := pubWithTV
	pubWithoutTV.ID = uuid.New()
	pubWithoutTV.Name = "Rincón"
	pubWithoutTV.HasGatheringCapability = false

	configs := []types.BusinessTypeConfig{defaultConfig(types.TypePub)}
	keywords := map[string][]types.TypeKeyword{
		types.TypePub: {{TypeCode: types.TypePub, Keyword: "fútbol", Weight: 0.2, Active: true}},
	}
	store := newFakeStore()
	p := New(DefaultOptions(), configs, keywords, []types.Business{pubWithTV, pubWithoutTV}).
		WithStore(store).
		WithOutput(&bytes.Buffer{}).
		WithClock(func() time.Time { return testNow })

	article := &types.Article{
		ID:    uuid.New(),
		Title: "Colombia jugará la gran final de la Copa Mundial",
		Body: "El partido de fútbol se disputará en 3 días en Medellín. La selección Colombia " +
			"llega a la final del mundial tras una clasificación histórica.",
		PublishedAt: testNow.AddDate(0, 0, -1),
	}

	result, err := p.ProcessArticle(context.Background(), article)
	require.NoError(t, err)

	assert.Equal(t, types.EventSportsMatch, result.Features.EventType)
	assert.True(t, result.Broadcast.Broadcastable)

	impactFor := func(id uuid.UUID) float64 {
		for _, br := range result.PerBusiness {
			if br.Business.ID == id {
				for _, rec := range br.Recommendations {
					return rec.Impact
				}
			}
		}
		return 0
	}
	assert.Greater(t, impactFor(pubWithTV.ID), impactFor(pubWithoutTV.ID))
}

func TestProcessBatch(t *testing.T) {
	p, store := testPipeline([]types.Business{restaurantInMedellin()})

	articles := []types.Article{
		*festivalArticle(),
		*festivalArticle(),
		{
			ID:          uuid.New(),
			Title:       "Noticias",
			Body:        "Inicia sesión para continuar leyendo. Contenido exclusivo para suscriptores.",
			PublishedAt: testNow,
		},
	}

	stats := p.ProcessBatch(context.Background(), articles)

	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 1, stats.Paywalled)
	assert.Equal(t, 2, stats.Scored)
	assert.Greater(t, stats.Recommends, 0)
	assert.Zero(t, stats.Failed)
	assert.Len(t, store.processed, 3)
}

func TestProcessBatch_PersistFailureIsCounted(t *testing.T) {
	p, store := testPipeline([]types.Business{restaurantInMedellin()})
	store.failSave = true

	stats := p.ProcessBatch(context.Background(), []types.Article{*festivalArticle()})

	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, stats.Processed)
}

func TestProcessArticle_NoStoreDryRun(t *testing.T) {
	configs := []types.BusinessTypeConfig{defaultConfig(types.TypeRestaurant)}
	p := New(DefaultOptions(), configs, nil, []types.Business{restaurantInMedellin()}).
		WithOutput(&bytes.Buffer{}).
		WithClock(func() time.Time { return testNow })

	result, err := p.ProcessArticle(context.Background(), festivalArticle())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Scores)
}
