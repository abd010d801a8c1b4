// Package pipeline provides the high-level orchestration for scoring news
// articles against subscribed businesses.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/andres/news-radar/internal/broadcast"
	"github.com/andres/news-radar/internal/extraction"
	"github.com/andres/news-radar/internal/geomatch"
	"github.com/andres/news-radar/internal/observability"
	"github.com/andres/news-radar/internal/prefilter"
	"github.com/andres/news-radar/internal/recommend"
	"github.com/andres/news-radar/internal/relevance"
	"github.com/andres/news-radar/internal/types"
)

// Store is the persistence surface the pipeline writes through. The db
// package implements it; tests substitute a fake.
type Store interface {
	SaveFeatures(ctx context.Context, features *types.ArticleFeatures) error
	ReplaceTypeRelevance(ctx context.Context, articleID uuid.UUID, scores []types.TypeRelevance) error
	ReplaceRecommendations(ctx context.Context, articleID, businessID uuid.UUID, recs []types.Recommendation) error
	MarkArticleProcessed(ctx context.Context, articleID uuid.UUID) error
}

// Options holds the tunable parameters for one pipeline instance.
type Options struct {
	HomeCountry          string
	InternationalPenalty float64
	MinSuitability       float64
	EscalationDays       int
	ImpactWindowDays     int
	Workers              int
	ArticleTimeout       time.Duration
	Verbose              bool
}

// broadcastBoost scales how much a broadcastable match raises the relevance
// used for recommendation impact at venues that can screen it.
const broadcastBoost = 0.2

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		HomeCountry:          "Colombia",
		InternationalPenalty: 0.4,
		MinSuitability:       0.3,
		EscalationDays:       2,
		ImpactWindowDays:     7,
		Workers:              4,
		ArticleTimeout:       60 * time.Second,
	}
}

// Pipeline wires extraction, pre-filtering, geographic matching, relevance
// scoring and recommendation generation for a fixed set of business types and
// subscribed businesses.
type Pipeline struct {
	opts       Options
	extractor  *extraction.Extractor
	enricher   extraction.Enricher
	filter     *prefilter.Filter
	matcher    *geomatch.Matcher
	generator  *recommend.Generator
	store      Store
	printer    *observability.Printer
	configs    []types.BusinessTypeConfig
	keywords   map[string][]types.TypeKeyword
	businesses []types.Business
	out        io.Writer
}

// New builds a pipeline over the given scoring configuration.
func New(opts Options, configs []types.BusinessTypeConfig, keywords map[string][]types.TypeKeyword, businesses []types.Business) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	if opts.ArticleTimeout <= 0 {
		opts.ArticleTimeout = DefaultOptions().ArticleTimeout
	}

	filterCfg := prefilter.DefaultConfig()
	if opts.HomeCountry != "" {
		filterCfg.HomeCountry = opts.HomeCountry
	}
	if opts.InternationalPenalty > 0 {
		filterCfg.InternationalPenalty = opts.InternationalPenalty
	}

	genCfg := recommend.DefaultConfig()
	if opts.EscalationDays > 0 {
		genCfg.EscalationDays = opts.EscalationDays
	}
	if opts.ImpactWindowDays > 0 {
		genCfg.ImpactWindowDays = opts.ImpactWindowDays
	}

	return &Pipeline{
		opts:       opts,
		extractor:  extraction.NewExtractor(filterCfg.HomeCountry),
		filter:     prefilter.New(filterCfg),
		matcher:    geomatch.NewMatcher(filterCfg.HomeCountry),
		generator:  recommend.NewGenerator(genCfg),
		configs:    configs,
		keywords:   keywords,
		businesses: businesses,
		out:        os.Stdout,
		printer:    observability.NewPrinter(os.Stdout),
	}
}

// WithEnricher attaches an optional LLM enricher. Enrichment failures degrade
// to the deterministic extraction.
func (p *Pipeline) WithEnricher(e extraction.Enricher) *Pipeline {
	p.enricher = e
	return p
}

// WithStore attaches persistence. Without a store the pipeline still scores
// and returns results, which is what the dry-run CLI mode uses.
func (p *Pipeline) WithStore(s Store) *Pipeline {
	p.store = s
	return p
}

// WithOutput redirects progress and verbose output.
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	p.out = w
	p.printer = observability.NewPrinter(w)
	return p
}

// WithClock fixes the generator clock, for tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.generator = p.generator.WithClock(now)
	return p
}

// BusinessRecommendations pairs one business with the recommendations an
// article produced for it.
type BusinessRecommendations struct {
	Business        types.Business
	Recommendations []types.Recommendation
}

// ArticleResult is everything one article produced.
type ArticleResult struct {
	Features    *types.ArticleFeatures
	Suitability prefilter.Result
	Broadcast   broadcast.Result
	Scores      []types.TypeRelevance
	PerBusiness []BusinessRecommendations
}

// ProcessArticle runs one article through the full pipeline. Malformed input
// never fails the article: extraction and enrichment problems leave a flagged
// features record with suitability zero. The returned error covers
// persistence failures only.
func (p *Pipeline) ProcessArticle(ctx context.Context, article *types.Article) (*ArticleResult, error) {
	lowerText := strings.ToLower(article.Text())

	// Paywall stubs carry no extractable content. Score zero and move on
	// without running extraction at all.
	if prefilter.IsPaywalled(lowerText) {
		features := types.NewArticleFeatures(article.ID)
		features.SuitabilityScore = 0.0
		features.ExtractionError = "paywalled or login-walled content"

		result := &ArticleResult{
			Features:    features,
			Suitability: prefilter.Result{Paywalled: true},
		}
		return result, p.persist(ctx, article, result)
	}

	features := p.extractor.Extract(article)

	if p.enricher != nil {
		enr, err := p.enricher.Enrich(ctx, article)
		if err != nil {
			fmt.Fprintf(p.out, "Warning: enrichment failed for article %s: %v\n", article.ID, err)
		} else {
			extraction.ApplyEnrichment(features, enr)
		}
	}

	suitability := p.filter.Evaluate(features, lowerText, nil)
	features.SuitabilityScore = suitability.Score

	if p.opts.Verbose {
		p.printer.PrintFeatures(features)
	}

	result := &ArticleResult{
		Features:    features,
		Suitability: suitability,
	}

	// Below the global floor nothing downstream can fire; persisting here
	// still clears any rows an earlier run produced.
	if suitability.Score < p.opts.MinSuitability {
		return result, p.persist(ctx, article, result)
	}

	relByType := make(map[string]*types.TypeRelevance)
	cfgByType := make(map[string]*types.BusinessTypeConfig)
	for i := range p.configs {
		cfg := &p.configs[i]
		if !cfg.Active {
			continue
		}
		cfgByType[cfg.Code] = cfg
		score, err := relevance.ScoreType(features, lowerText, cfg, p.keywords[cfg.Code])
		if err != nil {
			// A bad config yields no scores for that type, not a failed batch.
			fmt.Fprintf(p.out, "Warning: skipping type %s: %v\n", cfg.Code, err)
			continue
		}
		if score == nil {
			continue
		}
		relByType[cfg.Code] = score
		result.Scores = append(result.Scores, *score)
	}

	if p.opts.Verbose {
		p.printer.PrintTypeScores(result.Scores)
	}

	result.Broadcast = broadcast.Score(features, lowerText)

	for i := range p.businesses {
		business := &p.businesses[i]
		score, ok := relByType[business.TypeCode]
		if !ok || !p.matcher.IsRelevant(features, business) {
			continue
		}

		// A televised match pulls a crowd into venues that can screen it,
		// beyond what the article's own relevance captures.
		rel := score.RelevanceScore
		if result.Broadcast.Broadcastable && business.HasGatheringCapability {
			rel = min(1.0, rel+broadcastBoost*result.Broadcast.Score)
		}
		if rel < cfgByType[business.TypeCode].MinRelevanceThreshold {
			continue
		}

		recs := p.generator.Generate(article, features, business, rel)
		if len(recs) == 0 {
			continue
		}
		result.PerBusiness = append(result.PerBusiness, BusinessRecommendations{
			Business:        *business,
			Recommendations: recs,
		})
		if p.opts.Verbose {
			p.printer.PrintRecommendations(recs)
		}
	}

	return result, p.persist(ctx, article, result)
}

// persist writes one article's results through the store. Recommendations are
// replaced for every subscribed business so a re-run clears rows the new run
// no longer produces.
func (p *Pipeline) persist(ctx context.Context, article *types.Article, result *ArticleResult) error {
	if p.store == nil {
		return nil
	}

	if err := p.store.SaveFeatures(ctx, result.Features); err != nil {
		return fmt.Errorf("failed to persist article %s: %w", article.ID, err)
	}
	if err := p.store.ReplaceTypeRelevance(ctx, article.ID, result.Scores); err != nil {
		return fmt.Errorf("failed to persist article %s: %w", article.ID, err)
	}

	recsByBusiness := make(map[uuid.UUID][]types.Recommendation, len(result.PerBusiness))
	for _, br := range result.PerBusiness {
		recsByBusiness[br.Business.ID] = br.Recommendations
	}
	for i := range p.businesses {
		id := p.businesses[i].ID
		if err := p.store.ReplaceRecommendations(ctx, article.ID, id, recsByBusiness[id]); err != nil {
			return fmt.Errorf("failed to persist article %s: %w", article.ID, err)
		}
	}

	if err := p.store.MarkArticleProcessed(ctx, article.ID); err != nil {
		return fmt.Errorf("failed to persist article %s: %w", article.ID, err)
	}
	return nil
}

// ProcessBatch scores a batch of articles concurrently. One article failing
// to persist is counted and reported, never fatal for the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, articles []types.Article) observability.BatchStats {
	var (
		mu    sync.Mutex
		stats observability.BatchStats
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i := range articles {
		article := &articles[i]
		g.Go(func() error {
			articleCtx, cancel := context.WithTimeout(gCtx, p.opts.ArticleTimeout)
			defer cancel()

			result, err := p.ProcessArticle(articleCtx, article)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				fmt.Fprintf(p.out, "Warning: %v\n", err)
				return nil
			}
			stats.Processed++
			if result.Suitability.Paywalled {
				stats.Paywalled++
			}
			if len(result.Scores) > 0 {
				stats.Scored++
			}
			for _, br := range result.PerBusiness {
				stats.Recommends += len(br.Recommendations)
			}
			return nil
		})
	}

	// Workers never return errors; Wait only observes context cancellation.
	_ = g.Wait()

	stats.Skipped = len(articles) - stats.Processed - stats.Failed
	if p.opts.Verbose {
		p.printer.PrintBatchStats(stats)
	}
	return stats
}
