package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andres/news-radar/internal/types"
)

// ReplaceTypeRelevance atomically replaces all relevance rows for one article.
// Re-scoring an article must never leave stale rows behind, so the delete and
// the inserts share a transaction. Passing no scores clears the article.
func (db *DB) ReplaceTypeRelevance(ctx context.Context, articleID uuid.UUID, scores []types.TypeRelevance) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM article_type_relevance WHERE article_id = $1`,
		articleID,
	); err != nil {
		return fmt.Errorf("failed to clear relevance for article %s: %w", articleID, err)
	}

	for _, s := range scores {
		if _, err := tx.Exec(ctx,
			`INSERT INTO article_type_relevance
			     (article_id, type_code, relevance_score, suitability_component,
			      keyword_component, event_scale_component, neighborhood_component,
			      matched_keywords, computed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			articleID, s.TypeCode, s.RelevanceScore, s.SuitabilityComponent,
			s.KeywordComponent, s.EventScaleComponent, s.NeighborhoodComponent,
			s.MatchedKeywords, s.ComputedAt,
		); err != nil {
			return fmt.Errorf("failed to insert relevance %s/%s: %w", articleID, s.TypeCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit relevance for article %s: %w", articleID, err)
	}
	return nil
}

// GetTypeRelevance retrieves all stored relevance rows for one article.
func (db *DB) GetTypeRelevance(ctx context.Context, articleID uuid.UUID) ([]types.TypeRelevance, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT article_id, type_code, relevance_score, suitability_component,
		        keyword_component, event_scale_component, neighborhood_component,
		        matched_keywords, computed_at
		 FROM article_type_relevance WHERE article_id = $1 ORDER BY type_code`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get relevance for article %s: %w", articleID, err)
	}
	defer rows.Close()

	var scores []types.TypeRelevance
	for rows.Next() {
		var s types.TypeRelevance
		if err := rows.Scan(&s.ArticleID, &s.TypeCode, &s.RelevanceScore, &s.SuitabilityComponent,
			&s.KeywordComponent, &s.EventScaleComponent, &s.NeighborhoodComponent,
			&s.MatchedKeywords, &s.ComputedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relevance: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// RelevantArticle is one query result pairing an article with its relevance
// for the requested business type.
type RelevantArticle struct {
	Article   types.Article       `json:"article"`
	Relevance types.TypeRelevance `json:"relevance"`
}

// RelevanceFilters holds the parameters for querying relevant articles.
// TypeCode is required; the rest have defaults.
type RelevanceFilters struct {
	TypeCode     string
	MinRelevance float64
	MaxAgeDays   int
	Limit        int
}

// ListRelevantArticles retrieves articles scored at or above MinRelevance for
// one business type, most relevant first.
func (db *DB) ListRelevantArticles(ctx context.Context, filters RelevanceFilters) ([]RelevantArticle, error) {
	if filters.TypeCode == "" {
		return nil, fmt.Errorf("type code is required")
	}
	if filters.MaxAgeDays <= 0 {
		filters.MaxAgeDays = 30
	}
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.title, a.body, COALESCE(a.url, ''), COALESCE(a.source, ''),
		        COALESCE(a.source_section, ''), a.published_at,
		        r.article_id, r.type_code, r.relevance_score, r.suitability_component,
		        r.keyword_component, r.event_scale_component, r.neighborhood_component,
		        r.matched_keywords, r.computed_at
		 FROM article_type_relevance r
		 JOIN articles a ON a.id = r.article_id
		 WHERE r.type_code = $1
		   AND r.relevance_score >= $2
		   AND a.published_at >= NOW() - make_interval(days => $3)
		 ORDER BY r.relevance_score DESC
		 LIMIT $4`,
		filters.TypeCode, filters.MinRelevance, filters.MaxAgeDays, filters.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list relevant articles: %w", err)
	}
	defer rows.Close()

	var results []RelevantArticle
	for rows.Next() {
		var ra RelevantArticle
		if err := rows.Scan(
			&ra.Article.ID, &ra.Article.Title, &ra.Article.Body, &ra.Article.URL,
			&ra.Article.Source, &ra.Article.SourceSection, &ra.Article.PublishedAt,
			&ra.Relevance.ArticleID, &ra.Relevance.TypeCode, &ra.Relevance.RelevanceScore,
			&ra.Relevance.SuitabilityComponent, &ra.Relevance.KeywordComponent,
			&ra.Relevance.EventScaleComponent, &ra.Relevance.NeighborhoodComponent,
			&ra.Relevance.MatchedKeywords, &ra.Relevance.ComputedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan relevant article: %w", err)
		}
		results = append(results, ra)
	}
	return results, nil
}
