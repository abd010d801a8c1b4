package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andres/news-radar/internal/types"
)

// UpsertArticle stores an article, updating an existing row when the URL is
// already known. Articles without a URL always insert a fresh row. When the
// URL matched an existing row, article.ID is rewritten to that row's id so
// downstream writes reference the stored article, not the freshly minted
// ingestion id.
func (db *DB) UpsertArticle(ctx context.Context, article *types.Article) error {
	if article.URL == "" {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO articles (id, title, body, url, source, source_section, published_at, processed_at)
			 VALUES ($1, $2, $3, NULL, $4, $5, $6, $7)`,
			article.ID, article.Title, article.Body, article.Source, article.SourceSection,
			article.PublishedAt, article.ProcessedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
		return nil
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO articles (id, title, body, url, source, source_section, published_at, processed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (url) DO UPDATE
		 SET title = $2, body = $3, source = $5, source_section = $6, published_at = $7
		 RETURNING id`,
		article.ID, article.Title, article.Body, article.URL, article.Source, article.SourceSection,
		article.PublishedAt, article.ProcessedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}
	return nil
}

// GetArticle retrieves one article by ID, or nil when it does not exist.
func (db *DB) GetArticle(ctx context.Context, id uuid.UUID) (*types.Article, error) {
	var a types.Article
	var url, source, section *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, body, url, source, source_section, published_at, processed_at
		 FROM articles WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Title, &a.Body, &url, &source, &section, &a.PublishedAt, &a.ProcessedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if url != nil {
		a.URL = *url
	}
	if source != nil {
		a.Source = *source
	}
	if section != nil {
		a.SourceSection = *section
	}
	return &a, nil
}

// ListUnprocessedArticles retrieves articles the pipeline has not scored yet,
// newest first.
func (db *DB) ListUnprocessedArticles(ctx context.Context, limit int) ([]types.Article, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, title, body, COALESCE(url, ''), COALESCE(source, ''), COALESCE(source_section, ''), published_at
		 FROM articles WHERE processed_at IS NULL
		 ORDER BY published_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed articles: %w", err)
	}
	defer rows.Close()

	var articles []types.Article
	for rows.Next() {
		var a types.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.URL, &a.Source, &a.SourceSection, &a.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// MarkArticleProcessed stamps an article as having completed the pipeline.
func (db *DB) MarkArticleProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE articles SET processed_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark article processed: %w", err)
	}
	return nil
}

// SaveFeatures stores the extracted feature profile for an article. The full
// profile lives in a JSONB column; the type, city and suitability are
// denormalized for filtering.
func (db *DB) SaveFeatures(ctx context.Context, features *types.ArticleFeatures) error {
	jsonBytes, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO article_features (article_id, event_type, primary_city, suitability_score, features)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (article_id) DO UPDATE
		 SET event_type = $2, primary_city = $3, suitability_score = $4, features = $5, updated_at = NOW()`,
		features.ArticleID, features.EventType, features.PrimaryCity, features.SuitabilityScore, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save features for article %s: %w", features.ArticleID, err)
	}
	return nil
}

// GetFeatures retrieves the stored feature profile for an article, or nil when
// extraction has not run for it.
func (db *DB) GetFeatures(ctx context.Context, articleID uuid.UUID) (*types.ArticleFeatures, error) {
	var jsonBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT features FROM article_features WHERE article_id = $1`,
		articleID,
	).Scan(&jsonBytes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get features for article %s: %w", articleID, err)
	}

	var features types.ArticleFeatures
	if err := json.Unmarshal(jsonBytes, &features); err != nil {
		return nil, fmt.Errorf("failed to unmarshal features for article %s: %w", articleID, err)
	}
	return &features, nil
}
