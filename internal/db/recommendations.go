package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andres/news-radar/internal/types"
)

// ReplaceRecommendations atomically replaces the recommendations one article
// produced for one business. Like relevance, regenerating must not accumulate
// duplicates, so delete and insert share a transaction.
func (db *DB) ReplaceRecommendations(ctx context.Context, articleID, businessID uuid.UUID, recs []types.Recommendation) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM recommendations WHERE article_id = $1 AND business_id = $2`,
		articleID, businessID,
	); err != nil {
		return fmt.Errorf("failed to clear recommendations %s/%s: %w", articleID, businessID, err)
	}

	for _, r := range recs {
		id := r.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO recommendations
			     (id, article_id, business_id, template_key, title, description,
			      action_type, category, priority, impact, effort, effort_hours,
			      confidence, reasoning, event_date, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			id, articleID, businessID, r.TemplateKey, r.Title, r.Description,
			r.ActionType, r.Category, r.Priority, r.Impact, r.Effort, r.EffortHours,
			r.Confidence, r.Reasoning, r.EventDate, r.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert recommendation %s: %w", r.TemplateKey, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendations %s/%s: %w", articleID, businessID, err)
	}
	return nil
}

// ListRecommendationsForBusiness retrieves recent recommendations for one
// business, newest first.
func (db *DB) ListRecommendationsForBusiness(ctx context.Context, businessID uuid.UUID, limit int) ([]types.Recommendation, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, article_id, business_id, template_key, title, description,
		        action_type, category, priority, impact, effort, effort_hours,
		        confidence, reasoning, event_date, created_at
		 FROM recommendations WHERE business_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		businessID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []types.Recommendation
	for rows.Next() {
		var r types.Recommendation
		if err := rows.Scan(&r.ID, &r.ArticleID, &r.BusinessID, &r.TemplateKey, &r.Title, &r.Description,
			&r.ActionType, &r.Category, &r.Priority, &r.Impact, &r.Effort, &r.EffortHours,
			&r.Confidence, &r.Reasoning, &r.EventDate, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, nil
}
