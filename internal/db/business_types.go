package db

import (
	"context"
	"fmt"

	"github.com/andres/news-radar/internal/types"
)

// ListActiveTypeConfigs retrieves the scoring configuration of every active
// business type.
func (db *DB) ListActiveTypeConfigs(ctx context.Context) ([]types.BusinessTypeConfig, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, code, display_name, suitability_weight, keyword_weight,
		        event_scale_weight, neighborhood_weight, min_suitability_threshold,
		        min_relevance_threshold, active
		 FROM business_type_configs WHERE active ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list type configs: %w", err)
	}
	defer rows.Close()

	var configs []types.BusinessTypeConfig
	for rows.Next() {
		var c types.BusinessTypeConfig
		if err := rows.Scan(&c.ID, &c.Code, &c.DisplayName, &c.SuitabilityWeight, &c.KeywordWeight,
			&c.EventScaleWeight, &c.NeighborhoodWeight, &c.MinSuitabilityThreshold,
			&c.MinRelevanceThreshold, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan type config: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, nil
}

// ListTypeKeywords retrieves the active weighted keywords of every business
// type, grouped by type code. Deactivated keywords stay in the table but are
// never handed to the scorer.
func (db *DB) ListTypeKeywords(ctx context.Context) (map[string][]types.TypeKeyword, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT type_code, keyword, weight, category, active
		 FROM business_type_keywords WHERE active ORDER BY type_code, keyword`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list type keywords: %w", err)
	}
	defer rows.Close()

	keywords := make(map[string][]types.TypeKeyword)
	for rows.Next() {
		var k types.TypeKeyword
		if err := rows.Scan(&k.TypeCode, &k.Keyword, &k.Weight, &k.Category, &k.Active); err != nil {
			return nil, fmt.Errorf("failed to scan type keyword: %w", err)
		}
		keywords[k.TypeCode] = append(keywords[k.TypeCode], k)
	}
	return keywords, nil
}

// UpsertTypeConfig stores a business type configuration, rejecting one whose
// weights fail validation.
func (db *DB) UpsertTypeConfig(ctx context.Context, config *types.BusinessTypeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO business_type_configs
		     (code, display_name, suitability_weight, keyword_weight,
		      event_scale_weight, neighborhood_weight, min_suitability_threshold,
		      min_relevance_threshold, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (code) DO UPDATE
		 SET display_name = $2, suitability_weight = $3, keyword_weight = $4,
		     event_scale_weight = $5, neighborhood_weight = $6,
		     min_suitability_threshold = $7, min_relevance_threshold = $8, active = $9`,
		config.Code, config.DisplayName, config.SuitabilityWeight, config.KeywordWeight,
		config.EventScaleWeight, config.NeighborhoodWeight, config.MinSuitabilityThreshold,
		config.MinRelevanceThreshold, config.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert type config %s: %w", config.Code, err)
	}
	return nil
}

// UpsertTypeKeyword stores one weighted keyword for a business type.
func (db *DB) UpsertTypeKeyword(ctx context.Context, keyword *types.TypeKeyword) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO business_type_keywords (type_code, keyword, weight, category, active)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (type_code, keyword) DO UPDATE SET weight = $3, category = $4, active = $5`,
		keyword.TypeCode, keyword.Keyword, keyword.Weight, keyword.Category, keyword.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert keyword %s/%s: %w", keyword.TypeCode, keyword.Keyword, err)
	}
	return nil
}
