package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andres/news-radar/internal/types"
)

// ListActiveBusinesses retrieves every active subscribed business.
func (db *DB) ListActiveBusinesses(ctx context.Context) ([]types.Business, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, type_code, city, neighborhood, country,
		        latitude, longitude, COALESCE(radius_km, 0),
		        has_gathering_capability, include_national_events, active
		 FROM businesses WHERE active ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []types.Business
	for rows.Next() {
		var b types.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.TypeCode, &b.City, &b.Neighborhood, &b.Country,
			&b.Latitude, &b.Longitude, &b.RadiusKm,
			&b.HasGatheringCapability, &b.IncludeNationalEvents, &b.Active); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	return businesses, nil
}

// GetBusiness retrieves one business by ID, or nil when it does not exist.
func (db *DB) GetBusiness(ctx context.Context, id uuid.UUID) (*types.Business, error) {
	var b types.Business
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, type_code, city, neighborhood, country,
		        latitude, longitude, COALESCE(radius_km, 0),
		        has_gathering_capability, include_national_events, active
		 FROM businesses WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Name, &b.TypeCode, &b.City, &b.Neighborhood, &b.Country,
		&b.Latitude, &b.Longitude, &b.RadiusKm,
		&b.HasGatheringCapability, &b.IncludeNationalEvents, &b.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &b, nil
}

// UpsertBusiness stores a business, creating an ID when the caller did not
// provide one.
func (db *DB) UpsertBusiness(ctx context.Context, business *types.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}

	var radius *float64
	if business.RadiusKm > 0 {
		radius = &business.RadiusKm
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO businesses
		     (id, name, type_code, city, neighborhood, country, latitude, longitude,
		      radius_km, has_gathering_capability, include_national_events, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE
		 SET name = $2, type_code = $3, city = $4, neighborhood = $5, country = $6,
		     latitude = $7, longitude = $8, radius_km = $9,
		     has_gathering_capability = $10, include_national_events = $11, active = $12`,
		business.ID, business.Name, business.TypeCode, business.City, business.Neighborhood,
		business.Country, business.Latitude, business.Longitude, radius,
		business.HasGatheringCapability, business.IncludeNationalEvents, business.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert business %s: %w", business.Name, err)
	}
	return nil
}
