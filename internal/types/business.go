package types

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Business type codes served by the scoring pipeline.
const (
	TypePub        = "pub"
	TypeRestaurant = "restaurant"
	TypeCoffeeShop = "coffee_shop"
	TypeBookstore  = "bookstore"
)

// weightSumTolerance bounds how far the four component weights may drift from
// summing to 1.0 before a configuration is rejected.
const weightSumTolerance = 0.05

// BusinessTypeConfig holds the scoring parameters for one business type.
// Weights control how the four relevance components combine; a config whose
// weights do not sum to roughly 1.0 is rejected up front so a bad row cannot
// silently skew every score for that type.
type BusinessTypeConfig struct {
	ID                      uuid.UUID `json:"id"`
	Code                    string    `json:"code" validate:"required"`
	DisplayName             string    `json:"display_name"`
	SuitabilityWeight       float64   `json:"suitability_weight" validate:"gte=0,lte=1"`
	KeywordWeight           float64   `json:"keyword_weight" validate:"gte=0,lte=1"`
	EventScaleWeight        float64   `json:"event_scale_weight" validate:"gte=0,lte=1"`
	NeighborhoodWeight      float64   `json:"neighborhood_weight" validate:"gte=0,lte=1"`
	MinSuitabilityThreshold float64   `json:"min_suitability_threshold" validate:"gte=0,lte=1"`
	MinRelevanceThreshold   float64   `json:"min_relevance_threshold" validate:"gte=0,lte=1"`
	Active                  bool      `json:"active"`
}

// Validate checks field ranges and the weight-sum invariant.
func (c *BusinessTypeConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config for type %q: %w", c.Code, err)
	}
	sum := c.SuitabilityWeight + c.KeywordWeight + c.EventScaleWeight + c.NeighborhoodWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("invalid config for type %q: component weights sum to %.3f, want 1.0 (±%.2f)", c.Code, sum, weightSumTolerance)
	}
	return nil
}

// TypeKeyword is one weighted keyword attached to a business type. Weight
// scales the keyword component contribution when the keyword appears in an
// article. Deactivated keywords stay stored for history but never score.
type TypeKeyword struct {
	TypeCode string  `json:"type_code"`
	Keyword  string  `json:"keyword"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category,omitempty"`
	Active   bool    `json:"active"`
}

// Business is one subscribed venue. Geographic matching compares its city and
// optional coordinates against extracted article locations.
type Business struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	TypeCode               string    `json:"type_code"`
	City                   string    `json:"city"`
	Neighborhood           string    `json:"neighborhood,omitempty"`
	Country                string    `json:"country"`
	Latitude               *float64  `json:"latitude,omitempty"`
	Longitude              *float64  `json:"longitude,omitempty"`
	RadiusKm               float64   `json:"radius_km,omitempty"`
	HasGatheringCapability bool      `json:"has_gathering_capability"`
	IncludeNationalEvents  bool      `json:"include_national_events"`
	Active                 bool      `json:"active"`
}

// HasCoordinates reports whether the business location is geocoded.
func (b *Business) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}
