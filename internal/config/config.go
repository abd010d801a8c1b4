// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Scoring
	HomeCountry          string  `json:"home_country,omitempty"`          // Country whose local events are in scope
	MinSuitability       float64 `json:"min_suitability,omitempty"`       // Default suitability floor for relevance scoring
	InternationalPenalty float64 `json:"international_penalty,omitempty"` // Multiplier for foreign events with home involvement

	// Recommendations
	EscalationDays int `json:"escalation_days,omitempty"` // Escalate priority when the event is this close
	ImpactWindow   int `json:"impact_window_days,omitempty"`

	// Processing
	Workers        int  `json:"workers,omitempty"`                 // Concurrent articles per batch
	ArticleTimeout int  `json:"article_timeout_seconds,omitempty"` // Per-article processing deadline
	Enrichment     bool `json:"enrichment,omitempty"`              // Call the LLM enricher after deterministic extraction
	Verbose        bool `json:"verbose,omitempty"`                 // Print detailed debug information
}

// Defaults returns the configuration used when nothing is specified.
func Defaults() Config {
	return Config{
		HomeCountry:          "Colombia",
		MinSuitability:       0.3,
		InternationalPenalty: 0.4,
		EscalationDays:       2,
		ImpactWindow:         7,
		Workers:              4,
		ArticleTimeout:       60,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MinSuitability < 0 || c.MinSuitability > 1 {
		return fmt.Errorf("config error: 'min_suitability' must be between 0 and 1")
	}
	if c.InternationalPenalty < 0 || c.InternationalPenalty > 1 {
		return fmt.Errorf("config error: 'international_penalty' must be between 0 and 1")
	}
	if c.EscalationDays < 0 {
		return fmt.Errorf("config error: 'escalation_days' must be non-negative")
	}
	if c.ImpactWindow < 0 {
		return fmt.Errorf("config error: 'impact_window_days' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.ArticleTimeout < 0 {
		return fmt.Errorf("config error: 'article_timeout_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Used to apply config file values underneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.HomeCountry == "" {
		result.HomeCountry = defaults.HomeCountry
	}
	if result.MinSuitability == 0 {
		result.MinSuitability = defaults.MinSuitability
	}
	if result.InternationalPenalty == 0 {
		result.InternationalPenalty = defaults.InternationalPenalty
	}
	if result.EscalationDays == 0 {
		result.EscalationDays = defaults.EscalationDays
	}
	if result.ImpactWindow == 0 {
		result.ImpactWindow = defaults.ImpactWindow
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.ArticleTimeout == 0 {
		result.ArticleTimeout = defaults.ArticleTimeout
	}

	result.Enrichment = result.Enrichment || defaults.Enrichment
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
