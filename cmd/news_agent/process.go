package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andres/news-radar/internal/config"
	"github.com/andres/news-radar/internal/db"
	"github.com/andres/news-radar/internal/ingestion"
	"github.com/andres/news-radar/internal/llm"
	"github.com/andres/news-radar/internal/pipeline"
	"github.com/andres/news-radar/internal/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Score articles and generate recommendations",
	Long: `Runs the full pipeline over a batch of articles: feature extraction, optional
LLM enrichment, suitability pre-filtering, per-type relevance scoring,
geographic matching and recommendation generation.

Articles come from a JSON input file (--input), from the database backlog of
unprocessed articles, or both. Without --db-url the run is a dry run: results
are printed but not persisted.`,
	RunE: runProcess,
}

var (
	processConfigPath  string
	processInputFile   string
	processDatabaseURL string
	processAPIKey      string
	processLimit       int
	processWorkers     int
	processEnrich      bool
	processVerbose     bool
)

func init() {
	processCmd.Flags().StringVar(&processConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	processCmd.Flags().StringVarP(&processInputFile, "input", "i", "", "Path to JSON file with raw articles to ingest and process")
	processCmd.Flags().StringVar(&processDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	processCmd.Flags().StringVar(&processAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	processCmd.Flags().IntVar(&processLimit, "limit", 0, "Maximum unprocessed articles to pull from the database")
	processCmd.Flags().IntVar(&processWorkers, "workers", 0, "Concurrent articles per batch")
	processCmd.Flags().BoolVar(&processEnrich, "enrich", false, "Enable LLM enrichment of extracted features")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(processCmd)
}

func loadMergedConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = processDatabaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = processAPIKey
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = processWorkers
	}
	if cmd.Flags().Changed("enrich") {
		cfg.Enrichment = processEnrich
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = processVerbose
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg.MergeWithDefaults(config.Defaults()), nil
}

func loadInputArticles(path string) ([]types.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	var raws []ingestion.RawArticle
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}

	articles := make([]types.Article, 0, len(raws))
	for i, raw := range raws {
		article, err := ingestion.Normalize(raw)
		if err != nil {
			fmt.Printf("Warning: skipping input article %d: %v\n", i, err)
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, processConfigPath)
	if err != nil {
		return err
	}
	if processInputFile == "" && cfg.DatabaseURL == "" {
		return fmt.Errorf("nothing to process: provide --input or a database URL")
	}

	// Connect to the database when configured
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	// Scoring configuration: database when available, shipped defaults otherwise
	var (
		configs    []types.BusinessTypeConfig
		keywords   map[string][]types.TypeKeyword
		businesses []types.Business
	)
	if database != nil {
		if configs, err = database.ListActiveTypeConfigs(ctx); err != nil {
			return err
		}
		if keywords, err = database.ListTypeKeywords(ctx); err != nil {
			return err
		}
		if businesses, err = database.ListActiveBusinesses(ctx); err != nil {
			return err
		}
	}
	if len(configs) == 0 {
		configs = db.DefaultTypeConfigs()
		keywords = db.DefaultTypeKeywords()
	}
	if len(businesses) == 0 {
		fmt.Println("No subscribed businesses found; scoring without recommendations.")
	}

	// Gather the batch
	var articles []types.Article
	if processInputFile != "" {
		articles, err = loadInputArticles(processInputFile)
		if err != nil {
			return err
		}
		if database != nil {
			for i := range articles {
				if err := database.UpsertArticle(ctx, &articles[i]); err != nil {
					return err
				}
			}
		}
	}
	if database != nil {
		backlog, err := database.ListUnprocessedArticles(ctx, processLimit)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(articles))
		for _, a := range articles {
			seen[a.ID.String()] = true
		}
		for _, a := range backlog {
			if !seen[a.ID.String()] {
				articles = append(articles, a)
			}
		}
	}
	if len(articles) == 0 {
		fmt.Println("No articles to process.")
		return nil
	}

	opts := pipeline.Options{
		HomeCountry:          cfg.HomeCountry,
		InternationalPenalty: cfg.InternationalPenalty,
		MinSuitability:       cfg.MinSuitability,
		EscalationDays:       cfg.EscalationDays,
		ImpactWindowDays:     cfg.ImpactWindow,
		Workers:              cfg.Workers,
		ArticleTimeout:       time.Duration(cfg.ArticleTimeout) * time.Second,
		Verbose:              cfg.Verbose,
	}

	p := pipeline.New(opts, configs, keywords, businesses)
	if database != nil {
		p.WithStore(database)
	}

	if cfg.Enrichment {
		if cfg.APIKey == "" {
			return fmt.Errorf("enrichment requires an API key (set GEMINI_API_KEY or use --api-key)")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		p.WithEnricher(llm.NewEnricher(client))
	}

	fmt.Printf("Processing %d articles with %d workers...\n", len(articles), opts.Workers)
	stats := p.ProcessBatch(ctx, articles)

	fmt.Printf("Done: %d processed, %d scored, %d recommendations, %d paywalled, %d failed\n",
		stats.Processed, stats.Scored, stats.Recommends, stats.Paywalled, stats.Failed)
	return nil
}
