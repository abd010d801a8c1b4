package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andres/news-radar/internal/db"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List articles relevant to a business type",
	Long:  "Lists scored articles for one business type, most relevant first. Requires a prior process run against the same database.",
	RunE:  runQuery,
}

var (
	queryDatabaseURL  string
	queryTypeCode     string
	queryMinRelevance float64
	queryMaxAgeDays   int
	queryLimit        int
)

func init() {
	queryCmd.Flags().StringVar(&queryDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	queryCmd.Flags().StringVarP(&queryTypeCode, "type", "t", "", "Business type code (pub, restaurant, coffee_shop, bookstore)")
	queryCmd.Flags().Float64Var(&queryMinRelevance, "min-relevance", 0.3, "Minimum relevance score")
	queryCmd.Flags().IntVar(&queryMaxAgeDays, "max-age-days", 30, "Ignore articles published more than this many days ago")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 20, "Maximum articles to list")
	_ = queryCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(queryCmd)
}

func resolveDatabaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
}

func runQuery(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	dsn, err := resolveDatabaseURL(queryDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := database.ListRelevantArticles(ctx, db.RelevanceFilters{
		TypeCode:     queryTypeCode,
		MinRelevance: queryMinRelevance,
		MaxAgeDays:   queryMaxAgeDays,
		Limit:        queryLimit,
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("No relevant articles for type %q.\n", queryTypeCode)
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. [%.2f] %s\n", i+1, r.Relevance.RelevanceScore, r.Article.Title)
		fmt.Printf("    %s  %s\n", r.Article.PublishedAt.Format("2006-01-02"), r.Article.Source)
		if len(r.Relevance.MatchedKeywords) > 0 {
			fmt.Printf("    keywords: %s\n", strings.Join(r.Relevance.MatchedKeywords, ", "))
		}
	}
	return nil
}

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "List recent recommendations for a business",
	RunE:  runRecommendations,
}

var (
	recsDatabaseURL string
	recsBusinessID  string
	recsLimit       int
)

func init() {
	recommendationsCmd.Flags().StringVar(&recsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	recommendationsCmd.Flags().StringVarP(&recsBusinessID, "business-id", "b", "", "Business UUID")
	recommendationsCmd.Flags().IntVar(&recsLimit, "limit", 20, "Maximum recommendations to list")
	_ = recommendationsCmd.MarkFlagRequired("business-id")

	rootCmd.AddCommand(recommendationsCmd)
}

func runRecommendations(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	businessID, err := uuid.Parse(recsBusinessID)
	if err != nil {
		return fmt.Errorf("invalid business ID: %w", err)
	}

	dsn, err := resolveDatabaseURL(recsDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	business, err := database.GetBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return fmt.Errorf("business not found: %s", businessID)
	}

	recs, err := database.ListRecommendationsForBusiness(ctx, businessID, recsLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("No recommendations for %s yet.\n", business.Name)
		return nil
	}

	fmt.Printf("Recommendations for %s (%s):\n\n", business.Name, business.TypeCode)
	for _, rec := range recs {
		fmt.Printf("• [%s] %s\n", rec.Priority, rec.Title)
		fmt.Printf("  %s\n", rec.Description)
		if rec.EventDate != nil {
			fmt.Printf("  event: %s", rec.EventDate.Format("2006-01-02"))
		}
		fmt.Printf("  score: %.2f  effort: ~%dh\n\n", rec.FinalScore(), rec.EffortHours)
	}
	return nil
}
