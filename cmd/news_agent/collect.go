package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andres/news-radar/internal/db"
	"github.com/andres/news-radar/internal/ingestion"
)

var collectCmd = &cobra.Command{
	Use:   "collect [url ...]",
	Short: "Fetch article pages and store them for processing",
	Long:  "Fetches one or more article URLs, extracts title and body, and stores them as unprocessed articles. A later process run scores them.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCollect,
}

var collectDatabaseURL string

func init() {
	collectCmd.Flags().StringVar(&collectDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	dsn, err := resolveDatabaseURL(collectDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	stored := 0
	for _, url := range args {
		raw, err := ingestion.FetchArticle(ctx, url, nil)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
			continue
		}
		article, err := ingestion.Normalize(*raw)
		if err != nil {
			fmt.Printf("Warning: skipping %s: %v\n", url, err)
			continue
		}
		if err := database.UpsertArticle(ctx, article); err != nil {
			return err
		}
		fmt.Printf("Stored: %s\n", article.Title)
		stored++
	}

	fmt.Printf("Collected %d of %d articles.\n", stored, len(args))
	return nil
}
