package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andres/news-radar/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the default scoring configuration",
	Long:  "Creates tables if missing and upserts the shipped business type configurations and keyword catalog. Safe to run repeatedly.",
	RunE:  runSeed,
}

var seedDatabaseURL string

func init() {
	seedCmd.Flags().StringVar(&seedDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	dsn, err := resolveDatabaseURL(seedDatabaseURL)
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

	seeded, err := database.SeedDefaults(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d configuration rows.\n", seeded)
	return nil
}
