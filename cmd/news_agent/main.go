// Package main provides the entry point for the news radar CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "news_agent",
	Short: "Local news relevance and recommendation pipeline",
	Long:  "news_agent scores local news articles for hospitality businesses and turns relevant events into concrete, prioritized action recommendations.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
