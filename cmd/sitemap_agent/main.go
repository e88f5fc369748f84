// Package main provides the sitemap_agent CLI, which compiles and serves the site URL manifest.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sitemap_agent",
	Short: "Site URL manifest compiler",
	Long:  "sitemap_agent merges the declarative route catalog with published content from the store into a crawler-facing URL manifest.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
