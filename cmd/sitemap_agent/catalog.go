package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/observability"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate the route catalog and print a summary",
	Long:  "Load and validate the route catalog, then print per-category route counts, exclusion counts and fragments declared in more than one category.",
	RunE:  runCatalog,
}

var catalogPath string

func init() {
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to route catalog YAML (default: embedded catalog)")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, _ []string) error {
	cat, err := catalog.LoadOrDefault(catalogPath)
	if err != nil {
		return fmt.Errorf("catalog is invalid: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintCatalog(cat)

	if overlap := cat.Exclusions().Overlap(); len(overlap) > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %d fragment(s) are both redirect sources and no-index: %v\n", len(overlap), overlap)
	}
	return nil
}
