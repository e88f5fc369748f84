package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fractional-sitemap/internal/schemas"
)

var validateManifestCmd = &cobra.Command{
	Use:   "validate-manifest <file>",
	Short: "Validate a JSON manifest against the route manifest schema",
	Long:  "Checks a JSON manifest written by 'build --format json' against the embedded schema and rejects duplicate URLs.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateManifest,
}

func init() {
	rootCmd.AddCommand(validateManifestCmd)
}

func runValidateManifest(_ *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("manifest file not found: %s", path)
	}

	if err := schemas.ValidateManifestFile(path); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(os.Stdout, "Validation found %d problem(s)\n", len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(os.Stdout, "  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("validation found %d problem(s)", len(validationErr.Errors))
		}
		return fmt.Errorf("failed to validate manifest: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", path)
	return nil
}
