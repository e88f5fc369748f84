package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/fractional-sitemap/internal/observability"
	"github.com/jonathan/fractional-sitemap/internal/schemas"
	"github.com/jonathan/fractional-sitemap/internal/sitemap"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the URL manifest once",
	Long: `Compile the site URL manifest from the route catalog and the content store and write it as an XML sitemap or JSON.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.
Without a reachable database the manifest contains the catalog routes only.`,
	RunE: runBuild,
}

var (
	buildFlags  siteFlags
	buildFormat string
	buildOutput string
)

func init() {
	buildFlags.register(buildCmd)
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "xml", "Output format: xml or json")
	buildCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Output file (default: stdout)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	encode, err := encoderFor(buildFormat)
	if err != nil {
		return err
	}

	cfg, err := buildFlags.resolve(cmd)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.BuildTimeoutDuration())
	defer cancel()

	c, err := newCompiler(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	manifest := c.builder.Build(ctx)

	var buf bytes.Buffer
	if err := encode(&buf, manifest.Entries); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	// Validate JSON output against schema (non-fatal)
	if buildFormat == "json" {
		if err := schemas.ValidateManifest(buf.Bytes()); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Generated manifest does not validate against schema: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	if err := writeOutput(buildOutput, buf.Bytes()); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintManifestSummary(manifest)
	}
	if buildOutput != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully built %d routes\n", len(manifest.Entries))
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", buildOutput)
	}
	return nil
}

func encoderFor(format string) (func(io.Writer, []types.RouteEntry) error, error) {
	switch format {
	case "xml":
		return sitemap.WriteXML, nil
	case "json":
		return sitemap.WriteJSON, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want xml or json)", format)
	}
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		return nil
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest to output file: %w", err)
	}
	return nil
}
