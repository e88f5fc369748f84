package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/fractional-sitemap/internal/observability"
	"github.com/jonathan/fractional-sitemap/internal/server"
	"github.com/jonathan/fractional-sitemap/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the URL manifest over HTTP",
	Long: `Start an HTTP server that compiles a fresh manifest for every request.

Endpoints: GET /sitemap.xml, GET /sitemap.json, GET /health, GET /metrics.
Rate limits are read from RATE_LIMIT_* environment variables.`,
	RunE: runServe,
}

var serveFlags siteFlags

func init() {
	serveFlags.register(serveCmd)
	serveFlags.registerPort(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveFlags.resolve(cmd)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	metrics := observability.NewMetrics()
	c, err := newCompiler(cmd.Context(), cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer c.Close()

	srvCfg := server.Config{
		Port:         cfg.Port,
		BuildTimeout: cfg.BuildTimeoutDuration(),
		RateLimit:    ratelimit.LoadConfig(),
		Metrics:      metrics,
		Logger:       logger,
	}
	if c.store != nil {
		srvCfg.Store = c.store
	}

	return server.New(srvCfg, c.builder).Start()
}
