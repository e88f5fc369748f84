package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/config"
	"github.com/jonathan/fractional-sitemap/internal/db"
	"github.com/jonathan/fractional-sitemap/internal/observability"
	"github.com/jonathan/fractional-sitemap/internal/sitemap"
)

// siteFlags holds the flags shared by build and serve
type siteFlags struct {
	configPath   string
	catalogPath  string
	baseURL      string
	databaseURL  string
	jobLimit     int
	articleLimit int
	readTimeout  string
	buildTimeout string
	logLevel     string
	verbose      bool
	port         int
}

func (f *siteFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	fs.StringVar(&f.catalogPath, "catalog", "", "Path to route catalog YAML (default: embedded catalog)")
	fs.StringVar(&f.baseURL, "base-url", "", "Site origin for every URL (falls back to "+config.EnvBaseURL+")")
	fs.StringVar(&f.databaseURL, "database-url", "", "PostgreSQL connection URL (falls back to "+config.EnvDatabaseURL+")")
	fs.IntVar(&f.jobLimit, "job-limit", 0, "Maximum job detail routes (default 500)")
	fs.IntVar(&f.articleLimit, "article-limit", 0, "Maximum article routes (default 200)")
	fs.StringVar(&f.readTimeout, "read-timeout", "", "Timeout for each content read (default 10s)")
	fs.StringVar(&f.buildTimeout, "build-timeout", "", "Timeout for a whole build (default 30s)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Print a build summary to stderr")
}

func (f *siteFlags) registerPort(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.port, "port", 0, "Port to listen on (default 8080)")
}

// resolve layers flags over the config file, the file over the environment,
// and the environment over the defaults, then validates the result.
func (f *siteFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogPath = f.catalogPath
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = f.databaseURL
	}
	if flags.Changed("job-limit") {
		cfg.JobLimit = f.jobLimit
	}
	if flags.Changed("article-limit") {
		cfg.ArticleLimit = f.articleLimit
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = f.readTimeout
	}
	if flags.Changed("build-timeout") {
		cfg.BuildTimeout = f.buildTimeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if flags.Changed("port") {
		cfg.Port = f.port
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// compiler bundles what one build needs. Close releases the store connection.
type compiler struct {
	builder *sitemap.Builder
	catalog *catalog.Catalog
	store   *db.DB
	logger  *zap.Logger
}

// newCompiler loads the catalog and connects to the content store. A store
// that cannot be reached is logged and replaced with nothing, so the
// manifest still carries every catalog route.
func newCompiler(ctx context.Context, cfg config.Config, logger *zap.Logger, metrics *observability.Metrics) (*compiler, error) {
	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, d := range cat.Duplicates() {
		logger.Warn("fragment declared in more than one category",
			zap.String("fragment", d.Fragment),
			zap.String("kept", d.Kept),
			zap.String("dropped", d.Dropped),
		)
	}

	c := &compiler{catalog: cat, logger: logger}
	c.store = connectStore(ctx, cfg, logger)

	// A typed-nil *db.DB must not reach the Store interface.
	var store sitemap.Store
	if c.store != nil {
		store = c.store
	}

	c.builder = sitemap.NewBuilder(cat, store, sitemap.Options{
		Origin:       cfg.BaseURL,
		JobLimit:     cfg.JobLimit,
		ArticleLimit: cfg.ArticleLimit,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		Logger:       logger,
		Metrics:      metrics,
	})
	return c, nil
}

func (c *compiler) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

func connectStore(ctx context.Context, cfg config.Config, logger *zap.Logger) *db.DB {
	if cfg.DatabaseURL == "" {
		logger.Info("no database configured, manifest will contain catalog routes only")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ReadTimeoutDuration())
	defer cancel()

	database, err := db.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("content store unavailable, manifest will contain catalog routes only", zap.Error(err))
		return nil
	}
	return database
}
