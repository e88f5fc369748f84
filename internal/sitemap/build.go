// Package sitemap compiles the site URL manifest from the route catalog and the content store.
package sitemap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/observability"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Build defaults
const (
	DefaultOrigin       = "https://fractional.quest"
	DefaultJobLimit     = 500
	DefaultArticleLimit = 200
	DefaultReadTimeout  = 10 * time.Second
)

// Options configures a Builder. Zero values take the defaults above.
type Options struct {
	Origin       string
	JobLimit     int
	ArticleLimit int
	ReadTimeout  time.Duration
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Now          func() time.Time
}

// Builder compiles manifests. It holds no per-build state and is safe for concurrent use.
type Builder struct {
	catalog *catalog.Catalog
	store   Store
	opts    Options
}

// NewBuilder creates a Builder. store may be nil, in which case every build
// contains only catalog routes.
func NewBuilder(cat *catalog.Catalog, store Store, opts Options) *Builder {
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.JobLimit <= 0 {
		opts.JobLimit = DefaultJobLimit
	}
	if opts.ArticleLimit <= 0 {
		opts.ArticleLimit = DefaultArticleLimit
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{catalog: cat, store: store, opts: opts}
}

// Build runs the three content reads concurrently, then assembles the manifest
// in fixed section order. It never fails: a failed read empties its section and
// adds a diagnostic.
func (b *Builder) Build(ctx context.Context) *types.Manifest {
	started := b.opts.Now()
	now := started.UTC()

	m := &types.Manifest{BuildID: uuid.New(), BuiltAt: now}
	logger := b.opts.Logger.With(zap.String("build_id", m.BuildID.String()))

	var (
		pagesRes    Result[[]types.ContentPage]
		jobsRes     Result[[]types.JobRecord]
		articlesRes Result[[]types.ArticleRecord]
	)

	// Goroutines never return an error, so one failed read cannot cancel the others.
	var g errgroup.Group
	g.Go(func() error {
		pagesRes = fetchPublishedPages(ctx, b.store, b.opts.ReadTimeout)
		return nil
	})
	g.Go(func() error {
		jobsRes = fetchRecentJobs(ctx, b.store, b.opts.JobLimit, b.opts.ReadTimeout, now)
		return nil
	})
	g.Go(func() error {
		articlesRes = fetchRecentArticles(ctx, b.store, b.opts.ArticleLimit, b.opts.ReadTimeout, now)
		return nil
	})
	_ = g.Wait()

	pages, pagesFailed := settle(pagesRes, types.SectionDynamic, m, logger)
	jobs, jobsFailed := settle(jobsRes, types.SectionJobs, m, logger)
	articles, articlesFailed := settle(articlesRes, types.SectionArticles, m, logger)

	a := &assembler{
		origin:     b.opts.Origin,
		now:        now,
		exclusions: b.catalog.Exclusions(),
		claimed:    make(map[string]struct{}),
		manifest:   m,
	}

	a.begin(types.SectionHomepage)
	a.add("", now, b.catalog.HomepageBand(), false)
	a.end(false)

	b.assembleCatalog(a)

	a.begin(types.SectionDynamic)
	for _, p := range Dedupe(pages, b.catalog.StaticFragments(), a.exclusions) {
		a.add(p.Slug, p.LastModified(now), Classify(p.PageType), true)
	}
	a.end(pagesFailed)

	a.begin(types.SectionJobs)
	for _, j := range jobs {
		a.add(JobFragment(j.Slug), j.LastModified(now), JobBand, true)
	}
	a.end(jobsFailed)

	a.begin(types.SectionArticles)
	for _, art := range articles {
		a.add(ArticleFragment(art.Slug), art.LastModified(now), ArticleBand, true)
	}
	a.end(articlesFailed)

	m.Duration = b.opts.Now().Sub(started)
	b.opts.Metrics.RecordBuild(m)

	logger.Info("sitemap built",
		zap.Int("entries", len(m.Entries)),
		zap.Int("diagnostics", len(m.Diagnostics)),
		zap.Duration("duration", m.Duration),
	)
	return m
}

// assembleCatalog emits one section per category, in declared order
func (b *Builder) assembleCatalog(a *assembler) {
	declared := b.catalog.Declared()
	for _, cat := range b.catalog.Categories {
		a.begin(cat.Name)
		for _, d := range declared {
			if d.Category == cat.Name {
				a.add(d.Fragment, a.now, d.Band, false)
			}
		}
		a.end(false)
	}
}

// assembler appends entries while enforcing global fragment uniqueness
type assembler struct {
	origin     string
	now        time.Time
	exclusions *catalog.Exclusions
	claimed    map[string]struct{}
	manifest   *types.Manifest

	section string
	count   int
}

func (a *assembler) begin(section string) {
	a.section = section
	a.count = 0
}

// add appends one entry unless its fragment is already claimed. Store-sourced
// fragments are also checked against the exclusion registry; catalog ones are not.
func (a *assembler) add(fragment string, lastModified time.Time, band types.Band, fromStore bool) {
	fragment = types.NormalizeFragment(fragment)
	if fromStore && (fragment == "" || a.exclusions.IsExcluded(fragment)) {
		return
	}
	if _, dup := a.claimed[fragment]; dup {
		return
	}
	a.claimed[fragment] = struct{}{}
	a.manifest.Entries = append(a.manifest.Entries, types.NewRouteEntry(a.origin, fragment, lastModified, band))
	a.count++
}

func (a *assembler) end(failed bool) {
	a.manifest.Sections = append(a.manifest.Sections, types.SectionSummary{
		Name:   a.section,
		Count:  a.count,
		Failed: failed,
	})
}
