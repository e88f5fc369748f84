package sitemap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

const testOrigin = "https://example.test"

var fixedNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

const testCatalogYAML = `
homepage:
  priority: 1.0
  change_frequency: daily
categories:
  - name: listings
    priority: 0.95
    change_frequency: daily
    paths: [jobs-uk, jobs-london]
  - name: pricing
    priority: 0.9
    change_frequency: weekly
    paths: [pricing, interim-executive]
redirect_sources: [old-path, interim-executive]
no_index: [dashboard]
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalogYAML))
	require.NoError(t, err)
	return c
}

// fakeStore serves canned rows. Setting an error field fails that read;
// panicOn names a read that panics; blockOn names a read that waits on release.
type fakeStore struct {
	pages    []types.ContentPage
	jobs     []types.JobRecord
	articles []types.ArticleRecord

	pagesErr    error
	jobsErr     error
	articlesErr error

	panicOn string
	blockOn string
	release chan struct{}

	jobLimit     int
	articleLimit int
}

func (f *fakeStore) wait(read string) {
	if f.panicOn == read {
		panic("store exploded")
	}
	if f.blockOn == read {
		<-f.release
	}
}

func (f *fakeStore) ListPublishedPages(_ context.Context) ([]types.ContentPage, error) {
	f.wait("pages")
	return f.pages, f.pagesErr
}

func (f *fakeStore) ListRecentJobs(_ context.Context, limit int) ([]types.JobRecord, error) {
	f.jobLimit = limit
	f.wait("jobs")
	return f.jobs, f.jobsErr
}

func (f *fakeStore) ListRecentArticles(_ context.Context, limit int) ([]types.ArticleRecord, error) {
	f.articleLimit = limit
	f.wait("articles")
	return f.articles, f.articlesErr
}

func newTestBuilder(t *testing.T, store Store, opts Options) *Builder {
	t.Helper()
	if opts.Origin == "" {
		opts.Origin = testOrigin
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewBuilder(testCatalog(t), store, opts)
}

func entryByURL(m *types.Manifest, url string) (types.RouteEntry, bool) {
	for _, e := range m.Entries {
		if e.URL == url {
			return e, true
		}
	}
	return types.RouteEntry{}, false
}

func urls(m *types.Manifest) []string {
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.URL
	}
	return out
}
