package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

func TestMetrics_RecordBuild(t *testing.T) {
	m := NewMetrics()

	m.RecordBuild(&types.Manifest{
		Duration: 250 * time.Millisecond,
		Entries:  make([]types.RouteEntry, 5),
		Sections: []types.SectionSummary{
			{Name: types.SectionHomepage, Count: 1},
			{Name: types.SectionDynamic, Count: 4},
			{Name: types.SectionJobs, Failed: true},
		},
		Diagnostics: []types.Diagnostic{{Section: types.SectionJobs, Message: "boom"}},
	})
	m.RecordBuild(&types.Manifest{
		Sections: []types.SectionSummary{{Name: types.SectionHomepage, Count: 1}},
		Entries:  make([]types.RouteEntry, 1),
	})

	assert.InDelta(t, 1, testutil.ToFloat64(m.BuildsTotal.WithLabelValues("degraded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BuildsTotal.WithLabelValues("complete")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.SectionEntries.WithLabelValues(types.SectionDynamic)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReadFailures.WithLabelValues(types.SectionJobs)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ManifestSize), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.BuildDuration))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordBuild(&types.Manifest{})

	assert.InDelta(t, 1, testutil.ToFloat64(a.BuildsTotal.WithLabelValues("complete")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.BuildsTotal.WithLabelValues("complete")), 0)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() { m.RecordBuild(&types.Manifest{}) })
	assert.NotPanics(t, func() { NewMetrics().RecordBuild(nil) })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordBuild(&types.Manifest{
		Sections: []types.SectionSummary{{Name: types.SectionArticles, Count: 7}},
	})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sitemap_section_entries{section="articles"} 7`)
	assert.Contains(t, string(body), "sitemap_builds_total")
}
