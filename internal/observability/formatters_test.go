package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

func TestPrintManifestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	m := &types.Manifest{
		BuildID:  uuid.MustParse("5f1c7c2e-8c1a-4b7e-9d0f-2a3b4c5d6e7f"),
		BuiltAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration: 42 * time.Millisecond,
		Entries:  make([]types.RouteEntry, 3),
		Sections: []types.SectionSummary{
			{Name: types.SectionHomepage, Count: 1},
			{Name: "job-listings", Count: 2},
			{Name: types.SectionJobs, Count: 0, Failed: true},
		},
		Diagnostics: []types.Diagnostic{
			{Section: types.SectionJobs, Message: "connection refused"},
		},
	}

	p.PrintManifestSummary(m)
	output := buf.String()

	assert.Contains(t, output, "SITEMAP BUILD")
	assert.Contains(t, output, "5f1c7c2e-8c1a-4b7e-9d0f-2a3b4c5d6e7f")
	assert.Contains(t, output, "2026-03-01T12:00:00Z")
	assert.Contains(t, output, "Entries:  3")
	assert.Contains(t, output, "job-listings")
	assert.Contains(t, output, "(read failed)")
	assert.Contains(t, output, "jobs: connection refused")
}

func TestPrintManifestSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintManifestSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintManifestSummary_NoDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintManifestSummary(&types.Manifest{
		Sections: []types.SectionSummary{{Name: types.SectionHomepage, Count: 1}},
	})

	assert.NotContains(t, buf.String(), "Diagnostics")
	assert.NotContains(t, buf.String(), "(read failed)")
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	c, err := catalog.Parse([]byte(`
homepage:
  priority: 1.0
  change_frequency: daily
categories:
  - name: listings
    priority: 0.95
    change_frequency: daily
    paths: [jobs-uk, jobs-london]
  - name: guides
    priority: 0.8
    change_frequency: weekly
    paths: [jobs-uk, how-to-hire]
redirect_sources: [old-path]
no_index: [dashboard, profile]
`))
	require.NoError(t, err)

	p.PrintCatalog(c)
	output := buf.String()

	assert.Contains(t, output, "ROUTE CATALOG")
	assert.Contains(t, output, "listings")
	assert.Contains(t, output, "0.95")
	assert.Contains(t, output, "Declared routes:  4")
	assert.Contains(t, output, "Redirect sources: 1")
	assert.Contains(t, output, "No-index:         2")
	assert.Contains(t, output, "jobs-uk: listings, not guides")
}

func TestPrintCatalog_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCatalog(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
