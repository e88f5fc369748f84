package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Metrics holds the sitemap build Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	BuildsTotal    *prometheus.CounterVec
	BuildDuration  prometheus.Histogram
	SectionEntries *prometheus.GaugeVec
	ReadFailures   *prometheus.CounterVec
	ManifestSize   prometheus.Gauge
}

// NewMetrics registers the build metrics on a dedicated registry.
// Each call yields an independent set, so tests can create as many as they like.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		BuildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sitemap_builds_total",
			Help: "Total manifest builds by outcome (complete, degraded)",
		}, []string{"outcome"}),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitemap_build_duration_seconds",
			Help:    "Wall time of a manifest build",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SectionEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sitemap_section_entries",
			Help: "Entries contributed by each section in the latest build",
		}, []string{"section"}),
		ReadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sitemap_read_failures_total",
			Help: "Content reads that failed and were replaced by an empty section",
		}, []string{"section"}),
		ManifestSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sitemap_manifest_entries",
			Help: "Total entries in the latest manifest",
		}),
	}
}

// RecordBuild folds a finished manifest into the metrics. Safe on a nil receiver.
func (m *Metrics) RecordBuild(manifest *types.Manifest) {
	if m == nil || manifest == nil {
		return
	}

	outcome := "complete"
	if manifest.Degraded() {
		outcome = "degraded"
	}
	m.BuildsTotal.WithLabelValues(outcome).Inc()
	m.BuildDuration.Observe(manifest.Duration.Seconds())
	m.ManifestSize.Set(float64(len(manifest.Entries)))

	for _, s := range manifest.Sections {
		m.SectionEntries.WithLabelValues(s.Name).Set(float64(s.Count))
		if s.Failed {
			m.ReadFailures.WithLabelValues(s.Name).Inc()
		}
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
