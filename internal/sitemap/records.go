package sitemap

import (
	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Detail routes for store records
const (
	JobPathPrefix     = "fractional-job"
	ArticlePathPrefix = "articles"
)

// Record bands
var (
	JobBand     = types.Band{Priority: 0.6, ChangeFrequency: types.ChangeWeekly}
	ArticleBand = types.Band{Priority: 0.5, ChangeFrequency: types.ChangeWeekly}
)

// recordFragment places slug under prefix. An empty slug yields "".
func recordFragment(prefix, slug string) string {
	slug = types.NormalizeFragment(slug)
	if slug == "" {
		return ""
	}
	return prefix + "/" + slug
}

// JobFragment returns the detail path for a job slug
func JobFragment(slug string) string {
	return recordFragment(JobPathPrefix, slug)
}

// ArticleFragment returns the detail path for an article slug
func ArticleFragment(slug string) string {
	return recordFragment(ArticlePathPrefix, slug)
}
