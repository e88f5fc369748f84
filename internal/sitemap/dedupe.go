package sitemap

import (
	"sort"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Dedupe filters dynamic pages against the catalog and the exclusion registry.
//
// Precedence is catalog, then exclusions, then dynamic pages: a page is dropped
// when its fragment is excluded or already claimed by the static set. Slugs are
// normalized, empty ones are dropped, and repeated slugs collapse to the page
// with the newest UpdatedAt. The result is sorted by slug, so any permutation
// of pages produces the same output.
func Dedupe(pages []types.ContentPage, static map[string]struct{}, exclusions *catalog.Exclusions) []types.ContentPage {
	best := make(map[string]types.ContentPage, len(pages))

	for _, p := range pages {
		p.Slug = types.NormalizeFragment(p.Slug)
		if p.Slug == "" {
			continue
		}
		if _, claimed := static[p.Slug]; claimed {
			continue
		}
		if exclusions.IsExcluded(p.Slug) {
			continue
		}
		if current, ok := best[p.Slug]; ok && !preferPage(p, current) {
			continue
		}
		best[p.Slug] = p
	}

	out := make([]types.ContentPage, 0, len(best))
	for _, p := range best {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// preferPage is a strict total order over pages sharing a slug. Dated pages
// beat undated ones, newer beats older, then page type and raw timestamp break ties.
func preferPage(a, b types.ContentPage) bool {
	at, aok := types.ParseTimestamp(a.UpdatedAt)
	bt, bok := types.ParseTimestamp(b.UpdatedAt)
	switch {
	case aok != bok:
		return aok
	case aok && !at.Equal(bt):
		return at.After(bt)
	case a.PageType != b.PageType:
		return a.PageType < b.PageType
	default:
		return a.UpdatedAt < b.UpdatedAt
	}
}
