package catalog

import (
	"sort"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Exclusions holds the redirect-source and no-index fragment sets.
// A nil *Exclusions excludes nothing.
type Exclusions struct {
	redirects map[string]struct{}
	noIndex   map[string]struct{}
}

// NewExclusions builds the registry. Fragments are normalized before insertion.
func NewExclusions(redirectSources, noIndex []string) *Exclusions {
	return &Exclusions{
		redirects: toSet(redirectSources),
		noIndex:   toSet(noIndex),
	}
}

func toSet(fragments []string) map[string]struct{} {
	set := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		set[types.NormalizeFragment(f)] = struct{}{}
	}
	return set
}

// IsRedirectSource reports whether fragment forwards elsewhere
func (e *Exclusions) IsRedirectSource(fragment string) bool {
	if e == nil {
		return false
	}
	_, ok := e.redirects[fragment]
	return ok
}

// IsNoIndex reports whether fragment is hidden from crawlers
func (e *Exclusions) IsNoIndex(fragment string) bool {
	if e == nil {
		return false
	}
	_, ok := e.noIndex[fragment]
	return ok
}

// IsExcluded reports whether fragment is in either set
func (e *Exclusions) IsExcluded(fragment string) bool {
	return e.IsRedirectSource(fragment) || e.IsNoIndex(fragment)
}

// Overlap returns fragments present in both sets, sorted
func (e *Exclusions) Overlap() []string {
	if e == nil {
		return nil
	}
	var both []string
	for f := range e.redirects {
		if _, ok := e.noIndex[f]; ok {
			both = append(both, f)
		}
	}
	sort.Strings(both)
	return both
}

// Counts returns the sizes of the redirect-source and no-index sets
func (e *Exclusions) Counts() (redirects, noIndex int) {
	if e == nil {
		return 0, 0
	}
	return len(e.redirects), len(e.noIndex)
}
