package sitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

func TestDedupe(t *testing.T) {
	static := map[string]struct{}{"": {}, "pricing": {}, "interim-executive": {}}
	exclusions := catalog.NewExclusions([]string{"old-path", "interim-executive"}, []string{"dashboard"})

	tests := []struct {
		name  string
		pages []types.ContentPage
		want  []string
	}{
		{
			name:  "catalog claims win",
			pages: []types.ContentPage{{Slug: "pricing"}, {Slug: "faq"}},
			want:  []string{"faq"},
		},
		{
			name:  "redirect sources and no-index dropped",
			pages: []types.ContentPage{{Slug: "old-path"}, {Slug: "dashboard"}, {Slug: "ok"}},
			want:  []string{"ok"},
		},
		{
			name:  "catalog fragment that is also a redirect stays out of dynamic set",
			pages: []types.ContentPage{{Slug: "interim-executive"}},
			want:  []string{},
		},
		{
			name:  "slugs normalized and empties dropped",
			pages: []types.ContentPage{{Slug: " /faq/ "}, {Slug: "/"}, {Slug: ""}},
			want:  []string{"faq"},
		},
		{
			name:  "sorted by slug",
			pages: []types.ContentPage{{Slug: "c"}, {Slug: "a"}, {Slug: "b"}},
			want:  []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.pages, static, exclusions)
			slugs := make([]string, 0, len(got))
			for _, p := range got {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.want, slugs)
		})
	}
}

func TestDedupe_RepeatedSlugKeepsNewest(t *testing.T) {
	pages := []types.ContentPage{
		{Slug: "faq", PageType: "tool", UpdatedAt: "2025-01-01"},
		{Slug: "faq", PageType: "guide", UpdatedAt: "2025-03-01"},
		{Slug: "faq", PageType: "salary"},
	}

	got := Dedupe(pages, nil, nil)

	assert.Equal(t, []types.ContentPage{{Slug: "faq", PageType: "guide", UpdatedAt: "2025-03-01"}}, got)
}

func TestDedupe_PermutationInvariant(t *testing.T) {
	pages := []types.ContentPage{
		{Slug: "a", PageType: "tool", UpdatedAt: "2025-01-01"},
		{Slug: "a", PageType: "guide", UpdatedAt: "2025-01-01"},
		{Slug: "b", PageType: "guide"},
		{Slug: "b", PageType: "guide", UpdatedAt: "2025-01-01 00:00:00"},
		{Slug: "c", PageType: "service", UpdatedAt: "garbage"},
		{Slug: "c", PageType: "location", UpdatedAt: "also garbage"},
	}
	want := Dedupe(pages, nil, nil)

	permute(pages, func(p []types.ContentPage) {
		assert.Equal(t, want, Dedupe(p, nil, nil))
	})
}

// permute calls fn with every ordering of items (Heap's algorithm)
func permute(items []types.ContentPage, fn func([]types.ContentPage)) {
	p := append([]types.ContentPage(nil), items...)
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			fn(append([]types.ContentPage(nil), p...))
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				p[i], p[k-1] = p[k-1], p[i]
			} else {
				p[0], p[k-1] = p[k-1], p[0]
			}
		}
	}
	generate(len(p))
}
