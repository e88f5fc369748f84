package sitemap

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// guard runs one read inside its own failure boundary. The read is abandoned
// once timeout elapses, even if the store ignores ctx, and a panic becomes Err.
func guard[T any](ctx context.Context, timeout time.Duration, read func(context.Context) (T, error)) Result[T] {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan Result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Err[T](fmt.Errorf("read panicked: %v", r))
			}
		}()
		v, err := read(ctx)
		if err != nil {
			done <- Err[T](err)
			return
		}
		done <- Ok(v)
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return Err[T](fmt.Errorf("read abandoned: %w", ctx.Err()))
	}
}

// fetchPublishedPages reads every published content page. A nil store yields no pages.
func fetchPublishedPages(ctx context.Context, store Store, timeout time.Duration) Result[[]types.ContentPage] {
	if store == nil {
		return Ok[[]types.ContentPage](nil)
	}
	return guard(ctx, timeout, store.ListPublishedPages)
}

// fetchRecentJobs reads up to limit active jobs, newest first by resolved date
func fetchRecentJobs(ctx context.Context, store Store, limit int, timeout time.Duration, now time.Time) Result[[]types.JobRecord] {
	if store == nil || limit <= 0 {
		return Ok[[]types.JobRecord](nil)
	}
	r := guard(ctx, timeout, func(ctx context.Context) ([]types.JobRecord, error) {
		return store.ListRecentJobs(ctx, limit)
	})
	return mapResult(r, func(jobs []types.JobRecord) []types.JobRecord {
		return newestFirst(jobs, limit,
			func(j types.JobRecord) string { return j.Slug },
			func(j types.JobRecord) time.Time { return j.LastModified(now) },
		)
	})
}

// fetchRecentArticles reads up to limit published articles, newest first by resolved date
func fetchRecentArticles(ctx context.Context, store Store, limit int, timeout time.Duration, now time.Time) Result[[]types.ArticleRecord] {
	if store == nil || limit <= 0 {
		return Ok[[]types.ArticleRecord](nil)
	}
	r := guard(ctx, timeout, func(ctx context.Context) ([]types.ArticleRecord, error) {
		return store.ListRecentArticles(ctx, limit)
	})
	return mapResult(r, func(articles []types.ArticleRecord) []types.ArticleRecord {
		return newestFirst(articles, limit,
			func(a types.ArticleRecord) string { return a.Slug },
			func(a types.ArticleRecord) time.Time { return a.LastModified(now) },
		)
	})
}

// newestFirst drops records without a slug, stable-sorts the rest by resolved
// date descending and caps the result at limit.
func newestFirst[T any](records []T, limit int, slug func(T) string, resolved func(T) time.Time) []T {
	type dated struct {
		rec T
		at  time.Time
	}

	kept := make([]dated, 0, len(records))
	for _, r := range records {
		if types.NormalizeFragment(slug(r)) == "" {
			continue
		}
		kept = append(kept, dated{rec: r, at: resolved(r)})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].at.After(kept[j].at)
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}

	out := make([]T, len(kept))
	for i, d := range kept {
		out[i] = d.rec
	}
	return out
}
