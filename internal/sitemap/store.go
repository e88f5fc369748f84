package sitemap

import (
	"context"

	"github.com/jonathan/fractional-sitemap/internal/db"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Store is the content store the builder reads from
type Store interface {
	ListPublishedPages(ctx context.Context) ([]types.ContentPage, error)
	ListRecentJobs(ctx context.Context, limit int) ([]types.JobRecord, error)
	ListRecentArticles(ctx context.Context, limit int) ([]types.ArticleRecord, error)
}

var _ Store = (*db.DB)(nil)
