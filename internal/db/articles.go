package db

import (
	"context"
	"fmt"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// ListRecentArticles returns up to limit published articles with a slug, newest first
func (db *DB) ListRecentArticles(ctx context.Context, limit int) ([]types.ArticleRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT slug, COALESCE(published_at::text, ''), COALESCE(created_at::text, '')
		 FROM articles
		 WHERE published = true
		   AND slug IS NOT NULL AND slug <> ''
		 ORDER BY COALESCE(published_at, created_at) DESC NULLS FIRST, slug
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent articles: %w", err)
	}
	defer rows.Close()

	var articles []types.ArticleRecord
	for rows.Next() {
		var a types.ArticleRecord
		if err := rows.Scan(&a.Slug, &a.PublishedAt, &a.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}
	return articles, nil
}
