package db

import (
	"context"
	"fmt"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// ListPublishedPages returns every published generic page with a usable slug.
// Timestamps are returned as text so that callers decide how to treat bad values.
func (db *DB) ListPublishedPages(ctx context.Context) ([]types.ContentPage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT slug, COALESCE(page_type, ''), COALESCE(updated_at::text, '')
		 FROM pages
		 WHERE is_published = true
		   AND slug IS NOT NULL AND slug <> ''`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list published pages: %w", err)
	}
	defer rows.Close()

	var pages []types.ContentPage
	for rows.Next() {
		var p types.ContentPage
		if err := rows.Scan(&p.Slug, &p.PageType, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return pages, nil
}
