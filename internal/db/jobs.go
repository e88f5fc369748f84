package db

import (
	"context"
	"fmt"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// ListRecentJobs returns up to limit active jobs with a slug, newest first.
// Rows with no date at all sort first, matching the build-time fallback applied
// to them downstream.
func (db *DB) ListRecentJobs(ctx context.Context, limit int) ([]types.JobRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT slug, COALESCE(posted_date::text, ''), COALESCE(imported_at::text, '')
		 FROM jobs
		 WHERE is_active = true
		   AND slug IS NOT NULL AND slug <> ''
		 ORDER BY COALESCE(posted_date::timestamptz, imported_at) DESC NULLS FIRST, slug
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRecord
	for rows.Next() {
		var j types.JobRecord
		if err := rows.Scan(&j.Slug, &j.PublishedAt, &j.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}
