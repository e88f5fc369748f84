package types

import (
	"strings"
	"time"
)

// ContentPage is a published generic page read from the content store
type ContentPage struct {
	Slug      string `json:"slug"`
	PageType  string `json:"page_type"`
	UpdatedAt string `json:"updated_at,omitempty"` // Raw timestamp text; may be empty
}

// LastModified resolves UpdatedAt, falling back to now
func (p ContentPage) LastModified(now time.Time) time.Time {
	return ResolveTimestamp(now, p.UpdatedAt)
}

// JobRecord is an active job row with a public slug
type JobRecord struct {
	Slug        string `json:"slug"`
	PublishedAt string `json:"posted_date,omitempty"`
	ImportedAt  string `json:"imported_at,omitempty"`
}

// LastModified prefers the posting date, then the import date, then now
func (j JobRecord) LastModified(now time.Time) time.Time {
	return ResolveTimestamp(now, j.PublishedAt, j.ImportedAt)
}

// ArticleRecord is a published article row with a public slug
type ArticleRecord struct {
	Slug        string `json:"slug"`
	PublishedAt string `json:"published_at,omitempty"`
	ImportedAt  string `json:"created_at,omitempty"`
}

// LastModified prefers the publication date, then the creation date, then now
func (a ArticleRecord) LastModified(now time.Time) time.Time {
	return ResolveTimestamp(now, a.PublishedAt, a.ImportedAt)
}

// timestampLayouts covers RFC 3339 and the text forms Postgres emits for
// timestamptz, timestamp and date columns.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses raw timestamp text. The second result is false for
// empty or unparseable input.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveTimestamp returns the first candidate that parses, or now
func ResolveTimestamp(now time.Time, candidates ...string) time.Time {
	for _, raw := range candidates {
		if t, ok := ParseTimestamp(raw); ok {
			return t
		}
	}
	return now
}
