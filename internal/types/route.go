// Package types provides type definitions for structured data used throughout the sitemap compiler.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ChangeFrequency is the crawler refresh hint attached to every route
type ChangeFrequency string

// ChangeFrequency values accepted by the sitemaps.org protocol
const (
	ChangeAlways  ChangeFrequency = "always"
	ChangeHourly  ChangeFrequency = "hourly"
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
	ChangeYearly  ChangeFrequency = "yearly"
	ChangeNever   ChangeFrequency = "never"
)

// ChangeFrequencies lists every valid cadence, most to least frequent
var ChangeFrequencies = []ChangeFrequency{
	ChangeAlways, ChangeHourly, ChangeDaily, ChangeWeekly, ChangeMonthly, ChangeYearly, ChangeNever,
}

// Valid reports whether c is one of the known cadences
func (c ChangeFrequency) Valid() bool {
	for _, known := range ChangeFrequencies {
		if c == known {
			return true
		}
	}
	return false
}

// ParseChangeFrequency converts a case-insensitive cadence name into a ChangeFrequency
func ParseChangeFrequency(s string) (ChangeFrequency, error) {
	c := ChangeFrequency(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown change frequency %q", s)
	}
	return c, nil
}

// Band is the (priority, cadence) pair shared by every route in a category
type Band struct {
	Priority        float64         `json:"priority" yaml:"priority"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency" yaml:"change_frequency"`
}

// RouteEntry is one manifest item. Construct it with NewRouteEntry.
type RouteEntry struct {
	URL             string          `json:"url"`
	LastModified    time.Time       `json:"lastModified"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
	Priority        float64         `json:"priority"`
}

// NewRouteEntry builds an absolute URL from origin and fragment and applies the band.
// Priority is clamped to [0, 1]. An empty fragment addresses the origin itself.
func NewRouteEntry(origin, fragment string, lastModified time.Time, band Band) RouteEntry {
	return RouteEntry{
		URL:             JoinURL(origin, fragment),
		LastModified:    lastModified.UTC(),
		ChangeFrequency: band.ChangeFrequency,
		Priority:        ClampPriority(band.Priority),
	}
}

// JoinURL joins origin and fragment with exactly one separator
func JoinURL(origin, fragment string) string {
	origin = strings.TrimRight(origin, "/")
	fragment = NormalizeFragment(fragment)
	if fragment == "" {
		return origin
	}
	return origin + "/" + fragment
}

// NormalizeFragment strips surrounding whitespace and path separators
func NormalizeFragment(fragment string) string {
	return strings.Trim(strings.TrimSpace(fragment), "/")
}

// ClampPriority limits p to the [0, 1] range
func ClampPriority(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
