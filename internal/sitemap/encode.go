package sitemap

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// SitemapNamespace is the sitemaps.org protocol namespace
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNs   string   `xml:"xmlns,attr"`
	URLs    []urlXML `xml:"url"`
}

type urlXML struct {
	Location        string `xml:"loc"`
	LastModified    string `xml:"lastmod"`
	ChangeFrequency string `xml:"changefreq"`
	Priority        string `xml:"priority"`
}

// WriteXML writes entries as a sitemaps.org urlset document
func WriteXML(w io.Writer, entries []types.RouteEntry) error {
	set := urlSet{XMLNs: SitemapNamespace, URLs: make([]urlXML, 0, len(entries))}
	for _, e := range entries {
		set.URLs = append(set.URLs, urlXML{
			Location:        e.URL,
			LastModified:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFrequency: string(e.ChangeFrequency),
			Priority:        FormatPriority(e.Priority),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap XML: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write sitemap XML: %w", err)
	}
	return nil
}

// WriteJSON writes entries as an indented JSON array. A nil slice encodes as [].
func WriteJSON(w io.Writer, entries []types.RouteEntry) error {
	if entries == nil {
		entries = []types.RouteEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode manifest JSON: %w", err)
	}
	return nil
}

// FormatPriority renders p with at least one decimal place, e.g. "1.0" or "0.95"
func FormatPriority(p float64) string {
	s := strconv.FormatFloat(types.ClampPriority(p), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
