package types

import (
	"time"

	"github.com/google/uuid"
)

// Section names, in the order the assembler emits them
const (
	SectionHomepage = "homepage"
	SectionDynamic  = "dynamic-pages"
	SectionJobs     = "jobs"
	SectionArticles = "articles"
)

// SectionSummary counts the entries one section contributed
type SectionSummary struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Failed bool   `json:"failed,omitempty"` // read failed and the section was emptied
}

// Diagnostic records a recovered failure during a build
type Diagnostic struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Manifest is the result of one build. Only Entries is published to crawlers.
type Manifest struct {
	BuildID     uuid.UUID        `json:"build_id"`
	BuiltAt     time.Time        `json:"built_at"`
	Duration    time.Duration    `json:"duration"`
	Entries     []RouteEntry     `json:"entries"`
	Sections    []SectionSummary `json:"sections"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
}

// Degraded reports whether any section was dropped because its read failed
func (m *Manifest) Degraded() bool {
	return len(m.Diagnostics) > 0
}

// Section returns the summary for name, if present
func (m *Manifest) Section(name string) (SectionSummary, bool) {
	for _, s := range m.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionSummary{}, false
}
