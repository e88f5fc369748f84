// Package observability provides logging, metrics and formatted output for the sitemap compiler.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/fractional-sitemap/internal/catalog"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintManifestSummary outputs per-section counts and any recovered read failures.
func (p *Printer) PrintManifestSummary(m *types.Manifest) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Build:    %s\n", m.BuildID))
	sb.WriteString(fmt.Sprintf("Built at: %s\n", m.BuiltAt.UTC().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Took:     %s\n", m.Duration.Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Entries:  %d\n\n", len(m.Entries)))

	for _, s := range m.Sections {
		marker := ""
		if s.Failed {
			marker = "  (read failed)"
		}
		sb.WriteString(fmt.Sprintf("  %-22s %5d%s\n", s.Name, s.Count, marker))
	}

	if len(m.Diagnostics) > 0 {
		sb.WriteString("\nDiagnostics:\n")
		for _, d := range m.Diagnostics {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", d.Section, d.Message))
		}
	}

	p.printBox("SITEMAP BUILD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCatalog outputs category bands, exclusion counts and cross-category duplicates.
func (p *Printer) PrintCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}

	var sb strings.Builder
	home := c.HomepageBand()
	sb.WriteString(fmt.Sprintf("%-18s %5s %-8s %5s\n", "CATEGORY", "PRIO", "CADENCE", "PATHS"))
	sb.WriteString(fmt.Sprintf("%-18s %5.2f %-8s %5d\n", types.SectionHomepage, home.Priority, home.ChangeFrequency, 1))
	for _, cat := range c.Categories {
		sb.WriteString(fmt.Sprintf("%-18s %5.2f %-8s %5d\n", cat.Name, cat.Priority, cat.ChangeFrequency, len(cat.Paths)))
	}

	redirects, noIndex := c.Exclusions().Counts()
	sb.WriteString(fmt.Sprintf("\nDeclared routes:  %d\n", len(c.Declared())+1))
	sb.WriteString(fmt.Sprintf("Redirect sources: %d\n", redirects))
	sb.WriteString(fmt.Sprintf("No-index:         %d\n", noIndex))

	dups := c.Duplicates()
	if len(dups) > 0 {
		sb.WriteString("\nDuplicates (first declaration kept):\n")
		count := min(len(dups), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s, not %s\n", dups[i].Fragment, dups[i].Kept, dups[i].Dropped))
		}
		if len(dups) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(dups)-maxItemsToShow))
		}
	}

	p.printBox("ROUTE CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}
