// Package catalog loads the hand-declared route categories and the exclusion
// registry that the sitemap compiler merges with store-generated routes.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Category is a named list of path fragments sharing one band
type Category struct {
	Name            string                `yaml:"name" validate:"required"`
	Priority        float64               `yaml:"priority" validate:"gte=0,lte=1"`
	ChangeFrequency types.ChangeFrequency `yaml:"change_frequency" validate:"required,changefreq"`
	Paths           []string              `yaml:"paths" validate:"min=1,dive,fragment"`
}

// Band returns the category's (priority, cadence) pair
func (c Category) Band() types.Band {
	return types.Band{Priority: c.Priority, ChangeFrequency: c.ChangeFrequency}
}

// Homepage holds the band applied to the site origin
type Homepage struct {
	Priority        float64               `yaml:"priority" validate:"gte=0,lte=1"`
	ChangeFrequency types.ChangeFrequency `yaml:"change_frequency" validate:"required,changefreq"`
}

// Declared is one catalog route after cross-category deduplication
type Declared struct {
	Category string
	Fragment string
	Band     types.Band
}

// Duplicate records a fragment declared by more than one category
type Duplicate struct {
	Fragment string
	Kept     string // category that owns the fragment
	Dropped  string // later category whose declaration was ignored
}

// Catalog is the parsed, validated route table. It is read-only after Parse.
type Catalog struct {
	Homepage        Homepage   `yaml:"homepage"`
	Categories      []Category `yaml:"categories" validate:"min=1,dive"`
	RedirectSources []string   `yaml:"redirect_sources" validate:"dive,fragment"`
	NoIndex         []string   `yaml:"no_index" validate:"dive,fragment"`

	declared   []Declared
	duplicates []Duplicate
	static     map[string]struct{}
	exclusions *Exclusions
}

// ValidationError collects every problem found in a catalog file
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + strings.Join(e.Problems, "; ")
}

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads and validates a catalog YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault loads path, or the embedded catalog when path is empty
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes catalog YAML, rejecting unknown keys, then validates and indexes it
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

var structValidator = newValidator()

var reservedSections = map[string]bool{
	types.SectionHomepage: true,
	types.SectionDynamic:  true,
	types.SectionJobs:     true,
	types.SectionArticles: true,
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("fragment", func(fl validator.FieldLevel) bool {
		return validFragment(fl.Field().String())
	})
	_ = v.RegisterValidation("changefreq", func(fl validator.FieldLevel) bool {
		return types.ChangeFrequency(fl.Field().String()).Valid()
	})
	return v
}

// validFragment rejects empty fragments, surrounding separators and characters
// that would change the meaning of the URL.
func validFragment(f string) bool {
	if f == "" || f != types.NormalizeFragment(f) {
		return false
	}
	return !strings.ContainsAny(f, " \t\n?#")
}

// Validate checks field constraints, unique category names and that the
// redirect-source and no-index sets are disjoint.
func (c *Catalog) Validate() error {
	var problems []string

	if err := structValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Name != "" && seen[cat.Name] {
			problems = append(problems, fmt.Sprintf("category %q declared more than once", cat.Name))
		}
		if reservedSections[cat.Name] {
			problems = append(problems, fmt.Sprintf("category name %q is reserved for a generated section", cat.Name))
		}
		seen[cat.Name] = true
	}

	for _, f := range NewExclusions(c.RedirectSources, c.NoIndex).Overlap() {
		problems = append(problems, fmt.Sprintf("fragment %q is both a redirect source and no-index", f))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (c *Catalog) index() {
	c.exclusions = NewExclusions(c.RedirectSources, c.NoIndex)
	c.static = map[string]struct{}{"": {}}
	owner := make(map[string]string)

	for _, cat := range c.Categories {
		band := cat.Band()
		for _, f := range cat.Paths {
			if first, ok := owner[f]; ok {
				c.duplicates = append(c.duplicates, Duplicate{Fragment: f, Kept: first, Dropped: cat.Name})
				continue
			}
			owner[f] = cat.Name
			c.static[f] = struct{}{}
			c.declared = append(c.declared, Declared{Category: cat.Name, Fragment: f, Band: band})
		}
	}
}

// HomepageBand returns the band for the site origin
func (c *Catalog) HomepageBand() types.Band {
	return types.Band{Priority: c.Homepage.Priority, ChangeFrequency: c.Homepage.ChangeFrequency}
}

// Declared returns catalog routes in declaration order, first occurrence winning
func (c *Catalog) Declared() []Declared {
	return c.declared
}

// Duplicates returns fragments dropped because an earlier category declared them
func (c *Catalog) Duplicates() []Duplicate {
	return c.duplicates
}

// Claims reports whether fragment is declared by the catalog (including the homepage)
func (c *Catalog) Claims(fragment string) bool {
	_, ok := c.static[fragment]
	return ok
}

// StaticFragments returns a copy of every fragment the catalog claims
func (c *Catalog) StaticFragments() map[string]struct{} {
	out := make(map[string]struct{}, len(c.static))
	for f := range c.static {
		out[f] = struct{}{}
	}
	return out
}

// Exclusions returns the redirect-source and no-index registry
func (c *Catalog) Exclusions() *Exclusions {
	return c.exclusions
}
