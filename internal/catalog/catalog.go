// Package catalog holds the immutable content templates, themes and agency profile.
package catalog

import (
	"sort"

	"github.com/jonathan/docforge/internal/types"
)

// DefaultTemplateID is the industry id of the generic fallback template.
const DefaultTemplateID = "default"

type templateKey struct {
	kind     types.DocumentKind
	industry string
}

// Catalog is a read-only set of templates, themes and the default agency profile.
// It is built once by Load and never mutated, so it is safe for concurrent use.
type Catalog struct {
	templates    map[templateKey]*types.IndustryTemplate
	themes       map[string]types.ThemeProfile
	defaultTheme string
	agency       types.AgencyProfile
}

// Lookup returns the template for a document kind and industry.
func (c *Catalog) Lookup(kind types.DocumentKind, industry string) (*types.IndustryTemplate, error) {
	tmpl, ok := c.templates[templateKey{kind: kind, industry: industry}]
	if !ok {
		return nil, &NotFoundError{Kind: kind, Industry: industry}
	}
	cp := *tmpl
	return &cp, nil
}

// LookupOrDefault returns the industry's template, or the generic template when the
// industry has none. ok reports whether the industry itself was found.
func (c *Catalog) LookupOrDefault(kind types.DocumentKind, industry string) (*types.IndustryTemplate, bool) {
	if tmpl, err := c.Lookup(kind, industry); err == nil {
		return tmpl, true
	}
	tmpl, err := c.Lookup(kind, DefaultTemplateID)
	if err != nil {
		// Load guarantees a default template for every kind that has templates.
		return &types.IndustryTemplate{ID: DefaultTemplateID, Kind: kind}, false
	}
	return tmpl, false
}

// Theme returns the theme with the given id, or the default theme for unknown ids.
func (c *Catalog) Theme(id string) types.ThemeProfile {
	if theme, ok := c.themes[id]; ok {
		return theme
	}
	return c.themes[c.defaultTheme]
}

// HasTheme reports whether id names a registered theme.
func (c *Catalog) HasTheme(id string) bool {
	_, ok := c.themes[id]
	return ok
}

// DefaultThemeID returns the id used for unknown theme lookups.
func (c *Catalog) DefaultThemeID() string {
	return c.defaultTheme
}

// Agency returns the default agency profile.
func (c *Catalog) Agency() types.AgencyProfile {
	return c.agency
}

// Industries returns the sorted industry ids that have a template of the given kind.
func (c *Catalog) Industries(kind types.DocumentKind) []string {
	ids := make([]string, 0, len(c.templates))
	for key := range c.templates {
		if key.kind == kind {
			ids = append(ids, key.industry)
		}
	}
	sort.Strings(ids)
	return ids
}

// ThemeIDs returns the sorted ids of all registered themes.
func (c *Catalog) ThemeIDs() []string {
	ids := make([]string, 0, len(c.themes))
	for id := range c.themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
