// Package catalog holds the immutable content templates, themes and agency profile.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/docforge/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

const (
	themesFile     = "themes.yaml"
	agencyFile     = "agency.yaml"
	industriesGlob = "industries/*.yaml"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type themesDoc struct {
	Default string               `yaml:"default"`
	Themes  []types.ThemeProfile `yaml:"themes"`
}

type blockDoc struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Image string `yaml:"image"`
}

type templateDoc struct {
	ID       string              `yaml:"id"`
	Kind     string              `yaml:"kind"`
	Name     string              `yaml:"name"`
	Sections map[string]blockDoc `yaml:"sections"`
}

// Default builds the catalog from the data compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, &LoadError{Path: "data", Message: "embedded data missing", Cause: err}
	}
	return Load(sub)
}

// Load builds a catalog from fsys, which must contain themes.yaml, agency.yaml and
// at least industries/default.yaml. Every file is validated before the catalog is
// returned; a catalog that loads is complete.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		templates: make(map[templateKey]*types.IndustryTemplate),
		themes:    make(map[string]types.ThemeProfile),
	}

	if err := c.loadThemes(fsys); err != nil {
		return nil, err
	}
	if err := c.loadAgency(fsys); err != nil {
		return nil, err
	}
	if err := c.loadTemplates(fsys); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return &LoadError{Path: name, Message: "failed to read file", Cause: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &LoadError{Path: name, Message: "failed to parse YAML", Cause: err}
	}
	return nil
}

func (c *Catalog) loadThemes(fsys fs.FS) error {
	var doc themesDoc
	if err := decodeFile(fsys, themesFile, &doc); err != nil {
		return err
	}

	for _, theme := range doc.Themes {
		if theme.ID == "" {
			return &LoadError{Path: themesFile, Message: "theme without id"}
		}
		if _, dup := c.themes[theme.ID]; dup {
			return &LoadError{Path: themesFile, Message: fmt.Sprintf("duplicate theme %q", theme.ID)}
		}
		if err := validatePalette(theme.Colors); err != nil {
			return &LoadError{Path: themesFile, Message: fmt.Sprintf("theme %q", theme.ID), Cause: err}
		}
		c.themes[theme.ID] = theme
	}

	if _, ok := c.themes[doc.Default]; !ok {
		return &LoadError{Path: themesFile, Message: fmt.Sprintf("default theme %q is not defined", doc.Default)}
	}
	c.defaultTheme = doc.Default
	return nil
}

func validatePalette(p types.Palette) error {
	colors := map[string]string{
		"primary":        p.Primary,
		"secondary":      p.Secondary,
		"accent":         p.Accent,
		"background":     p.Background,
		"surface":        p.Surface,
		"text":           p.Text,
		"text_secondary": p.TextSecondary,
		"border":         p.Border,
	}
	for _, name := range []string{"primary", "secondary", "accent", "background", "surface", "text", "text_secondary", "border"} {
		if !hexColorPattern.MatchString(colors[name]) {
			return fmt.Errorf("color %s %q is not #RRGGBB", name, colors[name])
		}
	}
	return nil
}

func (c *Catalog) loadAgency(fsys fs.FS) error {
	var agency types.AgencyProfile
	if err := decodeFile(fsys, agencyFile, &agency); err != nil {
		return err
	}
	if err := validator.New().Struct(agency); err != nil {
		return &LoadError{Path: agencyFile, Message: "invalid agency profile", Cause: err}
	}
	c.agency = agency
	return nil
}

func (c *Catalog) loadTemplates(fsys fs.FS) error {
	files, err := fs.Glob(fsys, industriesGlob)
	if err != nil {
		return &LoadError{Path: industriesGlob, Message: "bad glob", Cause: err}
	}

	for _, name := range files {
		tmpl, err := parseTemplate(fsys, name)
		if err != nil {
			return err
		}
		key := templateKey{kind: tmpl.Kind, industry: tmpl.ID}
		if _, dup := c.templates[key]; dup {
			return &LoadError{Path: name, Message: fmt.Sprintf("duplicate %s template %q", tmpl.Kind, tmpl.ID)}
		}
		c.templates[key] = tmpl
	}

	if _, ok := c.templates[templateKey{kind: types.KindProposal, industry: DefaultTemplateID}]; !ok {
		return &LoadError{Path: industriesGlob, Message: "no default proposal template"}
	}
	return nil
}

func parseTemplate(fsys fs.FS, name string) (*types.IndustryTemplate, error) {
	var doc templateDoc
	if err := decodeFile(fsys, name, &doc); err != nil {
		return nil, err
	}

	if doc.ID == "" {
		doc.ID = trimExt(path.Base(name))
	}
	kind, ok := types.ParseDocumentKind(doc.Kind)
	if !ok {
		return nil, &LoadError{Path: name, Message: fmt.Sprintf("unknown document kind %q", doc.Kind)}
	}

	tmpl := &types.IndustryTemplate{ID: doc.ID, Kind: kind, Name: doc.Name}
	seen := [types.SectionCount]bool{}
	for key, block := range doc.Sections {
		id, ok := types.ParseSectionID(key)
		if !ok {
			return nil, &LoadError{Path: name, Message: fmt.Sprintf("unknown section %q", key)}
		}
		tmpl.Blocks[id] = types.ContentBlock{
			Section: id,
			Title:   block.Title,
			Body:    block.Body,
			Image:   block.Image,
		}
		seen[id] = true
	}
	for _, id := range types.AllSections() {
		if !seen[id] {
			return nil, &LoadError{Path: name, Message: fmt.Sprintf("missing section %q", id)}
		}
	}
	return tmpl, nil
}

func trimExt(base string) string {
	return base[:len(base)-len(path.Ext(base))]
}
