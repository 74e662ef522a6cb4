// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContentBlock is the catalog default for one proposal section.
type ContentBlock struct {
	Section SectionID
	Title   string // may contain one {agency} or {industry} token
	Body    string
	Image   string
}

// IndustryTemplate is the immutable default copy for one (document kind, industry) pair.
type IndustryTemplate struct {
	ID     string
	Kind   DocumentKind
	Name   string
	Blocks [SectionCount]ContentBlock
}

// Block returns the default content for a section.
func (t *IndustryTemplate) Block(s SectionID) ContentBlock {
	if t == nil || !s.Valid() {
		return ContentBlock{Section: s}
	}
	return t.Blocks[s]
}

// Palette is a theme's color set, each value a "#RRGGBB" string.
type Palette struct {
	Primary       string `yaml:"primary"`
	Secondary     string `yaml:"secondary"`
	Accent        string `yaml:"accent"`
	Background    string `yaml:"background"`
	Surface       string `yaml:"surface"`
	Text          string `yaml:"text"`
	TextSecondary string `yaml:"text_secondary"`
	Border        string `yaml:"border"`
}

// FontPair names the heading and body font families.
type FontPair struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// StyleTokens are the shape tokens of a theme.
type StyleTokens struct {
	CornerRadius       float64 `yaml:"corner_radius"`
	Shadow             string  `yaml:"shadow"`
	BackgroundGradient string  `yaml:"background_gradient"`
}

// ThemeProfile is a named set of visual tokens applied uniformly across a document.
type ThemeProfile struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Colors Palette     `yaml:"colors"`
	Fonts  FontPair    `yaml:"fonts"`
	Style  StyleTokens `yaml:"style"`
}
