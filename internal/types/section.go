// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SectionID identifies one of the fixed proposal sections.
// The set is closed: every mapping keyed by section is an array of SectionCount entries.
type SectionID int

const (
	SectionCover SectionID = iota
	SectionWhoWeAre
	SectionIndustryNeeds
	SectionSolutions
	SectionResults
	SectionPricing
	SectionWhyUs
	SectionNextSteps
	SectionEndnotes

	// SectionCount is the number of proposal sections
	SectionCount int = iota
)

var sectionKeys = [SectionCount]string{
	SectionCover:         "cover",
	SectionWhoWeAre:      "who-we-are",
	SectionIndustryNeeds: "industry-needs",
	SectionSolutions:     "solutions",
	SectionResults:       "results",
	SectionPricing:       "pricing",
	SectionWhyUs:         "why-us",
	SectionNextSteps:     "next-steps",
	SectionEndnotes:      "endnotes",
}

// AllSections returns every section in document order.
func AllSections() []SectionID {
	out := make([]SectionID, SectionCount)
	for i := range out {
		out[i] = SectionID(i)
	}
	return out
}

// Valid reports whether s is one of the known sections.
func (s SectionID) Valid() bool {
	return s >= 0 && int(s) < SectionCount
}

func (s SectionID) String() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionKeys[s]
}

// ParseSectionID maps a section key to its SectionID.
// Both the kebab-case key ("who-we-are") and the camelCase form the editor
// emits ("whoWeAre") are accepted.
func ParseSectionID(key string) (SectionID, bool) {
	norm := normalizeSectionKey(key)
	for i, k := range sectionKeys {
		if strings.ReplaceAll(k, "-", "") == norm {
			return SectionID(i), true
		}
	}
	return 0, false
}

func normalizeSectionKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	return key
}

// MarshalText implements encoding.TextMarshaler.
func (s SectionID) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid section id %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SectionID) UnmarshalText(text []byte) error {
	id, ok := ParseSectionID(string(text))
	if !ok {
		return fmt.Errorf("unknown section %q", string(text))
	}
	*s = id
	return nil
}
