// Package overrides merges per-section user overrides over catalog defaults.
package overrides

import "github.com/jonathan/docforge/internal/types"

// defaultHeights are image slot heights in pixels. Zero means the section has no image slot.
var defaultHeights = [types.SectionCount]int{
	types.SectionCover:         300,
	types.SectionWhoWeAre:      250,
	types.SectionIndustryNeeds: 250,
	types.SectionSolutions:     250,
	types.SectionResults:       250,
	types.SectionPricing:       200,
	types.SectionWhyUs:         250,
	types.SectionNextSteps:     200,
	types.SectionEndnotes:      0,
}

// MaxImageHeight caps user-adjusted heights. The renderer shrinks boxes further
// to the space left on the page.
const MaxImageHeight = 900

// DefaultHeight returns the built-in image height for a section.
func DefaultHeight(s types.SectionID) int {
	if !s.Valid() {
		return 0
	}
	return defaultHeights[s]
}

func resolveHeight(s types.SectionID, heights map[types.SectionID]int) int {
	if h, ok := heights[s]; ok && h > 0 {
		return min(h, MaxImageHeight)
	}
	return DefaultHeight(s)
}
