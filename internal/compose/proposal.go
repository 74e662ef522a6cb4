// Package compose turns a validated document request into an ordered block sequence.
package compose

import (
	"github.com/jonathan/docforge/internal/overrides"
	"github.com/jonathan/docforge/internal/types"
)

// Proposal composes every proposal section in fixed order, one page each.
//
// The requested services only feed the computed copy. They never toggle
// sections on or off: all sections render unconditionally.
func Proposal(
	intake *types.ProposalIntake,
	tmpl *types.IndustryTemplate,
	agency types.AgencyProfile,
	set types.OverrideSet,
) []types.RenderedBlock {
	sections := types.AllSections()
	blocks := make([]types.RenderedBlock, 0, len(sections))
	for _, s := range sections {
		r := overrides.Resolve(s, set, tmpl, agency, intake)
		blocks = append(blocks, types.RenderedBlock{
			Kind:            types.BlockSection,
			Section:         s,
			Title:           r.Title,
			Body:            r.Body,
			Image:           r.Image,
			ImageHeight:     r.ImageHeight,
			PageBreakBefore: true,
		})
	}
	return number(blocks)
}
