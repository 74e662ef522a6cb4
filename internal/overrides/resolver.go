// Package overrides merges per-section user overrides over catalog defaults.
//
// Precedence per field, highest first:
//  1. a non-empty user override
//  2. a default computed from the client facts and agency identity
//  3. the template's static value
package overrides

import (
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// Resolved is the final content of one proposal section.
type Resolved struct {
	Title       string
	Body        string
	Image       string
	ImageHeight int
}

// Resolve computes the content of section s. facts may be nil, in which case no
// computed defaults apply and every field falls through to the template.
func Resolve(
	s types.SectionID,
	set types.OverrideSet,
	tmpl *types.IndustryTemplate,
	agency types.AgencyProfile,
	facts *types.ProposalIntake,
) Resolved {
	block := tmpl.Block(s)

	return Resolved{
		Title:       interpolateTitle(block.Title, agency, facts),
		Body:        firstNonEmpty(set.Texts[s], computedBody(s, agency, facts), block.Body),
		Image:       firstNonEmpty(set.Images[s], block.Image),
		ImageHeight: resolveHeight(s, set.Heights),
	}
}

// firstNonEmpty returns the first value that is not blank. Blank overrides fall
// through instead of erasing a section.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// interpolateTitle fills the single {agency} or {industry} slot a template title may carry.
func interpolateTitle(title string, agency types.AgencyProfile, facts *types.ProposalIntake) string {
	if !strings.Contains(title, "{") {
		return title
	}
	industry := ""
	if facts != nil {
		industry = types.IndustryLabel(facts.Industry)
	}
	r := strings.NewReplacer("{agency}", agency.Name, "{industry}", industry)
	return strings.Join(strings.Fields(r.Replace(title)), " ")
}
