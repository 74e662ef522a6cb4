// Package overrides merges per-section user overrides over catalog defaults.
package overrides

import (
	"fmt"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

var budgetPhrases = map[string]string{
	"15k-25k": "between $15,000 and $25,000",
	"25k-40k": "between $25,000 and $40,000",
	"40k-60k": "between $40,000 and $60,000",
	"60k+":    "from $60,000",
}

var timelinePhrases = map[string]string{
	"1-2weeks":  "one to two weeks",
	"3-4weeks":  "three to four weeks",
	"1-2months": "one to two months",
	"3months+":  "three months or more",
}

// computedBody synthesizes section copy from client facts and agency identity.
// It returns "" when the section has no computed default or the facts it needs are missing.
func computedBody(s types.SectionID, agency types.AgencyProfile, facts *types.ProposalIntake) string {
	if s == types.SectionEndnotes {
		return contactBlock(agency)
	}
	if facts == nil {
		return ""
	}

	switch s {
	case types.SectionCover:
		return coverLine(facts)
	case types.SectionWhoWeAre:
		if agency.Name == "" {
			return ""
		}
		return fmt.Sprintf("%s designs and builds websites for %s businesses. "+
			"We combine strategy, design and engineering in one team so that your site "+
			"launches on time and keeps working long after.", agency.Name, industryPhrase(facts.Industry))
	case types.SectionIndustryNeeds:
		if facts.BusinessName == "" {
			return ""
		}
		return fmt.Sprintf("As a %s business, %s needs a website that answers customer questions "+
			"at a glance, works flawlessly on mobile and turns visits into enquiries.",
			industryPhrase(facts.Industry), facts.BusinessName)
	case types.SectionSolutions:
		return servicesList(facts)
	case types.SectionPricing:
		phrase, ok := budgetPhrases[facts.Budget]
		if !ok {
			return ""
		}
		return fmt.Sprintf("Based on the scope we discussed, the investment for this project is %s. "+
			"Payments are split across project milestones.", phrase)
	case types.SectionNextSteps:
		phrase, ok := timelinePhrases[facts.Timeline]
		if !ok {
			return ""
		}
		return fmt.Sprintf("Once this proposal is approved we will schedule a kickoff call. "+
			"Your new website will be ready to launch in %s.", phrase)
	default:
		return ""
	}
}

func coverLine(facts *types.ProposalIntake) string {
	switch {
	case facts.ClientName != "" && facts.BusinessName != "":
		return fmt.Sprintf("Prepared for %s at %s", facts.ClientName, facts.BusinessName)
	case facts.BusinessName != "":
		return "Prepared for " + facts.BusinessName
	case facts.ClientName != "":
		return "Prepared for " + facts.ClientName
	default:
		return ""
	}
}

func industryPhrase(industry string) string {
	if industry == "" || industry == "other" {
		return "growing"
	}
	return strings.ToLower(types.IndustryLabel(industry))
}

func servicesList(facts *types.ProposalIntake) string {
	services := make([]string, 0, len(facts.Services))
	for _, svc := range facts.Services {
		if svc = strings.TrimSpace(svc); svc != "" {
			services = append(services, svc)
		}
	}
	if len(services) == 0 {
		return ""
	}

	var sb strings.Builder
	if facts.BusinessName != "" {
		fmt.Fprintf(&sb, "For %s we will deliver:\n", facts.BusinessName)
	} else {
		sb.WriteString("We will deliver:\n")
	}
	for i, svc := range services {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("• " + svc)
	}
	return sb.String()
}

func contactBlock(agency types.AgencyProfile) string {
	lines := make([]string, 0, 5)
	for _, v := range []string{agency.Name, agency.Email, agency.Phone, agency.Website, agency.Address} {
		if v = strings.TrimSpace(v); v != "" {
			lines = append(lines, v)
		}
	}
	return strings.Join(lines, "\n")
}
