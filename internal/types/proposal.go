// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProposalIntake is the client intake form that drives a proposal.
// It doubles as the structured client facts the override resolver interpolates.
type ProposalIntake struct {
	ClientName          string   `json:"clientName" validate:"required"`
	ClientEmail         string   `json:"clientEmail" validate:"required,email"`
	ClientPhone         string   `json:"clientPhone" validate:"required"`
	BusinessName        string   `json:"businessName" validate:"required"`
	Industry            string   `json:"industry" validate:"required"`
	Services            []string `json:"services" validate:"required,min=1,dive,required"`
	Budget              string   `json:"budget" validate:"required,oneof=15k-25k 25k-40k 40k-60k 60k+"`
	Timeline            string   `json:"timeline" validate:"required,oneof=1-2weeks 3-4weeks 1-2months 3months+"`
	CurrentWebsite      string   `json:"currentWebsite,omitempty"`
	SpecialRequirements string   `json:"specialRequirements,omitempty"`
	Competitors         string   `json:"competitors,omitempty"`
}

// Industries is the enumerated set accepted by the intake form.
// Not every industry has a dedicated catalog template.
var Industries = []string{
	"gym",
	"restaurant",
	"salon",
	"dental",
	"real-estate",
	"law-firm",
	"ecommerce",
	"construction",
	"healthcare",
	"nonprofit",
	"education",
	"technology",
	"other",
}

// Budgets is the enumerated set of budget ranges.
var Budgets = []string{"15k-25k", "25k-40k", "40k-60k", "60k+"}

// Timelines is the enumerated set of delivery timelines.
var Timelines = []string{"1-2weeks", "3-4weeks", "1-2months", "3months+"}

// IndustryLabel renders an industry id for display, e.g. "real-estate" -> "Real Estate".
func IndustryLabel(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	// Casers carry state, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(id, "-", " "))
}
