// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AgencyProfile is the branding identity printed on every document.
type AgencyProfile struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Logo    string `json:"logo,omitempty" yaml:"logo,omitempty"`
	Email   string `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" yaml:"phone"`
	Address string `json:"address" yaml:"address"`
	Website string `json:"website,omitempty" yaml:"website,omitempty" validate:"omitempty,url"`
	Tagline string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
}
