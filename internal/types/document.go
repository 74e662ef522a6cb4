// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// DocumentKind tags which variant of a DocumentRequest is active.
type DocumentKind int

const (
	KindUnknown DocumentKind = iota
	KindProposal
	KindContract
	KindInvoice
)

func (k DocumentKind) String() string {
	switch k {
	case KindProposal:
		return "proposal"
	case KindContract:
		return "contract"
	case KindInvoice:
		return "invoice"
	default:
		return "unknown"
	}
}

// ParseDocumentKind maps a lowercase kind name back to its DocumentKind.
func ParseDocumentKind(name string) (DocumentKind, bool) {
	for _, k := range []DocumentKind{KindProposal, KindContract, KindInvoice} {
		if k.String() == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// DocumentRequest is a tagged union over the three document variants.
// Exactly one of Proposal, Contract and Invoice is set, matching Kind.
type DocumentRequest struct {
	Kind     DocumentKind
	Proposal *ProposalIntake
	Contract *ContractRequest
	Invoice  *InvoiceRequest

	// Envelope fields shared by every variant
	ThemeID   string
	Agency    *AgencyProfile
	Overrides OverrideSet
}

// NewProposalRequest wraps an intake form as a DocumentRequest.
func NewProposalRequest(intake *ProposalIntake) *DocumentRequest {
	return &DocumentRequest{Kind: KindProposal, Proposal: intake}
}

// NewContractRequest wraps a contract as a DocumentRequest.
func NewContractRequest(c *ContractRequest) *DocumentRequest {
	return &DocumentRequest{Kind: KindContract, Contract: c}
}

// NewInvoiceRequest wraps an invoice as a DocumentRequest.
func NewInvoiceRequest(inv *InvoiceRequest) *DocumentRequest {
	return &DocumentRequest{Kind: KindInvoice, Invoice: inv}
}

// Validate checks the union invariant: exactly one variant is active and it matches Kind.
func (r *DocumentRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("document request is nil")
	}
	active := 0
	if r.Proposal != nil {
		active++
	}
	if r.Contract != nil {
		active++
	}
	if r.Invoice != nil {
		active++
	}
	if active != 1 {
		return fmt.Errorf("document request must carry exactly one variant, got %d", active)
	}

	var ok bool
	switch r.Kind {
	case KindProposal:
		ok = r.Proposal != nil
	case KindContract:
		ok = r.Contract != nil
	case KindInvoice:
		ok = r.Invoice != nil
	}
	if !ok {
		return fmt.Errorf("document request kind %s does not match its variant", r.Kind)
	}
	return nil
}

// ContractRequest is a free-form titled document.
type ContractRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GeneratedDocument is the terminal artifact of one generation call.
type GeneratedDocument struct {
	Bytes     []byte
	Filename  string
	MediaType string
	Length    int
	Pages     int
	Kind      DocumentKind
}

// MediaTypePDF is the media type of every generated document.
const MediaTypePDF = "application/pdf"
