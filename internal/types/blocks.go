// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// BlockKind selects how the renderer paints a RenderedBlock.
type BlockKind int

const (
	BlockSection BlockKind = iota
	BlockContractBody
	BlockInvoiceHeader
	BlockLineItem
	BlockTotals
	BlockNotes
)

func (k BlockKind) String() string {
	switch k {
	case BlockSection:
		return "section"
	case BlockContractBody:
		return "contract-body"
	case BlockInvoiceHeader:
		return "invoice-header"
	case BlockLineItem:
		return "line-item"
	case BlockTotals:
		return "totals"
	case BlockNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// RenderedBlock is a resolved, ready-to-paint unit produced by the composer.
type RenderedBlock struct {
	Kind        BlockKind
	Section     SectionID // meaningful for BlockSection only
	Position    int
	Title       string
	Body        string
	Image       string
	ImageHeight int // pixels; 0 means no image slot

	// Layout hints
	PageBreakBefore bool

	// Invoice payloads
	Header   *InvoiceHeader
	Item     *LineItem
	Totals   *InvoiceTotals
	Currency string
}

// InvoiceHeader is the issuer/recipient/metadata block of an invoice.
type InvoiceHeader struct {
	Number    string
	IssueDate string
	DueDate   string
	From      Party
	To        Party
}
