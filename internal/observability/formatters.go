// Package observability provides structured logging and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/docforge/internal/errs"
	"github.com/jonathan/docforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a human-readable summary of a classified request.
func (p *Printer) PrintRequest(req *types.DocumentRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", req.Kind))
	if req.ThemeID != "" {
		sb.WriteString(fmt.Sprintf("Theme:    %s\n", req.ThemeID))
	}
	if req.Agency != nil {
		sb.WriteString(fmt.Sprintf("Agency:   %s\n", req.Agency.Name))
	}

	switch req.Kind {
	case types.KindProposal:
		in := req.Proposal
		sb.WriteString(fmt.Sprintf("Business: %s\n", in.BusinessName))
		sb.WriteString(fmt.Sprintf("Client:   %s <%s>\n", in.ClientName, in.ClientEmail))
		sb.WriteString(fmt.Sprintf("Industry: %s\n", in.Industry))
		sb.WriteString(fmt.Sprintf("Budget:   %s, timeline %s\n", in.Budget, in.Timeline))
		if len(in.Services) > 0 {
			sb.WriteString("\nServices:\n")
			count := min(len(in.Services), maxItemsToShow)
			for i := 0; i < count; i++ {
				sb.WriteString(fmt.Sprintf("  • %s\n", in.Services[i]))
			}
			if len(in.Services) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(in.Services)-maxItemsToShow))
			}
		}
	case types.KindContract:
		sb.WriteString(fmt.Sprintf("Title:    %s\n", req.Contract.Title))
		sb.WriteString(fmt.Sprintf("Content:  %d characters\n", utf8.RuneCountInString(req.Contract.Content)))
	case types.KindInvoice:
		inv := req.Invoice.Invoice
		number := inv.InvoiceNumber
		if number == "" {
			number = "(draft)"
		}
		sb.WriteString(fmt.Sprintf("Number:   %s\n", number))
		sb.WriteString(fmt.Sprintf("Bill to:  %s\n", inv.To.Name))
		sb.WriteString(fmt.Sprintf("Items:    %d\n", len(inv.Items)))
	}

	overrides := len(req.Overrides.Images) + len(req.Overrides.Texts) + len(req.Overrides.Heights)
	if overrides > 0 {
		sb.WriteString(fmt.Sprintf("\nOverrides: %d image, %d text, %d height\n",
			len(req.Overrides.Images), len(req.Overrides.Texts), len(req.Overrides.Heights)))
	}

	p.printBox("DOCUMENT REQUEST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBlocks outputs the composed block sequence, one line per block.
func (p *Printer) PrintBlocks(blocks []types.RenderedBlock) {
	if len(blocks) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Composed %d blocks:\n\n", len(blocks)))
	for i, b := range blocks {
		label := b.Title
		switch {
		case b.Item != nil:
			label = b.Item.Description
		case b.Totals != nil:
			label = types.FormatCents(b.Totals.GrandTotalCents, b.Currency)
		case label == "":
			label = "(untitled)"
		}
		line := fmt.Sprintf("%02d %-14s %s", b.Position+1, b.Kind, label)
		if b.ImageHeight > 0 {
			line += fmt.Sprintf(" [img %dpx]", b.ImageHeight)
		}
		sb.WriteString(line)
		if i < len(blocks)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("COMPOSED BLOCKS", sb.String())
}

// PrintDocument outputs the generated document's metadata.
func (p *Printer) PrintDocument(doc *types.GeneratedDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", doc.Filename))
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", doc.Kind))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", doc.MediaType))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", doc.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes", doc.Length))

	p.printBox("GENERATED DOCUMENT", sb.String())
}

// PrintCatalog outputs the industries and themes a catalog offers.
func (p *Printer) PrintCatalog(industries, themes []string, defaultTheme string) {
	var sb strings.Builder
	sb.WriteString("Industries:\n")
	for _, id := range industries {
		sb.WriteString(fmt.Sprintf("  • %s\n", id))
	}
	sb.WriteString("\nThemes:\n")
	for _, id := range themes {
		marker := ""
		if id == defaultTheme {
			marker = " (default)"
		}
		sb.WriteString(fmt.Sprintf("  • %s%s\n", id, marker))
	}

	p.printBox("CONTENT CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationErrors outputs each rejected field, or a success box when ve is empty.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationErrors(ve *errs.ValidationError) {
	if ve == nil || len(ve.Errors) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ PAYLOAD IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(ve.Errors)))

	for i, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("  %s", fe.Message))
		if i < len(ve.Errors)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("VALIDATION ERRORS", sb.String())
}
