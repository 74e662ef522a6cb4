// Package dispatch infers the document kind from a raw payload and names the output file.
package dispatch

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/docforge/internal/types"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	unsafeFileRune = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]`)
	invoiceUnsafe  = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	nonAlnum       = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Filename suggests a download name for the document built from req on day now.
//
//	proposal: {BusinessName}_Proposal_{YYYY-MM-DD}.pdf, business name reduced to ASCII letters and digits
//	contract: the title with whitespace runs replaced by "_", or contract.pdf when blank
//	invoice:  invoice-{number}.pdf, or invoice-draft.pdf without a number
func Filename(req *types.DocumentRequest, now time.Time) string {
	if req == nil {
		return "document.pdf"
	}
	switch req.Kind {
	case types.KindInvoice:
		number := ""
		if req.Invoice != nil {
			number = strings.Trim(invoiceUnsafe.ReplaceAllString(strings.TrimSpace(req.Invoice.Invoice.InvoiceNumber), "-"), "-.")
		}
		if number == "" {
			number = "draft"
		}
		return "invoice-" + number + ".pdf"

	case types.KindContract:
		title := ""
		if req.Contract != nil {
			title = unsafeFileRune.ReplaceAllString(strings.TrimSpace(req.Contract.Title), "")
			title = whitespaceRun.ReplaceAllString(strings.TrimSpace(title), "_")
		}
		if title == "" {
			return "contract.pdf"
		}
		return title + ".pdf"

	case types.KindProposal:
		business := ""
		if req.Proposal != nil {
			business = nonAlnum.ReplaceAllString(req.Proposal.BusinessName, "")
		}
		if business == "" {
			business = "Client"
		}
		return business + "_Proposal_" + now.Format("2006-01-02") + ".pdf"

	default:
		return "document.pdf"
	}
}
