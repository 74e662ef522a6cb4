// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import (
	"math"
	"math/big"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// Line item table geometry.
const (
	cellPad      = 6.0
	colQty       = 60.0
	colUnit      = 96.0
	colAmount    = 104.0
	colDesc      = contentWidth - colQty - colUnit - colAmount
	tableHeaderH = lineBody + 2*cellPad
	totalsWidth  = 240.0
	totalsRowH   = 20.0
)

func (c *canvas) paintInvoiceHeader(b *types.RenderedBlock) {
	pdf := c.pdf
	h := b.Header
	if h == nil {
		h = &types.InvoiceHeader{}
	}
	top := pdf.GetY()

	if c.logo != nil {
		pdf.ImageOptions(c.logo.name, pageWidth-marginX-c.logo.w, top, c.logo.w, c.logo.h, false, imageOpts, 0, "")
	}

	pdf.SetXY(marginX, top)
	pdf.SetFont(c.headingFont, "B", 28)
	c.setText(c.colors.primary)
	pdf.CellFormat(contentWidth/2, 34, c.txt(strings.ToUpper(firstNonBlank(b.Title, "Invoice"))), "", 1, "L", false, 0, "")

	pdf.SetFont(c.bodyFont, "", sizeBody)
	c.setText(c.colors.textSecondary)
	number := firstNonBlank(h.Number, "Draft")
	pdf.CellFormat(contentWidth/2, lineBody, c.txt("No. "+number), "", 1, "L", false, 0, "")
	if h.IssueDate != "" {
		pdf.CellFormat(contentWidth/2, lineBody, c.txt("Issued "+h.IssueDate), "", 1, "L", false, 0, "")
	}
	if h.DueDate != "" {
		pdf.CellFormat(contentWidth/2, lineBody, c.txt("Due "+h.DueDate), "", 1, "L", false, 0, "")
	}
	if b.Currency != "" {
		pdf.CellFormat(contentWidth/2, lineBody, c.txt("Currency "+b.Currency), "", 1, "L", false, 0, "")
	}

	y := max(pdf.GetY(), top+logoHeight(c.logo)) + 24

	from := h.From
	if strings.TrimSpace(from.Name) == "" {
		from = types.Party{Name: c.agency.Name, Email: c.agency.Email, Phone: c.agency.Phone, Address: c.agency.Address}
	}
	colW := contentWidth/2 - 12
	endFrom := c.partyColumn("FROM", from, marginX, y, colW)
	endTo := c.partyColumn("BILL TO", h.To, marginX+contentWidth/2, y, colW)

	pdf.SetXY(marginX, max(endFrom, endTo)+24)
	c.tableHeader()
}

func logoHeight(p *placed) float64 {
	if p == nil {
		return 0
	}
	return p.h
}

// partyColumn paints one party block at (x, y) and returns the y it ends at.
func (c *canvas) partyColumn(label string, p types.Party, x, y, w float64) float64 {
	pdf := c.pdf

	pdf.SetXY(x, y)
	pdf.SetFont(c.bodyFont, "B", sizeLabel)
	c.setText(c.colors.accent)
	pdf.CellFormat(w, lineSmall, label, "", 2, "L", false, 0, "")

	pdf.SetX(x)
	pdf.SetFont(c.bodyFont, "B", sizeBody)
	c.setText(c.colors.text)
	pdf.MultiCell(w, lineBody, c.txt(firstNonBlank(p.Name, "-")), "", "L", false)

	pdf.SetFont(c.bodyFont, "", sizeBody)
	c.setText(c.colors.textSecondary)
	for _, line := range []string{p.Email, p.Phone, p.Address} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.SetX(x)
		pdf.MultiCell(w, lineBody, c.txt(line), "", "L", false)
	}
	return pdf.GetY()
}

// tableHeader paints the line item column captions and records the page it is on.
func (c *canvas) tableHeader() {
	pdf := c.pdf
	y := pdf.GetY()

	c.setFill(c.colors.surface)
	pdf.Rect(marginX, y, contentWidth, tableHeaderH, "F")

	pdf.SetFont(c.bodyFont, "B", sizeLabel)
	c.setText(c.colors.textSecondary)
	pdf.SetXY(marginX+cellPad, y+cellPad)
	pdf.CellFormat(colDesc-cellPad, lineBody, "DESCRIPTION", "", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, lineBody, "QTY", "", 0, "R", false, 0, "")
	pdf.CellFormat(colUnit, lineBody, "UNIT PRICE", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount-cellPad, lineBody, "AMOUNT", "", 0, "R", false, 0, "")

	pdf.SetXY(marginX, y+tableHeaderH)
	c.tablePage = pdf.PageNo()
}

func (c *canvas) paintLineItem(b *types.RenderedBlock) {
	item := b.Item
	if item == nil {
		return
	}
	pdf := c.pdf

	pdf.SetFont(c.bodyFont, "", sizeBody)
	// Translated text is single-byte, so it is split by bytes rather than runes
	lines := pdf.SplitLines([]byte(c.txt(item.Description)), colDesc-2*cellPad)
	if len(lines) == 0 {
		lines = [][]byte{nil}
	}

	first := true
	for len(lines) > 0 {
		take, newPage := rowChunk(len(lines), c.rowLinesFit(), rowLinesPerPage)
		if newPage {
			pdf.AddPage()
		}
		if c.tablePage != pdf.PageNo() {
			c.tableHeader()
		}
		c.paintRow(lines[:take], item, b.Currency, first)
		lines = lines[take:]
		first = false
	}
}

// rowLinesPerPage is how many description lines fit on a fresh page under the
// table header.
var rowLinesPerPage = int(math.Floor((pageHeight - marginTop - marginBottom - tableHeaderH - 2*cellPad) / lineBody))

// rowChunk decides how many of rest description lines go on the current page,
// which has room for fit lines. A row that fits on one page is never split.
func rowChunk(rest, fit, perPage int) (take int, newPage bool) {
	switch {
	case rest <= fit:
		return rest, false
	case rest <= perPage || fit < 1:
		return min(rest, perPage), true
	default:
		return fit, false
	}
}

// rowLinesFit is how many description lines fit below the current position,
// counting the table header when the page still needs one.
func (c *canvas) rowLinesFit() int {
	avail := c.remaining() - 2*cellPad
	if c.tablePage != c.pdf.PageNo() {
		avail -= tableHeaderH
	}
	if avail < lineBody {
		return 0
	}
	return int(avail / lineBody)
}

// paintRow paints one table row holding lines of a description. Amounts are
// printed on the first row of an item only.
func (c *canvas) paintRow(lines [][]byte, item *types.LineItem, currency string, amounts bool) {
	pdf := c.pdf
	rowH := float64(len(lines))*lineBody + 2*cellPad

	y := pdf.GetY()
	pdf.SetFont(c.bodyFont, "", sizeBody)
	c.setText(c.colors.text)
	for i, line := range lines {
		pdf.SetXY(marginX+cellPad, y+cellPad+float64(i)*lineBody)
		pdf.CellFormat(colDesc-2*cellPad, lineBody, string(line), "", 0, "L", false, 0, "")
	}

	if amounts {
		pdf.SetXY(marginX+colDesc, y+cellPad)
		pdf.CellFormat(colQty, lineBody, item.Quantity, "", 0, "R", false, 0, "")
		pdf.CellFormat(colUnit, lineBody, c.txt(types.FormatCents(item.UnitPriceCents, currency)), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount-cellPad, lineBody, c.txt(types.FormatCents(item.LineTotalCents, currency)), "", 0, "R", false, 0, "")
	}

	c.setDraw(c.colors.borderLine)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginX, y+rowH, pageWidth-marginX, y+rowH)
	pdf.SetXY(marginX, y+rowH)
}

func (c *canvas) paintTotals(b *types.RenderedBlock) {
	t := b.Totals
	if t == nil {
		return
	}
	pdf := c.pdf

	pdf.Ln(12)
	c.ensureSpace(3*totalsRowH + 16)

	x := pageWidth - marginX - totalsWidth
	row := func(label string, cents int64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetX(x)
		pdf.SetFont(c.bodyFont, style, sizeBody)
		pdf.CellFormat(totalsWidth/2, totalsRowH, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(totalsWidth/2-cellPad, totalsRowH, c.txt(types.FormatCents(cents, b.Currency)), "", 1, "R", false, 0, "")
	}

	c.setText(c.colors.textSecondary)
	row("Subtotal", t.SubtotalCents, false)
	taxLabel := "Tax"
	if t.TaxRate != "" {
		taxLabel = "Tax (" + percentText(t.TaxRate) + "%)"
	}
	row(taxLabel, t.TaxCents, false)

	y := pdf.GetY() + 4
	c.setFill(c.colors.surface)
	pdf.Rect(x, y, totalsWidth, totalsRowH+8, "F")
	pdf.SetY(y + 4)
	c.setText(c.colors.primary)
	row("Total", t.GrandTotalCents, true)
	pdf.SetY(y + totalsRowH + 8)
}

func (c *canvas) paintNotes(b *types.RenderedBlock) {
	pdf := c.pdf
	pdf.Ln(24)
	c.ensureSpace(lineSmall + 2*lineBody)

	pdf.SetX(marginX)
	pdf.SetFont(c.bodyFont, "B", sizeLabel)
	c.setText(c.colors.accent)
	pdf.CellFormat(contentWidth, lineSmall, strings.ToUpper(firstNonBlank(b.Title, "Notes")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	c.paintBody(b.Body)
}

// percentText renders a fractional rate as a percentage, e.g. "0.0825" -> "8.25".
func percentText(rate string) string {
	r, ok := new(big.Rat).SetString(rate)
	if !ok {
		return rate
	}
	r.Mul(r, big.NewRat(100, 1))
	if r.IsInt() {
		return r.Num().String()
	}
	s := strings.TrimRight(r.FloatString(4), "0")
	return strings.TrimSuffix(s, ".")
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
