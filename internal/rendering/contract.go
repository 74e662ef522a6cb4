// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import (
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

func (c *canvas) paintContract(b *types.RenderedBlock) {
	pdf := c.pdf

	if strings.TrimSpace(b.Title) != "" {
		pdf.SetFont(c.headingFont, "B", sizeTitle)
		c.setText(c.colors.primary)
		pdf.MultiCell(contentWidth, sizeTitle+6, c.txt(b.Title), "", "C", false)
		pdf.Ln(4)
	}

	meta := make([]string, 0, 2)
	if c.agency.Name != "" {
		meta = append(meta, c.agency.Name)
	}
	if !c.meta.Date.IsZero() {
		meta = append(meta, c.meta.Date.Format("January 2, 2006"))
	}
	if len(meta) > 0 {
		pdf.SetFont(c.bodyFont, "", sizeSmall)
		c.setText(c.colors.textSecondary)
		pdf.CellFormat(contentWidth, lineSmall, c.txt(strings.Join(meta, " | ")), "", 1, "C", false, 0, "")
	}

	pdf.Ln(10)
	c.setDraw(c.colors.borderLine)
	pdf.SetLineWidth(0.75)
	pdf.Line(marginX, pdf.GetY(), pageWidth-marginX, pdf.GetY())
	pdf.Ln(16)

	c.paintBody(b.Body)
}
