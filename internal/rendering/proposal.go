// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

func (c *canvas) paintCover(b *types.RenderedBlock, index int) {
	pdf := c.pdf

	x1, y1, x2, y2 := c.grad.vector()
	pdf.LinearGradient(0, 0, pageWidth, coverBandHeight,
		c.grad.From.R, c.grad.From.G, c.grad.From.B,
		c.grad.To.R, c.grad.To.G, c.grad.To.B,
		x1, y1, x2, y2)

	top := 40.0
	if c.logo != nil {
		pdf.ImageOptions(c.logo.name, marginX, top, c.logo.w, c.logo.h, false, imageOpts, 0, "")
		top += c.logo.h + 16
	} else if c.agency.Name != "" {
		pdf.SetFont(c.headingFont, "B", 12)
		c.setText(white)
		pdf.SetXY(marginX, top)
		pdf.CellFormat(contentWidth, 16, c.txt(strings.ToUpper(c.agency.Name)), "", 1, "L", false, 0, "")
		top += 32
	}

	pdf.SetFont(c.headingFont, "B", sizeCoverTitle)
	c.setText(white)
	pdf.SetXY(marginX, max(top, 110))
	pdf.MultiCell(contentWidth, sizeCoverTitle+6, c.txt(b.Title), "", "L", false)

	pdf.SetY(coverBandHeight + 28)
	c.paintImage(index, b.ImageHeight, c.coverTrailer(b.Body))
	pdf.Ln(24)

	if strings.TrimSpace(b.Body) != "" {
		pdf.SetFont(c.headingFont, "B", 16)
		c.setText(c.colors.primary)
		pdf.MultiCell(contentWidth, 22, c.txt(b.Body), "", "L", false)
		pdf.Ln(6)
	}

	pdf.SetFont(c.bodyFont, "", sizeBody)
	c.setText(c.colors.textSecondary)
	if !c.meta.Date.IsZero() {
		pdf.CellFormat(contentWidth, lineBody, c.meta.Date.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	}
	if c.agency.Tagline != "" {
		pdf.CellFormat(contentWidth, lineBody, c.txt(c.agency.Tagline), "", 1, "L", false, 0, "")
	}

	c.setFill(c.colors.accent)
	pdf.Rect(marginX, pageHeight-marginBottom-6, 64, 6, "F")
}

func (c *canvas) paintSection(b *types.RenderedBlock, index int) {
	pdf := c.pdf

	pdf.SetFont(c.bodyFont, "B", sizeLabel)
	c.setText(c.colors.accent)
	pdf.CellFormat(contentWidth, lineSmall, fmt.Sprintf("%02d", b.Position+1), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	c.setFill(c.colors.accent)
	pdf.Rect(marginX, pdf.GetY(), 36, 4, "F")
	pdf.Ln(12)

	pdf.SetFont(c.headingFont, "B", sizeTitle)
	c.setText(c.colors.primary)
	pdf.MultiCell(contentWidth, sizeTitle+6, c.txt(b.Title), "", "L", false)
	pdf.Ln(12)

	if b.ImageHeight > 0 {
		c.paintImage(index, b.ImageHeight, 18+c.textHeight(b.Body, c.bodyFont, "", sizeBody, lineBody))
		pdf.Ln(18)
	}

	c.paintBody(b.Body)
}

// coverTrailer is the height of everything painted below the cover image.
func (c *canvas) coverTrailer(body string) float64 {
	h := 24.0
	if strings.TrimSpace(body) != "" {
		h += c.textHeight(body, c.headingFont, "B", 16, 22) + 6
	}
	if !c.meta.Date.IsZero() {
		h += lineBody
	}
	if c.agency.Tagline != "" {
		h += lineBody
	}
	return h
}

// paintBody flows text from the current position. Long bodies continue on
// following pages. An empty body paints nothing but keeps its block.
func (c *canvas) paintBody(body string) {
	body = strings.TrimRight(body, " \n")
	if body == "" {
		return
	}
	c.pdf.SetFont(c.bodyFont, "", sizeBody)
	c.setText(c.colors.text)
	c.pdf.SetX(marginX)
	c.pdf.MultiCell(contentWidth, lineBody, c.txt(body), "", "L", false)
}
