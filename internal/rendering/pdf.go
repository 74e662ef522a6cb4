// Package rendering paints composed blocks onto fixed-size PDF pages.
//
// Rendering uses the PDF core fonts, so text is translated to the cp1252 code
// page. Images are resolved up front through an assets.Loader; an image that
// cannot be loaded is painted as a blank placeholder of the same size.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/docforge/internal/assets"
	"github.com/jonathan/docforge/internal/types"
	"go.uber.org/zap"
)

var imageOpts = fpdf.ImageOptions{ImageType: assets.ImageTypeJPEG}

// Meta describes the document being rendered.
type Meta struct {
	Kind    types.DocumentKind
	Title   string
	Subject string
	// Date is printed on the document and pinned as the PDF creation and
	// modification date so identical inputs produce identical bytes.
	Date time.Time
}

// Output is a rendered document.
type Output struct {
	Bytes []byte
	Pages int
}

// Renderer turns block sequences into PDF bytes. It holds no per-document
// state and is safe for concurrent use.
type Renderer struct {
	loader *assets.Loader
	logger *zap.Logger
}

// New creates a Renderer. A nil loader uses the default HTTP-backed loader.
func New(loader *assets.Loader, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loader == nil {
		loader = assets.NewLoader(assets.LoaderOptions{Logger: logger})
	}
	return &Renderer{loader: loader, logger: logger}
}

// Render paints blocks in order using the theme's tokens and the agency's branding.
func (r *Renderer) Render(
	ctx context.Context,
	blocks []types.RenderedBlock,
	theme types.ThemeProfile,
	agency types.AgencyProfile,
	meta Meta,
) (*Output, error) {
	images := r.loadImages(ctx, blocks, agency)

	c := newCanvas(theme, agency, meta)
	if err := c.registerImages(images); err != nil {
		return nil, err
	}

	for i := range blocks {
		c.paint(&blocks[i], i)
		if c.pdf.Err() {
			return nil, &RenderError{
				Message: fmt.Sprintf("failed to paint block %d (%s)", i, blocks[i].Kind),
				Cause:   c.pdf.Error(),
			}
		}
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to encode PDF", Cause: err}
	}

	r.logger.Debug("document rendered",
		zap.Stringer("kind", meta.Kind),
		zap.Int("blocks", len(blocks)),
		zap.Int("pages", c.pdf.PageCount()),
		zap.Int("bytes", buf.Len()))

	return &Output{Bytes: buf.Bytes(), Pages: c.pdf.PageCount()}, nil
}

// loadedImages maps blocks to their resolved bitmaps. A nil entry with a
// positive image height means "paint a placeholder".
type loadedImages struct {
	blocks []*assets.Image
	logo   *assets.Image
}

func (r *Renderer) loadImages(ctx context.Context, blocks []types.RenderedBlock, agency types.AgencyProfile) loadedImages {
	out := loadedImages{blocks: make([]*assets.Image, len(blocks))}

	reqs := make([]assets.Request, 0, len(blocks)+1)
	owners := make([]int, 0, len(blocks)+1)
	for i, b := range blocks {
		if b.ImageHeight <= 0 || strings.TrimSpace(b.Image) == "" {
			continue
		}
		w, h := boxPx(b.ImageHeight)
		reqs = append(reqs, assets.Request{Ref: b.Image, Width: w * imageScale, Height: h * imageScale, Fit: assets.FitCover})
		owners = append(owners, i)
	}
	if strings.TrimSpace(agency.Logo) != "" {
		reqs = append(reqs, assets.Request{
			Ref:    agency.Logo,
			Width:  logoMaxWidthPx * imageScale,
			Height: logoMaxHeightPx * imageScale,
			Fit:    assets.FitContain,
		})
		owners = append(owners, -1)
	}

	for j, res := range r.loader.LoadAll(ctx, reqs) {
		if res.Err != nil {
			continue
		}
		if owners[j] < 0 {
			out.logo = res.Image
		} else {
			out.blocks[owners[j]] = res.Image
		}
	}
	return out
}

// palette holds a theme's parsed colors.
type palette struct {
	primary, secondary, accent      rgb
	background, surface             rgb
	text, textSecondary, borderLine rgb
}

// canvas is the per-document drawing state.
type canvas struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	colors palette
	grad   gradient
	shadow shadow
	shaded bool
	radius float64

	headingFont string
	bodyFont    string

	agency types.AgencyProfile
	meta   Meta

	blockImages []string // registered image names by block index; "" means none
	logo        *placed
	tablePage   int // page the line item header was last drawn on
}

// placed is a registered image and its natural size in points.
type placed struct {
	name string
	w, h float64
}

func newCanvas(theme types.ThemeProfile, agency types.AgencyProfile, meta Meta) *canvas {
	colors := palette{
		primary:       parseHex(theme.Colors.Primary, rgb{30, 58, 138}),
		secondary:     parseHex(theme.Colors.Secondary, rgb{59, 130, 246}),
		accent:        parseHex(theme.Colors.Accent, rgb{245, 158, 11}),
		background:    parseHex(theme.Colors.Background, white),
		surface:       parseHex(theme.Colors.Surface, rgb{241, 245, 249}),
		text:          parseHex(theme.Colors.Text, black),
		textSecondary: parseHex(theme.Colors.TextSecondary, rgb{71, 85, 105}),
		borderLine:    parseHex(theme.Colors.Border, rgb{203, 213, 225}),
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	c := &canvas{
		pdf:         pdf,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		colors:      colors,
		grad:        parseGradient(theme.Style.BackgroundGradient, colors.primary, colors.secondary),
		radius:      max(0, theme.Style.CornerRadius) * pxToPt,
		headingFont: coreFont(theme.Fonts.Heading),
		bodyFont:    coreFont(theme.Fonts.Body),
		agency:      agency,
		meta:        meta,
	}
	c.shadow, c.shaded = parseShadow(theme.Style.Shadow)

	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCatalogSort(true)
	if !meta.Date.IsZero() {
		pdf.SetCreationDate(meta.Date)
		pdf.SetModificationDate(meta.Date)
	}
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(agency.Name, true)
	pdf.SetCreator("docforge", true)

	pdf.SetHeaderFuncMode(c.pageBackground, true)
	pdf.SetFooterFunc(c.footer)
	return c
}

func (c *canvas) registerImages(images loadedImages) error {
	c.blockImages = make([]string, len(images.blocks))

	for i, img := range images.blocks {
		if img == nil {
			continue
		}
		name := fmt.Sprintf("block-%d", i)
		c.pdf.RegisterImageOptionsReader(name, imageOpts, bytes.NewReader(img.Data))
		c.blockImages[i] = name
	}
	if images.logo != nil {
		c.pdf.RegisterImageOptionsReader("logo", imageOpts, bytes.NewReader(images.logo.Data))
		c.logo = &placed{
			name: "logo",
			w:    float64(images.logo.Width) / imageScale * pxToPt,
			h:    float64(images.logo.Height) / imageScale * pxToPt,
		}
	}

	if c.pdf.Err() {
		return &RenderError{Message: "failed to embed images", Cause: c.pdf.Error()}
	}
	return nil
}

func (c *canvas) paint(b *types.RenderedBlock, index int) {
	switch b.Kind {
	case types.BlockSection:
		if b.PageBreakBefore || c.pdf.PageNo() == 0 {
			c.pdf.AddPage()
		}
		if b.Section == types.SectionCover {
			c.paintCover(b, index)
		} else {
			c.paintSection(b, index)
		}
	case types.BlockContractBody:
		c.pdf.AddPage()
		c.paintContract(b)
	case types.BlockInvoiceHeader:
		c.pdf.AddPage()
		c.paintInvoiceHeader(b)
	case types.BlockLineItem:
		c.paintLineItem(b)
	case types.BlockTotals:
		c.paintTotals(b)
	case types.BlockNotes:
		c.paintNotes(b)
	}
}

// txt normalizes and translates text for the core fonts.
func (c *canvas) txt(s string) string {
	return c.tr(normalizeText(s))
}

func (c *canvas) setText(col rgb) { c.pdf.SetTextColor(col.R, col.G, col.B) }
func (c *canvas) setFill(col rgb) { c.pdf.SetFillColor(col.R, col.G, col.B) }
func (c *canvas) setDraw(col rgb) { c.pdf.SetDrawColor(col.R, col.G, col.B) }

// remaining is the vertical space left above the bottom margin.
func (c *canvas) remaining() float64 {
	return pageHeight - marginBottom - c.pdf.GetY()
}

// ensureSpace starts a new page when h points do not fit on the current one.
func (c *canvas) ensureSpace(h float64) bool {
	if c.remaining() >= h {
		return false
	}
	c.pdf.AddPage()
	return true
}

func (c *canvas) pageBackground() {
	if c.colors.background == white {
		return
	}
	c.setFill(c.colors.background)
	c.pdf.Rect(0, 0, pageWidth, pageHeight, "F")
}

func (c *canvas) footer() {
	if c.meta.Kind == types.KindProposal && c.pdf.PageNo() == 1 {
		return
	}
	y := pageHeight - marginBottom + 22
	c.setDraw(c.colors.borderLine)
	c.pdf.SetLineWidth(0.5)
	c.pdf.Line(marginX, y, pageWidth-marginX, y)

	c.pdf.SetFont(c.bodyFont, "", sizeSmall)
	c.setText(c.colors.textSecondary)
	c.pdf.SetXY(marginX, y+6)
	c.pdf.CellFormat(contentWidth/2, lineSmall, c.txt(c.agency.Name), "", 0, "L", false, 0, "")
	c.pdf.CellFormat(contentWidth/2, lineSmall, fmt.Sprintf("Page %d", c.pdf.PageNo()), "", 0, "R", false, 0, "")
}

// textHeight measures text wrapped at full content width in the given font.
func (c *canvas) textHeight(text, family, style string, size, lineH float64) float64 {
	text = strings.TrimRight(text, " \n")
	if text == "" {
		return 0
	}
	c.pdf.SetFont(family, style, size)
	return float64(len(c.pdf.SplitLines([]byte(c.txt(text)), contentWidth))) * lineH
}

// fitHeight shrinks an image box of h points so that it and reserve points of
// trailing content fit on the current page. When the reserve alone leaves less
// than minImageHeight, the box only has to fit the page itself.
func (c *canvas) fitHeight(h, reserve float64) float64 {
	avail := c.remaining() - reserve - 1
	if avail < minImageHeight {
		avail = c.remaining()
	}
	if avail < minImageHeight {
		return h
	}
	return min(h, avail)
}

// paintImage draws a block's image, or its placeholder, at full content width and
// advances past it. The box shrinks to keep reserve points free below it, and the
// bitmap is cropped to the shrunken box around its center. The image never splits:
// a new page starts when even the shrunken box does not fit.
func (c *canvas) paintImage(index, heightPx int, reserve float64) {
	w, full := boxPt(heightPx)
	if full <= 0 {
		return
	}
	h := c.fitHeight(full, reserve)
	c.ensureSpace(h)
	x, y := marginX, c.pdf.GetY()

	if c.shaded {
		c.pdf.SetAlpha(c.shadow.Alpha, "Normal")
		c.setFill(c.shadow.Color)
		c.roundedRect(x+c.shadow.DX, y+c.shadow.DY, w, h, "F")
		c.pdf.SetAlpha(1, "Normal")
	}

	name := ""
	if index >= 0 && index < len(c.blockImages) {
		name = c.blockImages[index]
	}
	if name == "" {
		c.placeholder(x, y, w, h)
	} else {
		clipped := c.radius > 0 || h < full
		switch {
		case c.radius > 0:
			c.pdf.ClipRoundedRect(x, y, w, h, c.radius, false)
		case h < full:
			c.pdf.ClipRect(x, y, w, h, false)
		}
		c.pdf.ImageOptions(name, x, y-(full-h)/2, w, full, false, imageOpts, 0, "")
		if clipped {
			c.pdf.ClipEnd()
		}
	}
	c.pdf.SetY(y + h)
}

// placeholder is a blank box standing in for an image that could not be loaded.
func (c *canvas) placeholder(x, y, w, h float64) {
	c.setFill(c.colors.surface)
	c.setDraw(c.colors.borderLine)
	c.pdf.SetLineWidth(0.5)
	c.roundedRect(x, y, w, h, "FD")
}

func (c *canvas) roundedRect(x, y, w, h float64, style string) {
	if c.radius > 0 {
		c.pdf.RoundedRect(x, y, w, h, c.radius, "1234", style)
		return
	}
	c.pdf.Rect(x, y, w, h, style)
}
