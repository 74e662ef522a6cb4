// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import "math"

// Page geometry in points (A4 portrait).
const (
	pageWidth    = 595.28
	pageHeight   = 841.89
	marginX      = 48.0
	marginTop    = 56.0
	marginBottom = 64.0
	contentWidth = pageWidth - 2*marginX

	// pxToPt converts CSS pixels at 96 dpi into points.
	pxToPt = 0.75
	// imageScale renders bitmaps at twice their box size for print sharpness.
	imageScale = 2
)

// Type scale in points.
const (
	sizeCoverTitle = 34.0
	sizeTitle      = 22.0
	sizeLabel      = 9.0
	sizeBody       = 11.0
	sizeSmall      = 9.0
	lineBody       = 16.0
	lineSmall      = 12.0
)

// Cover band geometry.
const (
	coverBandHeight = 250.0
	logoMaxWidthPx  = 240
	logoMaxHeightPx = 80
)

// minImageHeight is the smallest box an image is shrunk to before it is moved
// to a page of its own instead.
const minImageHeight = 96.0

// boxPx returns the pixel box an image of heightPx occupies at full content width.
func boxPx(heightPx int) (w, h int) {
	return int(math.Round(contentWidth / pxToPt)), heightPx
}

// boxPt converts a pixel height at full content width into a point box.
func boxPt(heightPx int) (w, h float64) {
	return contentWidth, float64(heightPx) * pxToPt
}
