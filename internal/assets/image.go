// Package assets resolves image references into bytes ready for embedding in a PDF.
package assets

import (
	"bytes"
	"image"
	"image/jpeg"

	// Registered decoders for image.Decode
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxSourcePixels rejects images whose decoded size would be unreasonable.
const maxSourcePixels = 50_000_000

// jpegQuality is used for every re-encoded image.
const jpegQuality = 85

// ImageTypeJPEG is the fpdf image type of every prepared image.
const ImageTypeJPEG = "JPG"

// Image is a decoded, resized and re-encoded image.
type Image struct {
	Data   []byte
	Type   string
	Width  int // pixels
	Height int // pixels
}

// Fit selects how a source image is mapped onto its target box.
type Fit int

const (
	// FitCover fills the box exactly, cropping the overflow around the center.
	FitCover Fit = iota
	// FitContain scales the whole image to fit inside the box.
	FitContain
)

// decode sniffs and decodes raw image bytes.
func decode(data []byte) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSourcePixels {
		return nil, format, errImageSize
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, err
	}
	return img, format, nil
}

// coverCrop scales src to exactly w x h, preserving aspect ratio by trimming the
// longer dimension equally on both sides.
func coverCrop(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	crop := b
	if sw*h > sh*w {
		cw := max(1, sh*w/h)
		x0 := b.Min.X + (sw-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else {
		ch := max(1, sw*h/w)
		y0 := b.Min.Y + (sh-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.BiLinear.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)
	return dst
}

// containFit scales src down to fit within maxW x maxH. Images that already fit
// keep their size.
func containFit(src image.Image, maxW, maxH int) *image.RGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	w, h := sw, sh
	if w > maxW || h > maxH {
		if sw*maxH > sh*maxW {
			w, h = maxW, max(1, sh*maxW/sw)
		} else {
			w, h = max(1, sw*maxH/sh), maxH
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// prepare decodes raw bytes and produces a JPEG sized for a w x h pixel box.
func prepare(data []byte, w, h int, fit Fit) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, errImageSize
	}
	src, _, err := decode(data)
	if err != nil {
		return nil, err
	}

	var out *image.RGBA
	if fit == FitContain {
		out = containFit(src, w, h)
	} else {
		out = coverCrop(src, w, h)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return &Image{
		Data:   buf.Bytes(),
		Type:   ImageTypeJPEG,
		Width:  out.Bounds().Dx(),
		Height: out.Bounds().Dy(),
	}, nil
}
