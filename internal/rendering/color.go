// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// rgb is an 8-bit color.
type rgb struct {
	R, G, B int
}

var (
	black = rgb{0, 0, 0}
	white = rgb{255, 255, 255}
)

// parseHex parses "#RRGGBB" (or "#RGB"). Invalid input yields fallback.
func parseHex(s string, fallback rgb) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}
}

// mix blends c toward o by t in [0,1].
func (c rgb) mix(o rgb, t float64) rgb {
	lerp := func(a, b int) int { return int(math.Round(float64(a) + (float64(b)-float64(a))*t)) }
	return rgb{R: lerp(c.R, o.R), G: lerp(c.G, o.G), B: lerp(c.B, o.B)}
}

// gradient is a two-stop linear gradient.
type gradient struct {
	From, To rgb
	Angle    float64 // CSS degrees: 0 points up, 90 points right
}

var (
	gradientAngle = regexp.MustCompile(`(-?\d+(?:\.\d+)?)deg`)
	gradientStop  = regexp.MustCompile(`#[0-9A-Fa-f]{6}\b|#[0-9A-Fa-f]{3}\b`)
)

// parseGradient reads the angle and first two color stops of a CSS linear-gradient.
func parseGradient(css string, from, to rgb) gradient {
	g := gradient{From: from, To: to, Angle: 180}
	if m := gradientAngle.FindStringSubmatch(css); m != nil {
		if a, err := strconv.ParseFloat(m[1], 64); err == nil {
			g.Angle = a
		}
	} else if strings.Contains(css, "to right") {
		g.Angle = 90
	}
	stops := gradientStop.FindAllString(css, 2)
	if len(stops) > 0 {
		g.From = parseHex(stops[0], from)
	}
	if len(stops) > 1 {
		g.To = parseHex(stops[1], to)
	}
	return g
}

// vector returns the gradient axis in fpdf's normalized, y-up rectangle space.
func (g gradient) vector() (x1, y1, x2, y2 float64) {
	rad := g.Angle * math.Pi / 180
	dx, dy := 0.5*math.Sin(rad), 0.5*math.Cos(rad)
	return 0.5 - dx, 0.5 - dy, 0.5 + dx, 0.5 + dy
}

// shadow is a drop shadow approximated as an offset translucent shape.
type shadow struct {
	DX, DY float64 // points
	Color  rgb
	Alpha  float64
}

var (
	shadowOffsets = regexp.MustCompile(`(-?\d+(?:\.\d+)?)(?:px)?\s+(-?\d+(?:\.\d+)?)(?:px)?`)
	shadowRGBA    = regexp.MustCompile(`rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*([\d.]+)\s*\)`)
)

// parseShadow reads a CSS box-shadow. ok is false for "none" or unparseable specs.
func parseShadow(css string) (shadow, bool) {
	css = strings.TrimSpace(css)
	if css == "" || css == "none" {
		return shadow{}, false
	}
	m := shadowOffsets.FindStringSubmatch(css)
	if m == nil {
		return shadow{}, false
	}
	dx, _ := strconv.ParseFloat(m[1], 64)
	dy, _ := strconv.ParseFloat(m[2], 64)

	s := shadow{DX: dx * pxToPt, DY: dy * pxToPt, Color: black, Alpha: 0.15}
	if c := shadowRGBA.FindStringSubmatch(css); c != nil {
		r, _ := strconv.Atoi(c[1])
		g, _ := strconv.Atoi(c[2])
		b, _ := strconv.Atoi(c[3])
		a, _ := strconv.ParseFloat(c[4], 64)
		s.Color = rgb{R: min(r, 255), G: min(g, 255), B: min(b, 255)}
		s.Alpha = math.Max(0, math.Min(a, 1))
	}
	if s.DX == 0 && s.DY == 0 {
		return shadow{}, false
	}
	return s, true
}

// coreFont maps a CSS font stack onto one of the PDF core font families.
func coreFont(stack string) string {
	lower := strings.ToLower(stack)
	switch {
	case strings.Contains(lower, "mono") || strings.Contains(lower, "courier"):
		return "Courier"
	case strings.Contains(lower, "sans"):
		return "Helvetica"
	case strings.Contains(lower, "serif") || strings.Contains(lower, "georgia") || strings.Contains(lower, "times"):
		return "Times"
	default:
		return "Helvetica"
	}
}
