// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import (
	"strings"
	"unicode"
)

// normalizeText prepares free text for the single-byte core fonts: line endings
// become \n, tabs become spaces, exotic spaces collapse to a plain space, and
// control and zero-width characters are dropped. Runes outside the code page are
// left for the translator.
func normalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\r':
			result.WriteByte('\n')
		case '\t':
			result.WriteString("    ")
		case '\u00A0', '\u2007', '\u202F', '\u2002', '\u2003', '\u2009':
			result.WriteByte(' ')
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
		case '\u2010', '\u2011', '\u2012':
			result.WriteByte('-')
		case '•', '\u25CF', '\u25AA', '\u2043':
			result.WriteRune('•')
		default:
			if r != '\n' && unicode.IsControl(r) {
				continue
			}
			result.WriteRune(r)
		}
	}

	return result.String()
}
