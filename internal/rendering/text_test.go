package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain", input: "Hello world", expected: "Hello world"},
		{name: "crlf", input: "a\r\nb\rc", expected: "a\nb\nc"},
		{name: "tab", input: "a\tb", expected: "a    b"},
		{name: "nbsp", input: "a\u00A0b", expected: "a b"},
		{name: "zero width", input: "a\u200Bb\uFEFF", expected: "ab"},
		{name: "control", input: "a\x07b", expected: "ab"},
		{name: "hyphens", input: "non\u2011breaking", expected: "non-breaking"},
		{name: "bullets", input: "\u25CF one", expected: "• one"},
		{name: "keeps code page runes", input: "café – €5", expected: "café – €5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeText(tt.input))
		})
	}
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, rgb{0x1E, 0x3A, 0x8A}, parseHex("#1E3A8A", black))
	assert.Equal(t, rgb{0xFF, 0xFF, 0xFF}, parseHex("#fff", black))
	assert.Equal(t, white, parseHex("blue", white))
	assert.Equal(t, white, parseHex("#12345G", white))
}

func TestParseGradient(t *testing.T) {
	g := parseGradient("linear-gradient(135deg, #1E3A8A 0%, #3B82F6 100%)", black, black)
	assert.Equal(t, 135.0, g.Angle)
	assert.Equal(t, rgb{0x1E, 0x3A, 0x8A}, g.From)
	assert.Equal(t, rgb{0x3B, 0x82, 0xF6}, g.To)

	x1, y1, x2, y2 := g.vector()
	assert.Less(t, x1, x2, "135deg runs left to right")
	assert.Greater(t, y1, y2, "135deg runs top to bottom")

	fallback := parseGradient("", white, black)
	assert.Equal(t, 180.0, fallback.Angle)
	assert.Equal(t, white, fallback.From)
	assert.Equal(t, black, fallback.To)
}

func TestParseShadow(t *testing.T) {
	s, ok := parseShadow("0 4px 12px rgba(15, 23, 42, 0.12)")
	assert.True(t, ok)
	assert.InDelta(t, 3.0, s.DY, 1e-9)
	assert.Equal(t, rgb{15, 23, 42}, s.Color)
	assert.InDelta(t, 0.12, s.Alpha, 1e-9)

	_, ok = parseShadow("none")
	assert.False(t, ok)
	_, ok = parseShadow("")
	assert.False(t, ok)
}

func TestCoreFont(t *testing.T) {
	assert.Equal(t, "Helvetica", coreFont("Inter, sans-serif"))
	assert.Equal(t, "Times", coreFont("Playfair Display, serif"))
	assert.Equal(t, "Times", coreFont("Georgia"))
	assert.Equal(t, "Courier", coreFont("JetBrains Mono, monospace"))
	assert.Equal(t, "Helvetica", coreFont("Comic Sans MS"))
	assert.Equal(t, "Helvetica", coreFont(""))
}
