// Package compose turns a validated document request into an ordered block sequence.
package compose

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlTagPattern detects markup produced by the rich text editor. Plain text that
// merely contains angle brackets is left alone.
var htmlTagPattern = regexp.MustCompile(`(?i)</?(p|div|br|h[1-6]|ul|ol|li|strong|em|b|i|u|span|a|blockquote|section|table|tr|td)\b[^>]*>`)

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true, "tr": true, "pre": true,
}

// looksLikeHTML reports whether content carries editor markup.
func looksLikeHTML(content string) bool {
	return htmlTagPattern.MatchString(content)
}

// flattenHTML reduces editor markup to plain paragraphs separated by blank lines.
// List items become bullet lines and <br> becomes a line break.
func flattenHTML(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", err
	}
	var w paragraphWriter
	w.walk(doc.Find("body"))
	return w.String(), nil
}

// paragraphWriter accumulates text with HTML whitespace collapsing and
// deferred paragraph or line breaks.
type paragraphWriter struct {
	sb      strings.Builder
	pending string
	space   bool
}

func (w *paragraphWriter) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		switch name := goquery.NodeName(child); {
		case name == "#text":
			w.text(child.Text())
		case name == "br":
			w.lineBreak()
		case name == "script" || name == "style" || name == "head":
		case name == "li":
			w.lineBreak()
			w.text("• ")
			w.walk(child)
			w.lineBreak()
		case blockElements[name]:
			w.paragraphBreak()
			w.walk(child)
			w.paragraphBreak()
		default:
			w.walk(child)
		}
	})
}

func (w *paragraphWriter) text(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && w.sb.Len() > 0 {
			w.space = true
		}
		return
	}
	leading := s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r'
	trailing := strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\t")

	if w.pending != "" {
		if w.sb.Len() > 0 {
			w.sb.WriteString(w.pending)
		}
		w.pending = ""
	} else if (w.space || leading) && w.sb.Len() > 0 {
		w.sb.WriteByte(' ')
	}
	w.sb.WriteString(strings.Join(fields, " "))
	w.space = trailing
}

func (w *paragraphWriter) lineBreak() {
	if w.pending == "" {
		w.pending = "\n"
	}
	w.space = false
}

func (w *paragraphWriter) paragraphBreak() {
	w.pending = "\n\n"
	w.space = false
}

func (w *paragraphWriter) String() string {
	return w.sb.String()
}
