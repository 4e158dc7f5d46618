// Package htmlsanitize cleans backend-supplied text before it is rendered
// as HTML. Dish descriptions are free text entered by staff; they may carry
// light formatting but never scripts, styles, or embedded frames.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy = newPolicy()
	strict = bluemonday.StrictPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "ul", "ol", "li", "span")
	p.AllowStandardURLs()
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize returns s with everything outside the formatting allow-list removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for direct template output.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s has no HTML tags.
func IsPlainText(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		if end := strings.IndexByte(s[i:], '>'); end > 1 {
			next := s[i+1]
			if next == '/' || (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
				return false
			}
		}
	}
	return true
}

// PlainTextToHTML escapes s and turns newlines into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders plain text as a paragraph and sanitizes
// anything that already looks like HTML.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}

// Summary strips all markup and cuts the result to at most max runes,
// adding an ellipsis when it had to cut. Used on list cards.
func Summary(s string, max int) string {
	text := strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	r := []rune(text)
	return strings.TrimSpace(string(r[:max])) + "…"
}
