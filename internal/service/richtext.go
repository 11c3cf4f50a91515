package service

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizePolicy = bluemonday.UGCPolicy()

	// Detects whether the stored text already carries markup.
	htmlTagRe = regexp.MustCompile(`<\w+[\s>]`)

	mdBoldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalicRe = regexp.MustCompile(`\*(.+?)\*`)
)

// RenderSafeHTML prepares a package description for public serving.
// Admin-entered descriptions are either HTML (from the rich editor) or
// legacy Markdown-ish plain text; HTML is sanitized as-is, everything else
// goes through the lightweight Markdown conversion first.
func RenderSafeHTML(text string) string {
	if text == "" {
		return ""
	}
	if htmlTagRe.MatchString(text) {
		return sanitizePolicy.Sanitize(text)
	}
	return sanitizePolicy.Sanitize(mdToHTML(text))
}

// mdToHTML applies the three conversion rules legacy descriptions rely on:
// **bold**, *italic* and newline to <br>. Anything fancier was never stored.
func mdToHTML(text string) string {
	out := mdBoldRe.ReplaceAllString(text, "<strong>$1</strong>")
	out = mdItalicRe.ReplaceAllString(out, "<em>$1</em>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
