// Package htmlutils provides small HTML processing helpers for feed snippets.
package htmlutils

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTMLTags removes markup and entity-encodes nothing: tags are dropped,
// entities decoded, and whitespace collapsed.
func StripHTMLTags(s string) string {
	s = tagRegex.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}
