// Package htmlsanitize cleans user-supplied text before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element; only text content survives.
var strict = bluemonday.StrictPolicy()

// maxPasses bounds the sanitize/decode loop for deeply nested encodings.
const maxPasses = 8

// PlainText strips all markup from s and returns the remaining text,
// trimmed. Entities are decoded so "Tom &amp; Jerry" is stored as
// "Tom & Jerry". Decoding can expose markup that was entity-encoded, so
// the text is sanitized again until it stops changing.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return strings.TrimSpace(s)
	}
	out := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// Still changing after maxPasses: keep the encoded form.
	return strings.TrimSpace(strict.Sanitize(out))
}

// IsPlainText reports whether s contains nothing that looks like a tag
// or an entity.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<&")
}
