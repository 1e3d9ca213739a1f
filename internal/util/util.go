// internal/util/util.go
package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks text that was cut short.
const Ellipsis = "..."

var markupReplacer = strings.NewReplacer("[[", "", "]]", "", "'''", "")

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + Ellipsis
}

// StripMarkup removes wiki link and bold markers.
func StripMarkup(text string) string {
	return markupReplacer.Replace(text)
}

// CollapseWhitespace trims text and joins its fields with single spaces. The
// file, group, record and unit separators (U+001C to U+001F) count as spaces.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.FieldsFunc(text, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// Excerpt truncates text to maxRunes and then cleans it for single-line display.
func Excerpt(text string, maxRunes int) string {
	return CollapseWhitespace(StripMarkup(TruncateRunes(text, maxRunes)))
}

// MaskSecret keeps the first and last keep runes of value visible. Values no
// longer than keep are replaced entirely.
func MaskSecret(value string, keep int) string {
	runes := []rune(value)
	if len(runes) <= keep {
		return "***"
	}
	return string(runes[:keep]) + Ellipsis + string(runes[len(runes)-keep:])
}
