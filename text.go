package recipex

import "unicode/utf8"

// DefaultMaxTextChars is the page text budget for semantic comparison.
const DefaultMaxTextChars = 30000

// TextExtractor reduces a page to the plain text a reader would see,
// without scripts, styles and site chrome.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// TruncateText cuts s to at most max runes. A non-positive max leaves s
// unchanged.
func TruncateText(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
