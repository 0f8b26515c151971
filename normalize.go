package recipex

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// glyphStripper removes checkbox and bullet marks that recipe plugins
// put in front of list items, plus invisible spacing characters.
var glyphStripper = strings.NewReplacer(
	"▢", " ",
	"□", " ",
	"✓", " ",
	"✔", " ",
	"▪", " ",
	"▫", " ",
	"●", " ",
	"○", " ",
	"■", " ",
	"•", " ",
	"\u00a0", " ",
	"\u202f", " ",
	"\u2009", " ",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// Normalize decodes HTML entities, strips decorative glyphs, collapses
// whitespace runs to single spaces and trims the result.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	// Entities may be encoded any number of times ("&amp;amp;") and may
	// decode into glyphs, so passes repeat until nothing changes. A pass
	// that changes the text either shortens it or leaves it in NFC, so the
	// loop ends.
	for {
		next := normalizePass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizePass(s string) string {
	s = glyphStripper.Replace(s)
	s = html.UnescapeString(s)
	s = norm.NFC.String(s)
	s = glyphStripper.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizePtr normalizes *s and returns nil when s is nil or the
// normalized text is empty.
func NormalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	return String(Normalize(*s))
}

var glued = regexp.MustCompile(`(\d)(\p{L})`)

// NormalizeTimeText tidies a duration scraped from page text, inserting
// the space that templates often drop ("30minutes" becomes "30 minutes").
func NormalizeTimeText(s string) string {
	return Normalize(glued.ReplaceAllString(Normalize(s), "$1 $2"))
}
