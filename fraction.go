package recipex

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// GlyphPolicy selects how Unicode fraction glyphs are rewritten.
type GlyphPolicy string

// Glyph policies.
const (
	// GlyphDecimal rewrites "1½" as "1.5" and "½" as "0.5".
	GlyphDecimal GlyphPolicy = "decimal"
	// GlyphFraction rewrites "1½" as "1 1/2" and "½" as "1/2".
	GlyphFraction GlyphPolicy = "fraction"
)

type glyph struct {
	num, den int
	decimal  float64
}

// fractionGlyphs maps vulgar fraction characters to their value. The
// decimals for thirds and sixths are rounded the way recipe sites print
// them.
var fractionGlyphs = map[rune]glyph{
	'½': {1, 2, 0.5},
	'⅓': {1, 3, 0.33},
	'⅔': {2, 3, 0.67},
	'¼': {1, 4, 0.25},
	'¾': {3, 4, 0.75},
	'⅕': {1, 5, 0.2},
	'⅖': {2, 5, 0.4},
	'⅗': {3, 5, 0.6},
	'⅘': {4, 5, 0.8},
	'⅙': {1, 6, 0.17},
	'⅚': {5, 6, 0.83},
	'⅛': {1, 8, 0.125},
	'⅜': {3, 8, 0.375},
	'⅝': {5, 8, 0.625},
	'⅞': {7, 8, 0.875},
}

// fractionGlyphChars lists the keys of fractionGlyphs for use in a regexp
// character class.
const fractionGlyphChars = "½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞"

// ResolveGlyphs replaces fraction glyphs with ASCII text so that quantity
// patterns, which only know ASCII digits, can match. A glyph directly
// after a whole number (optionally separated by one space) forms a mixed
// number. The Unicode fraction slash becomes "/".
func ResolveGlyphs(s string, policy GlyphPolicy) string {
	if !strings.ContainsFunc(s, isFractionRune) {
		return s
	}
	in := []rune(s)
	out := make([]rune, 0, len(in)+8)
	for i, r := range in {
		if r == '⁄' {
			out = append(out, '/')
			continue
		}
		g, ok := fractionGlyphs[r]
		if !ok {
			out = append(out, r)
			continue
		}

		whole, rest := trailingWhole(out)
		var text string
		switch {
		case policy == GlyphFraction && whole != "":
			text = whole + " " + strconv.Itoa(g.num) + "/" + strconv.Itoa(g.den)
		case policy == GlyphFraction:
			text = strconv.Itoa(g.num) + "/" + strconv.Itoa(g.den)
		case whole != "":
			w, _ := strconv.Atoi(whole)
			text = FormatNumber(math.Round((float64(w)+g.decimal)*1000) / 1000)
		default:
			text = FormatNumber(g.decimal)
		}
		out = append(rest, []rune(text)...)

		if i+1 < len(in) && unicode.IsLetter(in[i+1]) {
			out = append(out, ' ')
		}
	}
	return string(out)
}

// trailingWhole splits a trailing integer (and one separating space) off
// out. It returns "" when out does not end in a standalone integer.
func trailingWhole(out []rune) (string, []rune) {
	end := len(out)
	if end > 0 && out[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 && unicode.IsDigit(out[start-1]) && out[start-1] < unicode.MaxASCII {
		start--
	}
	if start == end {
		return "", out
	}
	if start > 0 {
		if p := out[start-1]; p == '.' || p == ',' || p == '/' {
			return "", out
		}
	}
	return string(out[start:end]), out[:start]
}

func isFractionRune(r rune) bool {
	_, ok := fractionGlyphs[r]
	return ok || r == '⁄'
}
