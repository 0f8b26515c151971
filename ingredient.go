package recipex

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FractionPolicy selects how slash fractions are resolved.
type FractionPolicy string

// Fraction policies.
const (
	FractionDecimal FractionPolicy = "decimal" // "1 1/2" becomes 1.5
	FractionLiteral FractionPolicy = "literal" // "1 1/2" stays "1 1/2"
)

// RangePolicy selects how a quantity range such as "2-3" is resolved.
type RangePolicy string

// Range policies.
const (
	RangeFirst   RangePolicy = "first"
	RangeMax     RangePolicy = "max"
	RangeMean    RangePolicy = "mean"
	RangeLiteral RangePolicy = "literal"
)

// AmountFormat selects whether resolved quantities are emitted as JSON
// numbers or as digit strings.
type AmountFormat string

// Amount formats.
const (
	AmountNumber AmountFormat = "number"
	AmountString AmountFormat = "string"
)

// DefaultMinNameLength is the shortest ingredient name accepted.
const DefaultMinNameLength = 2

// IngredientRules configures the ingredient engine for one site.
// Zero values select the defaults: decimal glyphs and fractions, first
// value of a range, numeric amounts, parentheses stripped.
type IngredientRules struct {
	// Units is the measurement vocabulary, matched case-insensitively.
	Units []string
	// Fillers are phrases removed from names wherever they appear.
	Fillers []string
	// Descriptors are words removed from the start of names.
	Descriptors []string
	// TrailingClauses are words that, after a comma, end the name.
	TrailingClauses []string

	StripAfterComma bool
	KeepParentheses bool
	Lowercase       bool
	// NameFirst lines put the quantity after the name ("砂糖 大さじ1").
	NameFirst bool
	// Joiners are words written between a whole number and its fraction.
	Joiners []string

	Glyphs        GlyphPolicy
	Fractions     FractionPolicy
	Ranges        RangePolicy
	Amounts       AmountFormat
	MinNameLength int
}

// WithLocale returns r with the locale's vocabulary added in front of the
// site's own lists. Duplicates are dropped. A site without its own minimum
// name length takes the locale's.
func (r IngredientRules) WithLocale(l Locale) IngredientRules {
	r.Units = mergeWords(l.Units, r.Units)
	r.Fillers = mergeWords(l.Fillers, r.Fillers)
	r.Descriptors = mergeWords(l.Descriptors, r.Descriptors)
	r.TrailingClauses = mergeWords(l.TrailingClauses, r.TrailingClauses)
	r.Joiners = mergeWords(l.Joiners, r.Joiners)
	if r.MinNameLength == 0 {
		r.MinNameLength = l.MinNameLength
	}
	return r
}

// Validate returns an EINVALID error for unknown policy names.
func (r IngredientRules) Validate() error {
	switch r.Glyphs {
	case "", GlyphDecimal, GlyphFraction:
	default:
		return Errorf(EINVALID, "unknown glyph policy %q", r.Glyphs)
	}
	switch r.Fractions {
	case "", FractionDecimal, FractionLiteral:
	default:
		return Errorf(EINVALID, "unknown fraction policy %q", r.Fractions)
	}
	switch r.Ranges {
	case "", RangeFirst, RangeMax, RangeMean, RangeLiteral:
	default:
		return Errorf(EINVALID, "unknown range policy %q", r.Ranges)
	}
	switch r.Amounts {
	case "", AmountNumber, AmountString:
	default:
		return Errorf(EINVALID, "unknown amount format %q", r.Amounts)
	}
	if r.MinNameLength < 0 {
		return Errorf(EINVALID, "negative minimum name length")
	}
	return nil
}

// quantityPattern matches one quantity. A comma followed by exactly three
// digits groups thousands ("1,000"); any other comma is a decimal point.
const quantityPattern = `(?:\d+\s+\d+/\d+|\d+/\d+|\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:[.,]\d+)?|[.,]\d+)`

// rangePattern is a quantity optionally followed by a dash and another
// quantity.
var rangePattern = quantityPattern + `(?:\s*[-–—~]\s*` + quantityPattern + `)?`

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	rangeSplit    = regexp.MustCompile(`\s*[-–—~]\s*`)
	mixedNumber   = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)$`)
	slashFraction = regexp.MustCompile(`^(\d+)/(\d+)$`)
	thousands     = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
)

// IngredientParser turns free-text ingredient lines into Ingredients
// according to a site's IngredientRules. It is safe for concurrent use.
type IngredientParser struct {
	rules       IngredientRules
	line        *regexp.Regexp
	fillers     *regexp.Regexp
	descriptors *regexp.Regexp
	trailing    *regexp.Regexp
	joiners     *regexp.Regexp
}

// NewIngredientParser compiles rules into a parser.
func NewIngredientParser(rules IngredientRules) (*IngredientParser, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rules.Glyphs == "" {
		rules.Glyphs = GlyphDecimal
	}
	if rules.Fractions == "" {
		rules.Fractions = FractionDecimal
	}
	if rules.Ranges == "" {
		rules.Ranges = RangeFirst
	}
	if rules.Amounts == "" {
		rules.Amounts = AmountNumber
	}
	if rules.MinNameLength == 0 {
		rules.MinNameLength = DefaultMinNameLength
	}

	p := &IngredientParser{rules: rules}

	units := alternation(rules.Units)
	var expr string
	switch {
	case rules.NameFirst && units != "":
		// A unit alone ("塩 適量") needs a space before it so that names
		// ending in a unit character stay whole.
		expr = `(?i)^(.+?)(?:\s*(?:(` + units + `)\s*)?(` + rangePattern + `)\s*(` + units + `)?|\s+(` + units + `))\.?$`
	case rules.NameFirst:
		expr = `(?i)^(.+?)\s*()(` + rangePattern + `)()()$`
	case units != "":
		expr = `(?i)^(?:(` + rangePattern + `)\s*)?(?:(` + units + `)\.?(?:[\s,;:]+|$))?(.+)$`
	default:
		expr = `(?i)^(?:(` + rangePattern + `)\s*)?()(.+)$`
	}
	var err error
	if p.line, err = regexp.Compile(expr); err != nil {
		return nil, Errorf(EINVALID, "ingredient pattern: %v", err)
	}

	if alt := alternation(rules.Fillers); alt != "" {
		if p.fillers, err = regexp.Compile(`(?i)(^|[\s,;(])(?:` + alt + `)([\s,;.)]|$)`); err != nil {
			return nil, Errorf(EINVALID, "filler pattern: %v", err)
		}
	}
	if alt := alternation(rules.Descriptors); alt != "" {
		if p.descriptors, err = regexp.Compile(`(?i)^(?:(?:` + alt + `)\s+)+`); err != nil {
			return nil, Errorf(EINVALID, "descriptor pattern: %v", err)
		}
	}
	if alt := alternation(rules.Joiners); alt != "" {
		if p.joiners, err = regexp.Compile(`(\d)\s*(?:` + alt + `)\s*(\d+\s*[/⁄]\s*\d+|[` + fractionGlyphChars + `])`); err != nil {
			return nil, Errorf(EINVALID, "joiner pattern: %v", err)
		}
	}
	if alt := alternation(rules.TrailingClauses); alt != "" {
		if p.trailing, err = regexp.Compile(`(?i),\s*(?:` + alt + `)(?:[\s,;.]|$).*$`); err != nil {
			return nil, Errorf(EINVALID, "trailing clause pattern: %v", err)
		}
	}
	return p, nil
}

// Rules returns the effective rules, defaults filled in.
func (p *IngredientParser) Rules() IngredientRules {
	return p.rules
}

// Parse converts one ingredient line. It returns nil for empty input and
// for lines whose cleaned name is shorter than the minimum name length.
// A line the quantity pattern cannot match becomes the name itself, with
// fillers and asides removed.
func (p *IngredientParser) Parse(line string) *Ingredient {
	text := Normalize(line)
	if text == "" {
		return nil
	}
	if p.rules.Lowercase {
		text = strings.ToLower(text)
	}
	resolved := text
	if p.joiners != nil {
		resolved = p.joiners.ReplaceAllString(resolved, "$1 $2")
	}
	resolved = ResolveGlyphs(resolved, p.rules.Glyphs)

	m := p.line.FindStringSubmatch(resolved)
	if m == nil {
		name := p.cleanName(text)
		if utf8.RuneCountInString(name) < p.rules.MinNameLength {
			return nil
		}
		return &Ingredient{Name: name}
	}

	var qty, unit, name string
	if p.rules.NameFirst {
		name, qty = m[1], m[3]
		switch {
		case m[2] != "":
			unit = m[2]
		case m[4] != "":
			unit = m[4]
		default:
			unit = m[5]
		}
	} else {
		qty, unit, name = m[1], m[2], m[3]
	}

	name = p.cleanName(name)
	if utf8.RuneCountInString(name) < p.rules.MinNameLength {
		return nil
	}

	ing := &Ingredient{Name: name, Amount: p.resolveQuantity(qty)}
	if unit = strings.TrimSpace(unit); unit != "" {
		ing.Unit = &unit
	}
	return ing
}

// ParseAll parses lines and drops the ones that yield nothing. It
// returns nil when no line produced an ingredient.
func (p *IngredientParser) ParseAll(lines []string) []Ingredient {
	var out []Ingredient
	for _, line := range lines {
		if ing := p.Parse(line); ing != nil {
			out = append(out, *ing)
		}
	}
	return out
}

func (p *IngredientParser) cleanName(name string) string {
	if !p.rules.KeepParentheses {
		name = parenthetical.ReplaceAllString(name, " ")
	}
	if p.rules.StripAfterComma {
		if i := strings.IndexAny(name, ",;"); i >= 0 {
			name = name[:i]
		}
	} else if p.trailing != nil {
		name = p.trailing.ReplaceAllString(name, "")
	}
	if p.fillers != nil {
		// Adjacent fillers share a separator, so one pass can leave the
		// second behind.
		for i := 0; i < 3; i++ {
			next := p.fillers.ReplaceAllString(name, "$1$2")
			if next == name {
				break
			}
			name = next
		}
	}
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.Trim(name, " ,;:-–—.*")
	if p.descriptors != nil {
		name = p.descriptors.ReplaceAllString(name, "")
	}
	name = strings.Trim(name, " ,;:-–—.*")
	return name
}

func (p *IngredientParser) resolveQuantity(raw string) Amount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Amount{}
	}

	parts := rangeSplit.Split(raw, 2)
	if len(parts) == 2 {
		if p.rules.Ranges == RangeLiteral {
			return TextAmount(parts[0] + "-" + parts[1])
		}
		lo, okLo := quantityValue(parts[0])
		hi, okHi := quantityValue(parts[1])
		if !okLo || !okHi {
			return TextAmount(raw)
		}
		switch p.rules.Ranges {
		case RangeMax:
			if hi < lo {
				return p.amount(parts[0], lo)
			}
			return p.amount(parts[1], hi)
		case RangeMean:
			return p.format(math.Round((lo+hi)/2*1000) / 1000)
		default:
			return p.amount(parts[0], lo)
		}
	}

	v, ok := quantityValue(raw)
	if !ok {
		return TextAmount(raw)
	}
	return p.amount(raw, v)
}

// amount applies the fraction policy: literal fractions keep their text.
func (p *IngredientParser) amount(text string, v float64) Amount {
	if p.rules.Fractions == FractionLiteral && strings.Contains(text, "/") {
		return TextAmount(text)
	}
	return p.format(v)
}

func (p *IngredientParser) format(v float64) Amount {
	if p.rules.Amounts == AmountString {
		return TextAmount(FormatNumber(v))
	}
	return NumberAmount(v)
}

// quantityValue converts "2", "1.5", "1,5", "1,000", "1/2" or "1 1/2" to a
// number.
func quantityValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if m := mixedNumber.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.Atoi(m[1])
		f, ok := fraction(m[2], m[3])
		if !ok {
			return 0, false
		}
		return roundQuantity(float64(whole) + f), true
	}
	if m := slashFraction.FindStringSubmatch(s); m != nil {
		f, ok := fraction(m[1], m[2])
		if !ok {
			return 0, false
		}
		return roundQuantity(f), true
	}
	if thousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func fraction(num, den string) (float64, bool) {
	n, err1 := strconv.Atoi(num)
	d, err2 := strconv.Atoi(den)
	if err1 != nil || err2 != nil || d == 0 {
		return 0, false
	}
	return float64(n) / float64(d), true
}

func roundQuantity(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// alternation builds a regexp alternation of literal words, longest
// first so that "gr" wins over "g".
func alternation(words []string) string {
	if len(words) == 0 {
		return ""
	}
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			sorted = append(sorted, w)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return strings.Join(quoted, "|")
}

func mergeWords(base, extra []string) []string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, w := range list {
			k := strings.ToLower(w)
			if w == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, w)
		}
	}
	return out
}
