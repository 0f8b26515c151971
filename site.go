package recipex

import (
	"regexp"
	"sort"
)

// GenericSiteID identifies the fallback configuration used for pages
// from sites without their own record.
const GenericSiteID = "generic"

// Selector is one DOM lookup rule for a field. Exactly one of CSS, XPath
// or Heading drives the lookup.
type Selector struct {
	// CSS selects elements with a CSS selector.
	CSS string
	// XPath selects elements with an XPath 1.0 expression.
	XPath string
	// Attr reads an attribute instead of the element text.
	Attr string
	// Heading is a regular expression matched against h1-h6 text; the
	// first following sibling matching Sibling is used.
	Heading string
	// Sibling filters the element after a Heading (default "p, ul, ol, div").
	Sibling string
}

// InstructionFormat controls how steps are flattened into one string.
type InstructionFormat struct {
	Numbered  bool
	Separator string
}

// Site is the declarative configuration for one recipe website. A site
// record replaces per-site extractor code: the engine reads it to decide
// where each field comes from and how text is parsed.
type Site struct {
	ID       string
	Domain   string
	Language string
	// BaseURL resolves relative image URLs.
	BaseURL string

	// RecipeTypes are the structured-data type tags accepted as a recipe.
	RecipeTypes []string
	// LenientJSON repairs trailing commas in embedded JSON before decoding.
	LenientJSON bool
	// Microdata enables the microdata fallback when no JSON-LD matches.
	Microdata bool
	// TitleSuffix is a regular expression removed from meta and <title>
	// titles, e.g. ` \| Site Name$`.
	TitleSuffix string
	// DeriveTotalTime fills a missing total time with the sum of the
	// structured prep and cook times.
	DeriveTotalTime bool

	Duration     DurationFormat
	Ingredients  IngredientRules
	Instructions InstructionFormat

	// Fields maps a field name to DOM rules tried in order after
	// structured data.
	Fields map[string][]Selector
}

// Types returns the accepted structured-data types, defaulting to Recipe.
func (s *Site) Types() []string {
	if len(s.RecipeTypes) == 0 {
		return []string{"Recipe"}
	}
	return s.RecipeTypes
}

// Locale returns the site's built-in locale, English when unknown.
func (s *Site) Locale() Locale {
	if l, ok := LookupLocale(s.Language); ok {
		return l
	}
	l, _ := LookupLocale("en")
	return l
}

// Validate checks that the record can drive the engine.
func (s *Site) Validate() error {
	if s.ID == "" {
		return Errorf(EINVALID, "site id required")
	}
	if s.Duration.Preset != "" && !s.Duration.Preset.Valid() {
		return Errorf(EINVALID, "site %s: unknown duration preset %q", s.ID, s.Duration.Preset)
	}
	if err := s.Ingredients.Validate(); err != nil {
		return Errorf(EINVALID, "site %s: %s", s.ID, ErrorMessage(err))
	}
	if s.TitleSuffix != "" {
		if _, err := regexp.Compile(s.TitleSuffix); err != nil {
			return Errorf(EINVALID, "site %s: title suffix: %v", s.ID, err)
		}
	}

	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !isRecipeField(name) {
			return Errorf(EINVALID, "site %s: unknown field %q", s.ID, name)
		}
		for i, sel := range s.Fields[name] {
			if sel.CSS == "" && sel.XPath == "" && sel.Heading == "" {
				return Errorf(EINVALID, "site %s: %s selector %d is empty", s.ID, name, i)
			}
			if sel.Heading != "" {
				if _, err := regexp.Compile(sel.Heading); err != nil {
					return Errorf(EINVALID, "site %s: %s heading: %v", s.ID, name, err)
				}
			}
		}
	}
	return nil
}

// IngredientParser compiles the site's ingredient rules on top of its
// locale vocabulary.
func (s *Site) IngredientParser() (*IngredientParser, error) {
	loc := s.Locale()
	rules := s.Ingredients.WithLocale(loc)
	if loc.NameFirst {
		rules.NameFirst = true
	}
	return NewIngredientParser(rules)
}

// DurationFormat returns the duration policy with locale words filled in.
func (s *Site) DurationFormat() DurationFormat {
	f := s.Duration
	if f.Preset == "" {
		f.Preset = PresetPluralizedWords
	}
	if f.Words == (DurationWords{}) {
		f.Words = s.Locale().Duration
	}
	return f
}

func isRecipeField(name string) bool {
	for _, f := range RecipeFields {
		if f == name {
			return true
		}
	}
	return false
}

// SiteRegistry looks up site configurations.
type SiteRegistry interface {
	// Site returns the configuration for id.
	// Returns ENOTFOUND if no site is registered under id.
	Site(id string) (*Site, error)

	// Sites returns all registered sites sorted by ID.
	Sites() []*Site

	// SiteForHTML picks the site a saved page belongs to, using its
	// canonical URL. Falls back to the generic site.
	SiteForHTML(html string) *Site
}
