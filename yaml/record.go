package yaml

import "github.com/fwojciec/recipex"

// siteRecord is the on-disk shape of a site configuration.
type siteRecord struct {
	ID              string                      `yaml:"id"`
	Domain          string                      `yaml:"domain"`
	Language        string                      `yaml:"language"`
	BaseURL         string                      `yaml:"base_url"`
	RecipeTypes     []string                    `yaml:"recipe_types"`
	LenientJSON     bool                        `yaml:"lenient_json"`
	Microdata       bool                        `yaml:"microdata"`
	TitleSuffix     string                      `yaml:"title_suffix"`
	DeriveTotalTime bool                        `yaml:"derive_total_time"`
	Duration        durationRecord              `yaml:"duration"`
	Ingredients     ingredientRecord            `yaml:"ingredients"`
	Instructions    instructionRecord           `yaml:"instructions"`
	Fields          map[string][]selectorRecord `yaml:"fields"`
}

type durationRecord struct {
	Preset      string `yaml:"preset"`
	FoldMinutes bool   `yaml:"fold_minutes"`
	Hour        string `yaml:"hour"`
	Hours       string `yaml:"hours"`
	Minute      string `yaml:"minute"`
	Minutes     string `yaml:"minutes"`
}

type ingredientRecord struct {
	Units           []string `yaml:"units"`
	Fillers         []string `yaml:"fillers"`
	Descriptors     []string `yaml:"descriptors"`
	TrailingClauses []string `yaml:"trailing_clauses"`
	Joiners         []string `yaml:"joiners"`
	StripAfterComma bool     `yaml:"strip_after_comma"`
	KeepParentheses bool     `yaml:"keep_parentheses"`
	Lowercase       bool     `yaml:"lowercase"`
	NameFirst       bool     `yaml:"name_first"`
	Glyphs          string   `yaml:"glyphs"`
	Fractions       string   `yaml:"fractions"`
	Ranges          string   `yaml:"ranges"`
	Amounts         string   `yaml:"amounts"`
	MinNameLength   int      `yaml:"min_name_length"`
}

type instructionRecord struct {
	Numbered  bool   `yaml:"numbered"`
	Separator string `yaml:"separator"`
}

type selectorRecord struct {
	CSS     string `yaml:"css"`
	XPath   string `yaml:"xpath"`
	Attr    string `yaml:"attr"`
	Heading string `yaml:"heading"`
	Sibling string `yaml:"sibling"`
}

func (r *siteRecord) toSite() *recipex.Site {
	s := &recipex.Site{
		ID:              r.ID,
		Domain:          r.Domain,
		Language:        r.Language,
		BaseURL:         r.BaseURL,
		RecipeTypes:     r.RecipeTypes,
		LenientJSON:     r.LenientJSON,
		Microdata:       r.Microdata,
		TitleSuffix:     r.TitleSuffix,
		DeriveTotalTime: r.DeriveTotalTime,
		Duration: recipex.DurationFormat{
			Preset:      recipex.DurationPreset(r.Duration.Preset),
			FoldMinutes: r.Duration.FoldMinutes,
			Words: recipex.DurationWords{
				Hour:    r.Duration.Hour,
				Hours:   r.Duration.Hours,
				Minute:  r.Duration.Minute,
				Minutes: r.Duration.Minutes,
			},
		},
		Ingredients: recipex.IngredientRules{
			Units:           r.Ingredients.Units,
			Fillers:         r.Ingredients.Fillers,
			Descriptors:     r.Ingredients.Descriptors,
			TrailingClauses: r.Ingredients.TrailingClauses,
			Joiners:         r.Ingredients.Joiners,
			StripAfterComma: r.Ingredients.StripAfterComma,
			KeepParentheses: r.Ingredients.KeepParentheses,
			Lowercase:       r.Ingredients.Lowercase,
			NameFirst:       r.Ingredients.NameFirst,
			Glyphs:          recipex.GlyphPolicy(r.Ingredients.Glyphs),
			Fractions:       recipex.FractionPolicy(r.Ingredients.Fractions),
			Ranges:          recipex.RangePolicy(r.Ingredients.Ranges),
			Amounts:         recipex.AmountFormat(r.Ingredients.Amounts),
			MinNameLength:   r.Ingredients.MinNameLength,
		},
		Instructions: recipex.InstructionFormat{
			Numbered:  r.Instructions.Numbered,
			Separator: r.Instructions.Separator,
		},
	}
	if len(r.Fields) > 0 {
		s.Fields = make(map[string][]recipex.Selector, len(r.Fields))
		for name, sels := range r.Fields {
			out := make([]recipex.Selector, len(sels))
			for i, sel := range sels {
				out[i] = recipex.Selector{
					CSS:     sel.CSS,
					XPath:   sel.XPath,
					Attr:    sel.Attr,
					Heading: sel.Heading,
					Sibling: sel.Sibling,
				}
			}
			s.Fields[name] = out
		}
	}
	return s
}
