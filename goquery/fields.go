package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/recipex"
)

// Generic DOM rules tried after a site's own selectors. They cover the
// common WordPress recipe plugins and schema.org microdata attributes.
var (
	genericName = []recipex.Selector{
		{CSS: `[itemtype*="schema.org/Recipe"] [itemprop="name"]`},
		{CSS: ".wprm-recipe-name, .tasty-recipes-title, .mv-create-title, .recipe-title"},
		{CSS: "h1"},
	}
	genericDescription = []recipex.Selector{
		{CSS: ".wprm-recipe-summary, .tasty-recipes-description, .mv-create-description"},
		{CSS: `[itemtype*="schema.org/Recipe"] [itemprop="description"]`},
	}
	genericIngredients = []recipex.Selector{
		{CSS: `[itemprop="recipeIngredient"], [itemprop="ingredients"]`},
		{CSS: ".wprm-recipe-ingredient"},
		{CSS: ".tasty-recipes-ingredients li, .mv-create-ingredients li"},
		{CSS: `[class*="ingredient"] li`},
	}
	genericInstructions = []recipex.Selector{
		{CSS: ".wprm-recipe-instruction-text"},
		{CSS: ".tasty-recipes-instructions li, .mv-create-instructions li"},
		{CSS: `[itemprop="recipeInstructions"]`},
		{CSS: `[class*="instruction"] li, [class*="direction"] li, [class*="method"] li`},
	}
	genericCategory = []recipex.Selector{
		{CSS: `[itemprop="recipeCategory"]`},
		{CSS: ".wprm-recipe-course, .tasty-recipes-category"},
	}
	genericNotes = []recipex.Selector{
		{CSS: ".wprm-recipe-notes, .tasty-recipes-notes, .mv-create-notes, .recipe-notes"},
		{CSS: `[class*="recipe-note"]`},
	}
	genericTags = []recipex.Selector{
		{CSS: ".wprm-recipe-keyword"},
		{CSS: `a[rel="tag"]`},
	}
	genericImages = []recipex.Selector{
		{CSS: `[itemtype*="schema.org/Recipe"] img[itemprop="image"]`, Attr: "src"},
		{CSS: `[itemprop="image"]`, Attr: "content"},
		{CSS: ".wprm-recipe-image img, .tasty-recipes-image img", Attr: "src"},
	}
)

func (p *page) dishName() *string {
	if s := recipex.String(recipex.Normalize(p.block.String("name"))); s != nil {
		return s
	}
	if s := p.firstText(p.rules(recipex.FieldDishName)); s != nil {
		return s
	}
	if s := p.firstText(genericName); s != nil {
		return s
	}
	if s := p.stripTitle(meta(p.doc, "og:title", "twitter:title")); s != nil {
		return s
	}
	return p.stripTitle(recipex.Normalize(p.doc.Find("title").First().Text()))
}

// stripTitle removes the site's title suffix, e.g. " | Site Name".
func (p *page) stripTitle(title string) *string {
	if p.suffix != nil {
		title = p.suffix.ReplaceAllString(title, "")
	}
	return recipex.String(strings.TrimSpace(title))
}

func (p *page) description() *string {
	if s := recipex.String(recipex.Normalize(p.block.String("description"))); s != nil {
		return s
	}
	if s := p.firstText(p.rules(recipex.FieldDescription)); s != nil {
		return s
	}
	if s := p.firstText(genericDescription); s != nil {
		return s
	}
	return recipex.String(meta(p.doc, "og:description", "description", "twitter:description"))
}

func (p *page) ingredients() []recipex.Ingredient {
	lines := p.block.Strings("recipeIngredient")
	if len(lines) == 0 {
		lines = p.block.Strings("ingredients")
	}
	if out := p.parser.ParseAll(lines); out != nil {
		return out
	}
	for _, sels := range [][]recipex.Selector{
		p.rules(recipex.FieldIngredients),
		genericIngredients,
		headingSelectors(p.locale.IngredientHeadings, "ul, ol, table, p"),
	} {
		if out := p.parser.ParseAll(p.firstList(sels)); out != nil {
			return out
		}
	}
	return nil
}

func (p *page) instructions() *string {
	if steps := instructionSteps(p.block["recipeInstructions"]); len(steps) > 0 {
		return p.joinSteps(steps)
	}
	for _, sels := range [][]recipex.Selector{
		p.rules(recipex.FieldInstructions),
		genericInstructions,
		headingSelectors(p.locale.InstructionHeadings, "ol, ul, p, div"),
	} {
		if steps := p.firstList(sels); len(steps) > 0 {
			return p.joinSteps(steps)
		}
	}
	return nil
}

// instructionSteps flattens schema.org instructions: a string, a list of
// strings, HowToStep objects, or HowToSection objects holding steps.
func instructionSteps(v any) []string {
	var steps []string
	switch t := v.(type) {
	case string:
		if s := recipex.Normalize(t); s != "" {
			steps = append(steps, s)
		}
	case []any:
		for _, item := range t {
			steps = append(steps, instructionSteps(item)...)
		}
	case map[string]any:
		if inner, ok := t["itemListElement"]; ok {
			return instructionSteps(inner)
		}
		for _, k := range []string{"text", "name", "description"} {
			if s, ok := t[k].(string); ok {
				if s = recipex.Normalize(s); s != "" {
					return []string{s}
				}
			}
		}
	}
	return steps
}

func (p *page) joinSteps(steps []string) *string {
	sep := p.site.Instructions.Separator
	if sep == "" {
		sep = " "
	}
	if p.site.Instructions.Numbered {
		numbered := make([]string, len(steps))
		for i, s := range steps {
			numbered[i] = strconv.Itoa(i+1) + ". " + s
		}
		steps = numbered
	}
	return recipex.String(strings.Join(steps, sep))
}

func (p *page) category() *string {
	for _, key := range []string{"recipeCategory", "recipeCuisine"} {
		if cats := nonEmpty(p.block.Strings(key)); len(cats) > 0 {
			return recipex.String(strings.Join(dedupe(cats), ", "))
		}
	}
	if s := p.firstText(p.rules(recipex.FieldCategory)); s != nil {
		return s
	}
	if s := p.firstText(genericCategory); s != nil {
		return s
	}
	return recipex.String(meta(p.doc, "article:section"))
}

func (p *page) prepTime() *string { return p.timeField(recipex.FieldPrepTime, "prepTime") }
func (p *page) cookTime() *string { return p.timeField(recipex.FieldCookTime, "cookTime") }
func (p *page) totalTime() *string {
	if s := p.timeField(recipex.FieldTotalTime, "totalTime"); s != nil || !p.site.DeriveTotalTime {
		return s
	}
	prep, okPrep := recipex.DurationMinutes(p.block.String("prepTime"))
	cook, okCook := recipex.DurationMinutes(p.block.String("cookTime"))
	if !okPrep && !okCook {
		return nil
	}
	return recipex.ParseDuration("PT"+strconv.Itoa(prep+cook)+"M", p.duration)
}

// timeField reads a time field: an ISO token from structured data, then
// site rules, then a microdata <time> element.
func (p *page) timeField(field, key string) *string {
	if v := strings.TrimSpace(p.block.String(key)); v != "" {
		if s := p.timeValue(v); s != nil {
			return s
		}
	}
	for _, sel := range p.rules(field) {
		for _, v := range p.values(sel, false) {
			if s := p.timeValue(v); s != nil {
				return s
			}
		}
	}
	el := p.doc.Find(`[itemprop="` + key + `"]`).First()
	for _, attr := range []string{"datetime", "content"} {
		if v, ok := el.Attr(attr); ok {
			if s := p.timeValue(v); s != nil {
				return s
			}
		}
	}
	if el.Length() > 0 {
		return p.timeValue(el.Text())
	}
	return nil
}

// timeValue formats an ISO token with the site's preset and tidies
// anything else as display text.
func (p *page) timeValue(v string) *string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && strings.EqualFold(v[:2], "PT") {
		return recipex.ParseDuration(v, p.duration)
	}
	if strings.HasPrefix(strings.ToUpper(v), "P") && !strings.ContainsAny(v, " ") {
		// Day-based ISO tokens are not displayed.
		return nil
	}
	return recipex.String(recipex.NormalizeTimeText(v))
}

func (p *page) notes() *string {
	if s := p.firstText(p.rules(recipex.FieldNotes)); s != nil {
		return s
	}
	return p.firstText(genericNotes)
}

func (p *page) tags() *string {
	var tags []string
	switch v := p.block["keywords"].(type) {
	case string:
		tags = strings.Split(v, ",")
	default:
		tags = p.block.Strings("keywords")
	}
	if len(tags) == 0 {
		tags = p.firstList(p.rules(recipex.FieldTags))
	}
	if len(tags) == 0 {
		tags = p.firstList(genericTags)
	}
	if len(tags) == 0 {
		tags = metaAll(p.doc, "article:tag")
	}
	if len(tags) == 0 {
		if kw := meta(p.doc, "keywords"); kw != "" {
			tags = strings.Split(kw, ",")
		}
	}
	tags = dedupe(nonEmpty(tags))
	if len(tags) == 0 {
		return nil
	}
	return recipex.String(strings.Join(tags, ", "))
}

func (p *page) imageURLs() *string {
	urls := imageList(p.block["image"])
	if len(urls) == 0 {
		urls = p.firstList(withDefaultAttr(p.rules(recipex.FieldImageURLs), "src"))
	}
	if len(urls) == 0 {
		urls = p.firstList(genericImages)
	}
	if len(urls) == 0 {
		urls = metaAll(p.doc, "og:image")
	}
	if len(urls) == 0 {
		if v := meta(p.doc, "twitter:image"); v != "" {
			urls = []string{v}
		}
	}

	var out []string
	for _, u := range urls {
		u = p.resolve(strings.TrimSpace(u))
		// A comma would break the comma-joined field.
		if u == "" || strings.Contains(u, ",") {
			continue
		}
		out = append(out, u)
	}
	out = dedupe(out)
	if len(out) == 0 {
		return nil
	}
	return recipex.String(strings.Join(out, ","))
}

// imageList reads schema.org image values: a URL, an ImageObject, or a
// list of either.
func imageList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, imageList(item)...)
		}
		return out
	case map[string]any:
		for _, k := range []string{"url", "contentUrl", "@id"} {
			if s, ok := t[k].(string); ok && s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

func withDefaultAttr(sels []recipex.Selector, attr string) []recipex.Selector {
	out := make([]recipex.Selector, len(sels))
	for i, s := range sels {
		if s.Attr == "" && s.Heading == "" {
			s.Attr = attr
		}
		out[i] = s
	}
	return out
}

// resolve makes u absolute against the site's base URL. Data URIs are
// dropped.
func (p *page) resolve(u string) string {
	if u == "" || strings.HasPrefix(u, "data:") {
		return ""
	}
	ref, err := url.Parse(u)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base := p.site.BaseURL
	if base == "" && p.site.Domain != "" {
		base = "https://" + p.site.Domain + "/"
	}
	b, err := url.Parse(base)
	if err != nil || base == "" {
		return u
	}
	return b.ResolveReference(ref).String()
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		k := strings.ToLower(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}
