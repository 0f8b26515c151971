package goquery

import (
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipex"
)

var _ recipex.RecipeExtractor = (*Extractor)(nil)

// genericSite stands in for a nil site. It is shared so that the compiled
// cache, which is keyed by pointer, holds it once.
var genericSite = &recipex.Site{ID: recipex.GenericSiteID}

// Extractor is the configuration-driven extraction engine. Every field is
// read from the page's structured-data block first, then from the site's
// DOM rules, then from generic DOM and meta fallbacks. Failures in one
// field leave that field nil and never affect the others.
type Extractor struct {
	// Microdata locates a recipe block when a page has no matching
	// JSON-LD and the site enables the fallback. Optional.
	Microdata recipex.BlockLocator

	mu       sync.Mutex
	compiled map[*recipex.Site]*compiledSite
}

type compiledSite struct {
	parser   *recipex.IngredientParser
	duration recipex.DurationFormat
	suffix   *regexp.Regexp
}

// NewExtractor creates an Extractor with an optional microdata locator.
func NewExtractor(microdata recipex.BlockLocator) *Extractor {
	return &Extractor{Microdata: microdata}
}

// Extract implements recipex.RecipeExtractor. A nil site means the
// generic configuration.
func (e *Extractor) Extract(site *recipex.Site, html string) (*recipex.Recipe, error) {
	if site == nil {
		site = genericSite
	}
	cs, err := e.compile(site)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, recipex.Errorf(recipex.EINVALID, "failed to parse HTML: %v", err)
	}

	block := FindRecipeBlock(doc, site.Types(), site.LenientJSON)
	if block == nil && site.Microdata && e.Microdata != nil {
		if b, err := e.Microdata.LocateBlock(html, site.Types()); err == nil {
			block = b
		}
	}
	if block == nil {
		block = recipex.Block{}
	}

	p := &page{
		doc:      doc,
		block:    block,
		site:     site,
		locale:   site.Locale(),
		parser:   cs.parser,
		duration: cs.duration,
		suffix:   cs.suffix,
	}

	return &recipex.Recipe{
		DishName:     safeString(p.dishName),
		Description:  safeString(p.description),
		Ingredients:  safeIngredients(p.ingredients),
		Instructions: safeString(p.instructions),
		Category:     safeString(p.category),
		PrepTime:     safeString(p.prepTime),
		CookTime:     safeString(p.cookTime),
		TotalTime:    safeString(p.totalTime),
		Notes:        safeString(p.notes),
		Tags:         safeString(p.tags),
		ImageURLs:    safeString(p.imageURLs),
	}, nil
}

// compile builds and caches the parts of a site record that are costly to
// derive. Site records are treated as immutable once registered.
func (e *Extractor) compile(site *recipex.Site) (*compiledSite, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if cs, ok := e.compiled[site]; ok {
		return cs, nil
	}

	parser, err := site.IngredientParser()
	if err != nil {
		return nil, err
	}
	cs := &compiledSite{parser: parser, duration: site.DurationFormat()}
	if site.TitleSuffix != "" {
		re, err := regexp.Compile(site.TitleSuffix)
		if err != nil {
			return nil, recipex.Errorf(recipex.EINVALID, "site %s: title suffix: %v", site.ID, err)
		}
		cs.suffix = re
	}

	if e.compiled == nil {
		e.compiled = make(map[*recipex.Site]*compiledSite)
	}
	e.compiled[site] = cs
	return cs, nil
}

func safeString(fn func() *string) (s *string) {
	defer func() {
		if recover() != nil {
			s = nil
		}
	}()
	return fn()
}

func safeIngredients(fn func() []recipex.Ingredient) (out []recipex.Ingredient) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return fn()
}
