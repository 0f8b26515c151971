package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipex"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// RepairJSON removes trailing commas before closing brackets, a common
// defect in hand-templated JSON-LD.
func RepairJSON(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

// FindRecipeBlock scans the JSON-LD scripts of doc in document order and
// returns the first object typed as one of types. Within a script it
// checks an @graph list, then the object itself, then each element of a
// top-level list. Scripts that do not decode are skipped. With lenient
// set, trailing commas are repaired before decoding.
func FindRecipeBlock(doc *goquery.Document, types []string, lenient bool) recipex.Block {
	var found recipex.Block
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		if lenient {
			raw = RepairJSON(raw)
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}
		found = matchBlock(data, types)
		return found == nil
	})
	return found
}

func matchBlock(data any, types []string) recipex.Block {
	switch v := data.(type) {
	case map[string]any:
		b := recipex.Block(v)
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok && recipex.Block(m).IsType(types...) {
					return m
				}
			}
		}
		if b.IsType(types...) {
			return b
		}
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if b := matchBlock(m, types); b != nil {
					return b
				}
			}
		}
	}
	return nil
}
