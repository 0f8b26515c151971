// Package microdata locates recipe blocks expressed as HTML microdata
// (itemscope/itemprop attributes) using github.com/astappiev/microdata.
package microdata

import (
	"strings"

	"github.com/astappiev/microdata"
	"github.com/fwojciec/recipex"
)

var _ recipex.BlockLocator = (*Locator)(nil)

// Locator implements recipex.BlockLocator over page microdata.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// LocateBlock implements recipex.BlockLocator. Top-level items are
// searched in document order; nested items are not.
func (l *Locator) LocateBlock(html string, types []string) (recipex.Block, error) {
	data, err := microdata.ParseHTML(strings.NewReader(html), "", "")
	if err != nil {
		return nil, recipex.Errorf(recipex.EINVALID, "failed to parse microdata: %v", err)
	}
	for _, item := range data.Items {
		for _, t := range types {
			if item.IsOfSchemaType(t) {
				return toBlock(item), nil
			}
		}
	}
	return nil, nil
}

// toBlock converts an item to the JSON-LD shape: short type names under
// @type, single values unwrapped, nested items as objects.
func toBlock(item *microdata.Item) recipex.Block {
	b := recipex.Block{}
	var types []any
	for _, t := range item.Types {
		types = append(types, shortType(t))
	}
	switch len(types) {
	case 0:
	case 1:
		b["@type"] = types[0]
	default:
		b["@type"] = types
	}
	for name, values := range item.Properties {
		var out []any
		for _, v := range values {
			switch t := v.(type) {
			case *microdata.Item:
				out = append(out, map[string]any(toBlock(t)))
			case string:
				out = append(out, strings.TrimSpace(t))
			default:
				out = append(out, t)
			}
		}
		if len(out) == 1 {
			b[name] = out[0]
		} else if len(out) > 1 {
			b[name] = out
		}
	}
	return b
}

// shortType reduces "https://schema.org/Recipe" to "Recipe".
func shortType(t string) string {
	t = strings.TrimRight(t, "/")
	if i := strings.LastIndexAny(t, "/#"); i >= 0 {
		return t[i+1:]
	}
	return t
}
