package recipex

import (
	"fmt"
	"strings"
)

// Block is a decoded structured-data object describing a recipe, as found
// in JSON-LD scripts or microdata. Values keep their decoded JSON shapes.
type Block map[string]any

// Types returns the block's @type tags; a single string becomes a
// one-element list.
func (b Block) Types() []string {
	return stringList(b["@type"])
}

// IsType reports whether any @type tag equals one of types.
func (b Block) IsType(types ...string) bool {
	for _, have := range b.Types() {
		for _, want := range types {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// String returns the value at key as text. Numbers are formatted, lists
// yield their first string, objects yield their "name" or "text".
func (b Block) String(key string) string {
	return scalarString(b[key])
}

// Strings returns the value at key as a list of non-empty strings.
func (b Block) Strings(key string) []string {
	return stringList(b[key])
}

// Blocks returns the value at key as a list of objects. A single object
// becomes a one-element list; non-object items are skipped.
func (b Block) Blocks(key string) []Block {
	return blockList(b[key])
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return FormatNumber(t)
	case int:
		return fmt.Sprint(t)
	case bool:
		return fmt.Sprint(t)
	case []any:
		for _, item := range t {
			if s := scalarString(item); s != "" {
				return s
			}
		}
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case map[string]any:
		for _, k := range []string{"name", "text", "@value", "url"} {
			if s, ok := t[k].(string); ok && s != "" {
				return s
			}
		}
	case Block:
		return scalarString(map[string]any(t))
	}
	return ""
}

func stringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case nil:
	case []any:
		for _, item := range t {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := scalarString(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func blockList(v any) []Block {
	switch t := v.(type) {
	case map[string]any:
		return []Block{t}
	case Block:
		return []Block{t}
	case []any:
		var out []Block
		for _, item := range t {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, m)
			case Block:
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// BlockLocator finds a recipe block in a page by some means other than
// JSON-LD scripts, such as microdata attributes.
type BlockLocator interface {
	// LocateBlock returns the first block whose type is one of types, or
	// nil when the page has none.
	LocateBlock(html string, types []string) (Block, error)
}
