package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipex"
)

var _ recipex.TextExtractor = (*TextExtractor)(nil)

// chrome lists elements that never hold recipe content.
const chrome = "script, style, nav, footer, header, noscript, iframe, svg, template"

// TextExtractor reduces a page to its visible text by removing scripts,
// styles and page chrome from the DOM.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText implements recipex.TextExtractor.
func (t *TextExtractor) ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", recipex.Errorf(recipex.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(chrome).Remove()
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return recipex.Normalize(selectionText(root)), nil
}
