package trafilatura

import (
	"strings"

	"github.com/fwojciec/recipex"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure TextExtractor implements recipex.TextExtractor at compile time.
var _ recipex.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps go-trafilatura to reduce a page to the text of its
// main content, dropping comments, sidebars and related-recipe blocks.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText implements recipex.TextExtractor. The page title, when
// found, leads the text.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", recipex.Errorf(recipex.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return "", err
	}

	text := recipex.Normalize(result.ContentText)
	if title := recipex.Normalize(result.Metadata.Title); title != "" && !strings.HasPrefix(text, title) {
		text = strings.TrimSpace(title + "\n" + text)
	}
	return text, nil
}
