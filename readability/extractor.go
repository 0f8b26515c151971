package readability

import (
	"strings"

	"github.com/fwojciec/recipex"
	"github.com/go-shiori/go-readability"
)

// Ensure TextExtractor implements recipex.TextExtractor at compile time.
var _ recipex.TextExtractor = (*TextExtractor)(nil)

// TextExtractor wraps go-readability to find a page's article. With a
// Converter the article is returned as Markdown, which keeps ingredient
// lists and numbered steps readable; without one it is plain text.
type TextExtractor struct {
	conv recipex.Converter
}

// NewTextExtractor creates a new TextExtractor. conv may be nil.
func NewTextExtractor(conv recipex.Converter) *TextExtractor {
	return &TextExtractor{conv: conv}
}

// ExtractText implements recipex.TextExtractor.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", recipex.Errorf(recipex.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	var body string
	if e.conv != nil && strings.TrimSpace(article.Content) != "" {
		body, err = e.conv.Convert(article.Content)
		if err != nil {
			return "", err
		}
		body = strings.TrimSpace(body)
	} else {
		body = recipex.Normalize(article.TextContent)
	}

	if title := recipex.Normalize(article.Title); title != "" {
		return strings.TrimSpace("# " + title + "\n\n" + body), nil
	}
	return body, nil
}
