package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/recipex"
)

var _ recipex.Converter = (*Converter)(nil)

// droppedTags never carry recipe text. Images are dropped too since the
// Markdown only feeds the language model.
var droppedTags = []string{
	"nav", "footer", "aside", "form", "button", "iframe", "noscript", "svg",
	"img", "picture", "video",
}

// Converter renders recipe pages as Markdown for the completion
// fallback. Tables are kept because some sites lay out ingredient
// quantities in them.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range droppedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert implements recipex.Converter. Runs of blank lines left behind
// by removed elements collapse to one.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", recipex.Errorf(recipex.EINVALID, "empty HTML input")
	}
	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", recipex.Errorf(recipex.EINVALID, "convert HTML: %v", err)
	}
	for strings.Contains(md, "\n\n\n") {
		md = strings.ReplaceAll(md, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(md), nil
}
