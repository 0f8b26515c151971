package mock

import "github.com/fwojciec/recipex"

var _ recipex.RecipeExtractor = (*RecipeExtractor)(nil)

// RecipeExtractor is a mock implementation of recipex.RecipeExtractor.
type RecipeExtractor struct {
	ExtractFn func(site *recipex.Site, html string) (*recipex.Recipe, error)
}

func (e *RecipeExtractor) Extract(site *recipex.Site, html string) (*recipex.Recipe, error) {
	return e.ExtractFn(site, html)
}

var _ recipex.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of recipex.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

var _ recipex.BlockLocator = (*BlockLocator)(nil)

// BlockLocator is a mock implementation of recipex.BlockLocator.
type BlockLocator struct {
	LocateBlockFn func(html string, types []string) (recipex.Block, error)
}

func (l *BlockLocator) LocateBlock(html string, types []string) (recipex.Block, error) {
	return l.LocateBlockFn(html, types)
}
