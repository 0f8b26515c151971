package recipex

// RecipeExtractor turns one saved page into a Recipe.
type RecipeExtractor interface {
	// Extract parses html using the site's configuration. Missing data
	// yields nil fields, never an error. Only input that cannot be parsed
	// as a document at all returns an error.
	Extract(site *Site, html string) (*Recipe, error)
}
