package recipex

import "context"

// Fixture is one saved HTML page of a site together with the paths of
// its extraction output and optional reference record.
type Fixture struct {
	Site string
	// Name is the file base name without extension.
	Name          string
	HTMLPath      string
	OutputPath    string
	ReferencePath string
}

// FixtureStore reads fixture pages and writes extraction results.
type FixtureStore interface {
	// ListFixtures returns the site's fixtures sorted by name.
	// Returns ENOTFOUND if the site has no fixture directory.
	ListFixtures(ctx context.Context, site string) ([]*Fixture, error)

	// ReadHTML returns the page source of f.
	ReadHTML(ctx context.Context, f *Fixture) (string, error)

	// WriteRecord stores the extraction result for f.
	WriteRecord(ctx context.Context, f *Fixture, r *Recipe) error

	// ReadRecord loads the stored extraction result for f.
	// Returns ENOTFOUND if f has not been extracted.
	ReadRecord(ctx context.Context, f *Fixture) (*Recipe, error)

	// ReadReference loads the hand-curated record for f.
	// Returns ENOTFOUND if f has no reference.
	ReadReference(ctx context.Context, f *Fixture) (*Recipe, error)

	// WriteReport stores a validation report next to the site's fixtures.
	WriteReport(ctx context.Context, report *ValidationReport) error
}
