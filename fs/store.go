// Package fs provides file-based storage for fixture pages, extraction
// records and validation reports.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/recipex"
)

// OutputSuffix is appended to a fixture's base name for its extraction
// record.
const OutputSuffix = "_extracted.json"

// ReportName is the validation report file written in a site directory.
const ReportName = "validation_report.json"

// Ensure Store implements recipex.FixtureStore at compile time.
var _ recipex.FixtureStore = (*Store)(nil)

// Store implements recipex.FixtureStore over a directory tree laid out
// as root/<site>/<name>.html, with <name>_extracted.json written beside
// each page and an optional hand-curated <name>.json reference.
type Store struct {
	root string
}

// NewStore creates a new Store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// ListFixtures implements recipex.FixtureStore.
func (s *Store) ListFixtures(ctx context.Context, site string) ([]*recipex.Fixture, error) {
	dir := filepath.Join(s.root, site)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, recipex.Errorf(recipex.ENOTFOUND, "no fixture directory for site %q", site)
	} else if err != nil {
		return nil, err
	}

	var fixtures []*recipex.Fixture
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		fixtures = append(fixtures, &recipex.Fixture{
			Site:          site,
			Name:          name,
			HTMLPath:      filepath.Join(dir, e.Name()),
			OutputPath:    filepath.Join(dir, name+OutputSuffix),
			ReferencePath: filepath.Join(dir, name+".json"),
		})
	}
	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].Name < fixtures[j].Name })
	return fixtures, nil
}

// ReadHTML implements recipex.FixtureStore.
func (s *Store) ReadHTML(ctx context.Context, f *recipex.Fixture) (string, error) {
	data, err := os.ReadFile(f.HTMLPath)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", recipex.Errorf(recipex.ENOTFOUND, "fixture %s not found", f.Name)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteRecord implements recipex.FixtureStore. An existing file with the
// same content is left untouched.
func (s *Store) WriteRecord(ctx context.Context, f *recipex.Fixture, r *recipex.Recipe) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return writeIfChanged(f.OutputPath, append(data, '\n'))
}

// ReadRecord implements recipex.FixtureStore.
func (s *Store) ReadRecord(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error) {
	return readRecipe(f.OutputPath, f.Name)
}

// ReadReference implements recipex.FixtureStore.
func (s *Store) ReadReference(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error) {
	return readRecipe(f.ReferencePath, f.Name)
}

// WriteReport implements recipex.FixtureStore.
func (s *Store) WriteReport(ctx context.Context, report *recipex.ValidationReport) error {
	if report.Module == "" {
		return recipex.Errorf(recipex.EINVALID, "report has no site")
	}
	dir := filepath.Join(s.root, report.Module)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return writeIfChanged(filepath.Join(dir, ReportName), append(data, '\n'))
}

func readRecipe(path, name string) (*recipex.Recipe, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, recipex.Errorf(recipex.ENOTFOUND, "no record for %s", name)
	} else if err != nil {
		return nil, err
	}
	var r recipex.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, recipex.Errorf(recipex.EINVALID, "%s: %s", filepath.Base(path), recipeError(err))
	}
	return &r, nil
}

func recipeError(err error) string {
	if code := recipex.ErrorCode(err); code != recipex.EINTERNAL {
		return recipex.ErrorMessage(err)
	}
	return err.Error()
}

// writeIfChanged skips the write when the existing file's xxhash digest
// matches data's.
func writeIfChanged(path string, data []byte) error {
	if existing, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64(data) {
			return nil
		}
	}
	return os.WriteFile(path, data, 0644)
}
