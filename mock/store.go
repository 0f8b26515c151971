package mock

import (
	"context"

	"github.com/fwojciec/recipex"
)

var _ recipex.FixtureStore = (*FixtureStore)(nil)

// FixtureStore is a mock implementation of recipex.FixtureStore.
type FixtureStore struct {
	ListFixturesFn  func(ctx context.Context, site string) ([]*recipex.Fixture, error)
	ReadHTMLFn      func(ctx context.Context, f *recipex.Fixture) (string, error)
	WriteRecordFn   func(ctx context.Context, f *recipex.Fixture, r *recipex.Recipe) error
	ReadRecordFn    func(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error)
	ReadReferenceFn func(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error)
	WriteReportFn   func(ctx context.Context, report *recipex.ValidationReport) error
}

func (s *FixtureStore) ListFixtures(ctx context.Context, site string) ([]*recipex.Fixture, error) {
	return s.ListFixturesFn(ctx, site)
}

func (s *FixtureStore) ReadHTML(ctx context.Context, f *recipex.Fixture) (string, error) {
	return s.ReadHTMLFn(ctx, f)
}

func (s *FixtureStore) WriteRecord(ctx context.Context, f *recipex.Fixture, r *recipex.Recipe) error {
	return s.WriteRecordFn(ctx, f, r)
}

func (s *FixtureStore) ReadRecord(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error) {
	return s.ReadRecordFn(ctx, f)
}

func (s *FixtureStore) ReadReference(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error) {
	return s.ReadReferenceFn(ctx, f)
}

func (s *FixtureStore) WriteReport(ctx context.Context, report *recipex.ValidationReport) error {
	return s.WriteReportFn(ctx, report)
}
