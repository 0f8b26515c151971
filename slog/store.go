package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recipex"
)

// Ensure LoggingFixtureStore implements recipex.FixtureStore.
var _ recipex.FixtureStore = (*LoggingFixtureStore)(nil)

// LoggingFixtureStore wraps a FixtureStore, logging listings, writes and
// reference lookups. Page reads are not logged.
type LoggingFixtureStore struct {
	next   recipex.FixtureStore
	logger *slog.Logger
}

// NewLoggingFixtureStore creates a new LoggingFixtureStore.
func NewLoggingFixtureStore(next recipex.FixtureStore, logger *slog.Logger) *LoggingFixtureStore {
	return &LoggingFixtureStore{next: next, logger: logger}
}

// ListFixtures delegates to the wrapped store and logs the count.
func (s *LoggingFixtureStore) ListFixtures(ctx context.Context, site string) (fixtures []*recipex.Fixture, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list fixtures",
			"site", site,
			"count", len(fixtures),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListFixtures(ctx, site)
}

// ReadHTML delegates to the wrapped store.
func (s *LoggingFixtureStore) ReadHTML(ctx context.Context, f *recipex.Fixture) (string, error) {
	return s.next.ReadHTML(ctx, f)
}

// WriteRecord delegates to the wrapped store and logs the write.
func (s *LoggingFixtureStore) WriteRecord(ctx context.Context, f *recipex.Fixture, r *recipex.Recipe) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("write record",
			"site", f.Site,
			"file", f.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteRecord(ctx, f, r)
}

// ReadRecord delegates to the wrapped store.
func (s *LoggingFixtureStore) ReadRecord(ctx context.Context, f *recipex.Fixture) (*recipex.Recipe, error) {
	return s.next.ReadRecord(ctx, f)
}

// ReadReference delegates to the wrapped store and logs whether a
// reference exists.
func (s *LoggingFixtureStore) ReadReference(ctx context.Context, f *recipex.Fixture) (r *recipex.Recipe, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read reference",
			"site", f.Site,
			"file", f.Name,
			"found", r != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadReference(ctx, f)
}

// WriteReport delegates to the wrapped store and logs the report totals.
func (s *LoggingFixtureStore) WriteReport(ctx context.Context, report *recipex.ValidationReport) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write report",
			"site", report.Module,
			"total", report.TotalFiles,
			"passed", report.Passed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteReport(ctx, report)
}
