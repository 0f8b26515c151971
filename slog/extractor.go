package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/recipex"
)

// Ensure LoggingExtractor implements recipex.RecipeExtractor.
var _ recipex.RecipeExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecipeExtractor with debug logging.
type LoggingExtractor struct {
	next   recipex.RecipeExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next recipex.RecipeExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was found.
func (e *LoggingExtractor) Extract(site *recipex.Site, html string) (r *recipex.Recipe, err error) {
	defer func(begin time.Time) {
		id := ""
		if site != nil {
			id = site.ID
		}
		attrs := []any{
			"site", id,
			"bytes", len(html),
		}
		if r != nil {
			dish := ""
			if r.DishName != nil {
				dish = *r.DishName
			}
			attrs = append(attrs,
				"dish", dish,
				"ingredients", len(r.Ingredients),
				"missing", len(r.MissingFields(recipex.RecipeFields)),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(site, html)
}
