package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/recipex"
)

// Ensure LoggingRegistry implements recipex.SiteRegistry.
var _ recipex.SiteRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SiteRegistry with logging for site detection.
type LoggingRegistry struct {
	next   recipex.SiteRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next recipex.SiteRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Site delegates to the wrapped registry.
func (r *LoggingRegistry) Site(id string) (*recipex.Site, error) {
	return r.next.Site(id)
}

// Sites delegates to the wrapped registry.
func (r *LoggingRegistry) Sites() []*recipex.Site {
	return r.next.Sites()
}

// SiteForHTML detects the page's site and logs which one was chosen.
func (r *LoggingRegistry) SiteForHTML(html string) *recipex.Site {
	begin := time.Now()
	site := r.next.SiteForHTML(html)
	id := "(none)"
	if site != nil {
		id = site.ID
	}
	r.logger.Info("site detection",
		"site", id,
		"duration", time.Since(begin),
	)
	return site
}
