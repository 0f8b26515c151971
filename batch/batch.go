// Package batch runs a site's extractor over every saved page of that
// site and stores the results.
package batch

import (
	"context"
	"fmt"

	"github.com/fwojciec/recipex"
)

// Runner extracts recipes from a site's fixture pages one page at a time.
type Runner struct {
	Sites     recipex.SiteRegistry
	Extractor recipex.RecipeExtractor
	Store     recipex.FixtureStore
}

// Result holds the outcome of a batch run.
type Result struct {
	Site      string
	Files     []*FileResult
	Succeeded int
	Failed    int
}

// FileResult is the outcome for one page. Record is nil when Err is set.
type FileResult struct {
	Fixture *recipex.Fixture
	Record  *recipex.Recipe
	Err     error
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	File      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run extracts every fixture of siteID and writes one record per page.
// A failing page is recorded on its FileResult and the run continues.
// Only an unknown site or an unreadable fixture directory is returned
// as an error.
func (r *Runner) Run(ctx context.Context, siteID string, progress ProgressFunc) (*Result, error) {
	site, err := r.Sites.Site(siteID)
	if err != nil {
		return nil, err
	}
	fixtures, err := r.Store.ListFixtures(ctx, siteID)
	if err != nil {
		return nil, err
	}

	total := len(fixtures)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	res := &Result{Site: siteID, Files: make([]*FileResult, 0, total)}
	for i, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		fr := r.processFixture(ctx, site, f)
		res.Files = append(res.Files, fr)
		if fr.Err != nil {
			res.Failed++
		} else {
			res.Succeeded++
		}

		if progress != nil {
			ev := ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, File: f.Name}
			if fr.Err != nil {
				ev.Type = ProgressFailed
				ev.Error = fr.Err
			}
			progress(ev)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

// ExtractFixture extracts a single fixture without writing anything.
func (r *Runner) ExtractFixture(ctx context.Context, site *recipex.Site, f *recipex.Fixture) (rec *recipex.Recipe, err error) {
	defer func() {
		if p := recover(); p != nil {
			rec, err = nil, recipex.Errorf(recipex.EINTERNAL, "extract %s: panic: %v", f.Name, p)
		}
	}()

	html, err := r.Store.ReadHTML(ctx, f)
	if err != nil {
		return nil, err
	}
	rec, err = r.Extractor.Extract(site, html)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return rec, nil
}

func (r *Runner) processFixture(ctx context.Context, site *recipex.Site, f *recipex.Fixture) *FileResult {
	fr := &FileResult{Fixture: f}
	rec, err := r.ExtractFixture(ctx, site, f)
	if err != nil {
		fr.Err = err
		return fr
	}
	if err := r.Store.WriteRecord(ctx, f, rec); err != nil {
		fr.Err = fmt.Errorf("write %s: %w", f.Name, err)
		return fr
	}
	fr.Record = rec
	return fr
}
