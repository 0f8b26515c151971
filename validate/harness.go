// Package validate checks a site's extractions, either against
// hand-curated reference records or against the text of the page itself,
// and tallies the outcome in a report.
package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/batch"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the number of files validated at once.
const DefaultConcurrency = 4

// Harness runs a site's extractor over its fixtures and judges each
// result. Files are independent, so up to Concurrency of them are in
// flight; judge calls additionally wait on Limiter.
type Harness struct {
	Runner *batch.Runner
	Store  recipex.FixtureStore
	Judge  recipex.Judge
	Text   recipex.TextExtractor
	Tokens recipex.TokenCounter

	// Limiter throttles judge calls; nil means unthrottled.
	Limiter     *rate.Limiter
	Concurrency int

	// RequiredFields must be set on every extraction; defaults to
	// recipex.CriticalFields.
	RequiredFields []string
	// Reference compares extractions with reference records.
	Reference bool
	// Semantic falls back to judging against the page text when required
	// fields are missing or no reference record exists.
	Semantic bool

	MaxTextChars  int
	MaxTextTokens int

	// Now is used for StartedAt; defaults to time.Now.
	Now func() time.Time
}

// Validate validates every fixture of siteID. A missing or empty fixture
// directory yields a report carrying the error reason rather than an
// error. Per-file failures become system_error results and never stop the
// run. Details follow fixture order.
func (h *Harness) Validate(ctx context.Context, siteID string, progress batch.ProgressFunc) (*recipex.ValidationReport, error) {
	if (h.Reference || h.Semantic) && h.Judge == nil {
		return nil, recipex.Errorf(recipex.EINVALID, "judge required for reference or semantic validation")
	}
	if h.Semantic && h.Text == nil {
		return nil, recipex.Errorf(recipex.EINVALID, "text extractor required for semantic validation")
	}

	site, err := h.Runner.Sites.Site(siteID)
	if err != nil {
		return nil, err
	}
	fixtures, err := h.Store.ListFixtures(ctx, siteID)
	if recipex.ErrorCode(err) == recipex.ENOTFOUND {
		return recipex.NewErrorReport(siteID, recipex.ReasonDirNotFound), nil
	}
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return recipex.NewErrorReport(siteID, recipex.ReasonDirEmpty), nil
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	report := &recipex.ValidationReport{
		RunID:     uuid.NewString(),
		Module:    siteID,
		StartedAt: now().UTC(),
		Details:   make([]*recipex.FileValidationResult, 0, len(fixtures)),
	}

	total := len(fixtures)
	if progress != nil {
		progress(batch.ProgressEvent{Type: batch.ProgressStarted, Total: total})
	}

	results := make([]*recipex.FileValidationResult, total)
	var (
		mu        sync.Mutex
		completed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())
	for i, f := range fixtures {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			r := h.validateFile(gctx, site, f)
			results[i] = r

			if progress != nil {
				mu.Lock()
				completed++
				ev := batch.ProgressEvent{Type: batch.ProgressCompleted, Completed: completed, Total: total, File: f.Name}
				if r.Status == recipex.StatusFailed || r.Status == recipex.StatusSystemError {
					ev.Type = batch.ProgressFailed
					ev.Error = errors.New(resultReason(r))
				}
				progress(ev)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range results {
		report.AddResult(r)
	}
	if progress != nil {
		progress(batch.ProgressEvent{Type: batch.ProgressFinished, Completed: total, Total: total})
	}
	return report, nil
}

func (h *Harness) validateFile(ctx context.Context, site *recipex.Site, f *recipex.Fixture) *recipex.FileValidationResult {
	rec, err := h.Runner.ExtractFixture(ctx, site, f)
	if err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonExtractionFailed, err)
	}

	if missing := rec.MissingFields(h.requiredFields()); len(missing) > 0 {
		if h.Semantic {
			return h.judgeText(ctx, site, f, rec)
		}
		return &recipex.FileValidationResult{
			File:          f.Name,
			Status:        recipex.StatusFailed,
			IsRecipe:      true,
			MissingFields: missing,
			Feedback:      "missing required fields: " + strings.Join(missing, ", "),
			Reason:        recipex.ReasonMissingRequired,
		}
	}

	if !h.Reference {
		return &recipex.FileValidationResult{
			File:     f.Name,
			Status:   recipex.StatusPassed,
			IsValid:  true,
			IsRecipe: true,
		}
	}

	ref, err := h.Store.ReadReference(ctx, f)
	switch {
	case recipex.ErrorCode(err) == recipex.ENOTFOUND:
		if h.Semantic {
			return h.judgeText(ctx, site, f, rec)
		}
		return &recipex.FileValidationResult{
			File:     f.Name,
			Status:   recipex.StatusSkipped,
			IsRecipe: true,
			Reason:   recipex.ReasonReferenceNotFound,
		}
	case err != nil:
		return recipex.SystemErrorResult(f.Name, recipex.ReasonReferenceNotFound, err)
	}

	if err := h.wait(ctx); err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, err)
	}
	j, err := h.Judge.JudgeReference(ctx, recipex.JudgeRequest{
		Site:      site.ID,
		File:      f.Name,
		Extracted: rec,
		Reference: ref,
	})
	if err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, err)
	}
	return recipex.ResultFromJudgement(f.Name, j)
}

func (h *Harness) judgeText(ctx context.Context, site *recipex.Site, f *recipex.Fixture, rec *recipex.Recipe) *recipex.FileValidationResult {
	html, err := h.Store.ReadHTML(ctx, f)
	if err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, err)
	}
	text, err := h.Text.ExtractText(html)
	if err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, fmt.Errorf("page text: %w", err))
	}
	text, err = h.fitText(ctx, text)
	if err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, err)
	}

	// A page without text cannot be a recipe.
	if strings.TrimSpace(text) == "" {
		return recipex.ResultFromJudgement(f.Name, &recipex.Judgement{
			IsValid:  true,
			Feedback: "page has no visible text",
		})
	}

	if err := h.wait(ctx); err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, err)
	}
	j, err := h.Judge.JudgeText(ctx, recipex.JudgeRequest{
		Site:      site.ID,
		File:      f.Name,
		Extracted: rec,
		PageText:  text,
	})
	if err != nil {
		return recipex.SystemErrorResult(f.Name, recipex.ReasonJudgeFailed, err)
	}
	return recipex.ResultFromJudgement(f.Name, j)
}

// fitText truncates text to the character budget, then halves it until
// it fits the token budget.
func (h *Harness) fitText(ctx context.Context, text string) (string, error) {
	max := h.MaxTextChars
	if max == 0 {
		max = recipex.DefaultMaxTextChars
	}
	text = recipex.TruncateText(text, max)
	if h.Tokens == nil || h.MaxTextTokens <= 0 {
		return text, nil
	}
	for text != "" {
		n, err := h.Tokens.CountTokens(ctx, text)
		if err != nil {
			return "", fmt.Errorf("count tokens: %w", err)
		}
		if n <= h.MaxTextTokens {
			break
		}
		half := utf8.RuneCountInString(text) / 2
		if half == 0 {
			return "", nil
		}
		text = recipex.TruncateText(text, half)
	}
	return text, nil
}

func (h *Harness) wait(ctx context.Context) error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Wait(ctx)
}

func (h *Harness) concurrency() int {
	if h.Concurrency > 0 {
		return h.Concurrency
	}
	return DefaultConcurrency
}

func (h *Harness) requiredFields() []string {
	if len(h.RequiredFields) > 0 {
		return h.RequiredFields
	}
	return recipex.CriticalFields
}

func resultReason(r *recipex.FileValidationResult) string {
	if r.Feedback != "" {
		return r.Feedback
	}
	if r.Reason != "" {
		return r.Reason
	}
	return string(r.Status)
}
