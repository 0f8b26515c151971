package validate_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/batch"
	"github.com/fwojciec/recipex/goquery"
	"github.com/fwojciec/recipex/mock"
	"github.com/fwojciec/recipex/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complete(name string) *recipex.Recipe {
	return &recipex.Recipe{
		DishName:     recipex.String(name),
		Ingredients:  []recipex.Ingredient{{Name: "flour"}},
		Instructions: recipex.String("Bake."),
	}
}

// harnessFor builds a harness whose extractor returns records[name] for
// the fixture of that name and whose store holds refs as references.
func harnessFor(records map[string]*recipex.Recipe, refs map[string]*recipex.Recipe, names ...string) *validate.Harness {
	store := &mock.FixtureStore{
		ListFixturesFn: func(_ context.Context, site string) ([]*recipex.Fixture, error) {
			out := make([]*recipex.Fixture, 0, len(names))
			for _, n := range names {
				out = append(out, &recipex.Fixture{Site: site, Name: n})
			}
			return out, nil
		},
		ReadHTMLFn: func(_ context.Context, f *recipex.Fixture) (string, error) {
			return f.Name, nil
		},
		ReadReferenceFn: func(_ context.Context, f *recipex.Fixture) (*recipex.Recipe, error) {
			if r, ok := refs[f.Name]; ok {
				return r, nil
			}
			return nil, recipex.Errorf(recipex.ENOTFOUND, "no reference")
		},
	}
	runner := &batch.Runner{
		Sites: &mock.SiteRegistry{
			SiteFn: func(id string) (*recipex.Site, error) {
				if id != "misya" {
					return nil, recipex.Errorf(recipex.ENOTFOUND, "unknown site %q", id)
				}
				return &recipex.Site{ID: id}, nil
			},
		},
		Store: store,
		Extractor: &mock.RecipeExtractor{
			ExtractFn: func(_ *recipex.Site, html string) (*recipex.Recipe, error) {
				if r, ok := records[html]; ok {
					return r, nil
				}
				return nil, errors.New("boom")
			},
		},
	}
	return &validate.Harness{
		Runner: runner,
		Store:  store,
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestHarness_Validate(t *testing.T) {
	t.Parallel()

	t.Run("required fields only", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(map[string]*recipex.Recipe{
			"a": complete("Soup"),
			"b": {DishName: recipex.String("Stew")},
		}, nil, "a", "b", "c")

		rep, err := h.Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.NotEmpty(t, rep.RunID)
		assert.Equal(t, "misya", rep.Module)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), rep.StartedAt)
		assert.Equal(t, 3, rep.TotalFiles)
		assert.Equal(t, 1, rep.Passed)
		assert.Equal(t, 1, rep.Failed)
		assert.Equal(t, 1, rep.SystemErrors)
		assert.InDelta(t, 33.33, rep.SuccessRate, 0.001)

		require.Len(t, rep.Details, 3)
		assert.Equal(t, "a", rep.Details[0].File)
		assert.Equal(t, recipex.StatusPassed, rep.Details[0].Status)
		assert.Equal(t, recipex.StatusFailed, rep.Details[1].Status)
		assert.Equal(t, recipex.ReasonMissingRequired, rep.Details[1].Reason)
		assert.Equal(t, []string{recipex.FieldIngredients, recipex.FieldInstructions}, rep.Details[1].MissingFields)
		assert.Equal(t, recipex.StatusSystemError, rep.Details[2].Status)
		assert.Equal(t, recipex.ReasonExtractionFailed, rep.Details[2].Reason)
	})

	t.Run("reference mode judges against references", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(map[string]*recipex.Recipe{
			"a": complete("Soup"),
			"b": complete("Stew"),
		}, map[string]*recipex.Recipe{
			"a": complete("Soup"),
		}, "a", "b")
		h.Reference = true
		h.Judge = &mock.Judge{
			JudgeReferenceFn: func(_ context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
				assert.Equal(t, "misya", req.Site)
				assert.Equal(t, "a", req.File)
				assert.Equal(t, "Soup", *req.Reference.DishName)
				return &recipex.Judgement{IsValid: false, IsRecipe: true, IncorrectFields: []string{"instructions"}}, nil
			},
		}

		rep, err := h.Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.Equal(t, recipex.StatusFailed, rep.Details[0].Status)
		assert.Equal(t, []string{"instructions"}, rep.Details[0].IncorrectFields)
		assert.Equal(t, recipex.StatusSkipped, rep.Details[1].Status)
		assert.Equal(t, recipex.ReasonReferenceNotFound, rep.Details[1].Reason)
		assert.Equal(t, 1, rep.Skipped)
		assert.False(t, rep.IsSuccess())
	})

	t.Run("semantic fallback when reference is missing", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(map[string]*recipex.Recipe{"a": complete("Soup")}, nil, "a")
		h.Reference = true
		h.Semantic = true
		h.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) { return "text of " + html, nil },
		}
		h.Judge = &mock.Judge{
			JudgeTextFn: func(_ context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
				assert.Equal(t, "text of a", req.PageText)
				return &recipex.Judgement{IsValid: true, IsRecipe: true}, nil
			},
		}

		rep, err := h.Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.Equal(t, recipex.StatusPassed, rep.Details[0].Status)
		assert.True(t, rep.IsSuccess())
	})

	t.Run("judge failure is a system error", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(map[string]*recipex.Recipe{"a": {}}, nil, "a")
		h.Semantic = true
		h.Text = &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) { return "some text", nil },
		}
		h.Judge = &mock.Judge{
			JudgeTextFn: func(context.Context, recipex.JudgeRequest) (*recipex.Judgement, error) {
				return nil, errors.New("quota exhausted")
			},
		}

		rep, err := h.Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.Equal(t, recipex.StatusSystemError, rep.Details[0].Status)
		assert.Equal(t, recipex.ReasonJudgeFailed, rep.Details[0].Reason)
		assert.Contains(t, rep.Details[0].Feedback, "quota exhausted")
	})

	t.Run("empty page text is not a recipe", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(map[string]*recipex.Recipe{"a": {}}, nil, "a")
		h.Semantic = true
		h.Text = &mock.TextExtractor{
			ExtractTextFn: func(string) (string, error) { return "  ", nil },
		}
		h.Judge = &mock.Judge{}

		rep, err := h.Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.Equal(t, recipex.StatusPassed, rep.Details[0].Status)
		assert.False(t, rep.Details[0].IsRecipe)
		assert.True(t, rep.Details[0].IsValid)
	})

	t.Run("missing directory yields an error report", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(nil, nil)
		h.Store.(*mock.FixtureStore).ListFixturesFn = func(context.Context, string) ([]*recipex.Fixture, error) {
			return nil, recipex.Errorf(recipex.ENOTFOUND, "no fixtures")
		}

		rep, err := h.Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.Equal(t, recipex.ReasonDirNotFound, rep.Error)
		assert.Equal(t, 0, rep.TotalFiles)
	})

	t.Run("empty directory yields an error report", func(t *testing.T) {
		t.Parallel()

		rep, err := harnessFor(nil, nil).Validate(context.Background(), "misya", nil)

		require.NoError(t, err)
		assert.Equal(t, recipex.ReasonDirEmpty, rep.Error)
	})

	t.Run("unknown site is an error", func(t *testing.T) {
		t.Parallel()

		_, err := harnessFor(nil, nil, "a").Validate(context.Background(), "nope", nil)

		assert.Equal(t, recipex.ENOTFOUND, recipex.ErrorCode(err))
	})

	t.Run("semantic mode needs a judge", func(t *testing.T) {
		t.Parallel()

		h := harnessFor(nil, nil, "a")
		h.Semantic = true

		_, err := h.Validate(context.Background(), "misya", nil)

		assert.Equal(t, recipex.EINVALID, recipex.ErrorCode(err))
	})
}

func TestHarness_Validate_Concurrency(t *testing.T) {
	t.Parallel()

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	records := map[string]*recipex.Recipe{}
	refs := map[string]*recipex.Recipe{}
	for _, n := range names {
		records[n] = complete(n)
		refs[n] = complete(n)
	}
	h := harnessFor(records, refs, names...)
	h.Reference = true
	h.Concurrency = 3

	var inFlight, peak int32
	h.Judge = &mock.Judge{
		JudgeReferenceFn: func(_ context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return &recipex.Judgement{IsValid: true, IsRecipe: true}, nil
		},
	}

	var (
		mu     sync.Mutex
		events []batch.ProgressEvent
	)
	rep, err := h.Validate(context.Background(), "misya", func(ev batch.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	require.NoError(t, err)
	assert.Equal(t, len(names), rep.Passed)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	for i, n := range names {
		assert.Equal(t, n, rep.Details[i].File)
	}
	require.Len(t, events, len(names)+2)
	assert.Equal(t, batch.ProgressStarted, events[0].Type)
	assert.Equal(t, batch.ProgressFinished, events[len(events)-1].Type)
}

func TestHarness_Validate_TrimsPageText(t *testing.T) {
	t.Parallel()

	h := harnessFor(map[string]*recipex.Recipe{"a": {}}, nil, "a")
	h.Semantic = true
	h.MaxTextChars = 64
	h.MaxTextTokens = 10
	h.Text = &mock.TextExtractor{
		ExtractTextFn: func(string) (string, error) { return strings.Repeat("x", 100), nil },
	}
	h.Tokens = &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) { return len(text) / 2, nil },
	}
	var got string
	h.Judge = &mock.Judge{
		JudgeTextFn: func(_ context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
			got = req.PageText
			return &recipex.Judgement{IsRecipe: true, IsValid: true}, nil
		},
	}

	_, err := h.Validate(context.Background(), "misya", nil)

	require.NoError(t, err)
	// 64 chars is 32 tokens, 32 chars is 16, 16 chars is 8.
	assert.Len(t, got, 16)
}

func TestHarness_Validate_PageWithoutRecipeData(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Thanks for visiting our kitchen blog.</p></body></html>`
	store := &mock.FixtureStore{
		ListFixturesFn: func(_ context.Context, site string) ([]*recipex.Fixture, error) {
			return []*recipex.Fixture{{Site: site, Name: "about"}}, nil
		},
		ReadHTMLFn: func(context.Context, *recipex.Fixture) (string, error) { return html, nil },
	}
	h := &validate.Harness{
		Runner: &batch.Runner{
			Sites: &mock.SiteRegistry{
				SiteFn: func(id string) (*recipex.Site, error) { return &recipex.Site{ID: id}, nil },
			},
			Store:     store,
			Extractor: goquery.NewExtractor(nil),
		},
		Store:    store,
		Text:     goquery.NewTextExtractor(),
		Semantic: true,
		Judge: &mock.Judge{
			JudgeTextFn: func(_ context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
				assert.Equal(t, recipex.RecipeFields, req.Extracted.MissingFields(recipex.RecipeFields))
				assert.Equal(t, "Thanks for visiting our kitchen blog.", req.PageText)
				return &recipex.Judgement{IsValid: false, IsRecipe: false}, nil
			},
		},
	}

	rep, err := h.Validate(context.Background(), "blog", nil)

	require.NoError(t, err)
	require.Len(t, rep.Details, 1)
	assert.False(t, rep.Details[0].IsRecipe)
	assert.True(t, rep.Details[0].IsValid)
	assert.Equal(t, recipex.StatusPassed, rep.Details[0].Status)
}
