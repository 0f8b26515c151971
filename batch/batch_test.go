package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/batch"
	"github.com/fwojciec/recipex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sites(known ...string) *mock.SiteRegistry {
	return &mock.SiteRegistry{
		SiteFn: func(id string) (*recipex.Site, error) {
			for _, k := range known {
				if k == id {
					return &recipex.Site{ID: id}, nil
				}
			}
			return nil, recipex.Errorf(recipex.ENOTFOUND, "unknown site %q", id)
		},
	}
}

func fixtureStore(names ...string) (*mock.FixtureStore, map[string]*recipex.Recipe) {
	written := map[string]*recipex.Recipe{}
	store := &mock.FixtureStore{
		ListFixturesFn: func(_ context.Context, site string) ([]*recipex.Fixture, error) {
			var out []*recipex.Fixture
			for _, n := range names {
				out = append(out, &recipex.Fixture{Site: site, Name: n})
			}
			return out, nil
		},
		ReadHTMLFn: func(_ context.Context, f *recipex.Fixture) (string, error) {
			return "<html>" + f.Name + "</html>", nil
		},
		WriteRecordFn: func(_ context.Context, f *recipex.Fixture, r *recipex.Recipe) error {
			written[f.Name] = r
			return nil
		},
	}
	return store, written
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts and writes every fixture", func(t *testing.T) {
		t.Parallel()

		store, written := fixtureStore("a", "b")
		runner := &batch.Runner{
			Sites: sites("misya"),
			Store: store,
			Extractor: &mock.RecipeExtractor{
				ExtractFn: func(site *recipex.Site, html string) (*recipex.Recipe, error) {
					assert.Equal(t, "misya", site.ID)
					return &recipex.Recipe{DishName: recipex.String(html)}, nil
				},
			},
		}

		var events []batch.ProgressEvent
		res, err := runner.Run(context.Background(), "misya", func(ev batch.ProgressEvent) {
			events = append(events, ev)
		})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Succeeded)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, "<html>a</html>", *written["a"].DishName)
		assert.Equal(t, "<html>b</html>", *written["b"].DishName)

		require.Len(t, events, 4)
		assert.Equal(t, batch.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, batch.ProgressCompleted, events[1].Type)
		assert.Equal(t, "a", events[1].File)
		assert.Equal(t, batch.ProgressFinished, events[3].Type)
	})

	t.Run("continues past failing and panicking pages", func(t *testing.T) {
		t.Parallel()

		store, written := fixtureStore("bad", "boom", "good")
		runner := &batch.Runner{
			Sites: sites("s"),
			Store: store,
			Extractor: &mock.RecipeExtractor{
				ExtractFn: func(_ *recipex.Site, html string) (*recipex.Recipe, error) {
					switch html {
					case "<html>bad</html>":
						return nil, recipex.Errorf(recipex.EINVALID, "failed to parse HTML")
					case "<html>boom</html>":
						panic("selector blew up")
					}
					return &recipex.Recipe{}, nil
				},
			},
		}

		var failed []string
		res, err := runner.Run(context.Background(), "s", func(ev batch.ProgressEvent) {
			if ev.Type == batch.ProgressFailed {
				failed = append(failed, ev.File)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Succeeded)
		assert.Equal(t, 2, res.Failed)
		assert.Equal(t, []string{"bad", "boom"}, failed)
		assert.Equal(t, recipex.EINVALID, recipex.ErrorCode(res.Files[0].Err))
		assert.Equal(t, recipex.EINTERNAL, recipex.ErrorCode(res.Files[1].Err))
		assert.Contains(t, written, "good")
		assert.NotContains(t, written, "bad")
	})

	t.Run("records write failures", func(t *testing.T) {
		t.Parallel()

		store, _ := fixtureStore("a")
		store.WriteRecordFn = func(context.Context, *recipex.Fixture, *recipex.Recipe) error {
			return errors.New("disk full")
		}
		runner := &batch.Runner{
			Sites: sites("s"),
			Store: store,
			Extractor: &mock.RecipeExtractor{
				ExtractFn: func(*recipex.Site, string) (*recipex.Recipe, error) { return &recipex.Recipe{}, nil },
			},
		}

		res, err := runner.Run(context.Background(), "s", nil)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		assert.EqualError(t, res.Files[0].Err, "write a: disk full")
	})

	t.Run("unknown site is an error", func(t *testing.T) {
		t.Parallel()

		store, _ := fixtureStore()
		runner := &batch.Runner{Sites: sites(), Store: store}

		_, err := runner.Run(context.Background(), "nope", nil)

		assert.Equal(t, recipex.ENOTFOUND, recipex.ErrorCode(err))
	})

	t.Run("listing failure is an error", func(t *testing.T) {
		t.Parallel()

		store := &mock.FixtureStore{
			ListFixturesFn: func(context.Context, string) ([]*recipex.Fixture, error) {
				return nil, recipex.Errorf(recipex.ENOTFOUND, "no fixture directory")
			},
		}
		runner := &batch.Runner{Sites: sites("s"), Store: store}

		_, err := runner.Run(context.Background(), "s", nil)

		assert.Equal(t, recipex.ENOTFOUND, recipex.ErrorCode(err))
	})
}
