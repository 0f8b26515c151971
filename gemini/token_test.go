package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ recipex.TokenCounter = tc

	t.Run("counts tokens in page text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "2 cups flour, 1 tsp salt")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		short, err := tc.CountTokens(context.Background(), "Soup")
		require.NoError(t, err)
		long, err := tc.CountTokens(context.Background(), "Bring the stock to a boil, add the vegetables and simmer for twenty minutes.")
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})
}
