package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageServer(t *testing.T, status int, content []map[string]any, seen *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"type":  "error",
				"error": map[string]any{"type": "invalid_request_error", "message": "bad request"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     content,
			"model":       anthropic.DefaultModel,
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	var seen map[string]any
	ts := messageServer(t, http.StatusOK, []map[string]any{
		{"type": "text", "text": `{"is_valid": true,`},
		{"type": "text", "text": ` "is_recipe": true}`},
	}, &seen)
	c := anthropic.NewCompleter("test-key", "", option.WithBaseURL(ts.URL), option.WithMaxRetries(0))

	out, err := c.Complete(context.Background(), recipex.CompletionRequest{
		SystemPrompt: "You check recipes.",
		UserPrompt:   "Check this.",
		Temperature:  0.1,
		Schema:       &recipex.Schema{Type: recipex.TypeObject},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"is_valid": true, "is_recipe": true}`, out)

	assert.Equal(t, anthropic.DefaultModel, seen["model"])
	assert.InDelta(t, 0.1, seen["temperature"], 0.0001)
	system, ok := seen["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	text := system[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "You check recipes.")
	assert.Contains(t, text, `"type": "object"`)
}

func TestCompleter_Complete_WrapsAPIErrors(t *testing.T) {
	t.Parallel()

	ts := messageServer(t, http.StatusBadRequest, nil, nil)
	c := anthropic.NewCompleter("test-key", "", option.WithBaseURL(ts.URL), option.WithMaxRetries(0))

	_, err := c.Complete(context.Background(), recipex.CompletionRequest{UserPrompt: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic: create message")
}

func TestCompleter_Complete_RequiresPrompt(t *testing.T) {
	t.Parallel()

	_, err := anthropic.NewCompleter("k", "").Complete(context.Background(), recipex.CompletionRequest{})

	assert.Equal(t, recipex.EINVALID, recipex.ErrorCode(err))
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	plain, err := anthropic.BuildSystemPrompt(recipex.CompletionRequest{SystemPrompt: "Be brief."})
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", plain)

	withSchema, err := anthropic.BuildSystemPrompt(recipex.CompletionRequest{
		Schema: &recipex.Schema{Type: recipex.TypeObject, Required: []string{"is_valid"}},
	})
	require.NoError(t, err)
	assert.Contains(t, withSchema, "JSON schema")
	assert.Contains(t, withSchema, `"is_valid"`)
	assert.NotContains(t, withSchema, "\n\n")
}
