package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/mock"
	rxslog "github.com/fwojciec/recipex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("logs prompt and response sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Completer{
			CompleteFn: func(context.Context, recipex.CompletionRequest) (string, error) {
				return `{"ok":true}`, nil
			},
		}

		out, err := rxslog.NewLoggingCompleter(inner, logger).Complete(context.Background(), recipex.CompletionRequest{
			SystemPrompt: "system",
			UserPrompt:   "user prompt",
			Schema:       &recipex.Schema{Type: recipex.TypeObject},
		})

		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, out)
		output := buf.String()
		assert.Contains(t, output, "completion")
		assert.Contains(t, output, "system_bytes=6")
		assert.Contains(t, output, "prompt_bytes=11")
		assert.Contains(t, output, "schema=true")
		assert.Contains(t, output, "response_bytes=11")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Completer{
			CompleteFn: func(context.Context, recipex.CompletionRequest) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		_, err := rxslog.NewLoggingCompleter(inner, logger).Complete(context.Background(), recipex.CompletionRequest{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})
}
