package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recipex"
)

// Ensure LoggingCompleter implements recipex.Completer.
var _ recipex.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging of prompt and response
// sizes.
type LoggingCompleter struct {
	next   recipex.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next recipex.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, req recipex.CompletionRequest) (out string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("completion",
			"system_bytes", len(req.SystemPrompt),
			"prompt_bytes", len(req.UserPrompt),
			"schema", req.Schema != nil,
			"response_bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, req)
}
