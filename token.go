package recipex

import "context"

// TokenCounter measures prompt text in model tokens so page text can be
// trimmed to fit a model's context budget.
type TokenCounter interface {
	// CountTokens returns the number of tokens text encodes to.
	CountTokens(ctx context.Context, text string) (int, error)
}
