package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/recipex"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ recipex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline with the Gemini local tokenizer, so
// page text can be trimmed before it is sent.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens implements recipex.TokenCounter.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return int(result.TotalTokens), nil
}
