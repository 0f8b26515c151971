// Package anthropic implements recipex.Completer on the Anthropic
// messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/recipex"
	"github.com/rotisserie/eris"
)

// Defaults for Completer.
const (
	DefaultModel     = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens = 4096
)

var _ recipex.Completer = (*Completer)(nil)

// Completer sends completions to Claude. The messages API has no
// response schema parameter, so a requested schema is appended to the
// system prompt.
type Completer struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewCompleter creates a Completer for the given API key. An empty model
// selects DefaultModel. Extra options are passed to the SDK client.
func NewCompleter(apiKey, model string, opts ...option.RequestOption) *Completer {
	if model == "" {
		model = DefaultModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Completer{
		client:    sdk.NewClient(opts...),
		model:     model,
		maxTokens: DefaultMaxTokens,
	}
}

// Complete implements recipex.Completer.
func (c *Completer) Complete(ctx context.Context, req recipex.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.UserPrompt) == "" {
		return "", recipex.Errorf(recipex.EINVALID, "user prompt required")
	}
	system, err := BuildSystemPrompt(req)
	if err != nil {
		return "", err
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   c.maxTokens,
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(req.UserPrompt))},
		Temperature: sdk.Float(req.Temperature),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", recipex.Errorf(recipex.EINTERNAL, "anthropic returned no text (stop reason %s)", msg.StopReason)
	}
	return sb.String(), nil
}

// BuildSystemPrompt returns the system prompt with the response schema,
// if any, appended as JSON.
func BuildSystemPrompt(req recipex.CompletionRequest) (string, error) {
	if req.Schema == nil {
		return req.SystemPrompt, nil
	}
	b, err := json.MarshalIndent(req.Schema, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "anthropic: marshal schema")
	}
	var sb strings.Builder
	if req.SystemPrompt != "" {
		sb.WriteString(req.SystemPrompt)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Respond with a single JSON object matching this JSON schema, without a code fence:\n")
	sb.Write(b)
	return sb.String(), nil
}
