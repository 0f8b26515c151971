package gemini

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/recipex"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements recipex.Completer at compile time.
var _ recipex.Completer = (*Completer)(nil)

// Completer implements recipex.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects
// DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends one generation request and returns the response text.
func (c *Completer) Complete(ctx context.Context, req recipex.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.UserPrompt) == "" {
		return "", recipex.Errorf(recipex.EINVALID, "user prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.UserPrompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", recipex.Errorf(recipex.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", recipex.Errorf(recipex.EINTERNAL, "gemini returned empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for a completion request.
// A request schema switches the response to JSON of that shape.
func BuildConfig(req recipex.CompletionRequest) *genai.GenerateContentConfig {
	temp := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = ConvertSchema(req.Schema)
	}
	return config
}

// ConvertSchema translates a recipex.Schema into the Gemini schema
// dialect.
func ConvertSchema(s *recipex.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        schemaType(s.Type),
		Description: s.Description,
		Items:       ConvertSchema(s.Items),
	}
	if s.Nullable {
		nullable := true
		out.Nullable = &nullable
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		keys := make([]string, 0, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = ConvertSchema(v)
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out.PropertyOrdering = keys
	}
	return out
}

func schemaType(t recipex.SchemaType) genai.Type {
	switch t {
	case recipex.TypeObject:
		return genai.TypeObject
	case recipex.TypeArray:
		return genai.TypeArray
	case recipex.TypeBoolean:
		return genai.TypeBoolean
	case recipex.TypeNumber:
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}
