package recipex

import (
	"context"
	"time"
)

// Default LLM call settings for validation.
const (
	DefaultTemperature = 0.1
	DefaultRetries     = 5
	DefaultLLMTimeout  = 60 * time.Second
)

// SchemaType is a JSON schema type name.
type SchemaType string

// Schema types.
const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeBoolean SchemaType = "boolean"
	TypeNumber  SchemaType = "number"
)

// Schema describes the JSON shape a completion must return.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
}

// CompletionRequest is one structured chat completion.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	// Schema, when set, asks the model for JSON of that shape.
	Schema *Schema
	// Retries and Timeout bound the whole call including retries of
	// malformed responses; a Completer itself makes a single attempt.
	Retries int
	Timeout time.Duration
}

// Completer sends a completion request to a language model.
type Completer interface {
	// Complete makes one attempt and returns the raw response text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
