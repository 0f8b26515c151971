package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/recipex"
)

var _ recipex.Judge = (*LLMJudge)(nil)

// LLMJudge asks a language model whether an extraction is right. Critical
// fields must match in meaning; optional fields never fail a file.
type LLMJudge struct {
	Completer   recipex.Completer
	Temperature float64
	// Retries is the number of attempts per judgement, covering both call
	// failures and responses that do not decode.
	Retries int
	// Timeout bounds each attempt.
	Timeout time.Duration
	// Delays overrides DefaultRetryDelays; tests set it to nil waits.
	Delays []time.Duration
	Logger LogFunc
}

// NewLLMJudge creates an LLMJudge with the default temperature, retry
// count and timeout.
func NewLLMJudge(c recipex.Completer) *LLMJudge {
	return &LLMJudge{
		Completer:   c,
		Temperature: recipex.DefaultTemperature,
		Retries:     recipex.DefaultRetries,
		Timeout:     recipex.DefaultLLMTimeout,
		Delays:      DefaultRetryDelays(),
	}
}

// JudgeReference implements recipex.Judge.
func (j *LLMJudge) JudgeReference(ctx context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
	if req.Reference == nil {
		return nil, recipex.Errorf(recipex.EINVALID, "reference record required")
	}
	user, err := BuildReferencePrompt(req.Extracted, req.Reference)
	if err != nil {
		return nil, err
	}
	return j.judge(ctx, req.File, recipex.CompletionRequest{
		SystemPrompt: BuildReferenceSystemPrompt(req.Site),
		UserPrompt:   user,
		Schema:       JudgementSchema(false),
	})
}

// JudgeText implements recipex.Judge.
func (j *LLMJudge) JudgeText(ctx context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
	if strings.TrimSpace(req.PageText) == "" {
		return nil, recipex.Errorf(recipex.EINVALID, "page text required")
	}
	user, err := BuildTextPrompt(req.Extracted, req.PageText)
	if err != nil {
		return nil, err
	}
	return j.judge(ctx, req.File, recipex.CompletionRequest{
		SystemPrompt: BuildTextSystemPrompt(req.Site),
		UserPrompt:   user,
		Schema:       JudgementSchema(true),
	})
}

func (j *LLMJudge) judge(ctx context.Context, file string, req recipex.CompletionRequest) (*recipex.Judgement, error) {
	req.Temperature = j.Temperature
	req.Retries = j.Retries
	req.Timeout = j.Timeout

	var out *recipex.Judgement
	err := Retry(ctx, file, j.Retries, j.Timeout, func(ctx context.Context) error {
		raw, err := j.Completer.Complete(ctx, req)
		if err != nil {
			return err
		}
		jd, err := DecodeJudgement(raw)
		if err != nil {
			return err
		}
		out = jd
		return nil
	}, j.Logger, j.Delays)
	if err != nil {
		return nil, fmt.Errorf("judge %s: %w", file, err)
	}
	return out, nil
}

// DecodeJudgement parses a model response, tolerating a markdown code
// fence around the JSON.
func DecodeJudgement(raw string) (*recipex.Judgement, error) {
	s := StripFence(raw)
	if s == "" {
		return nil, recipex.Errorf(recipex.EINVALID, "empty judgement")
	}
	var j recipex.Judgement
	if err := json.Unmarshal([]byte(s), &j); err != nil {
		return nil, recipex.Errorf(recipex.EINVALID, "decode judgement: %v", err)
	}
	return &j, nil
}

// StripFence removes a surrounding ``` or ```json fence.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// JudgementSchema describes the response the model must return. The text
// variant adds the fields the model recovered from the page.
func JudgementSchema(recovered bool) *recipex.Schema {
	str := func(desc string) *recipex.Schema {
		return &recipex.Schema{Type: recipex.TypeString, Description: desc}
	}
	list := &recipex.Schema{Type: recipex.TypeArray, Items: str("")}
	fix := &recipex.Schema{
		Type: recipex.TypeObject,
		Properties: map[string]*recipex.Schema{
			"field":                   str("field name"),
			"issue":                   str("what is wrong"),
			"actual_extracted_value":  str("value that was extracted, empty if none"),
			"correct_value_from_text": str("value that should have been extracted"),
			"text_context":            str("one or two sentences around the correct value"),
			"pattern_hint":            str("where the value appears on the page"),
			"fix_suggestion":          str("how to change the extraction"),
		},
		Required: []string{"field", "issue", "fix_suggestion"},
	}
	s := &recipex.Schema{
		Type: recipex.TypeObject,
		Properties: map[string]*recipex.Schema{
			"is_valid":            {Type: recipex.TypeBoolean},
			"is_recipe":           {Type: recipex.TypeBoolean},
			"missing_fields":      list,
			"incorrect_fields":    list,
			"feedback":            str("short explanation focused on the critical fields"),
			"fix_recommendations": {Type: recipex.TypeArray, Items: fix},
		},
		Required: []string{"is_valid", "is_recipe", "missing_fields", "incorrect_fields", "feedback", "fix_recommendations"},
	}
	if recovered {
		s.Properties["extracted_missing_data"] = &recipex.Schema{
			Type:        recipex.TypeObject,
			Description: "critical fields the extraction missed, read from the page text",
			Nullable:    true,
			Properties: map[string]*recipex.Schema{
				recipex.FieldDishName:     {Type: recipex.TypeString, Nullable: true},
				recipex.FieldIngredients:  {Type: recipex.TypeArray, Items: str(""), Nullable: true},
				recipex.FieldInstructions: {Type: recipex.TypeString, Nullable: true},
			},
		}
	}
	return s
}

const fieldRules = `Fields fall into two groups.
Critical: dish_name, ingredients, instructions. A recipe page needs all three.
Optional: description, category, prep_time, cook_time, total_time, notes, tags, image_urls.

Critical fields must carry the same meaning as the source. Accept case and punctuation changes in dish_name, reordered or reformatted ingredients, ingredients missing a quantity, renumbered or paraphrased instructions. Fail only when the content differs substantially, for example when more than half of the ingredients or steps are missing or wrong.

Optional fields never fail validation. A missing optional field is fine. Differently formatted values are fine ("30 min", "30 minutes", "0:30" and "PT30M" are the same). Mention an optional field only if its value is clearly nonsense.

If the page is not a recipe (home page, category listing, article without ingredients and steps), an empty extraction is correct: answer is_valid=true and is_recipe=false.

Answer with a single JSON object and nothing else.`

// BuildReferenceSystemPrompt returns the system prompt for comparing an
// extraction with a hand-curated reference record.
func BuildReferenceSystemPrompt(site string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You check recipe data extracted from pages of the site %q.\n", site)
	sb.WriteString("You receive the extracted record and a hand-curated reference record for the same page. ")
	sb.WriteString("Decide whether the page is a recipe and whether the extracted critical fields match the reference. ")
	sb.WriteString("When a field is wrong, give a fix recommendation with the reference value as correct_value_from_text.\n\n")
	sb.WriteString(fieldRules)
	return sb.String()
}

// BuildTextSystemPrompt returns the system prompt for comparing an
// extraction with the page's plain text.
func BuildTextSystemPrompt(site string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You check recipe data extracted from pages of the site %q.\n", site)
	sb.WriteString("You receive the extracted record and the visible text of the page, without markup. ")
	sb.WriteString("Decide whether the text describes a single recipe and whether the extracted critical fields agree with it. ")
	sb.WriteString("For every critical field that is missing or wrong, quote where it appears in the text and put the correct value in extracted_missing_data. ")
	sb.WriteString("Base every recommendation on the text only; never suggest CSS selectors or HTML structure.\n\n")
	sb.WriteString(fieldRules)
	return sb.String()
}

// BuildReferencePrompt builds the user prompt holding both records.
func BuildReferencePrompt(extracted, reference *recipex.Recipe) (string, error) {
	ext, err := indent(extracted)
	if err != nil {
		return "", err
	}
	ref, err := indent(reference)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<extracted>\n")
	sb.WriteString(ext)
	sb.WriteString("\n</extracted>\n\n<reference>\n")
	sb.WriteString(ref)
	sb.WriteString("\n</reference>\n\nCompare the extracted record with the reference and return the judgement.")
	return sb.String(), nil
}

// BuildTextPrompt builds the user prompt holding the record and the page
// text.
func BuildTextPrompt(extracted *recipex.Recipe, text string) (string, error) {
	ext, err := indent(extracted)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<extracted>\n")
	sb.WriteString(ext)
	sb.WriteString("\n</extracted>\n\n<page_text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</page_text>\n\nIs this a recipe page? If it is, check the extracted record against the text and return the judgement.")
	return sb.String(), nil
}

func indent(r *recipex.Recipe) (string, error) {
	if r == nil {
		r = &recipex.Recipe{}
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(b), nil
}
