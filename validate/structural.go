package validate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/recipex"
)

var _ recipex.Judge = (*StructuralJudge)(nil)

// Overlap thresholds, as the share of reference words found in the
// extraction.
const (
	dishNameOverlap     = 0.7
	instructionsOverlap = 0.6
	ingredientsOverlap  = 0.5
	looseOverlap        = 0.3
)

// StructuralJudge compares an extraction with a reference record field by
// field, without a language model. Only critical fields decide validity;
// differences in optional fields are listed in the feedback.
type StructuralJudge struct{}

// NewStructuralJudge creates a new StructuralJudge.
func NewStructuralJudge() *StructuralJudge {
	return &StructuralJudge{}
}

// JudgeReference implements recipex.Judge.
func (s *StructuralJudge) JudgeReference(_ context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
	if req.Reference == nil {
		return nil, recipex.Errorf(recipex.EINVALID, "reference record required")
	}
	ext, ref := req.Extracted, req.Reference
	if ext == nil {
		ext = &recipex.Recipe{}
	}

	j := &recipex.Judgement{
		IsRecipe:        len(ref.MissingFields(recipex.CriticalFields)) < len(recipex.CriticalFields),
		MissingFields:   []string{},
		IncorrectFields: []string{},
	}
	var notes []string

	for _, field := range recipex.CriticalFields {
		refVal, refOK := ref.Field(field)
		extVal, extOK := ext.Field(field)
		switch {
		case !refOK:
			continue
		case !extOK:
			j.MissingFields = append(j.MissingFields, field)
			j.FixRecommendations = append(j.FixRecommendations, recipex.FieldValidation{
				Field:                field,
				Issue:                "not extracted",
				CorrectValueFromText: display(refVal),
				FixSuggestion:        "add a selector or block key that yields this field",
			})
		default:
			if ok, why := compareCritical(field, refVal, extVal); !ok {
				j.IncorrectFields = append(j.IncorrectFields, field)
				j.FixRecommendations = append(j.FixRecommendations, recipex.FieldValidation{
					Field:                field,
					Issue:                why,
					ActualExtractedValue: display(extVal),
					CorrectValueFromText: display(refVal),
					FixSuggestion:        "compare the selector output with the reference value",
				})
			}
		}
	}

	for _, field := range recipex.RecipeFields {
		if isCritical(field) {
			continue
		}
		refVal, refOK := ref.Field(field)
		extVal, extOK := ext.Field(field)
		if !refOK || !extOK {
			continue
		}
		if ok, why := compareOptional(field, refVal.(string), extVal.(string)); !ok {
			notes = append(notes, fmt.Sprintf("%s: %s", field, why))
		}
	}

	j.IsValid = len(j.MissingFields) == 0 && len(j.IncorrectFields) == 0
	j.Feedback = feedback(j, notes)
	return j, nil
}

// JudgeText implements recipex.Judge. Reading a page's text needs a
// language model, so it always fails.
func (s *StructuralJudge) JudgeText(context.Context, recipex.JudgeRequest) (*recipex.Judgement, error) {
	return nil, recipex.Errorf(recipex.EINVALID, "structural judge cannot compare against page text")
}

func isCritical(field string) bool {
	for _, f := range recipex.CriticalFields {
		if f == field {
			return true
		}
	}
	return false
}

func compareCritical(field string, ref, ext any) (bool, string) {
	switch field {
	case recipex.FieldIngredients:
		r := ingredientNames(ref.([]recipex.Ingredient))
		e := ingredientNames(ext.([]recipex.Ingredient))
		if o := overlap(r, e); o < ingredientsOverlap {
			return false, fmt.Sprintf("only %.0f%% of reference ingredients found", o*100)
		}
		return true, ""
	case recipex.FieldDishName:
		r, e := foldText(ref.(string)), foldText(ext.(string))
		if r == e || overlap(words(r), words(e)) > dishNameOverlap {
			return true, ""
		}
		return false, "dish name differs"
	default:
		r, e := foldText(ref.(string)), foldText(ext.(string))
		if r == e || overlap(words(r), words(e)) > instructionsOverlap {
			return true, ""
		}
		return false, "instructions differ"
	}
}

var digitsRE = regexp.MustCompile(`\d+`)

func compareOptional(field, ref, ext string) (bool, string) {
	r, e := foldText(ref), foldText(ext)
	if r == e {
		return true, ""
	}
	switch field {
	case recipex.FieldTags:
		if overlap(list(r), list(e)) > looseOverlap {
			return true, ""
		}
	case recipex.FieldCategory:
		if overlap(list(r), list(e)) > 0 {
			return true, ""
		}
	case recipex.FieldDescription, recipex.FieldNotes:
		if strings.Contains(r, e) || strings.Contains(e, r) || overlap(words(r), words(e)) > looseOverlap {
			return true, ""
		}
	case recipex.FieldPrepTime, recipex.FieldCookTime, recipex.FieldTotalTime:
		if minutes(r) == minutes(e) {
			return true, ""
		}
	case recipex.FieldImageURLs:
		if overlap(list(r), list(e)) > 0 {
			return true, ""
		}
	}
	return false, fmt.Sprintf("%q differs from reference %q", ext, ref)
}

// minutes reads "1 hour 30 minutes" style text as a total: one number is
// taken as minutes, two as hours and minutes.
func minutes(s string) int {
	nums := digitsRE.FindAllString(s, -1)
	total := 0
	for i, n := range nums {
		v, _ := strconv.Atoi(n)
		if len(nums) == 2 && i == 0 {
			v *= 60
		}
		total += v
	}
	return total
}

func feedback(j *recipex.Judgement, notes []string) string {
	var parts []string
	switch {
	case !j.IsRecipe:
		parts = append(parts, "reference has no critical fields; page is not a recipe")
	case j.IsValid:
		parts = append(parts, "critical fields match the reference")
	}
	if len(j.MissingFields) > 0 {
		parts = append(parts, "missing: "+strings.Join(j.MissingFields, ", "))
	}
	if len(j.IncorrectFields) > 0 {
		parts = append(parts, "incorrect: "+strings.Join(j.IncorrectFields, ", "))
	}
	if len(notes) > 0 {
		parts = append(parts, "optional differences: "+strings.Join(notes, "; "))
	}
	return strings.Join(parts, ". ")
}

func foldText(s string) string {
	return strings.ToLower(recipex.Normalize(s))
}

func words(s string) []string {
	return strings.Fields(s)
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ingredientNames(items []recipex.Ingredient) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, foldText(it.Name))
	}
	return out
}

// overlap returns the share of distinct ref items present in ext.
func overlap(ref, ext []string) float64 {
	if len(ref) == 0 {
		return 0
	}
	have := make(map[string]bool, len(ext))
	for _, e := range ext {
		have[e] = true
	}
	seen := make(map[string]bool, len(ref))
	hit := 0
	for _, r := range ref {
		if seen[r] {
			continue
		}
		seen[r] = true
		if have[r] {
			hit++
		}
	}
	return float64(hit) / float64(len(seen))
}

func display(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []recipex.Ingredient:
		names := make([]string, 0, len(v))
		for _, it := range v {
			names = append(names, it.Name)
		}
		return strings.Join(names, ", ")
	}
	return fmt.Sprint(v)
}
