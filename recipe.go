package recipex

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Field names of a Recipe as they appear in JSON output.
const (
	FieldDishName     = "dish_name"
	FieldDescription  = "description"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldCategory     = "category"
	FieldPrepTime     = "prep_time"
	FieldCookTime     = "cook_time"
	FieldTotalTime    = "total_time"
	FieldNotes        = "notes"
	FieldTags         = "tags"
	FieldImageURLs    = "image_urls"
)

// RecipeFields lists every output field in serialization order.
var RecipeFields = []string{
	FieldDishName,
	FieldDescription,
	FieldIngredients,
	FieldInstructions,
	FieldCategory,
	FieldPrepTime,
	FieldCookTime,
	FieldTotalTime,
	FieldNotes,
	FieldTags,
	FieldImageURLs,
}

// CriticalFields must be present for an extraction to count as a recipe.
var CriticalFields = []string{FieldDishName, FieldIngredients, FieldInstructions}

// Recipe is the record extracted from one page. Every field is optional;
// a nil field means the data was not found on the page. All keys are
// always written when the record is serialized.
type Recipe struct {
	DishName     *string      `json:"dish_name"`
	Description  *string      `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions *string      `json:"instructions"`
	Category     *string      `json:"category"`
	PrepTime     *string      `json:"prep_time"`
	CookTime     *string      `json:"cook_time"`
	TotalTime    *string      `json:"total_time"`
	Notes        *string      `json:"notes"`
	Tags         *string      `json:"tags"`
	ImageURLs    *string      `json:"image_urls"`
}

// UnmarshalJSON decodes a record, accepting the legacy shapes found in
// older reference fixtures: ingredients encoded as a JSON string and
// instructions stored under "step_by_step".
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type plain Recipe
	var aux struct {
		plain
		Ingredients json.RawMessage `json:"ingredients"`
		StepByStep  *string         `json:"step_by_step"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Recipe(aux.plain)
	if r.Instructions == nil && aux.StepByStep != nil {
		r.Instructions = aux.StepByStep
	}

	raw := bytes.TrimSpace(aux.Ingredients)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.Ingredients = nil
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		raw = []byte(s)
	}
	var items []Ingredient
	if err := json.Unmarshal(raw, &items); err != nil {
		return Errorf(EINVALID, "ingredients: %v", err)
	}
	r.Ingredients = items
	return nil
}

// Field returns the value of the named field and whether it is set.
// Empty strings and empty ingredient lists count as unset.
func (r *Recipe) Field(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	var s *string
	switch name {
	case FieldDishName:
		s = r.DishName
	case FieldDescription:
		s = r.Description
	case FieldIngredients:
		return r.Ingredients, len(r.Ingredients) > 0
	case FieldInstructions:
		s = r.Instructions
	case FieldCategory:
		s = r.Category
	case FieldPrepTime:
		s = r.PrepTime
	case FieldCookTime:
		s = r.CookTime
	case FieldTotalTime:
		s = r.TotalTime
	case FieldNotes:
		s = r.Notes
	case FieldTags:
		s = r.Tags
	case FieldImageURLs:
		s = r.ImageURLs
	default:
		return nil, false
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, false
	}
	return *s, true
}

// MissingFields returns the names from fields that are unset on r,
// preserving order.
func (r *Recipe) MissingFields(fields []string) []string {
	var missing []string
	for _, f := range fields {
		if _, ok := r.Field(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Ingredient is one parsed ingredient line. Name is never empty.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount Amount  `json:"amount"`
	Unit   *string `json:"unit"`
}

// UnmarshalJSON accepts both "unit" and the legacy "units" key.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name   string  `json:"name"`
		Amount Amount  `json:"amount"`
		Unit   *string `json:"unit"`
		Units  *string `json:"units"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Name = aux.Name
	i.Amount = aux.Amount
	i.Unit = aux.Unit
	if i.Unit == nil {
		i.Unit = aux.Units
	}
	return nil
}

type amountKind uint8

const (
	amountNull amountKind = iota
	amountNumber
	amountText
)

// Amount is an ingredient quantity. Sites disagree on whether quantities
// are numbers or literal strings ("2-3", "1/2"), so an Amount holds
// either, or nothing at all.
type Amount struct {
	kind amountKind
	num  float64
	text string
}

// NumberAmount returns a numeric amount.
func NumberAmount(f float64) Amount {
	return Amount{kind: amountNumber, num: f}
}

// TextAmount returns a literal string amount.
func TextAmount(s string) Amount {
	return Amount{kind: amountText, text: s}
}

// IsNull reports whether the amount is absent.
func (a Amount) IsNull() bool { return a.kind == amountNull }

// IsText reports whether the amount is a literal string.
func (a Amount) IsText() bool { return a.kind == amountText }

// Number returns the numeric value. Text amounts that are plain numbers
// are converted; anything else reports false.
func (a Amount) Number() (float64, bool) {
	switch a.kind {
	case amountNumber:
		return a.num, true
	case amountText:
		f, err := strconv.ParseFloat(strings.ReplaceAll(a.text, ",", "."), 64)
		return f, err == nil
	}
	return 0, false
}

// String returns the amount as display text; the null amount is "".
func (a Amount) String() string {
	switch a.kind {
	case amountNumber:
		return FormatNumber(a.num)
	case amountText:
		return a.text
	}
	return ""
}

// MarshalJSON writes null, a JSON number or a JSON string.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case amountNumber:
		return []byte(FormatNumber(a.num)), nil
	case amountText:
		return json.Marshal(a.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads null, a number or a string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Amount{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAmount(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*a = NumberAmount(f)
	}
	return nil
}

// FormatNumber renders f without trailing zeros: 2, 0.5, 1.25.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns a pointer to s, or nil if s is empty after trimming.
func String(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
