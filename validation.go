package recipex

import (
	"math"
	"time"
)

// ValidationStatus is the terminal state of one file's validation.
type ValidationStatus string

// Validation statuses.
const (
	StatusPassed      ValidationStatus = "passed"
	StatusFailed      ValidationStatus = "failed"
	StatusSystemError ValidationStatus = "system_error"
	StatusSkipped     ValidationStatus = "skipped"
)

// Reasons recorded on results and reports.
const (
	ReasonMissingRequired   = "missing_required_fields"
	ReasonReferenceNotFound = "reference_json_not_found"
	ReasonExtractionFailed  = "extraction_failed"
	ReasonJudgeFailed       = "judge_failed"
	ReasonDirNotFound       = "test_data_directory_not_found"
	ReasonDirEmpty          = "test_data_directory_empty"
)

// FieldValidation is a structured diagnostic for one wrong field, meant
// to guide a fix of the site configuration.
type FieldValidation struct {
	Field                string `json:"field"`
	Issue                string `json:"issue"`
	ActualExtractedValue string `json:"actual_extracted_value"`
	CorrectValueFromText string `json:"correct_value_from_text"`
	TextContext          string `json:"text_context"`
	PatternHint          string `json:"pattern_hint"`
	FixSuggestion        string `json:"fix_suggestion"`
}

// FileValidationResult is the outcome for one fixture file.
type FileValidationResult struct {
	File               string            `json:"file"`
	Status             ValidationStatus  `json:"status"`
	IsValid            bool              `json:"is_valid"`
	IsRecipe           bool              `json:"is_recipe"`
	MissingFields      []string          `json:"missing_fields"`
	IncorrectFields    []string          `json:"incorrect_fields"`
	Feedback           string            `json:"feedback"`
	FixRecommendations []FieldValidation `json:"fix_recommendations"`
	Reason             string            `json:"reason,omitempty"`
	RecoveredFields    map[string]any    `json:"recovered_fields,omitempty"`
}

// Judgement is a verdict on an extraction, from a language model or the
// structural comparator.
type Judgement struct {
	IsValid            bool              `json:"is_valid"`
	IsRecipe           bool              `json:"is_recipe"`
	MissingFields      []string          `json:"missing_fields"`
	IncorrectFields    []string          `json:"incorrect_fields"`
	Feedback           string            `json:"feedback"`
	FixRecommendations []FieldValidation `json:"fix_recommendations"`
	RecoveredFields    map[string]any    `json:"extracted_missing_data,omitempty"`
}

// ResultFromJudgement builds the file result for a judgement. A page that
// is not a recipe is valid by definition: an empty extraction is correct.
func ResultFromJudgement(file string, j *Judgement) *FileValidationResult {
	r := &FileValidationResult{
		File:               file,
		IsValid:            j.IsValid,
		IsRecipe:           j.IsRecipe,
		MissingFields:      j.MissingFields,
		IncorrectFields:    j.IncorrectFields,
		Feedback:           j.Feedback,
		FixRecommendations: j.FixRecommendations,
		RecoveredFields:    j.RecoveredFields,
	}
	if !r.IsRecipe {
		r.IsValid = true
	}
	if r.IsValid {
		r.Status = StatusPassed
	} else {
		r.Status = StatusFailed
	}
	return r
}

// SystemErrorResult records a tooling failure, as opposed to a wrong
// extraction.
func SystemErrorResult(file, reason string, err error) *FileValidationResult {
	r := &FileValidationResult{
		File:     file,
		Status:   StatusSystemError,
		IsRecipe: true,
		Reason:   reason,
	}
	if err != nil {
		r.Feedback = err.Error()
	}
	return r
}

// ValidationReport tallies the results of one validation run for a site.
type ValidationReport struct {
	RunID        string                  `json:"run_id"`
	Module       string                  `json:"module"`
	StartedAt    time.Time               `json:"started_at"`
	TotalFiles   int                     `json:"total_files"`
	Passed       int                     `json:"passed"`
	Failed       int                     `json:"failed"`
	SystemErrors int                     `json:"system_errors"`
	Skipped      int                     `json:"skipped"`
	SuccessRate  float64                 `json:"success_rate"`
	Error        string                  `json:"error,omitempty"`
	Details      []*FileValidationResult `json:"details"`
}

// AddResult appends r and updates the counters and success rate.
func (rep *ValidationReport) AddResult(r *FileValidationResult) {
	rep.Details = append(rep.Details, r)
	rep.TotalFiles++
	switch r.Status {
	case StatusPassed:
		rep.Passed++
	case StatusFailed:
		rep.Failed++
	case StatusSystemError:
		rep.SystemErrors++
	case StatusSkipped:
		rep.Skipped++
	}
	rep.SuccessRate = rep.ComputeSuccessRate()
}

// ComputeSuccessRate returns passed/total as a percentage rounded to two
// decimals, or 0 for an empty report.
func (rep *ValidationReport) ComputeSuccessRate() float64 {
	if rep.TotalFiles == 0 {
		return 0
	}
	return math.Round(float64(rep.Passed)/float64(rep.TotalFiles)*10000) / 100
}

// IsSuccess reports whether every file passed or was skipped.
func (rep *ValidationReport) IsSuccess() bool {
	return rep.Error == "" && rep.Failed == 0 && rep.SystemErrors == 0
}

// NewErrorReport returns an empty report for a run that could not start,
// such as a missing or empty fixture directory.
func NewErrorReport(module, reason string) *ValidationReport {
	return &ValidationReport{
		Module:  module,
		Error:   reason,
		Details: []*FileValidationResult{},
	}
}
