package recipex

import "context"

// JudgeRequest carries everything a judge may compare.
type JudgeRequest struct {
	Site      string
	File      string
	Extracted *Recipe
	// Reference is the hand-curated record, for reference comparison.
	Reference *Recipe
	// PageText is the visible page text, for semantic comparison.
	PageText string
}

// Judge decides whether an extraction is correct.
type Judge interface {
	// JudgeReference compares the extraction with a reference record.
	// Critical fields must match in meaning; optional fields never fail.
	JudgeReference(ctx context.Context, req JudgeRequest) (*Judgement, error)

	// JudgeText compares the extraction with the page's own text and
	// decides whether the page is a recipe at all.
	JudgeText(ctx context.Context, req JudgeRequest) (*Judgement, error)
}
