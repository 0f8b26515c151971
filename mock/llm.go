package mock

import (
	"context"

	"github.com/fwojciec/recipex"
)

var _ recipex.Completer = (*Completer)(nil)

// Completer is a mock implementation of recipex.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req recipex.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req recipex.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}

var _ recipex.Judge = (*Judge)(nil)

// Judge is a mock implementation of recipex.Judge.
type Judge struct {
	JudgeReferenceFn func(ctx context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error)
	JudgeTextFn      func(ctx context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error)
}

func (j *Judge) JudgeReference(ctx context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
	return j.JudgeReferenceFn(ctx, req)
}

func (j *Judge) JudgeText(ctx context.Context, req recipex.JudgeRequest) (*recipex.Judgement, error) {
	return j.JudgeTextFn(ctx, req)
}
