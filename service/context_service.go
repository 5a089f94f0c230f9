package service

import "context"

// ContextAssembler selects and orders the chunks presented to the model
// as context for a question.
type ContextAssembler interface {
	Assemble(ctx context.Context, chunks []string, question string) ([]string, error)
}

// PassthroughAssembler returns all chunks unchanged and unranked. A
// vector-backed retriever can replace it behind the same interface
// without touching the rest of the pipeline.
type PassthroughAssembler struct{}

func NewPassthroughAssembler() *PassthroughAssembler {
	return &PassthroughAssembler{}
}

func (a *PassthroughAssembler) Assemble(_ context.Context, chunks []string, _ string) ([]string, error) {
	return chunks, nil
}
