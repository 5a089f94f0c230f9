package service

import "context"

// AIService is the language-model collaborator: a prompt in, a response
// out. Implementations may fail or time out; callers own the fallback.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
