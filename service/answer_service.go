package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// FallbackAnswer is returned whenever the model call fails; the
	// conversation always advances with a usable string.
	FallbackAnswer = "Oops, something went wrong while processing your request. Let's try again!"
	// NoDocumentAnswer is returned without calling the model when a chat
	// has no PDFs.
	NoDocumentAnswer = "No PDF found for this chat. Please upload a PDF to get AI responses."
	// EmptyExtractionAnswer is returned when the chat's PDFs yielded no text.
	EmptyExtractionAnswer = "Error extracting text from the PDF."

	titleMaxLen = 20
	titleCutLen = 17

	defaultGenerateTimeout = 30 * time.Second
)

// AnswerService renders prompts, calls the model and post-processes the
// output. Every method returns a usable string, never an error.
type AnswerService struct {
	ai           AIService
	answerPrompt *PromptTemplate
	titlePrompt  *PromptTemplate
	timeout      time.Duration
	logger       *zap.Logger
}

func NewAnswerService(ai AIService, timeout time.Duration, logger *zap.Logger) *AnswerService {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &AnswerService{
		ai:           ai,
		answerPrompt: NewPromptTemplate("answer", answerPromptText),
		titlePrompt:  NewPromptTemplate("title", titlePromptText),
		timeout:      timeout,
		logger:       logger,
	}
}

// Answer builds the grounded prompt from the context chunks and question
// and returns the sanitized model response, or FallbackAnswer on any
// provider failure.
func (s *AnswerService) Answer(ctx context.Context, contexts []string, question string) string {
	prompt, err := s.answerPrompt.Render(answerPromptData{
		Context:  strings.Join(contexts, "\n"),
		Question: question,
	})
	if err != nil {
		s.logger.Error("failed to render answer prompt", zap.Error(err))
		return FallbackAnswer
	}

	response, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("answer generation failed", zap.Error(err))
		return FallbackAnswer
	}
	return sanitizeAnswer(strings.TrimSpace(response))
}

// Title asks the model for a short chat title derived from the first user
// message, falling back to the truncated question itself.
func (s *AnswerService) Title(ctx context.Context, question string) string {
	prompt, err := s.titlePrompt.Render(titlePromptData{Question: question})
	if err != nil {
		s.logger.Error("failed to render title prompt", zap.Error(err))
		return truncateTitle(question)
	}

	title, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("title generation failed", zap.Error(err))
		return truncateTitle(question)
	}
	return truncateTitle(title)
}

// generate bounds the model call with the configured timeout and retries
// once when the call timed out.
func (s *AnswerService) generate(ctx context.Context, prompt string) (string, error) {
	response, err := s.callOnce(ctx, prompt)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("model call timed out, retrying once", zap.Error(err))
		return s.callOnce(ctx, prompt)
	}
	return response, err
}

func (s *AnswerService) callOnce(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.ai.Generate(cctx, prompt)
}

// sanitizeAnswer strips the markdown markers the prompt instructions try
// to suppress: bold markers are removed, emphasis markers become bullet
// dashes.
func sanitizeAnswer(response string) string {
	response = strings.ReplaceAll(response, "**", "")
	return strings.ReplaceAll(response, "*", "-")
}

// truncateTitle trims the title and cuts it to titleCutLen runes plus an
// ellipsis when it exceeds titleMaxLen, so the result never exceeds
// titleMaxLen.
func truncateTitle(title string) string {
	title = strings.TrimSpace(title)
	runes := []rune(title)
	if len(runes) <= titleMaxLen {
		return title
	}
	return string(runes[:titleCutLen]) + "..."
}
