package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tieubaoca/docchat-be/repository"
	"github.com/tieubaoca/docchat-be/types"
	"go.uber.org/zap"
)

// stubProcessor stands in for PDF extraction so the pipeline is exercised
// without real PDF payloads.
type stubProcessor struct {
	text string
}

func (p *stubProcessor) ExtractText(buffers [][]byte) string {
	if len(buffers) == 0 {
		return ""
	}
	return p.text
}

func (p *stubProcessor) ChunkText(text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}

// routedAI answers title prompts and answer prompts differently so both
// generators can be observed in one conversation turn.
type routedAI struct {
	titleReply  string
	answerReply string
	err         error
}

func (a *routedAI) Generate(_ context.Context, prompt string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if strings.Contains(prompt, "chat title") {
		return a.titleReply, nil
	}
	return a.answerReply, nil
}

func newTestChatService(store *repository.MemoryStore, ai AIService, text string) *ChatService {
	logger := zap.NewNop()
	return NewChatService(
		store,
		store,
		&stubProcessor{text: text},
		NewPassthroughAssembler(),
		NewAnswerService(ai, 0, logger),
		logger,
	)
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("full turn against an uploaded document", func(t *testing.T) {
		store := repository.NewMemoryStore()
		ai := &routedAI{titleReply: "Alice's experience", answerReply: "Alice has 5 years of experience."}
		svc := newTestChatService(store, ai, "Alice has 5 years of experience.")

		chat, err := svc.CreateChat(ctx, "user-a")
		if err != nil {
			t.Fatalf("CreateChat: %v", err)
		}
		if _, err := svc.UploadPDF(ctx, "user-a", chat.ID, "resume.pdf", []byte("%PDF-stub")); err != nil {
			t.Fatalf("UploadPDF: %v", err)
		}

		updated, err := svc.SendMessage(ctx, "user-a", chat.ID, "What is Alice's experience?")
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if len(updated.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(updated.Messages))
		}
		if updated.Messages[0].Role != types.MessageRoleUser || updated.Messages[1].Role != types.MessageRoleAssistant {
			t.Errorf("unexpected roles: %q, %q", updated.Messages[0].Role, updated.Messages[1].Role)
		}
		if !strings.Contains(updated.Messages[1].Content, "Alice") {
			t.Errorf("unexpected answer: %q", updated.Messages[1].Content)
		}
		if updated.Title == "" || len([]rune(updated.Title)) > 20 {
			t.Errorf("unexpected title: %q", updated.Title)
		}

		// Deleting the chat must cascade to its PDFs.
		if err := svc.DeleteChat(ctx, "user-a", chat.ID); err != nil {
			t.Fatalf("DeleteChat: %v", err)
		}
		pdfs, err := store.ListByChat(ctx, "user-a", chat.ID)
		if err != nil {
			t.Fatalf("ListByChat: %v", err)
		}
		if len(pdfs) != 0 {
			t.Errorf("expected no PDFs after cascade delete, got %d", len(pdfs))
		}
	})

	t.Run("no PDFs yields the persisted no-document answer", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestChatService(store, &routedAI{titleReply: "t", answerReply: "a"}, "")

		chat, _ := svc.CreateChat(ctx, "user-a")
		updated, err := svc.SendMessage(ctx, "user-a", chat.ID, "anything?")
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if updated.Messages[1].Content != NoDocumentAnswer {
			t.Errorf("expected no-document answer, got %q", updated.Messages[1].Content)
		}

		persisted, _ := store.GetChat(ctx, chat.ID)
		if len(persisted.Messages) != 2 {
			t.Errorf("expected both turns persisted, got %d messages", len(persisted.Messages))
		}
	})

	t.Run("empty extraction yields the extraction-error answer", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestChatService(store, &routedAI{titleReply: "t", answerReply: "a"}, "")

		chat, _ := svc.CreateChat(ctx, "user-a")
		svc.UploadPDF(ctx, "user-a", chat.ID, "broken.pdf", []byte("junk"))
		updated, err := svc.SendMessage(ctx, "user-a", chat.ID, "anything?")
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if updated.Messages[1].Content != EmptyExtractionAnswer {
			t.Errorf("expected extraction-error answer, got %q", updated.Messages[1].Content)
		}
	})

	t.Run("title is generated on the first message only", func(t *testing.T) {
		store := repository.NewMemoryStore()
		ai := &routedAI{titleReply: "First title", answerReply: "answer"}
		svc := newTestChatService(store, ai, "doc text")

		chat, _ := svc.CreateChat(ctx, "user-a")
		if _, err := svc.SendMessage(ctx, "user-a", chat.ID, "first"); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}

		ai.titleReply = "Second title"
		updated, err := svc.SendMessage(ctx, "user-a", chat.ID, "second")
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if updated.Title != "First title" {
			t.Errorf("expected title unchanged, got %q", updated.Title)
		}
	})

	t.Run("model failure still advances the conversation", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestChatService(store, &routedAI{err: errors.New("unreachable")}, "doc text")

		chat, _ := svc.CreateChat(ctx, "user-a")
		svc.UploadPDF(ctx, "user-a", chat.ID, "doc.pdf", []byte("%PDF-stub"))
		updated, err := svc.SendMessage(ctx, "user-a", chat.ID, "anything?")
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if updated.Messages[1].Content != FallbackAnswer {
			t.Errorf("expected fallback answer, got %q", updated.Messages[1].Content)
		}
	})
}

func TestOwnership(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestChatService(store, &routedAI{titleReply: "t", answerReply: "a"}, "doc")

	chat, _ := svc.CreateChat(ctx, "user-a")

	if _, err := svc.Messages(ctx, "user-b", chat.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Messages: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.SendMessage(ctx, "user-b", chat.ID, "hi"); !errors.Is(err, ErrForbidden) {
		t.Errorf("SendMessage: expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteChat(ctx, "user-b", chat.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeleteChat: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListPDFs(ctx, "user-b", chat.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("ListPDFs: expected ErrForbidden, got %v", err)
	}

	// The rejected calls must not have mutated the chat.
	persisted, err := store.GetChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if len(persisted.Messages) != 0 {
		t.Errorf("expected chat unchanged, got %d messages", len(persisted.Messages))
	}

	if _, err := svc.Messages(ctx, "user-a", "missing-id"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("expected ErrChatNotFound, got %v", err)
	}
}

func TestClearMessages(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestChatService(store, &routedAI{titleReply: "Kept title", answerReply: "a"}, "doc")

	chat, _ := svc.CreateChat(ctx, "user-a")
	svc.UploadPDF(ctx, "user-a", chat.ID, "doc.pdf", []byte("%PDF-stub"))
	if _, err := svc.SendMessage(ctx, "user-a", chat.ID, "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if err := svc.ClearMessages(ctx, "user-a", chat.ID); err != nil {
		t.Fatalf("ClearMessages: %v", err)
	}

	persisted, _ := store.GetChat(ctx, chat.ID)
	if len(persisted.Messages) != 0 {
		t.Errorf("expected no messages, got %d", len(persisted.Messages))
	}
	if persisted.Title != "Kept title" {
		t.Errorf("expected title untouched, got %q", persisted.Title)
	}
	pdfs, _ := store.ListByChat(ctx, "user-a", chat.ID)
	if len(pdfs) != 1 {
		t.Errorf("expected PDFs untouched, got %d", len(pdfs))
	}
}
