package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tieubaoca/docchat-be/repository"
	"github.com/tieubaoca/docchat-be/types"
	"go.uber.org/zap"
)

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrForbidden    = errors.New("unauthorized")
)

// DocumentProcessor turns PDF payloads into context chunks.
type DocumentProcessor interface {
	ExtractText(buffers [][]byte) string
	ChunkText(text string) []string
}

// ChatService owns the per-chat message log and orchestrates the
// document-grounded answer pipeline for each new user message.
type ChatService struct {
	chats     repository.ChatRepo
	pdfs      repository.PDFRepo
	processor DocumentProcessor
	assembler ContextAssembler
	answers   *AnswerService
	logger    *zap.Logger

	mu        sync.Mutex
	chatLocks map[string]*sync.Mutex
}

func NewChatService(
	chats repository.ChatRepo,
	pdfs repository.PDFRepo,
	processor DocumentProcessor,
	assembler ContextAssembler,
	answers *AnswerService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chats:     chats,
		pdfs:      pdfs,
		processor: processor,
		assembler: assembler,
		answers:   answers,
		logger:    logger,
		chatLocks: make(map[string]*sync.Mutex),
	}
}

// lockChat returns the mutex serializing all operations on one chat.
// Unrelated chats proceed in parallel.
func (s *ChatService) lockChat(chatID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		s.chatLocks[chatID] = lock
	}
	return lock
}

func (s *ChatService) releaseChatLock(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chatLocks, chatID)
}

func (s *ChatService) CreateChat(ctx context.Context, userID string) (*types.Chat, error) {
	chat := &types.Chat{
		UserID:    userID,
		Title:     "New Chat",
		Messages:  []types.Message{},
		CreatedAt: time.Now().Unix(),
	}
	if err := s.chats.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]types.Chat, error) {
	return s.chats.ListChats(ctx, userID)
}

func (s *ChatService) Messages(ctx context.Context, userID, chatID string) ([]types.Message, error) {
	chat, err := s.ownedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return chat.Messages, nil
}

// SendMessage runs one conversation turn: the user message is persisted
// immediately, then the answer pipeline runs and the assistant message is
// persisted in a second write. A crash mid-turn leaves a dangling user
// message rather than losing the user's input.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, content string) (*types.Chat, error) {
	lock := s.lockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	chat, err := s.ownedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	firstMessage := len(chat.Messages) == 0

	userMsg := types.Message{
		Role:      types.MessageRoleUser,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}
	if err := s.chats.PushMessage(ctx, chatID, userMsg); err != nil {
		return nil, err
	}

	if firstMessage {
		title := s.answers.Title(ctx, content)
		if err := s.chats.SetTitle(ctx, chatID, title); err != nil {
			s.logger.Warn("failed to update chat title",
				zap.String("chat_id", chatID),
				zap.Error(err))
		}
	}

	answer := s.answerFor(ctx, userID, chatID, content)

	assistantMsg := types.Message{
		Role:      types.MessageRoleAssistant,
		Content:   answer,
		Timestamp: time.Now().Unix(),
	}
	if err := s.chats.PushMessage(ctx, chatID, assistantMsg); err != nil {
		return nil, err
	}

	return s.chats.GetChat(ctx, chatID)
}

// answerFor runs Extractor -> Chunker -> Assembler -> Answer Generator.
// Every failure past this point degrades to a fixed message so the turn
// still completes.
func (s *ChatService) answerFor(ctx context.Context, userID, chatID, question string) string {
	pdfs, err := s.pdfs.ListByChat(ctx, userID, chatID)
	if err != nil {
		s.logger.Error("failed to load chat PDFs",
			zap.String("chat_id", chatID),
			zap.Error(err))
		return FallbackAnswer
	}
	if len(pdfs) == 0 {
		return NoDocumentAnswer
	}

	buffers := make([][]byte, 0, len(pdfs))
	for _, pdf := range pdfs {
		buffers = append(buffers, pdf.Data)
	}
	text := s.processor.ExtractText(buffers)
	if text == "" {
		return EmptyExtractionAnswer
	}

	chunks := s.processor.ChunkText(text)
	selected, err := s.assembler.Assemble(ctx, chunks, question)
	if err != nil {
		s.logger.Warn("context assembly failed, using all chunks",
			zap.String("chat_id", chatID),
			zap.Error(err))
		selected = chunks
	}
	return s.answers.Answer(ctx, selected, question)
}

func (s *ChatService) ClearMessages(ctx context.Context, userID, chatID string) error {
	lock := s.lockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.ownedChat(ctx, userID, chatID); err != nil {
		return err
	}
	return s.chats.ClearMessages(ctx, chatID)
}

// DeleteChat removes the chat and cascades deletion to all PDFs scoped
// to it.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	lock := s.lockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.ownedChat(ctx, userID, chatID); err != nil {
		return err
	}
	if err := s.pdfs.DeleteByChat(ctx, chatID); err != nil {
		return err
	}
	if err := s.chats.DeleteChat(ctx, chatID); err != nil {
		return err
	}
	s.releaseChatLock(chatID)
	return nil
}

// UploadPDF stores a document scoped to one of the user's chats.
func (s *ChatService) UploadPDF(ctx context.Context, userID, chatID, filename string, data []byte) (*types.PDF, error) {
	if _, err := s.ownedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	pdf := &types.PDF{
		UserID:     userID,
		ChatID:     chatID,
		Filename:   filename,
		Data:       data,
		UploadedAt: time.Now().Unix(),
	}
	if err := s.pdfs.CreatePDF(ctx, pdf); err != nil {
		return nil, err
	}
	return pdf, nil
}

// ListPDFs returns metadata for the chat's documents, payloads excluded.
func (s *ChatService) ListPDFs(ctx context.Context, userID, chatID string) ([]types.PDFMetadata, error) {
	if _, err := s.ownedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	pdfs, err := s.pdfs.ListByChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	metadata := make([]types.PDFMetadata, 0, len(pdfs))
	for i := range pdfs {
		metadata = append(metadata, pdfs[i].Metadata())
	}
	return metadata, nil
}

func (s *ChatService) ownedChat(ctx context.Context, userID, chatID string) (*types.Chat, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrForbidden
	}
	return chat, nil
}
