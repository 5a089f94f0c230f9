package repository

import (
	"context"
	"sync"

	"github.com/tieubaoca/docchat-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore implements UserRepo, ChatRepo and PDFRepo in memory. It is
// selected by the use_in_memory config flag for local development and is
// what the service tests run against.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]types.User
	chats     map[string]types.Chat
	chatOrder []string
	pdfs      map[string]types.PDF
	pdfOrder  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]types.User),
		chats: make(map[string]types.Chat),
		pdfs:  make(map[string]types.PDF),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = bson.NewObjectID().Hex()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateChat(_ context.Context, chat *types.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chat.ID == "" {
		chat.ID = bson.NewObjectID().Hex()
	}
	if chat.Messages == nil {
		chat.Messages = []types.Message{}
	}
	s.chats[chat.ID] = copyChat(*chat)
	s.chatOrder = append(s.chatOrder, chat.ID)
	return nil
}

func (s *MemoryStore) GetChat(_ context.Context, id string) (*types.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chat, ok := s.chats[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := copyChat(chat)
	return &c, nil
}

func (s *MemoryStore) ListChats(_ context.Context, userID string) ([]types.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chats := []types.Chat{}
	// Reverse insertion order keeps newest-first stable across equal timestamps.
	for i := len(s.chatOrder) - 1; i >= 0; i-- {
		chat, ok := s.chats[s.chatOrder[i]]
		if ok && chat.UserID == userID {
			chats = append(chats, copyChat(chat))
		}
	}
	return chats, nil
}

func (s *MemoryStore) PushMessage(_ context.Context, chatID string, msg types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	chat.Messages = append(chat.Messages, msg)
	s.chats[chatID] = chat
	return nil
}

func (s *MemoryStore) SetTitle(_ context.Context, chatID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	chat.Title = title
	s.chats[chatID] = chat
	return nil
}

func (s *MemoryStore) ClearMessages(_ context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	chat.Messages = []types.Message{}
	s.chats[chatID] = chat
	return nil
}

func (s *MemoryStore) DeleteChat(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chats[id]; !ok {
		return ErrNotFound
	}
	delete(s.chats, id)
	return nil
}

func (s *MemoryStore) CreatePDF(_ context.Context, pdf *types.PDF) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pdf.ID == "" {
		pdf.ID = bson.NewObjectID().Hex()
	}
	s.pdfs[pdf.ID] = *pdf
	s.pdfOrder = append(s.pdfOrder, pdf.ID)
	return nil
}

func (s *MemoryStore) ListByChat(_ context.Context, userID, chatID string) ([]types.PDF, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pdfs := []types.PDF{}
	for _, id := range s.pdfOrder {
		pdf, ok := s.pdfs[id]
		if ok && pdf.UserID == userID && pdf.ChatID == chatID {
			pdfs = append(pdfs, pdf)
		}
	}
	return pdfs, nil
}

func (s *MemoryStore) DeleteByChat(_ context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, pdf := range s.pdfs {
		if pdf.ChatID == chatID {
			delete(s.pdfs, id)
		}
	}
	return nil
}

func copyChat(chat types.Chat) types.Chat {
	messages := make([]types.Message, len(chat.Messages))
	copy(messages, chat.Messages)
	chat.Messages = messages
	return chat
}
