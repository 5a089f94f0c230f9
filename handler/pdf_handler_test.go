package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docchat-be/middleware"
	"github.com/tieubaoca/docchat-be/repository"
	"github.com/tieubaoca/docchat-be/service"
	"github.com/tieubaoca/docchat-be/types"
	"go.uber.org/zap"
)

type fixedProcessor struct{}

func (fixedProcessor) ExtractText([][]byte) string    { return "doc text" }
func (fixedProcessor) ChunkText(text string) []string { return []string{text} }

type fixedAI struct{}

func (fixedAI) Generate(context.Context, string) (string, error) { return "ok", nil }

func newPDFTestRouter(t *testing.T, userID string) (*gin.Engine, *service.ChatService, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	store := repository.NewMemoryStore()
	chatService := service.NewChatService(
		store,
		store,
		fixedProcessor{},
		service.NewPassthroughAssembler(),
		service.NewAnswerService(fixedAI{}, 0, logger),
		logger,
	)
	h := NewPDFHandler(chatService, 1<<20)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})
	router.POST("/api/pdf/upload", h.HandleUpload)
	router.GET("/api/pdf/list", h.HandleList)
	return router, chatService, store
}

func TestHandleUploadJSON(t *testing.T) {
	router, chatService, _ := newPDFTestRouter(t, "u1")
	chat, err := chatService.CreateChat(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}

	t.Run("base64 upload returns metadata", func(t *testing.T) {
		body, _ := json.Marshal(types.UploadPDFRequest{
			Filename: "resume.pdf",
			Data:     base64.StdEncoding.EncodeToString([]byte("%PDF-stub")),
			ChatID:   chat.ID,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		var meta types.PDFMetadata
		if err := json.Unmarshal(w.Body.Bytes(), &meta); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if meta.Filename != "resume.pdf" || meta.ChatID != chat.ID || meta.ID == "" {
			t.Errorf("unexpected metadata: %+v", meta)
		}
	})

	t.Run("invalid base64 is rejected", func(t *testing.T) {
		body, _ := json.Marshal(types.UploadPDFRequest{
			Filename: "resume.pdf",
			Data:     "!!not base64!!",
			ChatID:   chat.ID,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown chat is a 404", func(t *testing.T) {
		body, _ := json.Marshal(types.UploadPDFRequest{
			Filename: "resume.pdf",
			Data:     base64.StdEncoding.EncodeToString([]byte("x")),
			ChatID:   "missing",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list returns the uploaded metadata", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/pdf/list?chatId="+chat.ID, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var pdfs []types.PDFMetadata
		if err := json.Unmarshal(w.Body.Bytes(), &pdfs); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(pdfs) != 1 || pdfs[0].Filename != "resume.pdf" {
			t.Errorf("unexpected list: %+v", pdfs)
		}
	})

	t.Run("list without chatId is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/pdf/list", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
