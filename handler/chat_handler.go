package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docchat-be/middleware"
	"github.com/tieubaoca/docchat-be/service"
	"github.com/tieubaoca/docchat-be/types"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) HandleNewChat(c *gin.Context) {
	chat, err := h.chatService.CreateChat(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}

func (h *ChatHandler) HandleHistory(c *gin.Context) {
	chats, err := h.chatService.History(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) HandleMessages(c *gin.Context) {
	messages, err := h.chatService.Messages(
		c.Request.Context(),
		c.GetString(middleware.UserIDKey),
		c.Param("chatId"),
	)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) HandleSendMessage(c *gin.Context) {
	var req types.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChatID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "chatId and message are required"})
		return
	}

	chat, err := h.chatService.SendMessage(
		c.Request.Context(),
		c.GetString(middleware.UserIDKey),
		req.ChatID,
		req.Message,
	)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) HandleClearMessages(c *gin.Context) {
	err := h.chatService.ClearMessages(
		c.Request.Context(),
		c.GetString(middleware.UserIDKey),
		c.Param("chatId"),
	)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MsgResponse{Msg: "Messages cleared successfully"})
}

func (h *ChatHandler) HandleDeleteChat(c *gin.Context) {
	err := h.chatService.DeleteChat(
		c.Request.Context(),
		c.GetString(middleware.UserIDKey),
		c.Param("chatId"),
	)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MsgResponse{Msg: "Chat deleted successfully"})
}

// respondChatError maps service errors onto the fixed HTTP contract;
// anything unexpected becomes a generic 500 with no detail.
func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChatNotFound):
		c.JSON(http.StatusNotFound, types.MsgResponse{Msg: "Chat not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, types.MsgResponse{Msg: "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, types.MsgResponse{Msg: "Server error"})
	}
}
