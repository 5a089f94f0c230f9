package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docchat-be/middleware"
	"github.com/tieubaoca/docchat-be/service"
	"github.com/tieubaoca/docchat-be/types"
)

type PDFHandler struct {
	chatService *service.ChatService
	maxSize     int64
}

func NewPDFHandler(chatService *service.ChatService, maxSize int64) *PDFHandler {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &PDFHandler{
		chatService: chatService,
		maxSize:     maxSize,
	}
}

// HandleUpload accepts either a multipart form ("file" + "chatId") or a
// JSON body with the file base64-encoded.
func (h *PDFHandler) HandleUpload(c *gin.Context) {
	var (
		chatID   string
		filename string
		data     []byte
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Invalid file"})
			return
		}
		defer file.Close()
		if header.Size > h.maxSize {
			c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "File too large"})
			return
		}
		data, err = io.ReadAll(io.LimitReader(file, h.maxSize+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Invalid file"})
			return
		}
		chatID = c.PostForm("chatId")
		filename = header.Filename
	} else {
		var req types.UploadPDFRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Invalid request body"})
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Invalid file data"})
			return
		}
		data = decoded
		chatID = req.ChatID
		filename = req.Filename
	}

	if chatID == "" || filename == "" || len(data) == 0 {
		c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "chatId, filename and file data are required"})
		return
	}
	if int64(len(data)) > h.maxSize {
		c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "File too large"})
		return
	}

	pdf, err := h.chatService.UploadPDF(
		c.Request.Context(),
		c.GetString(middleware.UserIDKey),
		chatID,
		filename,
		data,
	)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, pdf.Metadata())
}

func (h *PDFHandler) HandleList(c *gin.Context) {
	chatID := c.Query("chatId")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "chatId is required"})
		return
	}

	pdfs, err := h.chatService.ListPDFs(
		c.Request.Context(),
		c.GetString(middleware.UserIDKey),
		chatID,
	)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, pdfs)
}
