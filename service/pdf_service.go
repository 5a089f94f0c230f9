package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tieubaoca/docchat-be/types"
	"go.uber.org/zap"
)

// PDFService handles PDF text extraction and chunking
type PDFService struct {
	maxChunkSize int // Maximum size of each text chunk
	overlapSize  int // Size of overlap between chunks
	logger       *zap.Logger
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 10000,
	OverlapSize:  1000,
}

func NewPDFService(config types.DocumentServiceConfig, logger *zap.Logger) *PDFService {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = DefaultDocumentServiceConfig.MaxChunkSize
	}
	if config.OverlapSize < 0 || config.OverlapSize >= config.MaxChunkSize {
		config.OverlapSize = DefaultDocumentServiceConfig.OverlapSize
	}
	return &PDFService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
		logger:       logger,
	}
}

// ExtractText extracts embedded text from each PDF payload and joins the
// results with newlines, preserving input order. A buffer that fails to
// parse contributes nothing; the empty string means no usable context and
// is never an error.
func (s *PDFService) ExtractText(buffers [][]byte) string {
	texts := make([]string, 0, len(buffers))
	for i, buffer := range buffers {
		text, err := s.extractBuffer(buffer)
		if err != nil {
			s.logger.Warn("failed to extract text from PDF",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

func (s *PDFService) extractBuffer(buffer []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(buffer), int64(len(buffer)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var parts []string
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip failed pages instead of failing the document
			s.logger.Warn("failed to extract text from page",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		if pageText = s.cleanText(pageText); pageText != "" {
			parts = append(parts, pageText)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// ChunkText splits text into overlapping fixed-size windows. Consecutive
// chunks share exactly overlapSize characters; the final chunk may be
// shorter. Empty input yields no chunks.
func (s *PDFService) ChunkText(text string) []string {
	if text == "" {
		return nil
	}
	step := s.maxChunkSize - s.overlapSize
	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + s.maxChunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
