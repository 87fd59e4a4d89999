package service

import (
	"strings"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// PDFExtractor pulls text out of uploaded PDFs
type PDFExtractor struct {
	logger domain.Logger
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract opens the bytes as a PDF, extracts each page's text in order
// (skipping pages yielding none), joins pages with a newline and
// normalizes the result. The page count covers all pages regardless of
// whether they had text. A malformed PDF fails outright; there is no
// partial-result recovery.
func (e *PDFExtractor) Extract(pdfBytes []byte) (*domain.ExtractedText, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, apperrors.NewExtractionError("failed to open PDF", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		e.logger.Debug("extracting page", "page", pageNum+1, "total", numPages)
		text, err := doc.Text(pageNum)
		if err != nil {
			return nil, apperrors.NewExtractionError("failed to extract page text", err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}

	cleaned := joinPages(pages)
	return &domain.ExtractedText{
		Text:      cleaned,
		PageCount: numPages,
		CharCount: len([]rune(cleaned)),
	}, nil
}

// joinPages newline-joins per-page texts and normalizes the result
func joinPages(pages []string) string {
	return Normalize(strings.Join(pages, "\n"))
}
