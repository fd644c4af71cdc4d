package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// OCRFunc converts a scanned PDF into text. External collaborator: injected
// by the host when an OCR backend is available, nil otherwise.
type OCRFunc func(path string) (string, error)

type TextExtractor interface {
	ExtractText(path string) (string, error)
}

type textExtractor struct {
	ocr OCRFunc
}

func NewTextExtractor(ocr OCRFunc) TextExtractor {
	return &textExtractor{ocr: ocr}
}

// ExtractText implements TextExtractor. An empty result is not an error:
// the screening pipeline turns empty text into an Unreadable verdict.
func (e *textExtractor) ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return e.extractPDF(path)
	case ".docx":
		return e.extractDocx(path)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

func (e *textExtractor) extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())

	// No embedded text: fall back to OCR when a backend is wired in
	if text == "" && e.ocr != nil {
		ocrText, err := e.ocr(path)
		if err != nil {
			return "", nil
		}
		return strings.TrimSpace(ocrText), nil
	}

	return text, nil
}

func (e *textExtractor) extractDocx(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	return strings.TrimSpace(doc.Editable().GetContent()), nil
}

// CleanText collapses whitespace-only lines out of extracted text.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
