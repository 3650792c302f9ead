package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/pkg/utils"
)

// TextExtractor pulls text lines out of a PDF, page by page.
type TextExtractor interface {
	ExtractLines(ctx context.Context, data []byte) ([]string, error)
}

// NewTextExtractor returns the extractor for an engine name: "fitz" (MuPDF) or "native".
func NewTextExtractor(engine string, logger *zap.Logger) (TextExtractor, error) {
	switch engine {
	case "fitz":
		return &FitzExtractor{logger: logger}, nil
	case "native", "":
		return &NativeExtractor{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", engine)
	}
}

// PageCount reads the page count with a relaxed structural validation pass.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), utils.PDFConfig())
	if err != nil {
		return 0, fmt.Errorf("invalid pdf: %w", err)
	}
	return n, nil
}

// FitzExtractor uses MuPDF through go-fitz.
type FitzExtractor struct {
	logger *zap.Logger
}

// ExtractLines returns every non-blank line of every page. Pages that fail are skipped.
func (e *FitzExtractor) ExtractLines(ctx context.Context, data []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	var lines []string
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			e.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.Error(err))
			continue
		}
		lines = appendLines(lines, text)
	}
	return lines, nil
}

// NativeExtractor uses the pure Go reader, grouping words by row.
type NativeExtractor struct {
	logger *zap.Logger
}

// ExtractLines returns one line per text row, words joined by single spaces.
func (e *NativeExtractor) ExtractLines(ctx context.Context, data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			e.logger.Warn("Failed to extract text from page",
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					words = append(words, s)
				}
			}
			if len(words) > 0 {
				lines = append(lines, strings.Join(words, " "))
			}
		}
	}
	return lines, nil
}

func appendLines(lines []string, text string) []string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
