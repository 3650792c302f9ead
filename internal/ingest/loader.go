// Package ingest reads report files from disk into XML documents or text rows.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/xmldoc"
)

// Loader reads input files
type Loader struct {
	text    TextExtractor
	maxSize int64
	logger  *zap.Logger
}

// NewLoader creates a loader. maxSize <= 0 disables the size check.
func NewLoader(text TextExtractor, maxSize int64, logger *zap.Logger) *Loader {
	return &Loader{text: text, maxSize: maxSize, logger: logger}
}

// ReadFile reads path after checking its size.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFileType, filepath.Base(path))
	}
	if l.maxSize > 0 && info.Size() > l.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, filepath.Base(path), info.Size(), l.maxSize)
	}
	return os.ReadFile(path)
}

// LoadXML reads and parses an XML report.
func (l *Loader) LoadXML(ctx context.Context, path string) (xmldoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := CheckSelection(path, KindXML); err != nil {
		return nil, err
	}

	data, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	l.logger.Debug("XML report loaded",
		zap.String("file", filepath.Base(path)),
		zap.Int("size", len(data)),
		zap.String("name", doc.RootAttr("Name")))
	return doc, nil
}

// LoadPair loads two XML reports concurrently, keeping their input order.
func (l *Loader) LoadPair(ctx context.Context, first, second string) ([2]xmldoc.Document, error) {
	var docs [2]xmldoc.Document

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range []string{first, second} {
		g.Go(func() error {
			doc, err := l.LoadXML(gctx, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return docs, err
	}
	return docs, nil
}

// LoadRows reads a PDF or spreadsheet into rows of cells. PDF text comes back one line per row.
func (l *Loader) LoadRows(ctx context.Context, path string) ([][]string, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}

	data, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch kind {
	case KindPDF:
		rows, err = l.pdfRows(ctx, data)
	case KindXLSX:
		rows, err = readXLSX(data)
	case KindXLS:
		rows, err = readXLS(data)
	case KindCSV:
		rows, err = readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s has no tabular reader", ErrUnsupportedFileType, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	l.logger.Debug("Tabular source loaded",
		zap.String("file", filepath.Base(path)),
		zap.String("kind", string(kind)),
		zap.Int("rows", len(rows)))
	return rows, nil
}

func (l *Loader) pdfRows(ctx context.Context, data []byte) ([][]string, error) {
	pages, err := PageCount(data)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		l.logger.Warn("PDF has no pages")
		return nil, nil
	}

	lines, err := l.text.ExtractLines(ctx, data)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		l.logger.Warn("No text found in PDF", zap.Int("pages", pages))
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{line})
	}
	return rows, nil
}
