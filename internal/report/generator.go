package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/storage"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
	"github.com/SamuelAdmand/Bill-Counting-Tool/pkg/utils"
)

// SurfaceFactory returns a blank page for one report.
type SurfaceFactory func() Surface

// Options configure a Generator.
type Options struct {
	FilenamePrefix string
	ExportXLSX     bool
	Validate       bool
}

// Output names the files written for one report.
type Output struct {
	Filename string
	PDFPath  string
	XLSXPath string
	Size     int
}

// Generator renders status tables and stores the result.
type Generator struct {
	layout     Layout
	newSurface SurfaceFactory
	store      storage.FileStorage
	exporter   *ExcelExporter
	opts       Options
	logger     *zap.Logger
}

// NewGenerator creates a generator. newSurface may be nil to draw PDFs with fpdf.
func NewGenerator(layout Layout, newSurface SurfaceFactory, store storage.FileStorage, opts Options, logger *zap.Logger) *Generator {
	if newSurface == nil {
		newSurface = func() Surface { return NewPDFSurface() }
	}
	return &Generator{
		layout:     layout,
		newSurface: newSurface,
		store:      store,
		exporter:   NewExcelExporter(layout, logger),
		opts:       opts,
		logger:     logger,
	}
}

// Render draws table and returns the document bytes.
func (g *Generator) Render(table *summary.StatusTable) ([]byte, error) {
	surface := g.newSurface()
	g.layout.Draw(surface, table)

	var buf bytes.Buffer
	if err := surface.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Generate renders, validates and stores the report, plus the workbook when enabled.
func (g *Generator) Generate(ctx context.Context, table *summary.StatusTable) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := g.Render(table)
	if err != nil {
		return nil, err
	}

	if g.opts.Validate {
		if err := ValidatePDF(data); err != nil {
			return nil, err
		}
	}

	out := &Output{
		Filename: Filename(g.opts.FilenamePrefix, table.Date, ".pdf"),
		Size:     len(data),
	}
	if out.PDFPath, err = g.store.Save(out.Filename, data); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	if g.opts.ExportXLSX {
		book, err := g.exporter.Export(table)
		if err != nil {
			return nil, err
		}
		if out.XLSXPath, err = g.store.Save(Filename(g.opts.FilenamePrefix, table.Date, ".xlsx"), book); err != nil {
			return nil, fmt.Errorf("failed to save workbook: %w", err)
		}
	}

	g.logger.Info("Status report generated",
		zap.String("path", out.PDFPath),
		zap.String("date", table.Date),
		zap.Int("size", out.Size))

	return out, nil
}

// ValidatePDF checks the document structure in relaxed mode.
func ValidatePDF(data []byte) error {
	if err := api.Validate(bytes.NewReader(data), utils.PDFConfig()); err != nil {
		return fmt.Errorf("generated pdf failed validation: %w", err)
	}
	return nil
}
