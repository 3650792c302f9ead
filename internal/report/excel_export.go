package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

const exportSheet = "Status"

// ExcelExporter writes the status table as a workbook next to the PDF.
type ExcelExporter struct {
	layout Layout
	logger *zap.Logger
}

// NewExcelExporter creates an exporter
func NewExcelExporter(layout Layout, logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{layout: layout, logger: logger}
}

// Export returns the workbook bytes.
func (e *ExcelExporter) Export(table *summary.StatusTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "center"}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	e.setCell(f, "A1", e.layout.OfficeName)
	e.setCell(f, "A2", e.layout.ReportTitle)
	e.setCell(f, "A3", "Date: "+table.Date)

	for i, title := range columnTitles {
		e.setCell(f, cellName(i+1, 5), title)
	}
	e.setStyle(f, "A1", "A1", bold)
	e.setStyle(f, "A5", "E5", bold)

	rowNum := 6
	for _, row := range table.Rows {
		e.setCell(f, cellName(1, rowNum), row.Label)
		e.setCell(f, cellName(2, rowNum), row.Passed)
		e.setCell(f, cellName(3, rowNum), row.Returned)
		e.setCell(f, cellName(4, rowNum), row.Total())
		e.setCell(f, cellName(5, rowNum), row.Remarks)
		rowNum++
	}
	e.setStyle(f, "E6", cellName(5, rowNum-1), wrap)

	rowNum++
	e.setCell(f, cellName(1, rowNum), "Percentage of E. Bills being passed: "+table.Percentage)
	e.setStyle(f, cellName(1, rowNum), cellName(1, rowNum), bold)
	for _, line := range e.layout.Signatures {
		rowNum++
		e.setCell(f, cellName(5, rowNum), line)
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 24); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "E", "E", 32); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// setCell logs and continues on failure
func (e *ExcelExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(exportSheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func (e *ExcelExporter) setStyle(f *excelize.File, from, to string, style int) {
	if err := f.SetCellStyle(exportSheet, from, to, style); err != nil {
		e.logger.Warn("Failed to set cell style",
			zap.String("range", from+":"+to),
			zap.Error(err))
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
