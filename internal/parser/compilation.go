package parser

import (
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/xmldoc"
)

// CompilationSheetParser reads the voucher compilation sheet, grouped by office name.
type CompilationSheetParser struct {
	heads  *HeadFilter
	logger *zap.Logger
}

// NewCompilationSheetParser creates the parser
func NewCompilationSheetParser(heads *HeadFilter, logger *zap.Logger) *CompilationSheetParser {
	return &CompilationSheetParser{heads: heads, logger: logger}
}

// Variant returns VariantCompilationSheet
func (p *CompilationSheetParser) Variant() Variant {
	return VariantCompilationSheet
}

// Extract walks every DDOName group and its VoucherNumber entries.
func (p *CompilationSheetParser) Extract(src *Source) (*Extraction, error) {
	if err := checkDocument(src, "Voucher Compilation Sheet"); err != nil {
		return nil, err
	}

	out := &Extraction{Variant: VariantCompilationSheet}
	list := newVoucherList()
	matchedOffice := false

	for _, office := range src.Doc.FindAll("DDOName") {
		ddoName := ""
		if cell := office.First("Textbox11"); cell != nil {
			ddoName = cell.Attr("DDOName")
		}
		if !officeMatches(ddoName, src.OfficeFilter) {
			continue
		}
		matchedOffice = true

		for _, voucher := range office.FindAll("VoucherNumber") {
			number := NormalizeIdentifier(voucher.Attr("VoucherNumber1"))
			if number == "" {
				out.Skipped++
				continue
			}
			objectHeads, funcHeads := collectHeads(voucher, p.heads)
			list.put(&entity.VoucherRecord{
				VoucherNumber: number,
				DDOName:       ddoName,
				ObjectHeads:   objectHeads,
				FuncHeads:     funcHeads,
			})
		}
	}

	out.Vouchers = list.records
	out.Duplicates = list.duplicates
	out.OfficeNotFound = src.OfficeFilter != "" && !matchedOffice
	out.ReportDate = extractReportDate(src.Doc, "Tablix2", "Textbox18", "  ")

	if out.Duplicates > 0 {
		p.logger.Warn("Duplicate vouchers in compilation sheet, last occurrence kept",
			zap.String("source", src.Name),
			zap.Int("duplicates", out.Duplicates))
	}
	p.logger.Debug("Compilation sheet parsed",
		zap.String("source", src.Name),
		zap.Int("vouchers", len(out.Vouchers)),
		zap.Int("skipped", out.Skipped))

	return out, nil
}

// collectHeads gathers the cleaned ObjectHead and FuncHead values of every Details descendant.
func collectHeads(voucher xmldoc.Element, filter *HeadFilter) ([]string, []string) {
	objectHeads, funcHeads := newHeadSet(), newHeadSet()
	for _, d := range voucher.FindAll("Details") {
		if head, ok := filter.Clean(d.Attr("ObjectHead")); ok {
			objectHeads.add(head)
		}
		if head, ok := filter.Clean(d.Attr("FuncHead")); ok {
			funcHeads.add(head)
		}
	}
	return objectHeads.list(), funcHeads.list()
}
