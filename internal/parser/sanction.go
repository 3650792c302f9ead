package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
)

// SanctionDetailParser reads the sanction detail layout, grouped by office code.
// Heads come out upper-cased and a bill type may be carried on the Details rows.
type SanctionDetailParser struct {
	heads  *HeadFilter
	logger *zap.Logger
}

// NewSanctionDetailParser creates the parser. The filter should upper-case heads.
func NewSanctionDetailParser(heads *HeadFilter, logger *zap.Logger) *SanctionDetailParser {
	return &SanctionDetailParser{heads: heads, logger: logger}
}

// Variant returns VariantSanctionDetail
func (p *SanctionDetailParser) Variant() Variant {
	return VariantSanctionDetail
}

// Extract walks every DDOCode group and its VoucherNumber entries.
func (p *SanctionDetailParser) Extract(src *Source) (*Extraction, error) {
	if err := checkDocument(src, "Sanction Detail report"); err != nil {
		return nil, err
	}

	out := &Extraction{Variant: VariantSanctionDetail}
	list := newVoucherList()
	matchedOffice := false

	for _, office := range src.Doc.FindAll("DDOCode") {
		ddoCode := strings.TrimSpace(office.Attr("DDOCode"))
		if !officeMatches(ddoCode, src.OfficeFilter) {
			continue
		}
		matchedOffice = true

		for _, voucher := range office.FindAll("VoucherNumber") {
			number := NormalizeIdentifier(voucher.Attr("VoucherNumber1"))
			if number == "" {
				out.Skipped++
				continue
			}
			rec := &entity.VoucherRecord{
				VoucherNumber: number,
				DDOCode:       ddoCode,
			}
			if details := voucher.First("Details"); details != nil && details.HasAttr("billType") {
				rec.BillType = entity.ParseBillType(details.Attr("billType"))
				rec.HasBillType = true
			}
			rec.ObjectHeads, rec.FuncHeads = collectHeads(voucher, p.heads)
			list.put(rec)
		}
	}

	out.Vouchers = list.records
	out.Duplicates = list.duplicates
	out.OfficeNotFound = src.OfficeFilter != "" && !matchedOffice
	out.ReportDate = extractReportDate(src.Doc, "Tablix2", "Textbox18", "  ")

	p.logger.Debug("Sanction detail parsed",
		zap.String("source", src.Name),
		zap.Int("vouchers", len(out.Vouchers)),
		zap.Int("duplicates", out.Duplicates),
		zap.Int("skipped", out.Skipped))

	return out, nil
}
