package parser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
)

// AuthorizationRegisterParser reads the e-payment authorization register into a bill type lookup.
type AuthorizationRegisterParser struct {
	logger *zap.Logger
}

// NewAuthorizationRegisterParser creates the parser
func NewAuthorizationRegisterParser(logger *zap.Logger) *AuthorizationRegisterParser {
	return &AuthorizationRegisterParser{logger: logger}
}

// Variant returns VariantAuthorizationRegister
func (p *AuthorizationRegisterParser) Variant() Variant {
	return VariantAuthorizationRegister
}

// Extract builds the lookup. Each VoucherNumber element contributes the billType and UserNm
// of its first Details descendant and the token of its first TokenNumber descendant.
// Vouchers without Details or without a usable number are skipped.
func (p *AuthorizationRegisterParser) Extract(src *Source) (*Extraction, error) {
	if err := checkDocument(src, "E-Payment Authorization Register"); err != nil {
		return nil, err
	}

	out := &Extraction{
		Variant: VariantAuthorizationRegister,
		Lookup:  make(entity.LookupMap),
	}

	for _, voucher := range src.Doc.FindAll("VoucherNumber") {
		number := NormalizeIdentifier(voucher.Attr("VoucherNumber"))
		details := voucher.First("Details")
		if number == "" || details == nil {
			out.Skipped++
			continue
		}

		entry := entity.LookupEntry{
			BillType: entity.ParseBillType(details.Attr("billType")),
			UserNm:   details.Attr("UserNm"),
		}
		if token := voucher.First("TokenNumber"); token != nil {
			entry.Token = NormalizeIdentifier(token.Attr("TokenNumber"))
		}

		if _, exists := out.Lookup[number]; exists {
			out.Duplicates++
		} else {
			out.Order = append(out.Order, number)
		}
		out.Lookup[number] = entry
	}

	out.ReportDate = extractReportDate(src.Doc, "Tablix2", "Textbox21", " till ")

	if out.Duplicates > 0 {
		p.logger.Warn("Duplicate vouchers in authorization register, last occurrence kept",
			zap.String("source", src.Name),
			zap.Int("duplicates", out.Duplicates))
	}
	p.logger.Debug("Authorization register parsed",
		zap.String("source", src.Name),
		zap.Int("entries", len(out.Lookup)),
		zap.Int("skipped", out.Skipped),
		zap.String("report_date", out.ReportDate))

	return out, nil
}

// Records turns a lookup into voucher records in first-seen order, for runs that only
// have an authorization register.
func (e *Extraction) Records() []*entity.VoucherRecord {
	if e.Variant != VariantAuthorizationRegister {
		return e.Vouchers
	}
	records := make([]*entity.VoucherRecord, 0, len(e.Order))
	for _, number := range e.Order {
		entry := e.Lookup[number]
		records = append(records, &entity.VoucherRecord{
			VoucherNumber: number,
			BillType:      entry.BillType,
			HasBillType:   true,
			UserNm:        entry.UserNm,
			Token:         entry.Token,
		})
	}
	return records
}

func checkDocument(src *Source, label string) error {
	if src == nil || src.Doc == nil || src.Doc.First("parsererror") != nil {
		return fmt.Errorf("%w: failed to parse %s", ErrMalformedDocument, label)
	}
	return nil
}
