// Package parser turns report exports into voucher records and bill type lookups.
package parser

import (
	"strings"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/xmldoc"
)

// Variant names a report layout.
type Variant string

const (
	VariantAuthorizationRegister Variant = "authorization_register"
	VariantCompilationSheet      Variant = "compilation_sheet"
	VariantSanctionDetail        Variant = "sanction_detail"
	VariantTabular               Variant = "tabular"
)

// String returns the string representation of the variant
func (v Variant) String() string {
	return string(v)
}

// IsPrimary reports whether the variant yields voucher records rather than a lookup.
func (v Variant) IsPrimary() bool {
	return v != VariantAuthorizationRegister
}

// Source is the input handed to a parser. XML variants read Doc, the tabular variant reads Rows.
type Source struct {
	Name string
	Doc  xmldoc.Document
	Rows [][]string

	// OfficeFilter keeps only vouchers whose office matches, case-insensitively.
	OfficeFilter string
}

// Extraction is what a parser pulled out of one source.
type Extraction struct {
	Variant    Variant
	ReportDate string

	// Lookup and Order are filled by the authorization register; Order is first-seen key order.
	Lookup entity.LookupMap
	Order  []string

	Vouchers []*entity.VoucherRecord

	Duplicates     int
	Skipped        int
	OfficeNotFound bool

	Tabular *TabularStats
}

// SourceParser extracts one report variant.
type SourceParser interface {
	Variant() Variant
	Extract(src *Source) (*Extraction, error)
}

// officeMatches reports whether office contains filter, case-insensitively. An empty filter matches everything.
func officeMatches(office, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(office), strings.ToUpper(filter))
}

// extractReportDate reads cellTag@attr, keeps the part before delimiter and uses '/' separators.
func extractReportDate(doc xmldoc.Document, cellTag, attr, delimiter string) string {
	cell := doc.First(cellTag)
	if cell == nil {
		return ""
	}
	value := cell.Attr(attr)
	if value == "" {
		return ""
	}
	head := strings.SplitN(value, delimiter, 2)[0]
	return strings.ReplaceAll(strings.TrimSpace(head), "-", "/")
}

// voucherList keeps records unique by voucher number; a repeat replaces the earlier record in place.
type voucherList struct {
	index      map[string]int
	records    []*entity.VoucherRecord
	duplicates int
}

func newVoucherList() *voucherList {
	return &voucherList{index: make(map[string]int)}
}

func (l *voucherList) put(rec *entity.VoucherRecord) {
	if i, ok := l.index[rec.VoucherNumber]; ok {
		l.records[i] = rec
		l.duplicates++
		return
	}
	l.index[rec.VoucherNumber] = len(l.records)
	l.records = append(l.records, rec)
}
