package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
)

// Strategy is how the tabular parser located its columns.
type Strategy string

const (
	// StrategyHeader means a header row named the columns.
	StrategyHeader Strategy = "header"
	// StrategyHeuristic means rows were scanned with patterns.
	StrategyHeuristic Strategy = "heuristic"
)

// TabularStats describes how much of a text or spreadsheet source was understood.
type TabularStats struct {
	Strategy    Strategy
	RowsScanned int
	RowsMatched int
	// Mentions counts distinct voucher-like identifiers seen anywhere in the rows.
	Mentions int
}

// Discrepancy is the number of mentioned vouchers that did not make it into a record.
func (s *TabularStats) Discrepancy(records int) int {
	if d := s.Mentions - records; d > 0 {
		return d
	}
	return 0
}

// HighConfidence reports whether the columns came from a header row.
func (s *TabularStats) HighConfidence() bool {
	return s.Strategy == StrategyHeader
}

var (
	voucherPattern = regexp.MustCompile(`\b[A-Z]\d{3,}\b`)
	tokenPattern   = regexp.MustCompile(`\b\d{4,5}\b`)
	eBillPattern   = regexp.MustCompile(`(?i)\be[\s-]?bills?\b`)
	normalPattern  = regexp.MustCompile(`(?i)\bnormal\b`)
)

const (
	headerVoucher  = "voucher number"
	headerBillType = "bill type"
	headerToken    = "token number"
	headerDDOCode  = "ddo code"
)

type columns struct {
	voucher, billType, token, ddoCode int
}

// TabularParser recovers vouchers from rows of text pulled out of a PDF or spreadsheet.
type TabularParser struct {
	logger *zap.Logger
}

// NewTabularParser creates the parser
func NewTabularParser(logger *zap.Logger) *TabularParser {
	return &TabularParser{logger: logger}
}

// Variant returns VariantTabular
func (p *TabularParser) Variant() Variant {
	return VariantTabular
}

// Extract uses a header row when one names a voucher number column and falls back to
// pattern matching on each row otherwise. A source without rows yields an empty
// heuristic extraction.
func (p *TabularParser) Extract(src *Source) (*Extraction, error) {
	if src == nil {
		src = &Source{}
	}

	out := &Extraction{Variant: VariantTabular}
	stats := &TabularStats{Strategy: StrategyHeuristic}
	list := newVoucherList()
	mentions := make(map[string]struct{})
	matchedOffice := false

	start := 0
	cols, headerRow := findHeader(src.Rows)
	if headerRow >= 0 {
		stats.Strategy = StrategyHeader
		start = headerRow + 1
	}

	for _, row := range src.Rows[start:] {
		if isBlank(row) {
			continue
		}
		stats.RowsScanned++

		var rec *entity.VoucherRecord
		office := strings.Join(row, " ")
		if stats.Strategy == StrategyHeader {
			rec = recordFromColumns(row, cols)
			if rec != nil {
				mentions[rec.VoucherNumber] = struct{}{}
				if rec.DDOCode != "" {
					office = rec.DDOCode
				}
			}
		} else {
			for _, m := range voucherPattern.FindAllString(office, -1) {
				mentions[m] = struct{}{}
			}
			rec = recordFromText(office)
		}

		if rec == nil || !officeMatches(office, src.OfficeFilter) {
			continue
		}
		matchedOffice = true
		stats.RowsMatched++
		list.put(rec)
	}

	stats.Mentions = len(mentions)
	out.Vouchers = list.records
	out.Duplicates = list.duplicates
	out.OfficeNotFound = src.OfficeFilter != "" && !matchedOffice
	out.Tabular = stats

	p.logger.Debug("Tabular source parsed",
		zap.String("source", src.Name),
		zap.String("strategy", string(stats.Strategy)),
		zap.Int("rows_scanned", stats.RowsScanned),
		zap.Int("vouchers", len(out.Vouchers)),
		zap.Int("discrepancy", stats.Discrepancy(len(out.Vouchers))))

	return out, nil
}

// findHeader looks for a row naming a voucher number column. Single-cell rows, such as
// lines of PDF text, never count as a header.
func findHeader(rows [][]string) (columns, int) {
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		cols := columns{voucher: -1, billType: -1, token: -1, ddoCode: -1}
		for j, cell := range row {
			name := strings.ToLower(strings.Join(strings.Fields(cell), " "))
			switch {
			case strings.Contains(name, headerVoucher):
				cols.voucher = j
			case strings.Contains(name, headerBillType):
				cols.billType = j
			case strings.Contains(name, headerToken):
				cols.token = j
			case strings.Contains(name, headerDDOCode):
				cols.ddoCode = j
			}
		}
		if cols.voucher >= 0 {
			return cols, i
		}
	}
	return columns{}, -1
}

func recordFromColumns(row []string, cols columns) *entity.VoucherRecord {
	number := NormalizeIdentifier(cell(row, cols.voucher))
	if number == "" {
		return nil
	}
	return &entity.VoucherRecord{
		VoucherNumber: number,
		BillType:      classifyBillType(cell(row, cols.billType)),
		HasBillType:   true,
		Token:         NormalizeIdentifier(cell(row, cols.token)),
		DDOCode:       strings.TrimSpace(cell(row, cols.ddoCode)),
	}
}

func recordFromText(line string) *entity.VoucherRecord {
	number := voucherPattern.FindString(line)
	if number == "" {
		return nil
	}
	return &entity.VoucherRecord{
		VoucherNumber: number,
		BillType:      classifyBillType(line),
		HasBillType:   true,
		Token:         findToken(line),
	}
}

// classifyBillType reads "normal" as Normal, an e-bill mention as EBill and defaults to Normal.
func classifyBillType(text string) entity.BillType {
	switch {
	case normalPattern.MatchString(text):
		return entity.BillTypeNormal
	case eBillPattern.MatchString(text):
		return entity.BillTypeEBill
	default:
		return entity.BillTypeNormal
	}
}

// findToken returns the first 4-5 digit run that is not part of an amount or a date.
func findToken(line string) string {
	for _, loc := range tokenPattern.FindAllStringIndex(line, -1) {
		if loc[0] > 0 && strings.ContainsRune(".,/-", rune(line[loc[0]-1])) {
			continue
		}
		if loc[1] < len(line) {
			next := line[loc[1]]
			if next == '/' || next == '-' || next == ',' {
				continue
			}
			if next == '.' && loc[1]+1 < len(line) && isDigit(line[loc[1]+1]) {
				continue
			}
		}
		return line[loc[0]:loc[1]]
	}
	return ""
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
