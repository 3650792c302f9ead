package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/pkg/utils"
)

// DateLayout is the dd/mm/yyyy layout used on the status report.
const DateLayout = "02/01/2006"

// NotProvided is printed when a manual report has no percentage.
const NotProvided = "Not provided"

// Row is one line of the status table.
type Row struct {
	Label    string `json:"label" yaml:"label"`
	Passed   int    `json:"passed" yaml:"passed"`
	Returned int    `json:"returned" yaml:"returned"`
	Remarks  string `json:"remarks,omitempty" yaml:"remarks,omitempty"`
}

// Total is passed plus returned.
func (r Row) Total() int {
	return r.Passed + r.Returned
}

// StatusTable is the content of the daily status report.
type StatusTable struct {
	Date       string `json:"date" yaml:"date"`
	Rows       []Row  `json:"rows" yaml:"rows"`
	Percentage string `json:"percentage" yaml:"percentage"`
}

// Overrides are operator corrections applied on top of a computed summary.
// Counts are free text and parsed leniently; a blank passed count keeps the computed one.
type Overrides struct {
	Date       string
	Percentage string
	Passed     map[entity.Bucket]string
	Returned   map[entity.Bucket]string
}

// ManualRow is one row typed in by the operator.
type ManualRow struct {
	Passed   string
	Returned string
	Remarks  string
}

// ManualInput is a whole report typed in by the operator; Rows follow entity.Buckets order.
type ManualInput struct {
	Date       string
	Percentage string
	Rows       [4]ManualRow
}

// BuildStatusTable lays out the computed summary. Remarks are filled for normal rows only.
// Without a percentage override the percentage follows the passed column, so passed
// overrides move it too.
func BuildStatusTable(s *Summary, ov Overrides, now time.Time) *StatusTable {
	table := &StatusTable{
		Date: firstNonEmpty(ov.Date, s.ReportDate, now.Format(DateLayout)),
	}

	ebills, passed := 0, 0
	for _, b := range entity.Buckets {
		bs := s.Bucket(b)
		row := Row{
			Label:    b.String(),
			Passed:   bs.Count,
			Returned: utils.ParseCount(ov.Returned[b]),
		}
		if raw := strings.TrimSpace(ov.Passed[b]); raw != "" {
			row.Passed = utils.ParseCount(raw)
		}
		if b.BillType == entity.BillTypeNormal {
			row.Remarks = FormatRemarks(bs.Categories)
		} else {
			ebills += row.Passed
		}
		passed += row.Passed
		table.Rows = append(table.Rows, row)
	}

	table.Percentage = firstNonEmpty(NormalizePercentage(ov.Percentage), PassPercentage(ebills, passed))
	return table
}

// BuildManualTable lays out an operator-typed report.
func BuildManualTable(in ManualInput, now time.Time) *StatusTable {
	table := &StatusTable{
		Date:       firstNonEmpty(strings.TrimSpace(in.Date), now.Format(DateLayout)),
		Percentage: firstNonEmpty(NormalizePercentage(in.Percentage), NotProvided),
	}
	for i, b := range entity.Buckets {
		table.Rows = append(table.Rows, Row{
			Label:    b.String(),
			Passed:   utils.ParseCount(in.Rows[i].Passed),
			Returned: utils.ParseCount(in.Rows[i].Returned),
			Remarks:  strings.TrimSpace(utils.SanitizeString(in.Rows[i].Remarks)),
		})
	}
	return table
}

// FormatRemarks renders category tallies as "• Gpf- 2 Bills" lines.
func FormatRemarks(categories []CategoryCount) string {
	lines := make([]string, 0, len(categories))
	for _, c := range categories {
		noun := "Bills"
		if c.Count == 1 {
			noun = "Bill"
		}
		lines = append(lines, fmt.Sprintf("• %s- %d %s", c.Label, c.Count, noun))
	}
	return strings.Join(lines, "\n")
}

// NormalizePercentage trims s and appends "%" when missing. Blank input stays blank.
func NormalizePercentage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return s
	}
	return s + "%"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
