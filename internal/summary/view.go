package summary

import (
	"fmt"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
)

// NoToken is shown on a bill line without a token.
const NoToken = "N/A"

// Diagnostics are non-fatal findings of one analysis run.
type Diagnostics struct {
	Unmatched      int    `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Duplicates     int    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Strategy       string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	LowConfidence  bool   `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`
	NoRows         bool   `json:"no_rows,omitempty" yaml:"no_rows,omitempty"`
	Discrepancy    int    `json:"discrepancy,omitempty" yaml:"discrepancy,omitempty"`
	OfficeFilter   string `json:"office_filter,omitempty" yaml:"office_filter,omitempty"`
	OfficeNotFound bool   `json:"office_not_found,omitempty" yaml:"office_not_found,omitempty"`
}

// Warnings renders the diagnostics worth telling the operator about.
func (d Diagnostics) Warnings() []string {
	var out []string
	if d.OfficeNotFound {
		out = append(out, fmt.Sprintf("Office code %q was not found in the file.", d.OfficeFilter))
	}
	if d.Unmatched > 0 {
		out = append(out, fmt.Sprintf("%d voucher(s) were missing from the authorization register and counted as Normal.", d.Unmatched))
	}
	if d.Duplicates > 0 {
		out = append(out, fmt.Sprintf("%d duplicate voucher entr(ies) were collapsed.", d.Duplicates))
	}
	switch {
	case d.NoRows:
		out = append(out, "No readable rows were found in the file; all counts are zero.")
	case d.LowConfidence:
		out = append(out, "No header row was found; vouchers were recognised by pattern and counts may be incomplete.")
	}
	if d.Discrepancy > 0 {
		out = append(out, fmt.Sprintf("%d voucher number(s) in the file could not be categorized.", d.Discrepancy))
	}
	return out
}

// BillLine is one categorized normal bill.
type BillLine struct {
	Token    string `json:"token" yaml:"token"`
	Category string `json:"category" yaml:"category"`
	Voucher  string `json:"voucher" yaml:"voucher"`
}

// Card is the on-screen breakdown of one jurisdiction.
type Card struct {
	Title  string     `json:"title" yaml:"title"`
	Total  int        `json:"total" yaml:"total"`
	Normal int        `json:"normal" yaml:"normal"`
	EBills int        `json:"ebills" yaml:"ebills"`
	Bills  []BillLine `json:"bills,omitempty" yaml:"bills,omitempty"`
}

// View is everything shown after an analysis.
type View struct {
	ReportDate string          `json:"report_date" yaml:"report_date"`
	Percentage string          `json:"percentage" yaml:"percentage"`
	Cards      []Card          `json:"cards" yaml:"cards"`
	Buckets    []BucketSummary `json:"buckets" yaml:"buckets"`
	Warnings   []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Empty reports whether no vouchers were found at all.
func (v *View) Empty() bool {
	return len(v.Cards) == 0
}

// ViewOptions names the cards.
type ViewOptions struct {
	ResidentTitle string
	OuterTitle    string
}

// NewView builds the on-screen view. A jurisdiction without vouchers gets no card.
func NewView(res *reconcile.Result, s *Summary, diag Diagnostics, opts ViewOptions) *View {
	v := &View{
		ReportDate: s.ReportDate,
		Percentage: s.Percentage,
		Buckets:    s.Buckets,
		Warnings:   diag.Warnings(),
	}

	cards := []struct {
		title  string
		normal []*entity.VoucherRecord
		ebills []*entity.VoucherRecord
	}{
		{opts.ResidentTitle, res.NCDDONormal, res.NCDDOEBill},
		{opts.OuterTitle, res.CDDONormal, res.CDDOEBill},
	}

	for _, c := range cards {
		total := len(c.normal) + len(c.ebills)
		if total == 0 {
			continue
		}
		card := Card{Title: c.title, Total: total, Normal: len(c.normal), EBills: len(c.ebills)}
		for _, r := range c.normal {
			token := r.Token
			if token == "" {
				token = NoToken
			}
			card.Bills = append(card.Bills, BillLine{Token: token, Category: r.Category, Voucher: r.VoucherNumber})
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}
