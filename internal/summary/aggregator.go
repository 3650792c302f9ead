// Package summary turns reconciled buckets into counts, category tallies and the
// four-row status table.
package summary

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
)

// ZeroPercentage is shown when there are no vouchers at all.
const ZeroPercentage = "0.00%"

// CategoryCount is how many normal bills carry one label.
type CategoryCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// BucketSummary describes one of the four partitions.
type BucketSummary struct {
	Label        string              `json:"label" yaml:"label"`
	Jurisdiction entity.Jurisdiction `json:"jurisdiction" yaml:"jurisdiction"`
	BillType     entity.BillType     `json:"bill_type" yaml:"bill_type"`
	Count        int                 `json:"count" yaml:"count"`
	Tokens       []string            `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Categories   []CategoryCount     `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Summary is the aggregate view of one analysis.
type Summary struct {
	ReportDate string          `json:"report_date" yaml:"report_date"`
	Buckets    []BucketSummary `json:"buckets" yaml:"buckets"`
	Total      int             `json:"total" yaml:"total"`
	EBills     int             `json:"ebills" yaml:"ebills"`
	Percentage string          `json:"percentage" yaml:"percentage"`
}

// Bucket returns the summary of one partition.
func (s *Summary) Bucket(b entity.Bucket) BucketSummary {
	for _, bs := range s.Buckets {
		if bs.Jurisdiction == b.Jurisdiction && bs.BillType == b.BillType {
			return bs
		}
	}
	return BucketSummary{Label: b.String(), Jurisdiction: b.Jurisdiction, BillType: b.BillType}
}

// Aggregator computes summaries
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Summarize counts every bucket, tallies normal bill categories and computes the e-bill share.
func (a *Aggregator) Summarize(res *reconcile.Result) *Summary {
	s := &Summary{ReportDate: res.ReportDate}

	for _, b := range entity.Buckets {
		records := res.Bucket(b)
		bs := BucketSummary{
			Label:        b.String(),
			Jurisdiction: b.Jurisdiction,
			BillType:     b.BillType,
			Count:        len(records),
			Tokens:       distinctTokens(records),
		}
		if b.BillType == entity.BillTypeNormal {
			bs.Categories = Tally(records)
		} else {
			s.EBills += bs.Count
		}
		s.Total += bs.Count
		s.Buckets = append(s.Buckets, bs)
	}
	s.Percentage = PassPercentage(s.EBills, s.Total)

	a.logger.Debug("Summary computed",
		zap.Int("total", s.Total),
		zap.Int("ebills", s.EBills),
		zap.String("percentage", s.Percentage))

	return s
}

// Tally groups records by category in order of first appearance.
func Tally(records []*entity.VoucherRecord) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int)
	for _, r := range records {
		label := r.Category
		if label == "" {
			label = entity.CategoryUncategorized
		}
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, CategoryCount{Label: label, Count: 1})
	}
	return out
}

// PassPercentage is ebills/total as a percentage with two decimals, e.g. "24.00%".
func PassPercentage(ebills, total int) string {
	if total <= 0 {
		return ZeroPercentage
	}
	pct := decimal.NewFromInt(int64(ebills)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
	return pct.StringFixed(2) + "%"
}

// distinctTokens returns the non-empty tokens of records, deduplicated and numerically ordered.
func distinctTokens(records []*entity.VoucherRecord) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, r := range records {
		if r.Token == "" {
			continue
		}
		if _, ok := seen[r.Token]; ok {
			continue
		}
		seen[r.Token] = struct{}{}
		tokens = append(tokens, r.Token)
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokenNumber(tokens[i]) < tokenNumber(tokens[j])
	})
	return tokens
}

func tokenNumber(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
