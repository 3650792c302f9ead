// Package reconcile joins primary voucher records with the bill type lookup and
// partitions them into jurisdiction and bill type buckets.
package reconcile

import (
	"sort"

	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
)

// Categorizer labels a voucher; aux may be nil.
type Categorizer interface {
	Categorize(v *entity.VoucherRecord, aux entity.LookupMap) string
}

// Input is everything one reconciliation needs.
type Input struct {
	Vouchers   []*entity.VoucherRecord
	Lookup     entity.LookupMap // may be nil
	Classifier Classifier

	PrimaryDate   string
	AuxiliaryDate string
}

// Result holds the four buckets. Normal buckets are ordered by ascending token.
type Result struct {
	NCDDOEBill  []*entity.VoucherRecord
	CDDOEBill   []*entity.VoucherRecord
	NCDDONormal []*entity.VoucherRecord
	CDDONormal  []*entity.VoucherRecord

	ReportDate string

	// Unmatched counts primary vouchers the lookup did not know about.
	Unmatched int
}

// Bucket returns the records of one partition.
func (r *Result) Bucket(b entity.Bucket) []*entity.VoucherRecord {
	switch b {
	case entity.Bucket{Jurisdiction: entity.JurisdictionResident, BillType: entity.BillTypeEBill}:
		return r.NCDDOEBill
	case entity.Bucket{Jurisdiction: entity.JurisdictionOuter, BillType: entity.BillTypeEBill}:
		return r.CDDOEBill
	case entity.Bucket{Jurisdiction: entity.JurisdictionResident, BillType: entity.BillTypeNormal}:
		return r.NCDDONormal
	case entity.Bucket{Jurisdiction: entity.JurisdictionOuter, BillType: entity.BillTypeNormal}:
		return r.CDDONormal
	}
	return nil
}

// Total is the number of vouchers across all buckets.
func (r *Result) Total() int {
	return len(r.NCDDOEBill) + len(r.CDDOEBill) + len(r.NCDDONormal) + len(r.CDDONormal)
}

// Reconciler performs the join and partition
type Reconciler struct {
	categorizer Categorizer
	logger      *zap.Logger
}

// NewReconciler creates a reconciler
func NewReconciler(categorizer Categorizer, logger *zap.Logger) *Reconciler {
	return &Reconciler{categorizer: categorizer, logger: logger}
}

// Reconcile overlays the lookup on each voucher, assigns jurisdiction and category and
// buckets it. Input records are not modified.
func (r *Reconciler) Reconcile(in Input) *Result {
	res := &Result{ReportDate: in.PrimaryDate}
	if res.ReportDate == "" {
		res.ReportDate = in.AuxiliaryDate
	}

	for _, src := range in.Vouchers {
		v := src.Clone()

		if entry, ok := in.Lookup[v.VoucherNumber]; ok {
			v.BillType = entry.BillType
			v.UserNm = entry.UserNm
			v.Token = entry.Token
		} else {
			if in.Lookup != nil {
				res.Unmatched++
			}
			if !v.HasBillType {
				v.BillType = entity.BillTypeNormal
			}
		}

		v.Category = r.categorizer.Categorize(v, in.Lookup)
		v.Jurisdiction = in.Classifier.Classify(v)
		resident := v.Jurisdiction == entity.JurisdictionResident

		if v.BillType == entity.BillTypeEBill {
			if resident {
				res.NCDDOEBill = append(res.NCDDOEBill, v)
			} else {
				res.CDDOEBill = append(res.CDDOEBill, v)
			}
			continue
		}

		if resident {
			res.NCDDONormal = append(res.NCDDONormal, v)
		} else {
			res.CDDONormal = append(res.CDDONormal, v)
		}
	}

	sortByToken(res.NCDDONormal)
	sortByToken(res.CDDONormal)

	if res.Unmatched > 0 {
		r.logger.Warn("Vouchers missing from authorization register, defaulted to Normal",
			zap.Int("unmatched", res.Unmatched))
	}
	r.logger.Debug("Vouchers reconciled",
		zap.Int("ncddo_ebill", len(res.NCDDOEBill)),
		zap.Int("cddo_ebill", len(res.CDDOEBill)),
		zap.Int("ncddo_normal", len(res.NCDDONormal)),
		zap.Int("cddo_normal", len(res.CDDONormal)))

	return res
}

func sortByToken(records []*entity.VoucherRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TokenValue() < records[j].TokenValue()
	})
}
