package service

import (
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/parser"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/reconcile"
)

// JurisdictionRules decide which vouchers belong to the resident office.
type JurisdictionRules struct {
	ResidentMarker string
	VoucherPrefix  string
	CodePrefix     string
}

// ClassifierFor returns the one rule used for each report variant: the office
// name for compilation sheets, the office code for sanction details and tabular
// sources, and the voucher prefix for a lone authorization register.
func (r JurisdictionRules) ClassifierFor(variant parser.Variant) reconcile.Classifier {
	switch variant {
	case parser.VariantCompilationSheet:
		return reconcile.NameMarkerClassifier{Marker: r.ResidentMarker}
	case parser.VariantSanctionDetail, parser.VariantTabular:
		return reconcile.CodePrefixClassifier{CodePrefix: r.CodePrefix, VoucherPrefix: r.VoucherPrefix}
	}
	return reconcile.VoucherPrefixClassifier{Prefix: r.VoucherPrefix}
}
