package reconcile

import (
	"strings"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
)

// Classifier decides whether a voucher belongs to the resident office.
type Classifier interface {
	Classify(v *entity.VoucherRecord) entity.Jurisdiction
}

// NameMarkerClassifier marks vouchers resident when the office name contains Marker, case-insensitively.
type NameMarkerClassifier struct {
	Marker string
}

func (c NameMarkerClassifier) Classify(v *entity.VoucherRecord) entity.Jurisdiction {
	if c.Marker != "" && strings.Contains(strings.ToUpper(v.DDOName), strings.ToUpper(c.Marker)) {
		return entity.JurisdictionResident
	}
	return entity.JurisdictionOuter
}

// CodePrefixClassifier marks vouchers resident by office code prefix, or by voucher
// number prefix when the record has no office code or no code prefix is configured.
type CodePrefixClassifier struct {
	CodePrefix    string
	VoucherPrefix string
}

func (c CodePrefixClassifier) Classify(v *entity.VoucherRecord) entity.Jurisdiction {
	if v.DDOCode != "" && c.CodePrefix != "" {
		return residentIf(strings.HasPrefix(v.DDOCode, c.CodePrefix))
	}
	return VoucherPrefixClassifier{Prefix: c.VoucherPrefix}.Classify(v)
}

// VoucherPrefixClassifier marks vouchers resident by voucher number prefix.
type VoucherPrefixClassifier struct {
	Prefix string
}

func (c VoucherPrefixClassifier) Classify(v *entity.VoucherRecord) entity.Jurisdiction {
	return residentIf(c.Prefix != "" && strings.HasPrefix(v.VoucherNumber, c.Prefix))
}

func residentIf(ok bool) entity.Jurisdiction {
	if ok {
		return entity.JurisdictionResident
	}
	return entity.JurisdictionOuter
}
