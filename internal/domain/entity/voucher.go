package entity

import (
	"strconv"
	"strings"
)

// BillType is the processing channel a voucher went through.
type BillType string

const (
	BillTypeNormal BillType = "Normal"
	BillTypeEBill  BillType = "EBill"
)

// ParseBillType maps a raw billType attribute to a BillType.
// An absent value defaults to Normal; any value other than "Normal" is an e-bill.
func ParseBillType(raw string) BillType {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, string(BillTypeNormal)) {
		return BillTypeNormal
	}
	return BillTypeEBill
}

// String returns the string representation of the bill type
func (b BillType) String() string {
	return string(b)
}

// LookupEntry is what the authorization register knows about one voucher.
type LookupEntry struct {
	BillType BillType
	UserNm   string
	Token    string
}

// LookupMap is keyed by normalized voucher number.
type LookupMap map[string]LookupEntry

// VoucherRecord is one voucher extracted from a primary document.
// Empty strings stand for absent optional values.
type VoucherRecord struct {
	VoucherNumber string
	DDOName       string
	DDOCode       string

	// BillType is only meaningful when HasBillType is set or after reconciliation.
	BillType    BillType
	HasBillType bool

	UserNm      string
	Token       string
	ObjectHeads []string
	FuncHeads   []string

	Category     string
	Jurisdiction Jurisdiction
}

// Office returns the best office identifier available, name first.
func (v *VoucherRecord) Office() string {
	if v.DDOName != "" {
		return v.DDOName
	}
	return v.DDOCode
}

// TokenValue returns the numeric token used for ordering; missing or non-numeric tokens count as 0.
func (v *VoucherRecord) TokenValue() int64 {
	if v.Token == "" {
		return 0
	}
	n, err := strconv.ParseInt(v.Token, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Clone returns a shallow copy; head slices are shared and treated as read-only.
func (v *VoucherRecord) Clone() *VoucherRecord {
	c := *v
	return &c
}
