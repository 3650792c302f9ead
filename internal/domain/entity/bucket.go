package entity

import (
	"fmt"
	"strings"
)

// Jurisdiction splits vouchers between the resident office and outer offices.
type Jurisdiction string

const (
	// JurisdictionResident covers vouchers from offices in the paying office's own city.
	JurisdictionResident Jurisdiction = "NCDDO"
	// JurisdictionOuter covers vouchers from every other office.
	JurisdictionOuter Jurisdiction = "CDDO"
)

// String returns the string representation of the jurisdiction
func (j Jurisdiction) String() string {
	return string(j)
}

// Bucket is one of the four jurisdiction x bill type partitions.
type Bucket struct {
	Jurisdiction Jurisdiction
	BillType     BillType
}

// String renders the bucket the way the status report labels it, e.g. "E. Bills- NCDDO".
func (b Bucket) String() string {
	prefix := "Normal Bills"
	if b.BillType == BillTypeEBill {
		prefix = "E. Bills"
	}
	return prefix + "- " + string(b.Jurisdiction)
}

// Buckets lists the four partitions in status report row order.
var Buckets = []Bucket{
	{Jurisdiction: JurisdictionResident, BillType: BillTypeEBill},
	{Jurisdiction: JurisdictionOuter, BillType: BillTypeEBill},
	{Jurisdiction: JurisdictionResident, BillType: BillTypeNormal},
	{Jurisdiction: JurisdictionOuter, BillType: BillTypeNormal},
}

// Key is the short form used on the command line, e.g. "ncddo-ebill".
func (b Bucket) Key() string {
	kind := "normal"
	if b.BillType == BillTypeEBill {
		kind = "ebill"
	}
	return strings.ToLower(string(b.Jurisdiction)) + "-" + kind
}

// ParseBucket reads a bucket Key, case-insensitively.
func ParseBucket(key string) (Bucket, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, b := range Buckets {
		if b.Key() == key {
			return b, nil
		}
	}
	return Bucket{}, fmt.Errorf("unknown bucket %q (want ncddo-ebill, cddo-ebill, ncddo-normal or cddo-normal)", key)
}
