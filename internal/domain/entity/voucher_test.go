package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillType(t *testing.T) {
	tests := []struct {
		raw  string
		want BillType
	}{
		{"Normal", BillTypeNormal},
		{" normal ", BillTypeNormal},
		{"", BillTypeNormal},
		{"EBill", BillTypeEBill},
		{"E-Bill", BillTypeEBill},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBillType(tt.raw))
		})
	}
}

func TestVoucherRecord_TokenValue(t *testing.T) {
	assert.Equal(t, int64(0), (&VoucherRecord{}).TokenValue())
	assert.Equal(t, int64(0), (&VoucherRecord{Token: "T12"}).TokenValue())
	assert.Equal(t, int64(1234), (&VoucherRecord{Token: "1234"}).TokenValue())
}

func TestVoucherRecord_Office(t *testing.T) {
	assert.Equal(t, "DDO LUCKNOW", (&VoucherRecord{DDOName: "DDO LUCKNOW", DDOCode: "N100"}).Office())
	assert.Equal(t, "N100", (&VoucherRecord{DDOCode: "N100"}).Office())
}

func TestVoucherRecord_CloneIsIndependent(t *testing.T) {
	orig := &VoucherRecord{VoucherNumber: "V1", BillType: BillTypeNormal}
	c := orig.Clone()
	c.BillType = BillTypeEBill

	assert.Equal(t, BillTypeNormal, orig.BillType)
}

func TestBucket_String(t *testing.T) {
	labels := make([]string, 0, len(Buckets))
	for _, b := range Buckets {
		labels = append(labels, b.String())
	}

	assert.Equal(t, []string{
		"E. Bills- NCDDO",
		"E. Bills- CDDO",
		"Normal Bills- NCDDO",
		"Normal Bills- CDDO",
	}, labels)
}

func TestParseBucket(t *testing.T) {
	for _, b := range Buckets {
		got, err := ParseBucket(strings.ToUpper(b.Key()))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	_, err := ParseBucket("ncddo")
	assert.Error(t, err)
}
