package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{" 7 ", 7},
		{"12 bills", 12},
		{"", 0},
		{"abc", 0},
		{"-4", 0},
		{"+3", 3},
		{"99999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.in))
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "a\nb", SanitizeString("a\x00\n\x07b"))
	assert.Equal(t, "tab", SanitizeString("t\tab"))
}

func TestIsReportDate(t *testing.T) {
	assert.True(t, IsReportDate("05/03/2025"))
	assert.True(t, IsReportDate("5/3/2025"))
	assert.False(t, IsReportDate("2025-03-05"))
	assert.False(t, IsReportDate(""))
}
