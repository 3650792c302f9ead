package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingInt    = regexp.MustCompile(`^[+-]?\d+`)
	controlChars  = regexp.MustCompile(`[\x00-\x09\x0b-\x1f\x7f]`)
	reportDateFmt = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
)

// ParseCount reads the leading integer of s, e.g. "12 bills" is 12.
// Blank or non-numeric input and negative values yield 0.
func ParseCount(s string) int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SanitizeString removes control characters but keeps line breaks
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

// IsReportDate reports whether s looks like dd/mm/yyyy.
func IsReportDate(s string) bool {
	return reportDateFmt.MatchString(s)
}
