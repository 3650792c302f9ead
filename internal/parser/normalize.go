package parser

import (
	"regexp"
	"strings"
)

// NormalizeIdentifier trims raw and keeps the text before the first whitespace run.
// It returns "" when nothing is left, which callers treat as missing.
func NormalizeIdentifier(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

var bracketCode = regexp.MustCompile(`\s*\[\s*(\d+)\s*\]`)

// DefaultGenericHeads are boilerplate accounting heads that say nothing about what a bill is for.
var DefaultGenericHeads = []string{
	"ELECTRONIC ADVICES",
	"SUSPENSE",
	"CHEQUES",
	"DEFAULT",
	"DEDUCTIONS",
	"CONTRIBUTIONS",
	"GST",
	"PUBLIC ACCOUNT",
	"OTHERS",
}

// HeadFilter cleans object and function head strings and drops generic ones.
type HeadFilter struct {
	generic   []string
	upperCase bool
}

// NewHeadFilter builds a filter. Terms match case-insensitively anywhere in the head.
func NewHeadFilter(generic []string, upperCase bool) *HeadFilter {
	terms := make([]string, 0, len(generic))
	for _, g := range generic {
		if g = strings.ToUpper(strings.TrimSpace(g)); g != "" {
			terms = append(terms, g)
		}
	}
	return &HeadFilter{generic: terms, upperCase: upperCase}
}

// Clean canonicalizes the first bracketed numeric code, e.g. "Salaries [ 01 ]" becomes
// "Salaries[01]", and reports false for empty or generic heads.
func (f *HeadFilter) Clean(raw string) (string, bool) {
	head := raw
	if loc := bracketCode.FindStringSubmatchIndex(head); loc != nil {
		head = head[:loc[0]] + "[" + head[loc[2]:loc[3]] + "]" + head[loc[1]:]
	}
	head = strings.TrimSpace(head)
	if head == "" {
		return "", false
	}

	upper := strings.ToUpper(head)
	for _, term := range f.generic {
		if strings.Contains(upper, term) {
			return "", false
		}
	}
	if f.upperCase {
		return upper, true
	}
	return head, true
}

// headSet keeps unique heads in first-seen order.
type headSet struct {
	seen   map[string]struct{}
	values []string
}

func newHeadSet() *headSet {
	return &headSet{seen: make(map[string]struct{})}
}

func (s *headSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

func (s *headSet) list() []string {
	return s.values
}
