// Package categorize assigns a human readable category to vouchers.
package categorize

import (
	"strings"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
)

// Rule maps a UserNm marker to a label.
type Rule struct {
	Marker string `mapstructure:"marker" yaml:"marker"`
	Label  string `mapstructure:"label" yaml:"label"`
}

// Rules is the ordered rule set. The first rule whose marker appears in UserNm wins.
type Rules struct {
	Markers []Rule

	// OuterMarketplaceMarker and OuterMarketplaceLabel apply ahead of Markers when the
	// voucher's office is one of OuterOffices.
	OuterMarketplaceMarker string
	OuterMarketplaceLabel  string
	OuterOffices           []string

	// Uncategorized replaces the default fallback label when set.
	Uncategorized string
}

// DefaultRules returns the standard marker cascade.
func DefaultRules() Rules {
	return Rules{
		Markers: []Rule{
			{Marker: entity.MarkerProvidentFund, Label: entity.CategoryProvidentFund},
			{Marker: entity.MarkerSalary, Label: entity.CategorySalary},
			{Marker: entity.MarkerMarketplace, Label: entity.CategoryMarketplace},
			{Marker: entity.MarkerPension, Label: entity.CategoryPension},
		},
		OuterMarketplaceMarker: entity.MarkerMarketplace,
		OuterMarketplaceLabel:  entity.CategoryOuterGem,
	}
}

// Categorizer labels voucher records
type Categorizer struct {
	rules Rules
}

// NewCategorizer creates a categorizer for the given rules
func NewCategorizer(rules Rules) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize returns the label for v. When v has no UserNm, aux (may be nil) is consulted.
// Falls back to the object heads, then the function heads, then Uncategorized.
func (c *Categorizer) Categorize(v *entity.VoucherRecord, aux entity.LookupMap) string {
	userNm := v.UserNm
	if userNm == "" && aux != nil {
		userNm = aux[v.VoucherNumber].UserNm
	}

	if userNm != "" {
		if c.isOuterMarketplace(userNm, v.Office()) {
			return c.rules.OuterMarketplaceLabel
		}
		for _, rule := range c.rules.Markers {
			if rule.Marker != "" && strings.Contains(userNm, rule.Marker) {
				return rule.Label
			}
		}
	}

	if len(v.ObjectHeads) > 0 {
		return strings.Join(v.ObjectHeads, ", ")
	}
	if len(v.FuncHeads) > 0 {
		return strings.Join(v.FuncHeads, ", ")
	}
	if c.rules.Uncategorized != "" {
		return c.rules.Uncategorized
	}
	return entity.CategoryUncategorized
}

func (c *Categorizer) isOuterMarketplace(userNm, office string) bool {
	marker := c.rules.OuterMarketplaceMarker
	if marker == "" || c.rules.OuterMarketplaceLabel == "" || office == "" {
		return false
	}
	if !strings.Contains(userNm, marker) {
		return false
	}
	upper := strings.ToUpper(office)
	for _, outer := range c.rules.OuterOffices {
		if outer = strings.ToUpper(strings.TrimSpace(outer)); outer != "" && strings.Contains(upper, outer) {
			return true
		}
	}
	return false
}
