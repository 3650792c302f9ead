package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format selects how a view or table is written out.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name; blank means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// WriteView writes the post-analysis view.
func WriteView(w io.Writer, v *View, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	}

	if v.Empty() {
		_, err := fmt.Fprintln(w, "No Vouchers Found\nThe analyzer could not find any vouchers in the provided files.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Report date:\t%s\n", v.ReportDate)
	for _, c := range v.Cards {
		fmt.Fprintf(tw, "\n%s\n", c.Title)
		fmt.Fprintf(tw, "Total Vouchers Found\t%d\n", c.Total)
		fmt.Fprintf(tw, "  - Normal Bills\t%d\n", c.Normal)
		fmt.Fprintf(tw, "  - e-Bills\t%d\n", c.EBills)
		if len(c.Bills) > 0 {
			fmt.Fprintln(tw, "Categorized Normal Bills")
			for _, b := range c.Bills {
				fmt.Fprintf(tw, "  [%s]\t%s\t(%s)\n", b.Token, b.Category, b.Voucher)
			}
		}
	}
	fmt.Fprintf(tw, "\nPercentage of E. Bills being passed:\t%s\n", v.Percentage)
	for _, warning := range v.Warnings {
		fmt.Fprintf(tw, "warning:\t%s\n", warning)
	}
	return tw.Flush()
}

// WriteTable writes the status table, e.g. for the count command.
func WriteTable(w io.Writer, t *StatusTable, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatYAML:
		return writeYAML(w, t)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Date: %s\n\n", t.Date)
	fmt.Fprintln(tw, "Type of Bills\tPassed\tReturned\tTotal\tRemarks")
	for _, r := range t.Rows {
		remarks := strings.Split(r.Remarks, "\n")
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", r.Label, r.Passed, r.Returned, r.Total(), remarks[0])
		for _, line := range remarks[1:] {
			fmt.Fprintf(tw, "\t\t\t\t%s\n", line)
		}
	}
	fmt.Fprintf(tw, "\nPercentage of E. Bills being passed: %s\n", t.Percentage)
	return tw.Flush()
}

// Document is the single structured output of an analysis command.
type Document struct {
	View  *View        `json:"view" yaml:"view"`
	Table *StatusTable `json:"table,omitempty" yaml:"table,omitempty"`
}

// Encode writes v as one JSON or YAML document.
func Encode(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	}
	return fmt.Errorf("format %q is not structured", format)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTokens lists the token numbers of every bucket that has any.
func WriteTokens(w io.Writer, v *View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nToken numbers")
	for _, b := range v.Buckets {
		if len(b.Tokens) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", b.Label, strings.Join(b.Tokens, ", "))
	}
	return tw.Flush()
}
