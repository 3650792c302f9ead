package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

// reportFlags are shared by the commands that can render a status report.
type reportFlags struct {
	report     bool
	table      bool
	tokens     bool
	date       string
	percentage string
	passed     map[string]string
	returned   map[string]string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.report, "report", false, "Generate the PDF status report")
	cmd.Flags().BoolVar(&f.table, "table", false, "Print the four-row status table")
	cmd.Flags().BoolVar(&f.tokens, "tokens", false, "List token numbers per bucket")
	cmd.Flags().StringVar(&f.date, "date", "", "Report date override, dd/mm/yyyy")
	cmd.Flags().StringVar(&f.percentage, "percentage", "", "E-bill percentage override")
	cmd.Flags().StringToStringVar(&f.passed, "passed", nil, "Passed count overrides, e.g. ncddo-ebill=12")
	cmd.Flags().StringToStringVar(&f.returned, "returned", nil, "Returned counts, e.g. cddo-normal=1")
}

func (f *reportFlags) overrides() (summary.Overrides, error) {
	ov := summary.Overrides{Date: f.date, Percentage: f.percentage}
	var err error
	if ov.Passed, err = bucketValues(f.passed); err != nil {
		return ov, err
	}
	if ov.Returned, err = bucketValues(f.returned); err != nil {
		return ov, err
	}
	return ov, nil
}

func bucketValues(in map[string]string) (map[entity.Bucket]string, error) {
	out := make(map[entity.Bucket]string, len(in))
	for key, value := range in {
		b, err := entity.ParseBucket(key)
		if err != nil {
			return nil, err
		}
		out[b] = value
	}
	return out, nil
}

// present prints the analysis and, when asked, the status table and report.
// Structured formats get a single document holding the view and the table.
func (a *app) present(cmd *cobra.Command, res *session.Result, f *reportFlags) error {
	var table *summary.StatusTable
	var ov summary.Overrides
	if f.report || f.table {
		var err error
		if ov, err = f.overrides(); err != nil {
			return err
		}
	}

	reports := a.container.Services().Report
	if f.table {
		var err error
		if table, err = reports.StatusTable(res, ov); err != nil {
			return err
		}
	}

	if err := a.write(cmd.OutOrStdout(), res.View, table, f.tokens); err != nil {
		return err
	}

	if f.report {
		generated, err := reports.GenerateFromResult(cmd.Context(), res, ov)
		if err != nil {
			return err
		}
		printSaved(cmd, generated.PDFPath, generated.XLSXPath)
	}
	return nil
}

func (a *app) write(out io.Writer, view *summary.View, table *summary.StatusTable, tokens bool) error {
	if a.format != summary.FormatText {
		return summary.Encode(out, summary.Document{View: view, Table: table}, a.format)
	}

	if err := summary.WriteView(out, view, a.format); err != nil {
		return err
	}
	if tokens {
		if err := summary.WriteTokens(out, view); err != nil {
			return err
		}
	}
	if table == nil {
		return nil
	}
	fmt.Fprintln(out)
	return summary.WriteTable(out, table, a.format)
}

func printSaved(cmd *cobra.Command, paths ...string) {
	for _, p := range paths {
		if p != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Report saved: %s\n", p)
		}
	}
}
