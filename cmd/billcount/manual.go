package main

import (
	"github.com/spf13/cobra"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/domain/entity"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

func newManualCmd(a *app) *cobra.Command {
	var (
		date, percentage          string
		passed, returned, remarks map[string]string
	)

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Generate the status report from typed-in counts",
		Long: `manual builds the status report without reading any file. Every row is
addressed by its bucket key: ncddo-ebill, cddo-ebill, ncddo-normal, cddo-normal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := manualInput(date, percentage, passed, returned, remarks)
			if err != nil {
				return err
			}

			reports := a.container.Services().Report
			out, err := reports.GenerateManual(cmd.Context(), in)
			if err != nil {
				return err
			}
			if err := summary.WriteTable(cmd.OutOrStdout(), reports.ManualTable(in), a.format); err != nil {
				return err
			}
			printSaved(cmd, out.PDFPath, out.XLSXPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date, dd/mm/yyyy (default today)")
	cmd.Flags().StringVar(&percentage, "percentage", "", "E-bill percentage (default \"Not provided\")")
	cmd.Flags().StringToStringVar(&passed, "passed", nil, "Passed counts, e.g. ncddo-ebill=12")
	cmd.Flags().StringToStringVar(&returned, "returned", nil, "Returned counts, e.g. cddo-normal=1")
	cmd.Flags().StringToStringVar(&remarks, "remarks", nil, "Remarks per row, e.g. ncddo-normal=\"Gpf- 2 Bills\"")
	return cmd
}

func manualInput(date, percentage string, passed, returned, remarks map[string]string) (summary.ManualInput, error) {
	in := summary.ManualInput{Date: date, Percentage: percentage}

	index := make(map[entity.Bucket]int, len(entity.Buckets))
	for i, b := range entity.Buckets {
		index[b] = i
	}

	fields := []struct {
		values map[string]string
		set    func(row *summary.ManualRow, v string)
	}{
		{passed, func(row *summary.ManualRow, v string) { row.Passed = v }},
		{returned, func(row *summary.ManualRow, v string) { row.Returned = v }},
		{remarks, func(row *summary.ManualRow, v string) { row.Remarks = v }},
	}
	for _, f := range fields {
		values, err := bucketValues(f.values)
		if err != nil {
			return in, err
		}
		for b, v := range values {
			f.set(&in.Rows[index[b]], v)
		}
	}
	return in, nil
}
