package main

import (
	"github.com/spf13/cobra"
)

func newCountCmd(a *app) *cobra.Command {
	flags := &reportFlags{}
	var office string

	cmd := &cobra.Command{
		Use:   "count <file>",
		Short: "Count bills in a single XML, PDF, spreadsheet or CSV report",
		Long: `count reads one report. XML exports are parsed by their report type; PDF,
xlsx, xls and csv files go through the tabular reader, which uses a header row
when it finds one and pattern matching otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.Services().Analysis.AnalyzeSingle(cmd.Context(), args[0], office)
			if err != nil {
				return err
			}
			return a.present(cmd, res, flags)
		},
	}
	cmd.Flags().StringVar(&office, "office", "", "Only count vouchers of offices matching this code or name")
	flags.register(cmd)
	return cmd
}
