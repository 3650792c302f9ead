package main

import (
	"github.com/spf13/cobra"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <report.xml> <report.xml>",
		Short: "Reconcile the authorization register with a compilation sheet or sanction detail",
		Long: `analyze takes the e-payment authorization register and a voucher compilation
sheet (or sanction detail) in either order, joins them by voucher number and
counts e-bills and normal bills for the resident and outer offices.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			analysis := a.container.Services().Analysis

			for i, path := range args {
				if err := analysis.SelectFile(ctx, session.Slot(i), path); err != nil {
					return err
				}
			}
			res, err := analysis.AnalyzePair(ctx)
			if err != nil {
				return err
			}
			return a.present(cmd, res, flags)
		},
	}
	flags.register(cmd)
	return cmd
}
