package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/container"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
)

var errUnhealthy = errors.New("one or more components are unhealthy")

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration and report output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.container.Ready() {
				return fmt.Errorf("container is not ready")
			}

			health := a.container.Health()
			if err := writeHealth(cmd.OutOrStdout(), health, a.format); err != nil {
				return err
			}
			if !health.Overall {
				return errUnhealthy
			}
			return nil
		},
	}
}

func writeHealth(w io.Writer, h *container.HealthStatus, format summary.Format) error {
	if format != summary.FormatText {
		return summary.Encode(w, h, format)
	}

	names := make([]string, 0, len(h.Components))
	for name := range h.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		c := h.Components[name]
		status := "ok"
		if !c.Healthy {
			status = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, status, c.Message)
	}
	return tw.Flush()
}
