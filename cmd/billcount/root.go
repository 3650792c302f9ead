package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/config"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/container"
	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/summary"
	"github.com/SamuelAdmand/Bill-Counting-Tool/pkg/utils"
)

// skipSetup marks commands that run without configuration.
const skipSetup = "skip-setup"

// app carries global flags and the container into every subcommand.
type app struct {
	cfgFile string
	verbose bool
	output  string

	format    summary.Format
	container *container.Container

	root *cobra.Command
}

func newApp() *app {
	a := &app{}

	a.root = &cobra.Command{
		Use:   "billcount",
		Short: "Bill Counting Tool - reconcile voucher reports into the daily e-bill status report",
		Long: `billcount reads the e-payment authorization register together with a voucher
compilation sheet or sanction detail export, splits the vouchers into e-bills and
normal bills for the resident (NCDDO) and outer (CDDO) offices, and renders the
daily status report as a PDF.

Example Usage:
  billcount analyze register.xml compilation.xml --report
  billcount count sanction.xml --office N201
  billcount count bills.pdf --tokens
  billcount manual --date 05/03/2025 --passed ncddo-ebill=12 --percentage 80`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to a YAML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVarP(&a.output, "output", "o", "text", "Output format: text, json or yaml")

	a.root.AddCommand(
		newAnalyzeCmd(a),
		newCountCmd(a),
		newManualCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return a
}

// execute runs the command line and closes the container whether or not the
// command succeeded.
func (a *app) execute(ctx context.Context) (err error) {
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	return a.root.ExecuteContext(ctx)
}

// setup loads configuration, builds the logger and starts the container.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipSetup] != "" {
		return nil
	}

	format, err := summary.ParseFormat(a.output)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logger.Level = "debug"
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	a.container = c
	if err := c.Start(cmd.Context()); err != nil {
		return err
	}

	logger.Debug("Command started", zap.String("command", cmd.Name()), zap.Strings("args", args))
	return nil
}

func (a *app) close() error {
	if a.container == nil {
		return nil
	}
	return a.container.Close()
}
