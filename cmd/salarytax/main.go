package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/storage"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what PersistentPreRunE resolves for the subcommands
type app struct {
	envFiles []string
	settings config.Settings
	table    *domain.RegimeTable
	logger   calculation.Logger
}

// calculator returns a tax calculator wired to the app logger
func (a *app) calculator() *calculation.TaxCalculator {
	calc := calculation.NewTaxCalculator(a.table)
	calc.SetLogger(a.logger)
	calc.Debug = a.settings.Debug
	return calc
}

// repository opens the employee registry
func (a *app) repository() (*storage.CSVRepository, error) {
	repo, err := storage.OpenCSVRepository(a.settings.DataFile)
	if err != nil {
		return nil, err
	}
	repo.SetLogger(a.logger)
	return repo, nil
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "salarytax %s (commit %s, built %s)\n", version, commit, date)
			if full, _ := cmd.Flags().GetBool("build-info"); full {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
	cmd.Flags().Bool("build-info", false, "Also print Go build information")
	return cmd
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	a := &app{envFiles: []string{".env"}}

	root := &cobra.Command{
		Use:   "salarytax",
		Short: "Salary tax estimator and employee registry",
		Long: "Estimate annual income tax under the new and old regimes, keep a CSV\n" +
			"employee registry and print payslips.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().String("data", "", "Employee registry CSV (default $"+config.EnvDataFile+" or "+config.DefaultDataFile+")")
	root.PersistentFlags().String("regimes", "", "Regime table YAML (default: built-in table)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of calculation steps")

	root.AddCommand(calculateCmd(a))
	root.AddCommand(regimesCmd(a))
	root.AddCommand(employeeCmd(a))
	root.AddCommand(payslipCmd(a))
	root.AddCommand(versionCmd())

	return root
}

// load resolves settings, flags and the regime table
func (a *app) load(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.envFiles...)
	if err != nil {
		return err
	}

	if f := cmd.Flag("data"); f != nil && f.Changed {
		settings.DataFile = f.Value.String()
	}
	if f := cmd.Flag("regimes"); f != nil && f.Changed {
		settings.RegimeFile = f.Value.String()
	}
	if f := cmd.Flag("debug"); f != nil && f.Changed {
		settings.Debug = f.Value.String() == "true"
	}

	table, err := config.NewInputParser().LoadRegimeTable(settings.RegimeFile)
	if err != nil {
		return err
	}
	if err := settings.CheckDefaultRegime(table); err != nil {
		return err
	}

	a.settings = settings
	a.table = table
	a.logger = calculation.NewSlogLogger(cmd.ErrOrStderr(), settings.Debug)
	a.logger.Debugf("settings: data=%s regimes=%q default regime=%s", settings.DataFile, settings.RegimeFile, settings.DefaultRegime)
	return nil
}

var rootCmd = newRootCmd()

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
