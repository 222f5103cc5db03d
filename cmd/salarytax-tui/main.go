package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/storage"
	"github.com/rgehrsitz/salarytax/internal/tui"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

const defaultLogFile = "salarytax-tui.log"

// setup resolves settings and builds the model. The returned closer releases
// the debug log file, if one was opened.
func setup(cmd *cobra.Command, envFiles ...string) (tui.Model, io.Closer, error) {
	settings, err := config.LoadSettings(envFiles...)
	if err != nil {
		return tui.Model{}, nil, err
	}
	if f := cmd.Flag("data"); f.Changed {
		settings.DataFile = f.Value.String()
	}
	if f := cmd.Flag("regimes"); f.Changed {
		settings.RegimeFile = f.Value.String()
	}
	if f := cmd.Flag("debug"); f.Changed {
		settings.Debug = f.Value.String() == "true"
	}

	table, err := config.NewInputParser().LoadRegimeTable(settings.RegimeFile)
	if err != nil {
		return tui.Model{}, nil, err
	}
	if err := settings.CheckDefaultRegime(table); err != nil {
		return tui.Model{}, nil, err
	}

	// The terminal belongs to the TUI, so logs go to a file
	var logger calculation.Logger = calculation.NopLogger{}
	var closer io.Closer = io.NopCloser(nil)
	if settings.Debug {
		path, _ := cmd.Flags().GetString("log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return tui.Model{}, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger = calculation.NewSlogLogger(f, true)
		closer = f
	}
	logger.Debugf("settings: data=%s regimes=%q default regime=%s", settings.DataFile, settings.RegimeFile, settings.DefaultRegime)

	calc := calculation.NewTaxCalculator(table)
	calc.SetLogger(logger)
	calc.Debug = settings.Debug

	var repo storage.EmployeeRepository
	if memory, _ := cmd.Flags().GetBool("memory"); memory {
		repo = storage.NewMemoryRepository()
	} else {
		csvRepo, err := storage.OpenCSVRepository(settings.DataFile)
		if err != nil {
			closer.Close()
			return tui.Model{}, nil, err
		}
		csvRepo.SetLogger(logger)
		repo = csvRepo
	}

	model := tui.NewModel(tui.Options{
		Theme:      tuistyles.DefaultTheme(),
		Repository: repo,
		Calculator: calc,
		Settings:   settings,
	})
	return model, closer, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "salarytax-tui",
		Short:        "Interactive salary tax estimator and employee registry",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, closer, err := setup(cmd, ".env")
			if err != nil {
				return err
			}
			defer closer.Close()

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("data", "", "Employee registry CSV (default $"+config.EnvDataFile+" or "+config.DefaultDataFile+")")
	cmd.Flags().String("regimes", "", "Regime table YAML (default: built-in table)")
	cmd.Flags().Bool("memory", false, "Keep the registry in memory only")
	cmd.Flags().Bool("debug", false, "Log calculation steps to the log file")
	cmd.Flags().String("log", defaultLogFile, "Debug log file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
