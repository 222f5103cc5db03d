package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

// Environment variable names
const (
	EnvDataFile       = "SALARYTAX_DATA_FILE"
	EnvRegimeFile     = "SALARYTAX_REGIME_FILE"
	EnvDefaultRegime  = "SALARYTAX_DEFAULT_REGIME"
	EnvPayslipDir     = "SALARYTAX_PAYSLIP_DIR"
	EnvDebug          = "SALARYTAX_DEBUG"
	EnvIncomeTaxRate  = "SALARYTAX_INCOME_TAX_RATE"
	EnvNIRate         = "SALARYTAX_NI_RATE"
	EnvPensionRate    = "SALARYTAX_PENSION_RATE"
	DefaultDataFile   = "employees.csv"
	DefaultPayslipDir = "payslips"
)

// Settings are the process-wide options shared by the CLI and the TUI
type Settings struct {
	DataFile      string
	RegimeFile    string
	DefaultRegime domain.Regime
	PayslipDir    string
	Debug         bool
	PayslipRates  domain.PayslipRates
}

// DefaultSettings returns settings with no environment applied
func DefaultSettings() Settings {
	return Settings{
		DataFile:      DefaultDataFile,
		DefaultRegime: domain.RegimeNew,
		PayslipDir:    DefaultPayslipDir,
		PayslipRates:  domain.DefaultPayslipRates(),
	}
}

// LoadSettings reads settings from the environment after loading the given
// .env files. Missing .env files are ignored; variables already set in the
// environment take precedence over file values.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := DefaultSettings()
	if v := os.Getenv(EnvDataFile); v != "" {
		s.DataFile = v
	}
	s.RegimeFile = os.Getenv(EnvRegimeFile)
	if v := os.Getenv(EnvDefaultRegime); v != "" {
		s.DefaultRegime = domain.Regime(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPayslipDir); v != "" {
		s.PayslipDir = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvDebug, err)
		}
		s.Debug = debug
	}

	rates := []struct {
		env  string
		dest *decimal.Decimal
	}{
		{EnvIncomeTaxRate, &s.PayslipRates.IncomeTax},
		{EnvNIRate, &s.PayslipRates.NationalInsurance},
		{EnvPensionRate, &s.PayslipRates.Pension},
	}
	for _, r := range rates {
		v := os.Getenv(r.env)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", r.env, err)
		}
		if !isFraction(d) {
			return Settings{}, fmt.Errorf("%s must be between 0 and 1", r.env)
		}
		*r.dest = d
	}

	return s, nil
}

// CheckDefaultRegime reports a default regime the table does not define
func (s Settings) CheckDefaultRegime(table *domain.RegimeTable) error {
	if _, ok := table.Schedule(s.DefaultRegime); !ok {
		return fmt.Errorf("default regime %q is not in the regime table", s.DefaultRegime)
	}
	return nil
}
