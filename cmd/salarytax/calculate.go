package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// amountFlags maps calculate flags to form fields
var amountFlags = []struct {
	flag  string
	field config.FormField
	usage string
}{
	{"basic", config.FieldBasic, "Basic pay (monthly)"},
	{"hra", config.FieldHRA, "House rent allowance (monthly)"},
	{"other-allow", config.FieldOtherAllowance, "Other allowances (monthly)"},
	{"other-income", config.FieldOtherIncome, "Other income (annual)"},
	{"std-ded", config.FieldStandardDeduction, "Standard deduction (annual)"},
	{"sec80c", config.FieldSection80C, "Section 80C deductions (annual)"},
	{"sec80d", config.FieldSection80D, "Section 80D deductions (annual)"},
}

// parseAmountFlag rejects text the form layer would silently turn into zero
func parseAmountFlag(name, value string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if _, err := decimal.NewFromString(cleaned); err != nil {
		return "", fmt.Errorf("invalid --%s value %q", name, value)
	}
	return cleaned, nil
}

func calculateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Estimate annual income tax",
		Long: "Estimate annual income tax from monthly salary components and annual\n" +
			"deductions. With --employee the basic pay is pre-filled as the recorded\n" +
			"gross / 12 and every other component starts at zero.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := config.DefaultFormValues()
			values[config.FieldRegime] = string(a.settings.DefaultRegime)

			if id, _ := cmd.Flags().GetInt("employee"); id > 0 {
				repo, err := a.repository()
				if err != nil {
					return err
				}
				rec, err := repo.Get(context.Background(), id)
				if err != nil {
					return err
				}
				values = config.PrefillFromRecord(rec)
				values[config.FieldRegime] = string(a.settings.DefaultRegime)
				fmt.Fprintf(cmd.ErrOrStderr(), "Using employee %d (%s): basic pay approximated as %s / 12\n",
					rec.ID, rec.Name, output.FormatCurrency(rec.GrossSalary))
			}

			for _, af := range amountFlags {
				if !cmd.Flags().Changed(af.flag) {
					continue
				}
				raw, _ := cmd.Flags().GetString(af.flag)
				v, err := parseAmountFlag(af.flag, raw)
				if err != nil {
					return err
				}
				values[af.field] = v
			}
			if cmd.Flags().Changed("regime") {
				regime, _ := cmd.Flags().GetString("regime")
				values[config.FieldRegime] = regime
			}

			input := config.ParseSalaryForm(values)
			if err := config.ValidateSalaryInput(input, a.table); err != nil {
				return err
			}

			calc := a.calculator()
			out := cmd.OutOrStdout()

			if compare, _ := cmd.Flags().GetBool("compare"); compare {
				breakdowns, err := calc.Compare(input)
				if err != nil {
					return err
				}
				_, err = out.Write(output.FormatComparison(breakdowns))
				return err
			}

			breakdown, err := calc.Calculate(input)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if dir, _ := cmd.Flags().GetString("save-dir"); dir != "" {
				ext := f.Name()
				if ext == "console" {
					ext = "txt"
				}
				path, err := output.WriteFormatted(dir, f, breakdown, ext)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved estimate to %s\n", path)
			}

			data, err := f.Format(breakdown)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	for _, af := range amountFlags {
		def := "0"
		if af.field == config.FieldStandardDeduction {
			def = domain.DefaultStandardDeduction.String()
		}
		cmd.Flags().String(af.flag, def, af.usage)
	}
	cmd.Flags().String("regime", "", "Tax regime (default $"+config.EnvDefaultRegime+" or new)")
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("compare", false, "Show every regime side by side")
	cmd.Flags().Int("employee", 0, "Pre-fill basic pay from this registry employee")
	cmd.Flags().String("save-dir", "", "Also write the estimate into this directory")

	return cmd
}
