package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/spf13/cobra"
)

// salaryFlags are the monthly components an employee's gross is derived from
var salaryFlags = []struct {
	flag  string
	field config.FormField
	usage string
}{
	{"basic", config.FieldBasic, "Basic pay (monthly)"},
	{"hra", config.FieldHRA, "House rent allowance (monthly)"},
	{"other-allow", config.FieldOtherAllowance, "Other allowances (monthly)"},
}

func addSalaryFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Employee name")
	for _, sf := range salaryFlags {
		cmd.Flags().String(sf.flag, "0", sf.usage)
	}
}

// salaryValues collects the salary flags as form values
func salaryValues(cmd *cobra.Command) (config.FormValues, bool, error) {
	values := config.FormValues{}
	changed := false
	for _, sf := range salaryFlags {
		raw, _ := cmd.Flags().GetString(sf.flag)
		v, err := parseAmountFlag(sf.flag, raw)
		if err != nil {
			return nil, false, err
		}
		values[sf.field] = v
		changed = changed || cmd.Flags().Changed(sf.flag)
	}
	return values, changed, nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", arg)
	}
	return id, nil
}

func employeeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Manage the employee registry",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an employee; gross = (basic + hra + other-allow) * 12",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, _, err := salaryValues(cmd)
			if err != nil {
				return err
			}
			gross, err := config.GrossFromForm(values)
			if err != nil {
				return err
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			rec, err := repo.Create(context.Background(), name, gross)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee %s added with ID %d (gross %s)\n", rec.Name, rec.ID, output.FormatCurrency(rec.GrossSalary))
			return nil
		},
	}
	addSalaryFlags(add)

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List employees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			records, err := repo.List(context.Background())
			if err != nil {
				return err
			}
			return output.WriteEmployeeTable(cmd.OutOrStdout(), records)
		},
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee's name or salary components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			ctx := context.Background()
			rec, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				rec.Name, _ = cmd.Flags().GetString("name")
			}
			values, changed, err := salaryValues(cmd)
			if err != nil {
				return err
			}
			if changed {
				if rec.GrossSalary, err = config.GrossFromForm(values); err != nil {
					return err
				}
			}

			if err := repo.Update(ctx, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee %d updated (%s, gross %s)\n", rec.ID, rec.Name, output.FormatCurrency(rec.GrossSalary))
			return nil
		},
	}
	addSalaryFlags(update)

	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an employee",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			if err := repo.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, list, update, del)
	return cmd
}

func payslipCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payslip ID",
		Short: "Print a payslip for an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			rec, err := repo.Get(context.Background(), id)
			if err != nil {
				return err
			}

			day := time.Now()
			if raw, _ := cmd.Flags().GetString("date"); raw != "" {
				if day, err = time.Parse("2006-01-02", raw); err != nil {
					return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", raw)
				}
			}
			p := calculation.BuildPayslip(rec, day, a.settings.PayslipRates)

			if _, err := cmd.OutOrStdout().Write(output.FormatPayslip(p)); err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString("pdf"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := output.WritePayslipPDF(f, p); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Payslip PDF written to %s\n", path)
			}
			if save, _ := cmd.Flags().GetBool("save"); save {
				path, err := output.SavePayslipPDF(a.settings.PayslipDir, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Payslip PDF written to %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().String("pdf", "", "Also write the payslip as a PDF to this file")
	cmd.Flags().Bool("save", false, "Also write the payslip PDF into $"+config.EnvPayslipDir)
	cmd.Flags().String("date", "", "Payslip date (YYYY-MM-DD, default today)")
	return cmd
}
