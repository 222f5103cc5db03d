package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func regimesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regimes",
		Short: "Print the regime table in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
				data, err := yaml.Marshal(a.table)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintf(out, "REGIME TABLE %s\n", a.table.Version)
			fmt.Fprintln(out, strings.Repeat("=", 50))
			fmt.Fprintf(out, "Cess: %s of tax\n", output.FormatPercentage(a.table.CessRate))
			for _, s := range a.table.Regimes {
				fmt.Fprintln(out)
				label := s.Label
				if label == "" {
					label = string(s.Name)
				}
				marker := ""
				if s.Name == a.settings.DefaultRegime {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s [%s]%s\n", label, s.Name, marker)
				fmt.Fprintf(out, "  Rebate: no tax up to %s taxable income\n", output.FormatCurrency(s.RebateThreshold))

				lower := decimal.Zero
				for _, b := range s.Brackets {
					upper := "and above"
					if !b.Unbounded() {
						upper = "to " + output.FormatCurrency(*b.Upper)
					}
					fmt.Fprintf(out, "  %15s %-18s %7s\n", output.FormatCurrency(lower), upper, output.FormatPercentage(b.Rate))
					if !b.Unbounded() {
						lower = *b.Upper
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("yaml", false, "Print the table as YAML")
	return cmd
}
