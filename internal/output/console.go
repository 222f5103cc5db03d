package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the labeled tax estimate
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

// BreakdownRow is one labeled line of a tax estimate
type BreakdownRow struct {
	Label string
	Value string
}

// BreakdownRows returns the estimate lines in display order. The TUI and the
// console formatter share it so both show the same fields.
func BreakdownRows(b *domain.TaxBreakdown) []BreakdownRow {
	return []BreakdownRow{
		{"Gross Salary (annual)", FormatRupees(b.GrossSalary)},
		{"Other Income (annual)", FormatRupees(b.OtherIncome)},
		{"Gross Total Income", FormatRupees(b.GrossTotalIncome)},
		{"Total Deductions", FormatRupees(b.TotalDeductions)},
		{"Taxable Income", FormatRupees(b.TaxableIncome)},
		{"Tax before Cess", FormatRupees(b.TaxBeforeCess)},
		{fmt.Sprintf("Cess (%s)", FormatPercentage(b.CessRate)), FormatRupees(b.Cess)},
		{"Total Annual Tax", FormatRupees(b.TotalTax)},
		{"Estimated Monthly TDS", FormatRupees(b.MonthlyWithholding)},
	}
}

func (c ConsoleFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "TAX ESTIMATE")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Regime: %s\n", b.Regime)
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	for _, row := range BreakdownRows(b) {
		fmt.Fprintf(&buf, "%-28s %21s\n", row.Label+":", row.Value)
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	fmt.Fprintf(&buf, "%-28s %21s\n", "Effective Rate:", FormatPercentage(b.EffectiveRate()))
	if b.RebateApplied {
		fmt.Fprintln(&buf, "Rebate applied: taxable income is within the rebate threshold.")
	}

	return buf.Bytes(), nil
}

// FormatComparison renders breakdowns for several regimes side by side and
// names the cheapest.
func FormatComparison(breakdowns []domain.TaxBreakdown) []byte {
	var buf bytes.Buffer

	labelWidth := 24
	colWidth := 18

	fmt.Fprintln(&buf, "REGIME COMPARISON")
	fmt.Fprintln(&buf, strings.Repeat("=", labelWidth+len(breakdowns)*(colWidth+1)))
	fmt.Fprintf(&buf, "%-*s", labelWidth, "")
	for _, b := range breakdowns {
		fmt.Fprintf(&buf, " %*s", colWidth, strings.ToUpper(string(b.Regime)))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, strings.Repeat("-", labelWidth+len(breakdowns)*(colWidth+1)))

	lines := []struct {
		label string
		value func(b domain.TaxBreakdown) decimal.Decimal
	}{
		{"Gross Total Income", func(b domain.TaxBreakdown) decimal.Decimal { return b.GrossTotalIncome }},
		{"Total Deductions", func(b domain.TaxBreakdown) decimal.Decimal { return b.TotalDeductions }},
		{"Taxable Income", func(b domain.TaxBreakdown) decimal.Decimal { return b.TaxableIncome }},
		{"Tax before Cess", func(b domain.TaxBreakdown) decimal.Decimal { return b.TaxBeforeCess }},
		{"Cess", func(b domain.TaxBreakdown) decimal.Decimal { return b.Cess }},
		{"Total Annual Tax", func(b domain.TaxBreakdown) decimal.Decimal { return b.TotalTax }},
		{"Monthly TDS", func(b domain.TaxBreakdown) decimal.Decimal { return b.MonthlyWithholding }},
	}
	for _, line := range lines {
		fmt.Fprintf(&buf, "%-*s", labelWidth, line.label)
		for _, b := range breakdowns {
			fmt.Fprintf(&buf, " %*s", colWidth, FormatCurrency(line.value(b)))
		}
		fmt.Fprintln(&buf)
	}

	if best, ok := calculation.Cheapest(breakdowns); ok && len(breakdowns) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Lowest tax: %s regime (%s)\n", best.Regime, FormatRupees(best.TotalTax))
	}

	return buf.Bytes()
}
