package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Monthly salary components are annualized by multiplying by 12.
// 2. Taxable income is floored at zero before the bracket walk.
// 3. The rebate is a cliff: taxable income at or below the threshold pays no
//    tax at all, and one unit above it pays the full slab tax. There is no
//    marginal relief.
// 4. Cess is charged on tax before cess only, at the table's cess rate.
// 5. Monthly withholding is total tax / 12, with no adjustment for tax
//    already deducted earlier in the year.

var (
	// ErrNegativeAmount is returned when an input amount is below zero
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrUnknownRegime is returned when the regime tag is not in the table
	ErrUnknownRegime = errors.New("unknown tax regime")
)

// ComputeBracketTax walks the slabs in ascending order and returns the
// progressive tax on taxableIncome. Negative income is treated as zero.
func ComputeBracketTax(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	remaining := decimal.Max(taxableIncome, decimal.Zero)

	for _, bracket := range brackets {
		amount := remaining
		if !bracket.Unbounded() {
			amount = decimal.Min(bracket.Upper.Sub(lower), remaining)
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			if !bracket.Unbounded() {
				lower = *bracket.Upper
			}
			continue
		}

		tax = tax.Add(amount.Mul(bracket.Rate))
		remaining = remaining.Sub(amount)
		if bracket.Unbounded() || remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		lower = *bracket.Upper
	}

	return tax
}

// TaxCalculator turns a SalaryInput into a TaxBreakdown using a regime table
type TaxCalculator struct {
	Table  *domain.RegimeTable
	Logger Logger
	Debug  bool // Log every intermediate value
}

// NewTaxCalculator creates a calculator over the given regime table
func NewTaxCalculator(table *domain.RegimeTable) *TaxCalculator {
	return &TaxCalculator{
		Table:  table,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger; nil installs a no-op logger
func (tc *TaxCalculator) SetLogger(l Logger) {
	if l == nil {
		tc.Logger = NopLogger{}
		return
	}
	tc.Logger = l
}

// Calculate computes the full tax breakdown for one input.
// The calculator holds no mutable state, so it is safe for concurrent use.
func (tc *TaxCalculator) Calculate(input domain.SalaryInput) (*domain.TaxBreakdown, error) {
	if err := checkNonNegative(input); err != nil {
		return nil, err
	}

	schedule, ok := tc.Table.Schedule(input.Regime)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegime, input.Regime)
	}

	grossSalary := domain.AnnualGross(input.BasicMonthly, input.HRAMonthly, input.OtherAllowanceMonthly)
	grossTotalIncome := grossSalary.Add(input.OtherIncomeAnnual)
	totalDeductions := input.StandardDeduction.Add(input.Section80C).Add(input.Section80D)
	taxableIncome := decimal.Max(grossTotalIncome.Sub(totalDeductions), decimal.Zero)

	taxBeforeCess := ComputeBracketTax(taxableIncome, schedule.Brackets)

	rebateApplied := false
	if taxableIncome.LessThanOrEqual(schedule.RebateThreshold) {
		rebateApplied = taxBeforeCess.IsPositive()
		taxBeforeCess = decimal.Zero
	}

	cess := taxBeforeCess.Mul(tc.Table.CessRate)
	totalTax := taxBeforeCess.Add(cess)
	monthly := totalTax.Div(domain.MonthsPerYear)

	if tc.Debug {
		tc.Logger.Debugf("regime=%s gross=%s other=%s deductions=%s taxable=%s",
			schedule.Name, grossSalary, input.OtherIncomeAnnual, totalDeductions, taxableIncome)
		tc.Logger.Debugf("regime=%s tax_before_cess=%s rebate=%t cess=%s total=%s monthly=%s",
			schedule.Name, taxBeforeCess, rebateApplied, cess, totalTax, monthly.StringFixed(2))
	}

	return &domain.TaxBreakdown{
		Regime:             schedule.Name,
		GrossSalary:        grossSalary,
		OtherIncome:        input.OtherIncomeAnnual,
		GrossTotalIncome:   grossTotalIncome,
		TotalDeductions:    totalDeductions,
		TaxableIncome:      taxableIncome,
		TaxBeforeCess:      taxBeforeCess,
		CessRate:           tc.Table.CessRate,
		Cess:               cess,
		TotalTax:           totalTax,
		MonthlyWithholding: monthly,
		RebateApplied:      rebateApplied,
	}, nil
}

// Compare runs the same input through every regime in table order
func (tc *TaxCalculator) Compare(input domain.SalaryInput) ([]domain.TaxBreakdown, error) {
	results := make([]domain.TaxBreakdown, 0, len(tc.Table.Regimes))
	for _, name := range tc.Table.Names() {
		in := input
		in.Regime = name
		b, err := tc.Calculate(in)
		if err != nil {
			return nil, fmt.Errorf("regime %s: %w", name, err)
		}
		results = append(results, *b)
	}
	return results, nil
}

// Cheapest returns the breakdown with the lowest total tax.
// Ties go to the regime listed first in the table.
func Cheapest(breakdowns []domain.TaxBreakdown) (domain.TaxBreakdown, bool) {
	if len(breakdowns) == 0 {
		return domain.TaxBreakdown{}, false
	}
	best := breakdowns[0]
	for _, b := range breakdowns[1:] {
		if b.TotalTax.LessThan(best.TotalTax) {
			best = b
		}
	}
	return best, true
}

func checkNonNegative(input domain.SalaryInput) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic pay", input.BasicMonthly},
		{"HRA", input.HRAMonthly},
		{"other allowances", input.OtherAllowanceMonthly},
		{"other income", input.OtherIncomeAnnual},
		{"standard deduction", input.StandardDeduction},
		{"section 80C", input.Section80C},
		{"section 80D", input.Section80D},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s %s: %w", f.name, f.value, ErrNegativeAmount)
		}
	}
	return nil
}
