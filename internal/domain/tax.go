package domain

import (
	"github.com/shopspring/decimal"
)

// Regime identifies a tax regime in the regime table
type Regime string

const (
	RegimeNew Regime = "new" // Schedule A
	RegimeOld Regime = "old" // Schedule B
)

// DefaultStandardDeduction is the annual standard deduction pre-filled in forms
var DefaultStandardDeduction = decimal.NewFromInt(50000)

// MonthsPerYear is used to annualize monthly components and to derive withholding
var MonthsPerYear = decimal.NewFromInt(12)

// SalaryInput is everything the calculator needs for one request.
// Monthly fields are annualized by the calculator; the rest are annual.
type SalaryInput struct {
	BasicMonthly          decimal.Decimal `yaml:"basic_monthly" json:"basic_monthly" validate:"gte=0"`
	HRAMonthly            decimal.Decimal `yaml:"hra_monthly" json:"hra_monthly" validate:"gte=0"`
	OtherAllowanceMonthly decimal.Decimal `yaml:"other_allowance_monthly" json:"other_allowance_monthly" validate:"gte=0"`
	OtherIncomeAnnual     decimal.Decimal `yaml:"other_income_annual" json:"other_income_annual" validate:"gte=0"`
	StandardDeduction     decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction" validate:"gte=0"`
	Section80C            decimal.Decimal `yaml:"section_80c" json:"section_80c" validate:"gte=0"`
	Section80D            decimal.Decimal `yaml:"section_80d" json:"section_80d" validate:"gte=0"`
	Regime                Regime          `yaml:"regime" json:"regime" validate:"required"`
}

// NewSalaryInput returns an input with the form defaults applied
func NewSalaryInput() SalaryInput {
	return SalaryInput{
		StandardDeduction: DefaultStandardDeduction,
		Regime:            RegimeNew,
	}
}

// TaxBreakdown is the full result of a calculation. Callers display every
// field, not only the total.
type TaxBreakdown struct {
	Regime             Regime          `yaml:"regime" json:"regime"`
	GrossSalary        decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	OtherIncome        decimal.Decimal `yaml:"other_income" json:"other_income"`
	GrossTotalIncome   decimal.Decimal `yaml:"gross_total_income" json:"gross_total_income"`
	TotalDeductions    decimal.Decimal `yaml:"total_deductions" json:"total_deductions"`
	TaxableIncome      decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	TaxBeforeCess      decimal.Decimal `yaml:"tax_before_cess" json:"tax_before_cess"`
	CessRate           decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	Cess               decimal.Decimal `yaml:"cess" json:"cess"`
	TotalTax           decimal.Decimal `yaml:"total_tax" json:"total_tax"`
	MonthlyWithholding decimal.Decimal `yaml:"monthly_withholding" json:"monthly_withholding"`
	RebateApplied      bool            `yaml:"rebate_applied" json:"rebate_applied"`
}

// EffectiveRate returns total tax as a fraction of gross total income
func (b TaxBreakdown) EffectiveRate() decimal.Decimal {
	if b.GrossTotalIncome.IsZero() {
		return decimal.Zero
	}
	return b.TotalTax.Div(b.GrossTotalIncome)
}
