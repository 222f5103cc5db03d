package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRecord is one row of the employee registry
type EmployeeRecord struct {
	ID          int             `yaml:"id" json:"id" validate:"gt=0"`
	Name        string          `yaml:"name" json:"name" validate:"required"`
	GrossSalary decimal.Decimal `yaml:"gross_salary" json:"gross_salary" validate:"gte=0"` // Annual
}

// MonthlyGross returns the recorded annual gross spread over twelve months.
// This is an approximation used to pre-fill forms, not a derived basic pay.
func (e EmployeeRecord) MonthlyGross() decimal.Decimal {
	return e.GrossSalary.Div(MonthsPerYear).Round(2)
}

// AnnualGross sums monthly salary components and annualizes them
func AnnualGross(basic, hra, otherAllowance decimal.Decimal) decimal.Decimal {
	return basic.Add(hra).Add(otherAllowance).Mul(MonthsPerYear)
}

// PayslipRates are the flat rates applied to gross salary on a payslip
type PayslipRates struct {
	IncomeTax         decimal.Decimal `yaml:"income_tax" json:"income_tax"`
	NationalInsurance decimal.Decimal `yaml:"national_insurance" json:"national_insurance"`
	Pension           decimal.Decimal `yaml:"pension" json:"pension"`
}

// DefaultPayslipRates returns the standard payslip rates (20% / 12% / 5%)
func DefaultPayslipRates() PayslipRates {
	return PayslipRates{
		IncomeTax:         decimal.NewFromFloat(0.20),
		NationalInsurance: decimal.NewFromFloat(0.12),
		Pension:           decimal.NewFromFloat(0.05),
	}
}

// Payslip is a rendered-ready payslip for one employee
type Payslip struct {
	Date              time.Time       `yaml:"date" json:"date"`
	EmployeeID        int             `yaml:"employee_id" json:"employee_id"`
	EmployeeName      string          `yaml:"employee_name" json:"employee_name"`
	GrossSalary       decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	Rates             PayslipRates    `yaml:"rates" json:"rates"`
	IncomeTax         decimal.Decimal `yaml:"income_tax" json:"income_tax"`
	NationalInsurance decimal.Decimal `yaml:"national_insurance" json:"national_insurance"`
	Pension           decimal.Decimal `yaml:"pension" json:"pension"`
	TotalDeductions   decimal.Decimal `yaml:"total_deductions" json:"total_deductions"`
	NetSalary         decimal.Decimal `yaml:"net_salary" json:"net_salary"`
}
