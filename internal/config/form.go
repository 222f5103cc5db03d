package config

import (
	"errors"
	"strings"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

// FormField names a text field of the salary form
type FormField string

const (
	FieldName              FormField = "name"
	FieldBasic             FormField = "basic"
	FieldHRA               FormField = "hra"
	FieldOtherAllowance    FormField = "other_allowance"
	FieldOtherIncome       FormField = "other_income"
	FieldSection80C        FormField = "section_80c"
	FieldSection80D        FormField = "section_80d"
	FieldStandardDeduction FormField = "standard_deduction"
	FieldRegime            FormField = "regime"
)

// FormFields lists the form fields in display order
var FormFields = []FormField{
	FieldName,
	FieldBasic,
	FieldHRA,
	FieldOtherAllowance,
	FieldOtherIncome,
	FieldSection80C,
	FieldSection80D,
	FieldStandardDeduction,
	FieldRegime,
}

// FormValues holds the raw text of each form field
type FormValues map[FormField]string

// DefaultFormValues returns the values of a cleared form
func DefaultFormValues() FormValues {
	return FormValues{
		FieldName:              "",
		FieldBasic:             "0",
		FieldHRA:               "0",
		FieldOtherAllowance:    "0",
		FieldOtherIncome:       "0",
		FieldSection80C:        "0",
		FieldSection80D:        "0",
		FieldStandardDeduction: domain.DefaultStandardDeduction.String(),
		FieldRegime:            string(domain.RegimeNew),
	}
}

// ParseAmount converts user text to an amount. Thousands separators and
// surrounding spaces are ignored; empty or unparseable text yields zero.
func ParseAmount(text string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseSalaryForm builds a SalaryInput from form text. Empty standard
// deduction and regime fields fall back to the form defaults.
func ParseSalaryForm(values FormValues) domain.SalaryInput {
	input := domain.NewSalaryInput()
	input.BasicMonthly = ParseAmount(values[FieldBasic])
	input.HRAMonthly = ParseAmount(values[FieldHRA])
	input.OtherAllowanceMonthly = ParseAmount(values[FieldOtherAllowance])
	input.OtherIncomeAnnual = ParseAmount(values[FieldOtherIncome])
	input.Section80C = ParseAmount(values[FieldSection80C])
	input.Section80D = ParseAmount(values[FieldSection80D])

	if strings.TrimSpace(values[FieldStandardDeduction]) != "" {
		input.StandardDeduction = ParseAmount(values[FieldStandardDeduction])
	}
	if regime := strings.ToLower(strings.TrimSpace(values[FieldRegime])); regime != "" {
		input.Regime = domain.Regime(regime)
	}

	return input
}

// ErrNoSalaryComponent is returned when basic, HRA and other allowances are all zero
var ErrNoSalaryComponent = errors.New("enter at least one salary component (basic / HRA / other)")

// GrossFromForm derives the annual gross recorded for an employee from the
// monthly components on the form.
func GrossFromForm(values FormValues) (decimal.Decimal, error) {
	basic := ParseAmount(values[FieldBasic])
	hra := ParseAmount(values[FieldHRA])
	other := ParseAmount(values[FieldOtherAllowance])
	if !basic.IsPositive() && !hra.IsPositive() && !other.IsPositive() {
		return decimal.Zero, ErrNoSalaryComponent
	}
	return domain.AnnualGross(basic, hra, other), nil
}

// PrefillFromRecord fills the form for a selected employee.
//
// Only the annual gross is stored, so basic pay is approximated as gross / 12
// and every other component is reset. The original basic/allowance split is
// not recoverable and is not guessed.
func PrefillFromRecord(record domain.EmployeeRecord) FormValues {
	values := DefaultFormValues()
	values[FieldName] = record.Name
	values[FieldBasic] = record.MonthlyGross().StringFixed(2)
	return values
}
