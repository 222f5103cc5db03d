package config

import (
	"testing"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"12abc", "0"},
		{"NaN", "0"},
		{"100000", "100000"},
		{" 2500.75 ", "2500.75"},
		{"1,20,000", "120000"},
		{"1,200,000.50", "1200000.5"},
		{"-300", "-300"},
		{"1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseAmount(tt.text)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "ParseAmount(%q) = %s", tt.text, got)
		})
	}
}

func TestParseSalaryForm(t *testing.T) {
	values := FormValues{
		FieldBasic:          "100000",
		FieldHRA:            "20,000",
		FieldOtherAllowance: "oops",
		FieldOtherIncome:    "12000",
		FieldSection80C:     "150000",
		FieldSection80D:     "",
		FieldRegime:         " OLD ",
	}

	input := ParseSalaryForm(values)

	assert.Equal(t, "100000", input.BasicMonthly.String())
	assert.Equal(t, "20000", input.HRAMonthly.String())
	assert.True(t, input.OtherAllowanceMonthly.IsZero())
	assert.Equal(t, "12000", input.OtherIncomeAnnual.String())
	assert.Equal(t, "150000", input.Section80C.String())
	assert.True(t, input.Section80D.IsZero())
	assert.Equal(t, "50000", input.StandardDeduction.String(), "empty standard deduction falls back to default")
	assert.Equal(t, domain.RegimeOld, input.Regime)
}

func TestParseSalaryForm_ExplicitZeroStandardDeduction(t *testing.T) {
	input := ParseSalaryForm(FormValues{FieldStandardDeduction: "0"})

	assert.True(t, input.StandardDeduction.IsZero())
	assert.Equal(t, domain.RegimeNew, input.Regime)
}

func TestDefaultFormValues(t *testing.T) {
	values := DefaultFormValues()

	for _, f := range FormFields {
		_, ok := values[f]
		assert.True(t, ok, "missing field %s", f)
	}
	assert.Equal(t, "50000", values[FieldStandardDeduction])
	assert.Equal(t, "new", values[FieldRegime])
	input := ParseSalaryForm(values)
	assert.True(t, input.StandardDeduction.Equal(domain.DefaultStandardDeduction))
	assert.True(t, input.BasicMonthly.IsZero())
	assert.Equal(t, domain.RegimeNew, input.Regime)
}

func TestPrefillFromRecord(t *testing.T) {
	record := domain.EmployeeRecord{ID: 3, Name: "Ravi", GrossSalary: decimal.NewFromInt(1000000)}

	values := PrefillFromRecord(record)

	assert.Equal(t, "Ravi", values[FieldName])
	assert.Equal(t, "83333.33", values[FieldBasic])
	assert.Equal(t, "0", values[FieldHRA])
	assert.Equal(t, "0", values[FieldOtherAllowance])
	assert.Equal(t, "0", values[FieldOtherIncome])
	assert.Equal(t, "0", values[FieldSection80C])
	assert.Equal(t, "0", values[FieldSection80D])
	assert.Equal(t, "50000", values[FieldStandardDeduction])
	assert.Equal(t, "new", values[FieldRegime])
}

func TestGrossFromForm(t *testing.T) {
	gross, err := GrossFromForm(FormValues{FieldBasic: "40000", FieldHRA: "8,000", FieldOtherAllowance: "2000"})
	require.NoError(t, err)
	assert.Equal(t, "600000", gross.String())

	gross, err = GrossFromForm(FormValues{FieldHRA: "1000"})
	require.NoError(t, err)
	assert.Equal(t, "12000", gross.String())

	_, err = GrossFromForm(FormValues{FieldBasic: "0", FieldHRA: "-5", FieldOtherAllowance: "abc"})
	assert.ErrorIs(t, err, ErrNoSalaryComponent)
}

func TestValidateSalaryInput(t *testing.T) {
	table := DefaultRegimeTable()

	valid := domain.NewSalaryInput()
	valid.BasicMonthly = decimal.NewFromInt(50000)
	require.NoError(t, ValidateSalaryInput(valid, table))

	negative := valid
	negative.Section80C = decimal.NewFromInt(-10)
	err := ValidateSalaryInput(negative, table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section_80c cannot be negative")

	noRegime := valid
	noRegime.Regime = ""
	err = ValidateSalaryInput(noRegime, table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "regime is required")

	unknown := valid
	unknown.Regime = "flat"
	err = ValidateSalaryInput(unknown, table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "regime must be one of new, old")
}

func TestValidateEmployeeRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  domain.EmployeeRecord
		wantErr string
	}{
		{"valid", domain.EmployeeRecord{ID: 1, Name: "A", GrossSalary: decimal.NewFromInt(10)}, ""},
		{"blank name", domain.EmployeeRecord{ID: 1, Name: "  ", GrossSalary: decimal.NewFromInt(10)}, "name is required"},
		{"zero id", domain.EmployeeRecord{ID: 0, Name: "A"}, "id must be positive"},
		{"negative gross", domain.EmployeeRecord{ID: 2, Name: "A", GrossSalary: decimal.NewFromInt(-1)}, "gross_salary cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmployeeRecord(tt.record)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
