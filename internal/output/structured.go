package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the breakdown as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// YAMLFormatter renders the breakdown as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	return yaml.Marshal(b)
}

// CSVFormatter renders the breakdown as a header row plus one data row
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"regime", "gross_salary", "other_income", "gross_total_income", "total_deductions",
		"taxable_income", "tax_before_cess", "cess", "total_tax", "monthly_withholding", "rebate_applied",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		string(b.Regime),
		b.GrossSalary.StringFixed(2),
		b.OtherIncome.StringFixed(2),
		b.GrossTotalIncome.StringFixed(2),
		b.TotalDeductions.StringFixed(2),
		b.TaxableIncome.StringFixed(2),
		b.TaxBeforeCess.StringFixed(2),
		b.Cess.StringFixed(2),
		b.TotalTax.StringFixed(2),
		b.MonthlyWithholding.StringFixed(2),
		strconv.FormatBool(b.RebateApplied),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
