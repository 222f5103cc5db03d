package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

// PayslipRows returns the payslip lines in display order. A row with an
// empty value is a section heading.
func PayslipRows(p domain.Payslip) []BreakdownRow {
	return []BreakdownRow{
		{"Date", p.Date.Format("2006-01-02")},
		{"Employee ID", strconv.Itoa(p.EmployeeID)},
		{"Employee Name", p.EmployeeName},
		{"Gross Salary", FormatCurrency(p.GrossSalary)},
		{"--- DEDUCTIONS ---", ""},
		{fmt.Sprintf("Tax (%s)", wholePercent(p.Rates.IncomeTax)), deduction(p.IncomeTax)},
		{fmt.Sprintf("National Insurance (%s)", wholePercent(p.Rates.NationalInsurance)), deduction(p.NationalInsurance)},
		{fmt.Sprintf("Pension (%s)", wholePercent(p.Rates.Pension)), deduction(p.Pension)},
		{"Total Deductions", deduction(p.TotalDeductions)},
		{"NET SALARY", FormatCurrency(p.NetSalary)},
	}
}

// FormatPayslip renders a payslip as plain text
func FormatPayslip(p domain.Payslip) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PAYSLIP")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	for _, row := range PayslipRows(p) {
		if row.Value == "" {
			fmt.Fprintln(&buf, row.Label)
			continue
		}
		fmt.Fprintf(&buf, "%-30s %19s\n", row.Label, row.Value)
	}
	return buf.Bytes()
}

// WritePayslipPDF renders a one-page A4 payslip to w
func WritePayslipPDF(w io.Writer, p domain.Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Payslip for "+p.EmployeeName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, row := range PayslipRows(p) {
		if row.Value == "" {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Ln(2)
			pdf.CellFormat(0, 8, tr(strings.Trim(row.Label, "- ")), "B", 1, "L", false, 0, "")
			continue
		}
		style := ""
		if row.Label == "NET SALARY" {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 12)
		pdf.CellFormat(110, 8, tr(row.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, tr(row.Value), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip PDF: %w", err)
	}
	return nil
}

// SavePayslipPDF writes p as payslip_<id>_<date>.pdf into dir and returns the path
func SavePayslipPDF(dir string, p domain.Payslip) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("payslip_%d_%s.pdf", p.EmployeeID, p.Date.Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WritePayslipPDF(f, p); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func wholePercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

func deduction(amount decimal.Decimal) string {
	return "(" + FormatCurrency(amount) + ")"
}
