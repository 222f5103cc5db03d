package calculation

import (
	"time"

	"github.com/rgehrsitz/salarytax/internal/domain"
)

// BuildPayslip applies flat payslip rates to an employee's recorded gross salary
func BuildPayslip(record domain.EmployeeRecord, date time.Time, rates domain.PayslipRates) domain.Payslip {
	gross := record.GrossSalary
	incomeTax := gross.Mul(rates.IncomeTax)
	ni := gross.Mul(rates.NationalInsurance)
	pension := gross.Mul(rates.Pension)
	total := incomeTax.Add(ni).Add(pension)

	return domain.Payslip{
		Date:              date,
		EmployeeID:        record.ID,
		EmployeeName:      record.Name,
		GrossSalary:       gross,
		Rates:             rates,
		IncomeTax:         incomeTax,
		NationalInsurance: ni,
		Pension:           pension,
		TotalDeductions:   total,
		NetSalary:         gross.Sub(total),
	}
}
