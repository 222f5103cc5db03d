// Package tuimsg holds messages emitted by scenes and handled by the root
// model. It exists so scenes do not import the tui package.
package tuimsg

import (
	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
)

// FormAction is a button on the salary form
type FormAction int

const (
	ActionAdd FormAction = iota
	ActionUpdate
	ActionDelete
	ActionCalculate
	ActionPayslip
	ActionClear
)

func (a FormAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionCalculate:
		return "calculate"
	case ActionPayslip:
		return "payslip"
	case ActionClear:
		return "clear"
	default:
		return "unknown"
	}
}

// FormActionMsg carries a form action and a snapshot of the form text
type FormActionMsg struct {
	Action FormAction
	Values config.FormValues
}

// EmployeeSelectedMsg signals a registry row was chosen
type EmployeeSelectedMsg struct {
	Record domain.EmployeeRecord
}

// SavePayslipMsg asks for the shown payslip to be written as a PDF
type SavePayslipMsg struct {
	Payslip domain.Payslip
}
