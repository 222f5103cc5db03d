package tui

import (
	"github.com/rgehrsitz/salarytax/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneEmployees
	SceneEstimate
	ScenePayslip
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error in the status area
type ErrorMsg struct {
	Err error
}

// StatusMsg displays an informational line in the status area
type StatusMsg struct {
	Text string
}

// EmployeesLoadedMsg carries the registry after a load or mutation
type EmployeesLoadedMsg struct {
	Records []domain.EmployeeRecord
	Err     error
}

// EmployeeSavedMsg signals an add, update or delete has finished
type EmployeeSavedMsg struct {
	Action string
	Record domain.EmployeeRecord
	Err    error
}

// EstimateCompleteMsg signals a tax calculation has finished
type EstimateCompleteMsg struct {
	Breakdown  *domain.TaxBreakdown
	Comparison []domain.TaxBreakdown
	Err        error
}

// PayslipReadyMsg carries a payslip for the selected employee
type PayslipReadyMsg struct {
	Payslip domain.Payslip
	Err     error
}

// PayslipSavedMsg signals a payslip PDF was written
type PayslipSavedMsg struct {
	Path string
	Err  error
}
