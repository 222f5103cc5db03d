package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/rgehrsitz/salarytax/internal/storage"
	"github.com/rgehrsitz/salarytax/internal/tui/scenes"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

// ErrNoSelection is reported when an action needs a selected employee
var ErrNoSelection = errors.New("please select an employee first")

// Options are the dependencies handed to the TUI at construction
type Options struct {
	Theme      tuistyles.Theme
	Repository storage.EmployeeRepository
	Calculator *calculation.TaxCalculator
	Settings   config.Settings
	Now        func() time.Time
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	theme    tuistyles.Theme
	repo     storage.EmployeeRepository
	calc     *calculation.TaxCalculator
	settings config.Settings
	now      func() time.Time

	// Id of the employee loaded into the form, 0 when none
	selectedID int
	// Set while a delete waits for y/n
	confirmDelete bool

	formModel      *scenes.FormModel
	employeesModel *scenes.EmployeesModel
	estimateModel  *scenes.EstimateModel
	payslipModel   *scenes.PayslipModel

	status string
	err    error
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Repository == nil {
		opts.Repository = storage.NewMemoryRepository()
	}
	if opts.Calculator == nil {
		opts.Calculator = calculation.NewTaxCalculator(config.DefaultRegimeTable())
	}

	form := scenes.NewFormModel(opts.Theme, opts.Calculator.Table.Names())
	values := config.DefaultFormValues()
	values[config.FieldRegime] = string(opts.Settings.DefaultRegime)
	form.SetDefaults(values)

	return Model{
		currentScene:   SceneForm,
		theme:          opts.Theme,
		repo:           opts.Repository,
		calc:           opts.Calculator,
		settings:       opts.Settings,
		now:            opts.Now,
		formModel:      form,
		employeesModel: scenes.NewEmployeesModel(opts.Theme),
		estimateModel:  scenes.NewEstimateModel(opts.Theme),
		payslipModel:   scenes.NewPayslipModel(opts.Theme),
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadEmployeesCmd(m.repo)
}

// loadEmployeesCmd returns a command that reads the registry
func loadEmployeesCmd(repo storage.EmployeeRepository) tea.Cmd {
	return func() tea.Msg {
		records, err := repo.List(context.Background())
		return EmployeesLoadedMsg{Records: records, Err: err}
	}
}

// addEmployeeCmd creates a registry row from the form
func addEmployeeCmd(repo storage.EmployeeRepository, values config.FormValues) tea.Cmd {
	return func() tea.Msg {
		gross, err := config.GrossFromForm(values)
		if err != nil {
			return EmployeeSavedMsg{Action: "add", Err: err}
		}
		rec, err := repo.Create(context.Background(), values[config.FieldName], gross)
		return EmployeeSavedMsg{Action: "add", Record: rec, Err: err}
	}
}

// updateEmployeeCmd rewrites the selected registry row from the form
func updateEmployeeCmd(repo storage.EmployeeRepository, id int, values config.FormValues) tea.Cmd {
	return func() tea.Msg {
		gross, err := config.GrossFromForm(values)
		if err != nil {
			return EmployeeSavedMsg{Action: "update", Err: err}
		}
		rec := domain.EmployeeRecord{ID: id, Name: values[config.FieldName], GrossSalary: gross}
		if err := repo.Update(context.Background(), rec); err != nil {
			return EmployeeSavedMsg{Action: "update", Err: err}
		}
		return EmployeeSavedMsg{Action: "update", Record: rec}
	}
}

// deleteEmployeeCmd removes the selected registry row
func deleteEmployeeCmd(repo storage.EmployeeRepository, id int) tea.Cmd {
	return func() tea.Msg {
		err := repo.Delete(context.Background(), id)
		return EmployeeSavedMsg{Action: "delete", Record: domain.EmployeeRecord{ID: id}, Err: err}
	}
}

// calculateCmd parses the form and runs the calculator for every regime
func calculateCmd(calc *calculation.TaxCalculator, values config.FormValues) tea.Cmd {
	return func() tea.Msg {
		input := config.ParseSalaryForm(values)
		if err := config.ValidateSalaryInput(input, calc.Table); err != nil {
			return EstimateCompleteMsg{Err: err}
		}
		breakdown, err := calc.Calculate(input)
		if err != nil {
			return EstimateCompleteMsg{Err: err}
		}
		comparison, err := calc.Compare(input)
		if err != nil {
			return EstimateCompleteMsg{Err: err}
		}
		return EstimateCompleteMsg{Breakdown: breakdown, Comparison: comparison}
	}
}

// payslipCmd builds the payslip of one employee
func payslipCmd(repo storage.EmployeeRepository, id int, date time.Time, rates domain.PayslipRates) tea.Cmd {
	return func() tea.Msg {
		rec, err := repo.Get(context.Background(), id)
		if err != nil {
			return PayslipReadyMsg{Err: err}
		}
		return PayslipReadyMsg{Payslip: calculation.BuildPayslip(rec, date, rates)}
	}
}

// savePayslipCmd writes a payslip PDF into dir
func savePayslipCmd(dir string, p domain.Payslip) tea.Cmd {
	return func() tea.Msg {
		path, err := output.SavePayslipPDF(dir, p)
		return PayslipSavedMsg{Path: path, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Form"
	case SceneEmployees:
		return "Employees"
	case SceneEstimate:
		return "Estimate"
	case ScenePayslip:
		return "Payslip"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
