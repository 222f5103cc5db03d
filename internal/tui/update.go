package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.employeesModel.SetSize(msg.Width, msg.Height)
		m.estimateModel.SetSize(msg.Width, msg.Height)
		return m, nil

	// Custom messages
	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case StatusMsg:
		m.err = nil
		m.status = msg.Text
		return m, nil

	case EmployeesLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.employeesModel.SetRecords(msg.Records)
		return m, nil

	case EmployeeSavedMsg:
		return m.handleEmployeeSaved(msg)

	case EstimateCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.estimateModel.SetEstimate(msg.Breakdown, msg.Comparison)
		m.status = fmt.Sprintf("Estimated %s regime tax", msg.Breakdown.Regime)
		return m.navigate(SceneEstimate)

	case PayslipReadyMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.payslipModel.SetPayslip(msg.Payslip)
		m.status = fmt.Sprintf("Payslip for %s", msg.Payslip.EmployeeName)
		return m.navigate(ScenePayslip)

	case PayslipSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.status = "Payslip saved to " + msg.Path
		return m, nil

	case tuimsg.FormActionMsg:
		return m.handleFormAction(msg)

	case tuimsg.EmployeeSelectedMsg:
		m.selectedID = msg.Record.ID
		m.formModel.SetValues(config.PrefillFromRecord(msg.Record))
		m.err = nil
		m.status = fmt.Sprintf("Loaded employee %d; basic pay approximated as gross / 12", msg.Record.ID)
		return m.navigate(SceneForm)

	case tuimsg.SavePayslipMsg:
		return m, savePayslipCmd(m.settings.PayslipDir, msg.Payslip)
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// handleFormAction runs a form button against the repository or calculator
func (m Model) handleFormAction(msg tuimsg.FormActionMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.Action {
	case tuimsg.ActionAdd:
		return m, addEmployeeCmd(m.repo, msg.Values)
	case tuimsg.ActionCalculate:
		return m, calculateCmd(m.calc, msg.Values)
	case tuimsg.ActionClear:
		m.selectedID = 0
		m.formModel.Reset()
		m.status = "Form cleared"
		return m, nil
	}

	if m.selectedID == 0 {
		m.err = fmt.Errorf("%s: %w", msg.Action, ErrNoSelection)
		return m, nil
	}
	switch msg.Action {
	case tuimsg.ActionUpdate:
		return m, updateEmployeeCmd(m.repo, m.selectedID, msg.Values)
	case tuimsg.ActionDelete:
		m.confirmDelete = true
		m.status = fmt.Sprintf("Delete employee %d? (y/n)", m.selectedID)
		return m, nil
	case tuimsg.ActionPayslip:
		return m, payslipCmd(m.repo, m.selectedID, m.now(), m.settings.PayslipRates)
	}
	return m, nil
}

func (m Model) handleEmployeeSaved(msg EmployeeSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.err = nil

	switch msg.Action {
	case "add":
		m.status = fmt.Sprintf("Employee %s added with ID %d", msg.Record.Name, msg.Record.ID)
		m.selectedID = 0
		m.formModel.Reset()
	case "update":
		m.status = fmt.Sprintf("Employee %d updated", msg.Record.ID)
	case "delete":
		m.status = fmt.Sprintf("Employee %d deleted", msg.Record.ID)
		m.selectedID = 0
		m.formModel.Reset()
	}
	return m, loadEmployeesCmd(m.repo)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete && msg.String() != "ctrl+c" {
		return m.answerDelete(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		return m.navigate(SceneForm)
	case "f2":
		return m.navigate(SceneEmployees)
	case "f3":
		return m.navigate(SceneEstimate)
	case "f4":
		return m.navigate(ScenePayslip)
	}

	// Letter shortcuts would swallow typing on the form
	if m.currentScene != SceneForm {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			return m.navigate(SceneHelp)
		case "f":
			return m.navigate(SceneForm)
		case "e":
			return m.navigate(SceneEmployees)
		case "t":
			return m.navigate(SceneEstimate)
		case "p":
			return m.navigate(ScenePayslip)
		case "esc":
			target := m.previousScene
			if target == m.currentScene {
				target = SceneForm
			}
			return m.navigate(target)
		}
	}

	return m.updateCurrentScene(msg)
}

// answerDelete consumes the key that answers a pending delete
func (m Model) answerDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	switch msg.String() {
	case "y", "Y":
		m.status = ""
		return m, deleteEmployeeCmd(m.repo, m.selectedID)
	default:
		m.status = fmt.Sprintf("Delete of employee %d cancelled", m.selectedID)
		return m, nil
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneEmployees:
		m.employeesModel, cmd = m.employeesModel.Update(msg)
	case ScenePayslip:
		m.payslipModel, cmd = m.payslipModel.Update(msg)
	}
	return m, cmd
}
