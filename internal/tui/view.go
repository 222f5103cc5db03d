package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneEmployees:
		content = m.employeesModel.View()
	case SceneEstimate:
		content = m.estimateModel.View()
	case ScenePayslip:
		content = m.payslipModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderMessage(),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := m.theme.Title.Render("Salary Tax Manager")

	breadcrumb := m.currentScene.String()
	if m.selectedID != 0 {
		breadcrumb = fmt.Sprintf("%s / employee %d", breadcrumb, m.selectedID)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.Subtitle.Render(breadcrumb),
	)
}

// renderMessage renders the last error or status line
func (m Model) renderMessage() string {
	if m.err != nil {
		return m.theme.Error.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return m.theme.Success.Render(m.status)
	}
	return ""
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut(m, "F1", "form"),
		formatShortcut(m, "F2", "employees"),
		formatShortcut(m, "F3", "estimate"),
		formatShortcut(m, "F4", "payslip"),
		formatShortcut(m, "?", "help"),
		formatShortcut(m, "ctrl+c", "quit"),
	}

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(m Model, key, desc string) string {
	return m.theme.StatusKey.Render(key) + " " + desc
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
Salary Tax Manager

NAVIGATION:
  F1 / f   Employee form
  F2 / e   Employee list
  F3 / t   Tax estimate
  F4 / p   Payslip
  ?        Show this help
  ESC      Go back
  q        Quit (outside the form)
  Ctrl+C   Quit

FORM:
  Tab / Shift+Tab   Move between fields
  ←/→ or space      Toggle regime
  Enter             Estimate tax
  Ctrl+N            Add employee
  Ctrl+U            Update selected employee
  Ctrl+X            Delete selected employee (confirm with y)
  Ctrl+P            Payslip for selected employee
  Ctrl+L            Clear form

EMPLOYEES:
  ↑/↓      Move
  Enter    Load employee into the form

PAYSLIP:
  s        Save as PDF
`

	return m.theme.Border.Render(helpText)
}
