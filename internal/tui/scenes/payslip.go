package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/rgehrsitz/salarytax/internal/tui/tuimsg"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

// PayslipModel shows the payslip of one employee
type PayslipModel struct {
	payslip *domain.Payslip
	theme   tuistyles.Theme
	save    key.Binding
}

// NewPayslipModel creates an empty payslip view
func NewPayslipModel(theme tuistyles.Theme) *PayslipModel {
	return &PayslipModel{
		theme: theme,
		save:  key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save PDF")),
	}
}

// SetPayslip sets the payslip to show
func (m *PayslipModel) SetPayslip(p domain.Payslip) {
	m.payslip = &p
}

// Payslip returns the shown payslip, if any
func (m *PayslipModel) Payslip() *domain.Payslip {
	return m.payslip
}

// Update handles messages for the payslip scene
func (m *PayslipModel) Update(msg tea.Msg) (*PayslipModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.payslip == nil || !key.Matches(keyMsg, m.save) {
		return m, nil
	}
	p := *m.payslip
	return m, func() tea.Msg {
		return tuimsg.SavePayslipMsg{Payslip: p}
	}
}

// View renders the payslip
func (m *PayslipModel) View() string {
	if m.payslip == nil {
		return m.theme.Border.Render("No payslip. Select an employee and press ctrl+p on the form.")
	}

	var sb strings.Builder
	sb.WriteString(m.theme.Header.Render("PAYSLIP"))
	sb.WriteString("\n")

	label := lipgloss.NewStyle().Width(30)
	value := lipgloss.NewStyle().Width(18).Align(lipgloss.Right)
	for _, row := range output.PayslipRows(*m.payslip) {
		if row.Value == "" {
			sb.WriteString(m.theme.Subtitle.Render(row.Label))
			sb.WriteString("\n")
			continue
		}
		line := label.Render(row.Label) + value.Render(row.Value)
		if row.Label == "NET SALARY" {
			line = m.theme.MetricValue.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	h := m.save.Help()
	sb.WriteString("\n" + m.theme.HelpKey.Render(h.Key) + " " + m.theme.HelpDesc.Render(h.Desc))
	return m.theme.Border.Render(sb.String())
}
