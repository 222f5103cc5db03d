package scenes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/rgehrsitz/salarytax/internal/tui/tuimsg"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

// EmployeesModel lists registry rows in a table
type EmployeesModel struct {
	table   table.Model
	records []domain.EmployeeRecord
	theme   tuistyles.Theme
	width   int
	height  int
}

// NewEmployeesModel creates an empty employee list
func NewEmployeesModel(theme tuistyles.Theme) *EmployeesModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 30},
		{Title: "Gross Salary", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader
	styles.Selected = theme.TableSelected
	t.SetStyles(styles)

	return &EmployeesModel{table: t, theme: theme}
}

// SetRecords replaces the listed records, keeping the cursor in range
func (m *EmployeesModel) SetRecords(records []domain.EmployeeRecord) {
	m.records = records
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{strconv.Itoa(r.ID), r.Name, output.FormatCurrency(r.GrossSalary)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Records returns the listed records
func (m *EmployeesModel) Records() []domain.EmployeeRecord {
	return m.records
}

// Selected returns the record under the cursor
func (m *EmployeesModel) Selected() (domain.EmployeeRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return domain.EmployeeRecord{}, false
	}
	return m.records[i], true
}

// SetSize updates the model dimensions
func (m *EmployeesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 10 {
		m.table.SetHeight(height - 10)
	}
}

// Update handles messages for the employees scene
func (m *EmployeesModel) Update(msg tea.Msg) (*EmployeesModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))) {
		record, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.EmployeeSelectedMsg{Record: record}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the employee table
func (m *EmployeesModel) View() string {
	header := m.theme.Header.Render("Employees")
	if len(m.records) == 0 {
		return m.theme.Border.Render(header + "\nNo employees yet. Add one from the form.")
	}
	hint := m.theme.HelpDesc.Render("↑/↓ move • enter load into form")
	return m.theme.Border.Render(header + "\n" + m.table.View() + "\n" + hint)
}
