package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/tui/tuimsg"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

var fieldLabels = map[config.FormField]string{
	config.FieldName:              "Name",
	config.FieldBasic:             "Basic Pay (monthly)",
	config.FieldHRA:               "HRA (monthly)",
	config.FieldOtherAllowance:    "Other Allowances (monthly)",
	config.FieldOtherIncome:       "Other Annual Income",
	config.FieldSection80C:        "Section 80C (annual)",
	config.FieldSection80D:        "Section 80D (annual)",
	config.FieldStandardDeduction: "Standard Deduction (annual)",
	config.FieldRegime:            "Tax Regime",
}

// FormKeyMap lists the form bindings
type FormKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Toggle    key.Binding
	Add       key.Binding
	Update    key.Binding
	Delete    key.Binding
	Calculate key.Binding
	Payslip   key.Binding
	Clear     key.Binding
}

// DefaultFormKeyMap returns the default form bindings
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Toggle:    key.NewBinding(key.WithKeys("left", "right", " "), key.WithHelp("←/→", "toggle regime")),
		Add:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add employee")),
		Update:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "update employee")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "delete employee")),
		Calculate: key.NewBinding(key.WithKeys("ctrl+t", "enter"), key.WithHelp("enter", "estimate tax")),
		Payslip:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "payslip")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear form")),
	}
}

// Bindings returns the bindings in help order
func (k FormKeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Update, k.Delete, k.Calculate, k.Payslip, k.Clear}
}

// FormModel is the employee and salary entry form
type FormModel struct {
	inputs   map[config.FormField]*textinput.Model
	defaults config.FormValues
	regimes  []domain.Regime
	regime   int
	focus    int
	keys     FormKeyMap
	theme    tuistyles.Theme
	width    int
	height   int
}

// NewFormModel creates a cleared form offering the given regimes
func NewFormModel(theme tuistyles.Theme, regimes []domain.Regime) *FormModel {
	m := &FormModel{
		inputs:   make(map[config.FormField]*textinput.Model),
		defaults: config.DefaultFormValues(),
		regimes:  regimes,
		keys:     DefaultFormKeyMap(),
		theme:    theme,
	}
	for _, f := range config.FormFields {
		if f == config.FieldRegime {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 15
		ti.Width = 20
		if f == config.FieldName {
			ti.CharLimit = 60
			ti.Width = 30
			ti.Placeholder = "Employee name"
		}
		m.inputs[f] = &ti
	}
	m.SetValues(m.defaults)
	m.focusField(0)
	return m
}

// SetSize updates the model dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Values returns a snapshot of the form text
func (m *FormModel) Values() config.FormValues {
	values := make(config.FormValues, len(config.FormFields))
	for f, ti := range m.inputs {
		values[f] = ti.Value()
	}
	values[config.FieldRegime] = string(m.Regime())
	return values
}

// SetValues replaces the form text. Missing fields are left empty.
func (m *FormModel) SetValues(values config.FormValues) {
	for f, ti := range m.inputs {
		ti.SetValue(values[f])
	}
	m.regime = 0
	want := domain.Regime(strings.ToLower(values[config.FieldRegime]))
	for i, r := range m.regimes {
		if r == want {
			m.regime = i
		}
	}
}

// SetDefaults replaces the values Reset returns to and applies them
func (m *FormModel) SetDefaults(values config.FormValues) {
	m.defaults = values
	m.SetValues(values)
}

// Reset clears the form back to its defaults
func (m *FormModel) Reset() {
	m.SetValues(m.defaults)
	m.focusField(0)
}

// Regime returns the selected regime
func (m *FormModel) Regime() domain.Regime {
	if len(m.regimes) == 0 {
		return domain.RegimeNew
	}
	return m.regimes[m.regime]
}

// FocusedField returns the field that has focus
func (m *FormModel) FocusedField() config.FormField {
	return config.FormFields[m.focus]
}

func (m *FormModel) focusField(i int) tea.Cmd {
	n := len(config.FormFields)
	m.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for f, ti := range m.inputs {
		if f == m.FocusedField() {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

func (m *FormModel) action(a tuimsg.FormAction) tea.Cmd {
	values := m.Values()
	return func() tea.Msg {
		return tuimsg.FormActionMsg{Action: a, Values: values}
	}
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if ti, ok := m.inputs[m.FocusedField()]; ok {
			updated, cmd := ti.Update(msg)
			*ti = updated
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next):
		return m, m.focusField(m.focus + 1)
	case key.Matches(keyMsg, m.keys.Prev):
		return m, m.focusField(m.focus - 1)
	case key.Matches(keyMsg, m.keys.Add):
		return m, m.action(tuimsg.ActionAdd)
	case key.Matches(keyMsg, m.keys.Update):
		return m, m.action(tuimsg.ActionUpdate)
	case key.Matches(keyMsg, m.keys.Delete):
		return m, m.action(tuimsg.ActionDelete)
	case key.Matches(keyMsg, m.keys.Calculate):
		return m, m.action(tuimsg.ActionCalculate)
	case key.Matches(keyMsg, m.keys.Payslip):
		return m, m.action(tuimsg.ActionPayslip)
	case key.Matches(keyMsg, m.keys.Clear):
		return m, m.action(tuimsg.ActionClear)
	}

	if m.FocusedField() == config.FieldRegime {
		if key.Matches(keyMsg, m.keys.Toggle) && len(m.regimes) > 0 {
			m.regime = (m.regime + 1) % len(m.regimes)
		}
		return m, nil
	}

	ti := m.inputs[m.FocusedField()]
	updated, cmd := ti.Update(msg)
	*ti = updated
	return m, cmd
}

// View renders the form
func (m *FormModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Employee Details"))
	b.WriteString("\n")

	for i, f := range config.FormFields {
		labelStyle := m.theme.FieldLabel
		if i == m.focus {
			labelStyle = m.theme.FocusedLabel
		}
		b.WriteString(labelStyle.Render(fieldLabels[f]))
		if f == config.FieldRegime {
			b.WriteString(m.renderRegimes(i == m.focus))
		} else {
			b.WriteString(m.inputs[f].View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := make([]string, 0, len(m.keys.Bindings()))
	for _, k := range m.keys.Bindings() {
		h := k.Help()
		help = append(help, m.theme.HelpKey.Render(h.Key)+" "+m.theme.HelpDesc.Render(h.Desc))
	}
	b.WriteString(strings.Join(help, "  "))

	return m.theme.Border.Render(b.String())
}

func (m *FormModel) renderRegimes(focused bool) string {
	parts := make([]string, len(m.regimes))
	for i, r := range m.regimes {
		mark := "( )"
		if i == m.regime {
			mark = "(•)"
		}
		label := mark + " " + strings.ToUpper(string(r)[:1]) + string(r)[1:] + " Regime"
		if i == m.regime && focused {
			label = m.theme.StatusKey.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, "   ")
}
