package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/salarytax/internal/config"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/storage"
	"github.com/rgehrsitz/salarytax/internal/tui/tuimsg"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

var fixedNow = time.Date(2024, time.May, 31, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, seed ...domain.EmployeeRecord) (Model, *storage.MemoryRepository) {
	t.Helper()
	repo := storage.NewMemoryRepository(seed...)
	settings := config.DefaultSettings()
	settings.PayslipDir = t.TempDir()
	m := NewModel(Options{
		Theme:      tuistyles.DefaultTheme(),
		Repository: repo,
		Settings:   settings,
		Now:        func() time.Time { return fixedNow },
	})
	return m, repo
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// drain runs commands and feeds their messages back until none remain
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		m, cmd = update(t, m, cmd())
	}
	return m
}

func formValues(pairs ...string) config.FormValues {
	values := config.DefaultFormValues()
	for i := 0; i+1 < len(pairs); i += 2 {
		values[config.FormField(pairs[i])] = pairs[i+1]
	}
	return values
}

func TestModel_InitLoadsEmployees(t *testing.T) {
	m, _ := newTestModel(t,
		domain.EmployeeRecord{ID: 1, Name: "Asha", GrossSalary: decimal.NewFromInt(600000)},
		domain.EmployeeRecord{ID: 2, Name: "Ravi", GrossSalary: decimal.NewFromInt(1200000)},
	)

	m = drain(t, m, m.Init())

	assert.Len(t, m.employeesModel.Records(), 2)
	assert.Equal(t, SceneForm, m.currentScene)
	assert.Contains(t, m.View(), "Employee Details")
}

func TestModel_CalculateShowsEstimate(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionCalculate,
		Values: formValues("basic", "100000"),
	})
	m = drain(t, m, cmd)

	require.NoError(t, m.err)
	assert.Equal(t, SceneEstimate, m.currentScene)
	b := m.estimateModel.Breakdown()
	require.NotNil(t, b)
	assert.True(t, b.TotalTax.Equal(decimal.NewFromInt(85800)))
	assert.Contains(t, m.View(), "Total Annual Tax")
}

func TestModel_CalculateRejectsNegative(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionCalculate,
		Values: formValues("hra", "-100"),
	})
	m = drain(t, m, cmd)

	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "cannot be negative")
	assert.Equal(t, SceneForm, m.currentScene)
}

func TestModel_AddSelectUpdateDelete(t *testing.T) {
	m, repo := newTestModel(t)

	m, cmd := update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionAdd,
		Values: formValues("name", "Asha", "basic", "40000", "hra", "10000"),
	})
	m = drain(t, m, cmd)
	require.NoError(t, m.err)
	require.Len(t, m.employeesModel.Records(), 1)
	rec := m.employeesModel.Records()[0]
	assert.True(t, rec.GrossSalary.Equal(decimal.NewFromInt(600000)))

	m, cmd = update(t, m, tuimsg.EmployeeSelectedMsg{Record: rec})
	m = drain(t, m, cmd)
	assert.Equal(t, rec.ID, m.selectedID)
	assert.Equal(t, "50000.00", m.formModel.Values()[config.FieldBasic])
	assert.Equal(t, "Asha", m.formModel.Values()[config.FieldName])

	m, cmd = update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionUpdate,
		Values: formValues("name", "Asha R", "basic", "60000"),
	})
	m = drain(t, m, cmd)
	require.NoError(t, m.err)
	updated, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.Name)
	assert.True(t, updated.GrossSalary.Equal(decimal.NewFromInt(720000)))

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m = drain(t, m, cmd)
	require.NoError(t, m.err)
	assert.Len(t, m.employeesModel.Records(), 1)
	assert.Contains(t, m.View(), "(y/n)")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = drain(t, m, cmd)
	require.NoError(t, m.err)
	assert.Empty(t, m.employeesModel.Records())
	assert.Zero(t, m.selectedID)
	_, err = repo.Get(context.Background(), rec.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestModel_DeleteNeedsConfirmation(t *testing.T) {
	rec := domain.EmployeeRecord{ID: 1, Name: "Asha", GrossSalary: decimal.NewFromInt(600000)}
	m, repo := newTestModel(t, rec)
	m, cmd := update(t, m, tuimsg.EmployeeSelectedMsg{Record: rec})
	m = drain(t, m, cmd)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m = drain(t, m, cmd)
	assert.True(t, m.confirmDelete)
	_, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = drain(t, m, cmd)

	assert.False(t, m.confirmDelete)
	assert.Contains(t, m.status, "cancelled")
	assert.Equal(t, "Asha", m.formModel.Values()[config.FieldName])
	assert.Equal(t, rec.ID, m.selectedID)
	_, err = repo.Get(context.Background(), rec.ID)
	assert.NoError(t, err)
}

func TestModel_AddRequiresSalaryComponent(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionAdd,
		Values: formValues("name", "Nobody"),
	})
	m = drain(t, m, cmd)

	assert.ErrorIs(t, m.err, config.ErrNoSalaryComponent)
}

func TestModel_AddRequiresName(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionAdd,
		Values: formValues("basic", "1000"),
	})
	m = drain(t, m, cmd)

	assert.ErrorIs(t, m.err, storage.ErrInvalidRecord)
}

func TestModel_ActionsNeedSelection(t *testing.T) {
	for _, action := range []tuimsg.FormAction{tuimsg.ActionUpdate, tuimsg.ActionDelete, tuimsg.ActionPayslip} {
		t.Run(action.String(), func(t *testing.T) {
			m, _ := newTestModel(t)
			m, cmd := update(t, m, tuimsg.FormActionMsg{Action: action, Values: formValues()})
			assert.Nil(t, cmd)
			assert.ErrorIs(t, m.err, ErrNoSelection)
			assert.Contains(t, m.View(), "please select an employee first")
		})
	}
}

func TestModel_PayslipFlow(t *testing.T) {
	rec := domain.EmployeeRecord{ID: 3, Name: "Kiran", GrossSalary: decimal.NewFromInt(600000)}
	m, _ := newTestModel(t, rec)

	m, cmd := update(t, m, tuimsg.EmployeeSelectedMsg{Record: rec})
	m = drain(t, m, cmd)
	m, cmd = update(t, m, tuimsg.FormActionMsg{Action: tuimsg.ActionPayslip, Values: m.formModel.Values()})
	m = drain(t, m, cmd)

	require.NoError(t, m.err)
	assert.Equal(t, ScenePayslip, m.currentScene)
	p := m.payslipModel.Payslip()
	require.NotNil(t, p)
	assert.True(t, p.NetSalary.Equal(decimal.NewFromInt(378000)))
	assert.Contains(t, m.View(), "NET SALARY")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = drain(t, m, cmd)
	require.NoError(t, m.err)

	path := filepath.Join(m.settings.PayslipDir, "payslip_3_2024-05-31.pdf")
	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Contains(t, m.status, path)
}

func TestModel_ClearResetsSelection(t *testing.T) {
	rec := domain.EmployeeRecord{ID: 1, Name: "Asha", GrossSalary: decimal.NewFromInt(600000)}
	m, _ := newTestModel(t, rec)
	m, cmd := update(t, m, tuimsg.EmployeeSelectedMsg{Record: rec})
	m = drain(t, m, cmd)

	m, _ = update(t, m, tuimsg.FormActionMsg{Action: tuimsg.ActionClear})

	assert.Zero(t, m.selectedID)
	assert.Equal(t, "", m.formModel.Values()[config.FieldName])
	assert.Equal(t, "0", m.formModel.Values()[config.FieldBasic])
}

func TestModel_TypingOnFormDoesNotNavigate(t *testing.T) {
	m, _ := newTestModel(t)

	for _, r := range "qe?" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, SceneForm, m.currentScene)
	assert.Equal(t, "qe?", m.formModel.Values()[config.FieldName])
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyF2})
	m = drain(t, m, cmd)
	assert.Equal(t, SceneEmployees, m.currentScene)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = drain(t, m, cmd)
	assert.Equal(t, SceneHelp, m.currentScene)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = drain(t, m, cmd)
	assert.Equal(t, SceneEmployees, m.currentScene)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_DefaultRegimeFromSettings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.DefaultRegime = domain.RegimeOld
	m := NewModel(Options{Theme: tuistyles.DefaultTheme(), Settings: settings})

	assert.Equal(t, domain.RegimeOld, m.formModel.Regime())
}

func TestModel_ResetKeepsDefaultRegime(t *testing.T) {
	settings := config.DefaultSettings()
	settings.DefaultRegime = domain.RegimeOld
	m := NewModel(Options{Theme: tuistyles.DefaultTheme(), Settings: settings})

	m, cmd := update(t, m, tuimsg.FormActionMsg{
		Action: tuimsg.ActionAdd,
		Values: formValues("name", "Asha", "basic", "40000", "regime", "new"),
	})
	m = drain(t, m, cmd)
	require.NoError(t, m.err)
	assert.Equal(t, domain.RegimeOld, m.formModel.Regime())

	m.formModel.SetValues(formValues("regime", "new"))
	m, _ = update(t, m, tuimsg.FormActionMsg{Action: tuimsg.ActionClear})
	assert.Equal(t, domain.RegimeOld, m.formModel.Regime())
}
