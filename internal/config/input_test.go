package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegimeTable(t *testing.T) {
	table := DefaultRegimeTable()

	assert.Equal(t, "FY2024-25", table.Version)
	assert.Equal(t, "0.04", table.CessRate.String())
	assert.Equal(t, []domain.Regime{domain.RegimeNew, domain.RegimeOld}, table.Names())

	newRegime, ok := table.Schedule(domain.RegimeNew)
	require.True(t, ok)
	assert.Equal(t, "700000", newRegime.RebateThreshold.String())
	require.Len(t, newRegime.Brackets, 6)
	assert.Equal(t, "300000", newRegime.Brackets[0].Upper.String())
	assert.True(t, newRegime.Brackets[0].Rate.IsZero())
	assert.Equal(t, "1500000", newRegime.Brackets[4].Upper.String())
	assert.True(t, newRegime.Brackets[5].Unbounded())
	assert.Equal(t, "0.3", newRegime.Brackets[5].Rate.String())

	oldRegime, ok := table.Schedule(domain.RegimeOld)
	require.True(t, ok)
	assert.Equal(t, "500000", oldRegime.RebateThreshold.String())
	require.Len(t, oldRegime.Brackets, 4)
	assert.Equal(t, "1000000", oldRegime.Brackets[2].Upper.String())
	assert.Equal(t, "0.2", oldRegime.Brackets[2].Rate.String())
	assert.True(t, oldRegime.Brackets[3].Unbounded())

	_, ok = table.Schedule("flat")
	assert.False(t, ok)
}

func TestParseRegimeTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "regimes: [",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "no regimes",
			yaml:    "version: x\ncess_rate: 0.04\n",
			wantErr: "no regimes provided",
		},
		{
			name: "cess above one",
			yaml: `cess_rate: 1.5
regimes:
  - name: a
    brackets: [{rate: 0.1}]`,
			wantErr: "cess rate must be between 0 and 1",
		},
		{
			name: "missing name",
			yaml: `regimes:
  - brackets: [{rate: 0.1}]`,
			wantErr: "name is required",
		},
		{
			name: "duplicate name",
			yaml: `regimes:
  - name: a
    brackets: [{rate: 0.1}]
  - name: a
    brackets: [{rate: 0.2}]`,
			wantErr: "duplicate name",
		},
		{
			name: "no brackets",
			yaml: `regimes:
  - name: a`,
			wantErr: "at least one bracket is required",
		},
		{
			name: "negative rebate",
			yaml: `regimes:
  - name: a
    rebate_threshold: -1
    brackets: [{rate: 0.1}]`,
			wantErr: "rebate threshold cannot be negative",
		},
		{
			name: "rate above one",
			yaml: `regimes:
  - name: a
    brackets: [{upper: 10, rate: 0}, {rate: 1.2}]`,
			wantErr: "rate must be between 0 and 1",
		},
		{
			name: "unbounded in the middle",
			yaml: `regimes:
  - name: a
    brackets: [{rate: 0}, {upper: 10, rate: 0.1}]`,
			wantErr: "only the last bracket can be unbounded",
		},
		{
			name: "bounded last bracket",
			yaml: `regimes:
  - name: a
    brackets: [{upper: 10, rate: 0}, {upper: 20, rate: 0.1}]`,
			wantErr: "last bracket must be unbounded",
		},
		{
			name: "non increasing uppers",
			yaml: `regimes:
  - name: a
    brackets: [{upper: 20, rate: 0}, {upper: 20, rate: 0.1}, {rate: 0.2}]`,
			wantErr: "must be greater than",
		},
		{
			name: "zero first upper",
			yaml: `regimes:
  - name: a
    brackets: [{upper: 0, rate: 0}, {rate: 0.2}]`,
			wantErr: "must be greater than",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parser.ParseRegimeTable([]byte(tt.yaml))
			assert.Nil(t, table)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRegimeTable(t *testing.T) {
	parser := NewInputParser()

	t.Run("empty filename uses built-in table", func(t *testing.T) {
		table, err := parser.LoadRegimeTable("")
		require.NoError(t, err)
		assert.Equal(t, "FY2024-25", table.Version)
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "regimes.yaml")
		data := `version: FY2099-00
cess_rate: 0.05
regimes:
  - name: flat
    label: Flat
    rebate_threshold: 0
    brackets:
      - { rate: 0.1 }
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		table, err := parser.LoadRegimeTable(path)
		require.NoError(t, err)
		assert.Equal(t, "FY2099-00", table.Version)
		assert.Equal(t, []domain.Regime{"flat"}, table.Names())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.LoadRegimeTable(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})
}
