package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regimes.yaml
var defaultRegimesYAML []byte

// InputParser handles parsing of regime table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultRegimeTable returns the built-in regime table
func DefaultRegimeTable() *domain.RegimeTable {
	table, err := NewInputParser().ParseRegimeTable(defaultRegimesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded regime table is invalid: %v", err))
	}
	return table
}

// LoadRegimeTable loads a regime table from a YAML file.
// An empty filename returns the built-in table.
func (ip *InputParser) LoadRegimeTable(filename string) (*domain.RegimeTable, error) {
	if filename == "" {
		return DefaultRegimeTable(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ip.ParseRegimeTable(data)
}

// ParseRegimeTable decodes and validates a YAML regime table
func (ip *InputParser) ParseRegimeTable(data []byte) (*domain.RegimeTable, error) {
	var table domain.RegimeTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRegimeTable(&table); err != nil {
		return nil, fmt.Errorf("regime table validation failed: %w", err)
	}

	return &table, nil
}

// ValidateRegimeTable checks that every schedule partitions [0, ∞)
func (ip *InputParser) ValidateRegimeTable(table *domain.RegimeTable) error {
	if len(table.Regimes) == 0 {
		return fmt.Errorf("no regimes provided")
	}
	if !isFraction(table.CessRate) {
		return fmt.Errorf("cess rate must be between 0 and 1")
	}

	seen := make(map[domain.Regime]bool)
	for i := range table.Regimes {
		regime := &table.Regimes[i]
		if regime.Name == "" {
			return fmt.Errorf("regime %d: name is required", i)
		}
		if seen[regime.Name] {
			return fmt.Errorf("regime %s: duplicate name", regime.Name)
		}
		seen[regime.Name] = true

		if err := ip.validateSchedule(regime); err != nil {
			return fmt.Errorf("regime %s: %w", regime.Name, err)
		}
	}

	return nil
}

// validateSchedule validates a single regime's brackets and rebate
func (ip *InputParser) validateSchedule(regime *domain.RegimeSchedule) error {
	if regime.RebateThreshold.IsNegative() {
		return fmt.Errorf("rebate threshold cannot be negative")
	}
	if len(regime.Brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}

	last := len(regime.Brackets) - 1
	lower := decimal.Zero
	for i, b := range regime.Brackets {
		if !isFraction(b.Rate) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 1", i)
		}
		if b.Unbounded() {
			if i != last {
				return fmt.Errorf("bracket %d: only the last bracket can be unbounded", i)
			}
			continue
		}
		if i == last {
			return fmt.Errorf("last bracket must be unbounded")
		}
		if b.Upper.LessThanOrEqual(lower) {
			return fmt.Errorf("bracket %d: upper bound %s must be greater than %s", i, b.Upper, lower)
		}
		lower = *b.Upper
	}

	return nil
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}
