package domain

import (
	"github.com/shopspring/decimal"
)

// RegimeTable contains all regulatory data for one tax year.
// It is loaded from regimes.yaml and treated as immutable once validated.
type RegimeTable struct {
	Version  string           `yaml:"version" json:"version"`
	CessRate decimal.Decimal  `yaml:"cess_rate" json:"cess_rate"`
	Regimes  []RegimeSchedule `yaml:"regimes" json:"regimes"`
}

// RegimeSchedule is one selectable tax regime: a bracket schedule plus the
// rebate threshold that goes with it.
type RegimeSchedule struct {
	Name            Regime          `yaml:"name" json:"name"`
	Label           string          `yaml:"label" json:"label"`
	RebateThreshold decimal.Decimal `yaml:"rebate_threshold" json:"rebate_threshold"`
	Brackets        []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// TaxBracket is a single slab. A nil Upper means the slab is unbounded.
// The lower bound is implied by the previous slab's upper bound.
type TaxBracket struct {
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket extends to infinity
func (b TaxBracket) Unbounded() bool {
	return b.Upper == nil
}

// Schedule returns the regime with the given name
func (t *RegimeTable) Schedule(name Regime) (*RegimeSchedule, bool) {
	for i := range t.Regimes {
		if t.Regimes[i].Name == name {
			return &t.Regimes[i], true
		}
	}
	return nil, false
}

// Names lists the regime names in table order
func (t *RegimeTable) Names() []Regime {
	names := make([]Regime, 0, len(t.Regimes))
	for _, r := range t.Regimes {
		names = append(names, r.Name)
	}
	return names
}
