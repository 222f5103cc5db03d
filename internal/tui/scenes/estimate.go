package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/salarytax/internal/calculation"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/rgehrsitz/salarytax/internal/output"
	"github.com/rgehrsitz/salarytax/internal/tui/components"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

// EstimateModel shows a tax breakdown as metric cards
type EstimateModel struct {
	breakdown  *domain.TaxBreakdown
	comparison []domain.TaxBreakdown
	theme      tuistyles.Theme
	width      int
	height     int
}

// NewEstimateModel creates an empty estimate view
func NewEstimateModel(theme tuistyles.Theme) *EstimateModel {
	return &EstimateModel{theme: theme}
}

// SetEstimate sets the breakdown to show and the per-regime comparison
func (m *EstimateModel) SetEstimate(b *domain.TaxBreakdown, comparison []domain.TaxBreakdown) {
	m.breakdown = b
	m.comparison = comparison
}

// Breakdown returns the shown breakdown, if any
func (m *EstimateModel) Breakdown() *domain.TaxBreakdown {
	return m.breakdown
}

// SetSize updates the model dimensions
func (m *EstimateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *EstimateModel) columns() int {
	switch {
	case m.width >= 100:
		return 3
	case m.width >= 66:
		return 2
	default:
		return 1
	}
}

// View renders the estimate
func (m *EstimateModel) View() string {
	if m.breakdown == nil {
		return m.theme.Border.Render("No estimate yet. Fill the form and press enter.")
	}
	b := m.breakdown

	var sb strings.Builder
	sb.WriteString(m.theme.Header.Render(fmt.Sprintf("Tax Estimate (%s regime)", b.Regime)))
	sb.WriteString("\n")

	rows := output.BreakdownRows(b)
	cards := make([]*components.MetricCard, 0, len(rows))
	for _, row := range rows {
		card := components.NewMetricCard(m.theme, row.Label, row.Value)
		if row.Label == "Total Annual Tax" || row.Label == "Estimated Monthly TDS" {
			card.WithHighlight(true)
		}
		cards = append(cards, card)
	}
	if b.RebateApplied {
		cards[5].WithDescription("rebate: within threshold")
	}
	sb.WriteString(components.MetricGrid(cards, m.columns()))
	sb.WriteString("\n")

	effective := components.NewMetricCard(m.theme, "Effective Rate", output.FormatPercentage(b.EffectiveRate()))
	sb.WriteString(effective.RenderCompact())
	sb.WriteString("\n")

	if alt, ok := m.alternative(); ok {
		saving := alt.TotalTax.Sub(b.TotalTax)
		compare := components.NewMetricCard(m.theme, fmt.Sprintf("%s regime total", alt.Regime), output.FormatRupees(alt.TotalTax))
		if saving.IsNegative() {
			compare.WithTrend(false, fmt.Sprintf("%s regime saves %s", alt.Regime, output.FormatRupees(saving.Neg())))
		} else {
			compare.WithTrend(true, fmt.Sprintf("this regime saves %s", output.FormatRupees(saving)))
		}
		sb.WriteString(compare.RenderCompact())
		sb.WriteString("\n")
	}

	return sb.String()
}

// alternative returns the cheapest other regime from the comparison
func (m *EstimateModel) alternative() (domain.TaxBreakdown, bool) {
	others := make([]domain.TaxBreakdown, 0, len(m.comparison))
	for _, c := range m.comparison {
		if c.Regime != m.breakdown.Regime {
			others = append(others, c)
		}
	}
	return calculation.Cheapest(others)
}
