package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/salarytax/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Highlight   bool
	Width       int

	theme tuistyles.Theme
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string // e.g. "saves ₹12,000.00"
}

// NewMetricCard creates a new metric card
func NewMetricCard(theme tuistyles.Theme, label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
		theme: theme,
	}
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{
		IsPositive: isPositive,
		Change:     change,
	}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight draws the card with the active border
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	label := m.theme.MetricLabel.Render(m.Label)
	value := m.theme.MetricValue.Render(m.Value)

	var trend string
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
		trend = "\n" + m.theme.TrendStyle(m.Trend.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}

	var desc string
	if m.Description != "" {
		desc = "\n" + m.theme.Subtitle.Render(m.Description)
	}

	border := m.theme.Palette.Border
	if m.Highlight {
		border = m.theme.Palette.Primary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(label + "\n" + value + trend + desc)
}

// RenderCompact returns a compact inline version without border
func (m *MetricCard) RenderCompact() string {
	label := m.theme.MetricLabel.Render(m.Label + ":")
	value := m.theme.MetricValue.Render(m.Value)

	var trend string
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
		trend = " " + m.theme.TrendStyle(m.Trend.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}

	return label + " " + value + trend
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
