// Package tuistyles holds the TUI color palette and derived lipgloss styles.
// A Theme is a plain value handed to the model and scenes at construction.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from
type Palette struct {
	Primary      lipgloss.Color
	PrimaryHover lipgloss.Color
	Text         lipgloss.Color
	TextLight    lipgloss.Color
	Border       lipgloss.Color
	Selected     lipgloss.Color
	Success      lipgloss.Color
	Danger       lipgloss.Color
	Warning      lipgloss.Color
}

// DefaultPalette is the teal on slate palette
func DefaultPalette() Palette {
	return Palette{
		Primary:      lipgloss.Color("#06b6d4"),
		PrimaryHover: lipgloss.Color("#0891b2"),
		Text:         lipgloss.Color("#1f2937"),
		TextLight:    lipgloss.Color("#6b7280"),
		Border:       lipgloss.Color("#e5e7eb"),
		Selected:     lipgloss.Color("#ccfbf1"),
		Success:      lipgloss.Color("#10b981"),
		Danger:       lipgloss.Color("#dc2626"),
		Warning:      lipgloss.Color("#f59e0b"),
	}
}

// Theme bundles a palette with the styles derived from it
type Theme struct {
	Palette Palette

	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	Border         lipgloss.Style
	ActiveBorder   lipgloss.Style
	Header         lipgloss.Style
	FieldLabel     lipgloss.Style
	FocusedLabel   lipgloss.Style
	MetricLabel    lipgloss.Style
	MetricValue    lipgloss.Style
	MetricPositive lipgloss.Style
	MetricNegative lipgloss.Style
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	Error          lipgloss.Style
	Info           lipgloss.Style
	Success        lipgloss.Style
}

// NewTheme derives all styles from p
func NewTheme(p Palette) Theme {
	return Theme{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.TextLight).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextLight).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		FieldLabel: lipgloss.NewStyle().
			Foreground(p.TextLight).
			Width(28),
		FocusedLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.PrimaryHover).
			Width(28),
		MetricLabel: lipgloss.NewStyle().
			Foreground(p.TextLight),
		MetricValue: lipgloss.NewStyle().
			Bold(true),
		MetricPositive: lipgloss.NewStyle().
			Foreground(p.Success),
		MetricNegative: lipgloss.NewStyle().
			Foreground(p.Danger),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			BorderBottom(true),
		TableSelected: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Selected).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.TextLight),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Danger),
		Info: lipgloss.NewStyle().
			Foreground(p.Warning),
		Success: lipgloss.NewStyle().
			Foreground(p.Success),
	}
}

// DefaultTheme is NewTheme(DefaultPalette())
func DefaultTheme() Theme {
	return NewTheme(DefaultPalette())
}

// TrendStyle picks the positive or negative metric style
func (t Theme) TrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return t.MetricPositive
	}
	return t.MetricNegative
}

// TrendIndicator returns an arrow for the change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}
