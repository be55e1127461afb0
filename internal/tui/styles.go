package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbontrack/internal/engine"
	"github.com/rshade/carbontrack/internal/footprint"
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("#10b981")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("#3b82f6")
	ColorOK        = lipgloss.Color("#22c55e")
	ColorWarning   = lipgloss.Color("#f59e0b")
	ColorCritical  = lipgloss.Color("#ef4444")
	ColorExceeded  = lipgloss.Color("#b91c1c")
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable values shared by the views.
var (
	HeaderStyle  = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorHighlight)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorOK)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorLabel).Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)

// CategoryStyle colors text with the category's palette entry.
func CategoryStyle(c footprint.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}

// HealthColor maps a budget health level to its color.
func HealthColor(h engine.BudgetHealth) lipgloss.Color {
	switch h {
	case engine.BudgetHealthWarning:
		return ColorWarning
	case engine.BudgetHealthCritical:
		return ColorCritical
	case engine.BudgetHealthExceeded:
		return ColorExceeded
	case engine.BudgetHealthOK, engine.BudgetHealthUnspecified:
		return ColorOK
	default:
		return ColorOK
	}
}

// TrendStyle colors a trend. Rising emissions are bad news.
func TrendStyle(t engine.Trend) lipgloss.Style {
	switch t {
	case engine.TrendUp:
		return lipgloss.NewStyle().Foreground(ColorCritical)
	case engine.TrendDown:
		return lipgloss.NewStyle().Foreground(ColorOK)
	case engine.TrendStable:
		return SubtleStyle
	default:
		return SubtleStyle
	}
}
