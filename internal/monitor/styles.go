package monitor

import "github.com/charmbracelet/lipgloss"

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
	ColorGraph  = lipgloss.Color("#00FFFF")
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	RuleStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// RowHighlightStyle marks the cursor row.
	RowHighlightStyle = lipgloss.NewStyle().
				Reverse(true)

	// RowSelectedStyle marks the committed selection when the cursor is elsewhere.
	RowSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	// InfoLineStyle is the bottom line describing the selection.
	InfoLineStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	InfoErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)
)

// MetricColor returns the color for a CPU percentage relative to the alert
// threshold: critical above it, warning above half of it, healthy otherwise.
func MetricColor(percent, threshold float64) lipgloss.Color {
	switch {
	case percent > threshold:
		return ColorCritical
	case percent > threshold/2:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a foreground style for a CPU percentage.
func MetricStyle(percent, threshold float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent, threshold))
}
