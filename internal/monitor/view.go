package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pmon/internal/sampler"
	"github.com/rileyhilliard/pmon/internal/util"
)

// column is one table column. Widths include the trailing gap.
type column struct {
	title string
	width int
	right bool
}

var columns = []column{
	{title: "PID", width: 9, right: true},
	{title: "NAME", width: 26},
	{title: "USER", width: 14},
	{title: "MEMORY", width: 13, right: true},
	{title: "CPU", width: 10, right: true},
	{title: "READ", width: 12, right: true},
	{title: "WRITE", width: 12, right: true},
	{title: "CPU TIME", width: 12, right: true},
	{title: "BOUND", width: 11},
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())

	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.renderInfoLine())

	return b.String()
}

// renderHeader renders the title bar with system-wide figures.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("pmon")

	if m.snapshot == nil {
		return HeaderStyle.Render(title + LabelStyle.Render(" | collecting..."))
	}

	sys := m.snapshot.System
	cpu := "--"
	if sys.CPUValid {
		cpu = MetricStyle(sys.CPUPercent, 100).Render(fmt.Sprintf("%.2f%%", sys.CPUPercent))
	}

	noun := util.Pluralize(sys.Processes, "process", "processes")
	stats := LabelStyle.Render(fmt.Sprintf(" | %d %s | mem ", sys.Processes, noun)) +
		ValueStyle.Render(fmt.Sprintf("%.2f%%", sys.MemoryPercent)) +
		LabelStyle.Render(" | cpu ") + cpu

	if spark := RenderSparkline(m.trend.last(trendSize), 20, ColorGraph); spark != "" {
		stats += " " + spark
	}
	if m.snapshot.Skipped > 0 {
		stats += LabelStyle.Render(fmt.Sprintf(" | %d skipped", m.snapshot.Skipped))
	}
	if !m.lastUpdate.IsZero() {
		stats += LabelStyle.Render(" | updated " + m.lastUpdate.Format("15:04:05"))
	}

	return HeaderStyle.Render(title + stats)
}

// renderTable renders the column header and the visible process rows.
func (m Model) renderTable() string {
	var b strings.Builder

	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.title
	}
	b.WriteString(TableHeaderStyle.Render(m.fit(formatRow(titles))))
	b.WriteString("\n")
	b.WriteString(RuleStyle.Render(strings.Repeat("─", m.lineWidth())))
	b.WriteString("\n")

	count := m.snapshot.Len()
	if count == 0 {
		b.WriteString(LabelStyle.Render("No processes"))
		b.WriteString("\n")
		return b.String()
	}

	selected, hasSelection := m.cursor.SelectedIndex(count)
	start, end := m.cursor.Window(count)
	for i := start; i < end; i++ {
		p, _ := m.snapshot.At(i)
		line := m.fit(formatRow(processCells(p)))

		switch {
		case i == m.cursor.Highlight:
			line = RowHighlightStyle.Render(line)
		case hasSelection && i == selected:
			line = RowSelectedStyle.Render(line)
		case p.CPUPercent > m.ledger.Threshold():
			line = MetricStyle(p.CPUPercent, m.ledger.Threshold()).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.View(m.keys))
}

// renderInfoLine renders the bottom line: the selected process and the key
// reminders, followed by the status of the last action if there is one. The
// whole line is cut to the terminal width so it never wraps.
func (m Model) renderInfoLine() string {
	var text string
	if idx, ok := m.cursor.SelectedIndex(m.snapshot.Len()); ok {
		p, _ := m.snapshot.At(idx)
		text = fmt.Sprintf("Selected PID:%d Name:%s User:%s", p.PID, util.Truncate(p.Name, 24), util.Truncate(p.User, 14))
	} else {
		text = "No process selected"
	}
	text += "  [K] Kill  [ENTER] Select  [Q] Quit"

	width := m.lineWidth()
	if m.status == "" {
		return InfoLineStyle.Render(m.fit(text))
	}

	info := util.Truncate(text, width)
	status := util.Truncate(" "+m.status, width-lipgloss.Width(info))
	info = util.PadRight(info, width-lipgloss.Width(status))

	statusStyle := LabelStyle
	if m.statusError {
		statusStyle = InfoErrorStyle
	}
	return InfoLineStyle.Render(info) + statusStyle.Render(status)
}

// processCells formats a sample into table cells in column order.
func processCells(p sampler.ProcessSample) []string {
	return []string{
		fmt.Sprintf("%d", p.PID),
		p.Name,
		p.User,
		fmt.Sprintf("%.2f MB", p.MemoryMB),
		fmt.Sprintf("%.2f%%", p.CPUPercent),
		formatBytes(p.ReadBytes),
		formatBytes(p.WriteBytes),
		p.CPUTime,
		p.Bound.String(),
	}
}

// formatRow pads and truncates cells to the column widths, measured in
// terminal cells.
func formatRow(cells []string) string {
	var b strings.Builder
	for i, c := range columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.right {
			b.WriteString(util.PadLeft(cell, c.width-2))
		} else {
			b.WriteString(util.PadRight(cell, c.width-2))
		}
		b.WriteString("  ")
	}
	return strings.TrimRight(b.String(), " ")
}

// lineWidth is the width every full-width line is padded or cut to.
func (m Model) lineWidth() int {
	if m.width > 0 {
		return m.width
	}
	total := 0
	for _, c := range columns {
		total += c.width
	}
	return total
}

// fit pads or cuts s to the terminal width.
func (m Model) fit(s string) string {
	return util.PadRight(s, m.lineWidth())
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}
