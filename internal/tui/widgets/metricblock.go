// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: A bordered box with the title in the top border and a value below

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// DefaultBlockWidth fits three blocks side by side in an 80 column terminal
const DefaultBlockWidth = 24

// MetricBlock renders a value and subtitle in a titled box
func MetricBlock(icon icons.Icon, title, value, subtitle string, width int) string {
	valueLine := lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(value)
	subLine := lipgloss.NewStyle().Foreground(styles.Muted).Render(subtitle)
	return block(icon, title, width, valueLine, subLine)
}

// BarBlock renders a percentage as a labeled bar in a titled box
func BarBlock(icon icons.Icon, title string, percent float64, details string, width int) string {
	width = blockWidth(width)
	bar := LabeledProgressBar(percent, width-4-5)
	return block(icon, title, width, bar, lipgloss.NewStyle().Foreground(styles.Muted).Render(details))
}

// SparkBlock renders a value with a sparkline underneath in a titled box
func SparkBlock(icon icons.Icon, title, value string, series []float64, width int) string {
	width = blockWidth(width)
	valueLine := lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(value)
	return block(icon, title, width, valueLine, Sparkline(series, width-4, styles.Accent))
}

func blockWidth(width int) int {
	if width <= 0 {
		return DefaultBlockWidth
	}
	return width
}

// block draws the border by hand so the title can sit inside the top edge
func block(icon icons.Icon, title string, width int, lines ...string) string {
	width = blockWidth(width)
	inner := width - 4
	border := lipgloss.NewStyle().Foreground(styles.Muted)

	label := truncate(icon.String()+" "+title, inner)
	top := border.Render("┌─ ") +
		lipgloss.NewStyle().Foreground(styles.Primary).Render(label) +
		border.Render(" "+strings.Repeat("─", max(0, width-5-lipgloss.Width(label)))+"┐")

	rows := []string{top}
	for _, line := range lines {
		pad := max(0, inner-lipgloss.Width(line))
		rows = append(rows, border.Render("│ ")+line+strings.Repeat(" ", pad)+border.Render(" │"))
	}
	rows = append(rows, border.Render("└"+strings.Repeat("─", width-2)+"┘"))
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
