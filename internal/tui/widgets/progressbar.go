// ABOUTME: Progress bar widgets drawn with block characters
// ABOUTME: Used for completeness and share-of-total indicators

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// ProgressBar renders a bar width cells wide with percent filled in color
func ProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := int(clampPercent(percent) / 100 * float64(width))

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("░", width-filled))
}

// LabeledProgressBar renders a bar followed by its percentage; the color goes
// from warning to ok as the bar fills
func LabeledProgressBar(percent float64, width int) string {
	level := StatusOK
	switch {
	case percent < 40:
		level = StatusCritical
	case percent < 80:
		level = StatusWarning
	}
	label := lipgloss.NewStyle().Foreground(level.Color()).Bold(true).Render(fmt.Sprintf("%3.0f%%", clampPercent(percent)))
	return ProgressBar(percent, width, level.Color()) + " " + label
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
