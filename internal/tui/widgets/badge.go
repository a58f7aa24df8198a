// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges and status icons

package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Pinerealm/my-blogging-app/internal/tui/icons"
	"github.com/Pinerealm/my-blogging-app/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Color is the foreground used for level
func (l StatusLevel) Color() lipgloss.Color {
	switch l {
	case StatusOK:
		return styles.Secondary
	case StatusWarning:
		return styles.Warning
	case StatusCritical:
		return styles.Danger
	case StatusInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// Badge renders text on a background colored by level
func Badge(text string, level StatusLevel) string {
	fg := lipgloss.Color("#FFFFFF")
	if level == StatusWarning {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(level.Color()).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusIcon returns the colored icon for level
func StatusIcon(level StatusLevel) string {
	var icon icons.Icon
	switch level {
	case StatusOK:
		icon = icons.CheckOK
	case StatusWarning:
		icon = icons.Warning
	case StatusCritical:
		icon = icons.Critical
	default:
		icon = icons.Info
	}
	return lipgloss.NewStyle().Foreground(level.Color()).Render(icon.String())
}

// StatusText renders text prefixed with the icon for level
func StatusText(text string, level StatusLevel) string {
	return StatusIcon(level) + " " + lipgloss.NewStyle().Foreground(level.Color()).Render(text)
}
