package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/model"
)

// Shared palette. Panels reference these instead of hardcoding ANSI
// codes so the dashboard stays consistent.
var (
	ColorWhite  = lipgloss.Color("15")
	ColorGray   = lipgloss.Color("244")
	ColorDim    = lipgloss.Color("240")
	ColorNavy   = lipgloss.Color("17")
	ColorGreen  = lipgloss.Color("42")
	ColorYellow = lipgloss.Color("220")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
	ColorBlue   = lipgloss.Color("39")
	ColorPink   = lipgloss.Color("201")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBlue).
				Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	statusLineStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)

	errorBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	staleBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)
)

// priorityStyle returns the render style for an inquiry priority badge.
func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case model.PriorityCritical:
		return lipgloss.NewStyle().Foreground(ColorPink).Bold(true)
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(ColorOrange)
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}

// loadStyle colors a department load percentage: green up to 50, orange
// up to 75, red above.
func loadStyle(load int) lipgloss.Style {
	switch {
	case load >= 75:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case load >= 50:
		return lipgloss.NewStyle().Foreground(ColorOrange)
	default:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
}

// statusStyle colors the service status word.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "operational":
		return lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	case "degraded":
		return lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	}
}
