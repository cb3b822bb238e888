package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/RoadWing/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for in-progress work
	ColorBlue      = lipgloss.Color("75")  // Blue for headers

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Board column style
	StyleColumn = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)
)

// StatusStyle returns the display style for a task status.
func StatusStyle(status models.TaskStatus) lipgloss.Style {
	switch status {
	case models.StatusCompleted:
		return StyleSuccess
	case models.StatusInProgress:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	case models.StatusBlocked:
		return StyleError
	default:
		return StyleSubtle
	}
}

// StatusIcon returns a single-character marker for a task status.
func StatusIcon(status models.TaskStatus) string {
	switch status {
	case models.StatusCompleted:
		return "✓"
	case models.StatusInProgress:
		return "◐"
	case models.StatusBlocked:
		return "✗"
	default:
		return "○"
	}
}

// PriorityStyle returns the display style for a task priority.
func PriorityStyle(priority models.TaskPriority) lipgloss.Style {
	switch priority {
	case models.PriorityCritical:
		return StyleError.Bold(true)
	case models.PriorityHigh:
		return StyleWarning
	case models.PriorityLow:
		return StyleSubtle
	default:
		return StyleText
	}
}
