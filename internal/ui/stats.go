package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/RoadWing/internal/progress"
)

// RenderStats renders project statistics as a row of panels plus a
// completion bar. Stats are recomputed from the live task set by the
// caller, so this is display only.
func RenderStats(stats progress.ProjectStats) string {
	cards := []string{
		statCard("Tasks", fmt.Sprintf("%d", stats.TotalTasks), ColorBlue),
		statCard("Completed", fmt.Sprintf("%d", stats.CompletedTasks), ColorSuccess),
		statCard("In Progress", fmt.Sprintf("%d", stats.InProgressTasks), ColorCyan),
		statCard("Estimated", fmt.Sprintf("%gh", stats.TotalEstimatedHours), ColorWarning),
		statCard("Done Hours", fmt.Sprintf("%gh", stats.CompletedHours), ColorSuccess),
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return row + "\n\n" + renderCompletionBar(stats.CompletionRatio())
}

func statCard(label, value string, color lipgloss.Color) string {
	content := lipgloss.NewStyle().Bold(true).Foreground(color).Render(value) +
		"\n" + StyleSubtle.Render(label)
	return NewPanel("", content).WithBorderColor(color).WithWidth(14).Render()
}

func renderCompletionBar(ratio float64) string {
	const barWidth = 40
	filled := int(ratio*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := StyleSuccess.Render(strings.Repeat("█", filled)) +
		StyleSubtle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf(" %s %s", bar, StyleTitle.Render(fmt.Sprintf("%.0f%%", ratio*100)))
}
